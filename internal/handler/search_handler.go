package handler

import (
	"net/http"

	"github.com/faridhnr/skillswap/internal/service"
	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchService service.SearchIndexService
}

func NewSearchHandler(searchService service.SearchIndexService) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
	}
}

// GetSearchToken issues a scoped tenant token so the frontend can query the
// profiles index directly.
func (h *SearchHandler) GetSearchToken(c *gin.Context) {
	if h.searchService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search is not available"})
		return
	}

	token, err := h.searchService.GenerateSearchToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate search token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"search_token": token})
}
