package handler

import (
	"net/http"

	"github.com/faridhnr/skillswap/internal/service"
	"github.com/faridhnr/skillswap/pkg/response"
	"github.com/gin-gonic/gin"
)

type BrowseHandler struct {
	browseService service.BrowseService
}

func NewBrowseHandler(browseService service.BrowseService) *BrowseHandler {
	return &BrowseHandler{
		browseService: browseService,
	}
}

func (h *BrowseHandler) Browse(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var opts service.BrowseOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	profiles, err := h.browseService.Browse(c.Request.Context(), userID, opts)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": profiles, "count": len(profiles)})
}
