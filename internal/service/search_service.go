package service

import (
	"fmt"
	"html"
	"log"
	"os"
	"strings"
	"time"

	"github.com/faridhnr/skillswap/internal/model"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

// SearchIndexService mirrors public profiles into Meilisearch so the frontend
// can query the index directly with a scoped tenant token. The canonical
// browse filtering stays in-process; this index only serves typeahead search.
type SearchIndexService interface {
	IndexProfile(profile *model.Profile) error
	DeleteProfile(id string) error
	GenerateSearchToken() (string, error)
}

type searchIndexService struct {
	client        meilisearch.ServiceManager
	signingKeyUID string
	signingKey    string
	sanitizer     *bluemonday.Policy
}

func NewSearchIndexService(client meilisearch.ServiceManager) SearchIndexService {
	if os.Getenv("MEILI_MASTER_KEY") == "" {
		log.Println("WARNING: MEILI_MASTER_KEY is not set.")
	}

	s := &searchIndexService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	s.initSigningKey()
	return s
}

func (s *searchIndexService) initIndexes() {
	filterableAttrs := []string{"availability", "location"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	_, err := s.client.Index("profiles").UpdateFilterableAttributes(&filterableInterface)
	if err != nil {
		log.Printf("Failed to update profiles filterable attributes: %v", err)
	}

	sortableAttrs := []string{"created_at", "skills_count"}
	_, err = s.client.Index("profiles").UpdateSortableAttributes(&sortableAttrs)
	if err != nil {
		log.Printf("Failed to update profiles sortable attributes: %v", err)
	}

	log.Println("Meilisearch profiles index initialized")
}

func (s *searchIndexService) initSigningKey() {
	resp, err := s.client.GetKeys(&meilisearch.KeysQuery{
		Limit: 20,
	})
	if err != nil {
		log.Printf("Failed to get meilisearch keys: %v", err)
		return
	}

	for _, key := range resp.Results {
		if key.Name == "TenantTokenSigner" {
			s.signingKeyUID = key.UID
			s.signingKey = key.Key
			log.Println("Found existing Meilisearch signing key")
			return
		}
	}

	expiry := time.Now().AddDate(100, 0, 0)

	key, err := s.client.CreateKey(&meilisearch.Key{
		Description: "Key to sign tenant tokens",
		Name:        "TenantTokenSigner",
		Actions:     []string{"search"},
		Indexes:     []string{"profiles"},
		ExpiresAt:   expiry,
	})
	if err != nil {
		log.Printf("Failed to create signing key: %v", err)
		return
	}

	s.signingKeyUID = key.UID
	s.signingKey = key.Key
	log.Println("Created new Meilisearch signing key")
}

type meiliProfileDoc struct {
	ID            string   `json:"id"`
	UserID        string   `json:"user_id"`
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	Bio           string   `json:"bio"`
	SkillsOffered []string `json:"skills_offered"`
	SkillsWanted  []string `json:"skills_wanted"`
	Availability  string   `json:"availability"`
	SkillsCount   int      `json:"skills_count"`
	CreatedAt     int64    `json:"created_at"`
}

func (s *searchIndexService) IndexProfile(profile *model.Profile) error {
	doc := meiliProfileDoc{
		ID:            profile.ID.String(),
		UserID:        profile.UserID.String(),
		Name:          profile.Name,
		Location:      getStringOrEmpty(profile.Location),
		Bio:           s.cleanText(getStringOrEmpty(profile.Bio)),
		SkillsOffered: profile.SkillsOffered,
		SkillsWanted:  profile.SkillsWanted,
		Availability:  profile.Availability,
		SkillsCount:   len(profile.SkillsOffered),
		CreatedAt:     profile.CreatedAt.Unix(),
	}

	task, err := s.client.Index("profiles").AddDocuments([]meiliProfileDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed profile %s, task id: %d", profile.ID, task.TaskUID)
	return nil
}

func (s *searchIndexService) DeleteProfile(id string) error {
	_, err := s.client.Index("profiles").DeleteDocument(id)
	return err
}

func (s *searchIndexService) GenerateSearchToken() (string, error) {
	if s.signingKeyUID == "" || s.signingKey == "" {
		return "", fmt.Errorf("signing key not initialized")
	}

	// Only public profiles ever reach the index, so no per-user filter rules
	// are needed.
	searchRules := map[string]any{
		"profiles": map[string]any{},
	}

	token, err := s.client.GenerateTenantToken(s.signingKeyUID, searchRules, &meilisearch.TenantTokenOptions{
		APIKey:    s.signingKey,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

// cleanText strips any markup a client may have smuggled into free text
// before it reaches the index.
func (s *searchIndexService) cleanText(content string) string {
	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)
	return strings.Join(strings.Fields(cleanText), " ")
}

func getStringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}
