package service

import (
	"encoding/json"
	"html"
	"log"
	"strings"

	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
	"github.com/psgtech/campusfacility/internal/model"
)

const announcementIndex = "announcements"

// SearchService keeps the announcement search index in step with the record
// store. Indexing failures are logged, never surfaced: search lags rather
// than failing a write.
type SearchService interface {
	IndexAnnouncement(a *model.Announcement) error
	DeleteAnnouncement(id string) error
	// SearchAnnouncements returns matching announcement IDs in relevance
	// order.
	SearchAnnouncements(query string, limit int) ([]string, error)
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	filterableAttrs := []string{"category", "target_audience"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(announcementIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		log.Printf("Failed to update announcement filterable attributes: %v", err)
	}

	sortableAttrs := []string{"publish_date", "view_count"}
	if _, err := s.client.Index(announcementIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update announcement sortable attributes: %v", err)
	}
}

type meiliAnnouncementDoc struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	Category       string `json:"category"`
	TargetAudience string `json:"target_audience"`
	PublishDate    int64  `json:"publish_date"`
	ViewCount      int64  `json:"view_count"`
}

func (s *searchService) cleanContentForIndex(content string) string {
	content = strings.ReplaceAll(content, "</p>", " ")
	content = strings.ReplaceAll(content, "<br>", " ")
	content = strings.ReplaceAll(content, "</div>", " ")

	sanitized := s.sanitizer.Sanitize(content)
	cleanText := html.UnescapeString(sanitized)

	return strings.Join(strings.Fields(cleanText), " ")
}

func (s *searchService) IndexAnnouncement(a *model.Announcement) error {
	doc := meiliAnnouncementDoc{
		ID:             a.ID.String(),
		Title:          a.Title,
		Content:        s.cleanContentForIndex(a.Content),
		Category:       a.Category,
		TargetAudience: string(a.TargetAudience),
		PublishDate:    a.PublishDate.Unix(),
		ViewCount:      a.ViewCount,
	}

	primaryKey := "id"
	_, err := s.client.Index(announcementIndex).AddDocuments([]meiliAnnouncementDoc{doc}, &primaryKey)
	return err
}

func (s *searchService) DeleteAnnouncement(id string) error {
	_, err := s.client.Index(announcementIndex).DeleteDocument(id)
	return err
}

func (s *searchService) SearchAnnouncements(query string, limit int) ([]string, error) {
	raw, err := s.client.Index(announcementIndex).SearchRaw(query, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Hits []struct {
			ID string `json:"id"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(*raw, &resp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}
