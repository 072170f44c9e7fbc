// Package search keeps the Elasticsearch projection of job postings.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"recruitment-workers/internal/models"
	"recruitment-workers/internal/repository"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const maxSearchSize = 100

// JobIndex writes and queries job documents in one index.
type JobIndex struct {
	client *elasticsearch.Client
	index  string
}

var _ repository.JobIndex = (*JobIndex)(nil)

func NewJobIndex(client *elasticsearch.Client, index string) *JobIndex {
	return &JobIndex{client: client, index: index}
}

// Index creates or replaces the document for a job.
func (x *JobIndex) Index(ctx context.Context, doc models.JobDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode job document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      x.index,
		DocumentID: doc.ID,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, x.client)
	if err != nil {
		return fmt.Errorf("index job %s: %w", doc.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index job %s: %s", doc.ID, res.String())
	}
	return nil
}

// MarkClosed flips the document status. A job that was never indexed is not an error.
func (x *JobIndex) MarkClosed(ctx context.Context, jobID string) error {
	body := fmt.Sprintf(`{"doc":{"status":%q}}`, models.JobClosed)

	req := esapi.UpdateRequest{
		Index:      x.index,
		DocumentID: jobID,
		Body:       strings.NewReader(body),
	}
	res, err := req.Do(ctx, x.client)
	if err != nil {
		return fmt.Errorf("close job %s: %w", jobID, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	if res.IsError() {
		return fmt.Errorf("close job %s: %s", jobID, res.String())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source models.JobDocument `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchOpen runs a full-text query restricted to open jobs. An empty query lists the newest.
func (x *JobIndex) SearchOpen(ctx context.Context, query string, limit int) (*models.JobSearchResult, error) {
	if limit <= 0 || limit > maxSearchSize {
		limit = maxSearchSize
	}

	body, err := json.Marshal(buildOpenJobsQuery(query))
	if err != nil {
		return nil, fmt.Errorf("encode search query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{x.index},
		Body:  bytes.NewReader(body),
		Size:  &limit,
	}
	res, err := req.Do(ctx, x.client)
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		// index not created yet
		return &models.JobSearchResult{Jobs: []models.JobDocument{}}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("search jobs: %s", res.String())
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}
	var parsed searchResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := &models.JobSearchResult{
		Jobs:  make([]models.JobDocument, 0, len(parsed.Hits.Hits)),
		Total: parsed.Hits.Total.Value,
	}
	for _, hit := range parsed.Hits.Hits {
		out.Jobs = append(out.Jobs, hit.Source)
	}
	return out, nil
}

func buildOpenJobsQuery(query string) map[string]interface{} {
	filter := []interface{}{
		map[string]interface{}{"term": map[string]interface{}{"status": string(models.JobOpen)}},
	}

	boolQuery := map[string]interface{}{"filter": filter}
	body := map[string]interface{}{}

	if q := strings.TrimSpace(query); q != "" {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  q,
					"fields": []string{"title^3", "description", "location^2"},
					"type":   "best_fields",
				},
			},
		}
	} else {
		body["sort"] = []interface{}{
			map[string]interface{}{"createdAt": map[string]interface{}{"order": "desc"}},
		}
	}

	body["query"] = map[string]interface{}{"bool": boolQuery}
	return body
}
