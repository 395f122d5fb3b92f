package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

type ProjectDocument struct {
	ID              uint     `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	FullDescription string   `json:"full_description,omitempty"`
	Technologies    []string `json:"technologies"`
}

type ProjectIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func NewProjectIndex(client *elasticsearch.Client, index string) *ProjectIndex {
	return &ProjectIndex{ES: client, Index: index}
}

func (p *ProjectIndex) Put(ctx context.Context, doc ProjectDocument) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("encode project document: %w", err)
	}

	res, err := p.ES.Index(p.Index, &buf,
		p.ES.Index.WithContext(ctx),
		p.ES.Index.WithDocumentID(strconv.FormatUint(uint64(doc.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("index project %d: %w", doc.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return responseError("index project", res)
	}
	return nil
}

// Delete treats a missing document as already deleted.
func (p *ProjectIndex) Delete(ctx context.Context, id uint) error {
	res, err := p.ES.Delete(p.Index, strconv.FormatUint(uint64(id), 10),
		p.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("delete project", res)
	}
	return nil
}

// Search returns the total hit count and the ids of the requested page in
// relevance order.
func (p *ProjectIndex) Search(ctx context.Context, query string, from, size int) (int64, []uint, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^2", "description", "full_description", "technologies"},
				"fuzziness": "AUTO",
			},
		},
		"_source": []string{"id"},
		"from":    from,
		"size":    size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("encode search: %w", err)
	}

	res, err := p.ES.Search(
		p.ES.Search.WithContext(ctx),
		p.ES.Search.WithIndex(p.Index),
		p.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search projects: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, responseError("search projects", res)
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID uint `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decode search: %w", err)
	}

	ids := make([]uint, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	return r.Hits.Total.Value, ids, nil
}

func responseError(op string, res *esapi.Response) error {
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("%s: %s: %s", op, res.Status(), bytes.TrimSpace(body))
}
