package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/portfolio/internal/apperr"
	"github.com/Skotchmaster/portfolio/internal/cache"
	"github.com/Skotchmaster/portfolio/internal/es"
	"github.com/Skotchmaster/portfolio/internal/mykafka"
	"github.com/Skotchmaster/portfolio/internal/repo"
	"github.com/Skotchmaster/portfolio/internal/transport"
	"github.com/Skotchmaster/portfolio/internal/util"
	"github.com/Skotchmaster/portfolio/pkg/logging"
)

type ProjectIndex interface {
	Put(ctx context.Context, doc es.ProjectDocument) error
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, from, size int) (int64, []uint, error)
}

// ProjectService owns project writes and everything that has to follow a
// commit: cache invalidation, search indexing and events. Those follow-ups
// are logged on failure and never fail the request.
type ProjectService struct {
	Repo   *repo.GormRepo
	Cache  cache.ProjectCache
	Events mykafka.Publisher
	Index  ProjectIndex
}

// List serves the public project list, from the cache when possible. Rows
// are written back only if no invalidation happened since they were loaded.
func (s *ProjectService) List(ctx context.Context) ([]transport.ProjectSummary, error) {
	l := logging.FromContext(ctx)

	if s.Cache == nil {
		return s.Repo.ListProjects(ctx)
	}

	items, ok, err := s.Cache.GetProjects(ctx)
	if err != nil {
		l.Warn("project_cache_get_failed", "error", err)
	} else if ok {
		return items, nil
	}

	gen, genErr := s.Cache.Generation(ctx)
	if genErr != nil {
		l.Warn("project_cache_generation_failed", "error", genErr)
	}

	items, err = s.Repo.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		err := s.Cache.SetProjects(ctx, gen, items)
		switch {
		case errors.Is(err, cache.ErrStale):
			l.Debug("project_cache_set_skipped", "reason", "invalidated while loading")
		case err != nil:
			l.Warn("project_cache_set_failed", "error", err)
		}
	}
	return items, nil
}

func (s *ProjectService) Get(ctx context.Context, id uint) (*transport.ProjectDetail, error) {
	return s.Repo.GetProject(ctx, id)
}

func (s *ProjectService) Create(ctx context.Context, req transport.ProjectRequest) (uint, error) {
	if err := validateProject(&req); err != nil {
		return 0, err
	}

	p := req.Model()
	if err := s.Repo.CreateProject(ctx, &p, req.Technologies); err != nil {
		return 0, err
	}

	s.afterWrite(ctx, mykafka.ProjectCreated, p.ID, p.Title)
	return p.ID, nil
}

func (s *ProjectService) Update(ctx context.Context, id uint, req transport.ProjectRequest) error {
	if err := validateProject(&req); err != nil {
		return err
	}

	p := req.Model()
	if err := s.Repo.UpdateProject(ctx, id, &p, req.Technologies); err != nil {
		return err
	}

	s.afterWrite(ctx, mykafka.ProjectUpdated, id, p.Title)
	return nil
}

// Delete succeeds for ids that do not exist.
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	deleted, err := s.Repo.DeleteProject(ctx, id)
	if err != nil {
		return err
	}
	if deleted {
		s.afterWrite(ctx, mykafka.ProjectDeleted, id, "")
	}
	return nil
}

func (s *ProjectService) Search(ctx context.Context, q string, page, size int) (transport.SearchResponse, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return transport.SearchResponse{}, apperr.Validation("q is required")
	}
	page, offset, limit := util.Calculate(page, size)

	total, items, err := s.search(ctx, q, offset, limit)
	if err != nil {
		return transport.SearchResponse{}, err
	}

	return transport.SearchResponse{
		Data: items,
		Meta: transport.SearchMeta{
			Page:       page,
			Size:       limit,
			Total:      total,
			TotalPages: util.TotalPages(total, limit),
			HasPrev:    page > 1,
			HasNext:    int64(offset+limit) < total,
		},
	}, nil
}

func (s *ProjectService) search(ctx context.Context, q string, offset, limit int) (int64, []transport.ProjectSummary, error) {
	if s.Index != nil {
		total, ids, err := s.Index.Search(ctx, q, offset, limit)
		if err == nil {
			items, err := s.Repo.ProjectsByIDs(ctx, ids)
			return total, items, err
		}
		logging.FromContext(ctx).Warn("project_search_index_failed", "reason", "falling back to sql", "error", err)
	}
	return s.Repo.SearchProjects(ctx, q, offset, limit)
}

// InvalidateList drops the cached project list. Rating writes change the
// aggregates it carries.
func (s *ProjectService) InvalidateList(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		logging.FromContext(ctx).Warn("project_cache_invalidate_failed", "error", err)
	}
}

func (s *ProjectService) afterWrite(ctx context.Context, eventType string, id uint, title string) {
	l := logging.FromContext(ctx)
	s.InvalidateList(ctx)

	if s.Index != nil {
		if err := s.reindex(ctx, eventType, id); err != nil {
			l.Warn("project_index_failed", "project_id", id, "error", err)
		}
	}

	publish(ctx, s.Events, strconv.FormatUint(uint64(id), 10), mykafka.ProjectEvent{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		ProjectID:  id,
		Title:      title,
	})
}

func (s *ProjectService) reindex(ctx context.Context, eventType string, id uint) error {
	if eventType == mykafka.ProjectDeleted {
		return s.Index.Delete(ctx, id)
	}

	p, err := s.Repo.GetProject(ctx, id)
	if err != nil {
		return err
	}
	doc := es.ProjectDocument{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Technologies: make([]string, 0, len(p.Technologies)),
	}
	if p.FullDescription != nil {
		doc.FullDescription = *p.FullDescription
	}
	for _, t := range p.Technologies {
		doc.Technologies = append(doc.Technologies, t.Name)
	}
	return s.Index.Put(ctx, doc)
}

func validateProject(req *transport.ProjectRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	return requireFields(
		field{name: "title", value: req.Title},
		field{name: "description", value: req.Description},
	)
}

func publish(ctx context.Context, p mykafka.Publisher, key string, event any) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(ctx, key, event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "key", key, "error", err)
	}
}
