package service

import (
	"context"
	"strconv"
	"time"

	"github.com/Skotchmaster/portfolio/internal/apperr"
	"github.com/Skotchmaster/portfolio/internal/models"
	"github.com/Skotchmaster/portfolio/internal/mykafka"
	"github.com/Skotchmaster/portfolio/internal/repo"
	"github.com/Skotchmaster/portfolio/internal/transport"
)

const (
	MinRating = 1
	MaxRating = 5
)

type RatingService struct {
	Repo     *repo.GormRepo
	Events   mykafka.Publisher
	Projects *ProjectService
}

func (s *RatingService) Submit(ctx context.Context, req transport.RatingRequest) (uint, error) {
	if req.ProjectID == nil || *req.ProjectID == 0 {
		return 0, apperr.Validation("missing required fields: project_id")
	}
	if req.Rating == nil {
		return 0, apperr.Validation("missing required fields: rating")
	}
	if *req.Rating < MinRating || *req.Rating > MaxRating {
		return 0, apperr.Validation("rating must be an integer from 1 to 5")
	}

	r := models.Rating{ProjectID: *req.ProjectID, Rating: *req.Rating}
	if err := s.Repo.CreateRating(ctx, &r); err != nil {
		return 0, err
	}

	if s.Projects != nil {
		s.Projects.InvalidateList(ctx)
	}
	publish(ctx, s.Events, strconv.FormatUint(uint64(r.ProjectID), 10), mykafka.RatingEvent{
		Type:       mykafka.RatingSubmitted,
		OccurredAt: time.Now().UTC(),
		RatingID:   r.ID,
		ProjectID:  r.ProjectID,
		Rating:     r.Rating,
	})
	return r.ID, nil
}

func (s *RatingService) Summary(ctx context.Context, projectID uint) (transport.RatingSummary, error) {
	return s.Repo.RatingSummary(ctx, projectID)
}
