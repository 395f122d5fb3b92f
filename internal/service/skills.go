package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/portfolio/internal/models"
	"github.com/Skotchmaster/portfolio/internal/mykafka"
	"github.com/Skotchmaster/portfolio/internal/repo"
	"github.com/Skotchmaster/portfolio/internal/transport"
)

type SkillService struct {
	Repo   *repo.GormRepo
	Events mykafka.Publisher
}

func (s *SkillService) List(ctx context.Context) ([]transport.SkillResponse, error) {
	items, err := s.Repo.ListSkills(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.SkillResponse, len(items))
	for i, sk := range items {
		out[i] = transport.SkillResponse{Name: sk.Name, Category: sk.Category}
	}
	return out, nil
}

func (s *SkillService) Create(ctx context.Context, req transport.SkillRequest) (*models.Skill, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := requireFields(field{name: "name", value: req.Name}); err != nil {
		return nil, err
	}

	sk := models.Skill{Name: req.Name, Category: strings.TrimSpace(req.Category)}
	if err := s.Repo.CreateSkill(ctx, &sk); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, strconv.FormatUint(uint64(sk.ID), 10), mykafka.SkillEvent{
		Type:       mykafka.SkillCreated,
		OccurredAt: time.Now().UTC(),
		SkillID:    sk.ID,
		Name:       sk.Name,
	})
	return &sk, nil
}

func (s *SkillService) ListAbout(ctx context.Context) ([]transport.AboutSkill, error) {
	return s.Repo.ListAboutSkills(ctx)
}
