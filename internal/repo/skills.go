package repo

import (
	"context"

	"github.com/Skotchmaster/portfolio/internal/models"
	"github.com/Skotchmaster/portfolio/internal/transport"
)

const skillNotFound = "skill not found"

func (r *GormRepo) ListSkills(ctx context.Context) ([]models.Skill, error) {
	db, cancel := r.db(ctx)
	defer cancel()

	items := make([]models.Skill, 0)
	if err := db.Order("id ASC").Find(&items).Error; err != nil {
		return nil, fail(err, skillNotFound)
	}
	return items, nil
}

func (r *GormRepo) CreateSkill(ctx context.Context, s *models.Skill) error {
	db, cancel := r.db(ctx)
	defer cancel()

	return fail(db.Create(s).Error, skillNotFound)
}

func (r *GormRepo) ListAboutSkills(ctx context.Context) ([]transport.AboutSkill, error) {
	db, cancel := r.db(ctx)
	defer cancel()

	items := make([]transport.AboutSkill, 0)
	err := db.Table("about_skills").
		Select("about_skills.id, about_skills.type, about_skills.skill_id, skills.name").
		Joins("JOIN skills ON skills.id = about_skills.skill_id").
		Order("about_skills.id ASC").
		Scan(&items).Error
	if err != nil {
		return nil, fail(err, skillNotFound)
	}
	return items, nil
}
