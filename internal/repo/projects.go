package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/portfolio/internal/apperr"
	"github.com/Skotchmaster/portfolio/internal/models"
	"github.com/Skotchmaster/portfolio/internal/transport"
)

const (
	projectNotFound = "project not found"

	ratingAggregate = "LEFT JOIN (SELECT project_id, COUNT(*) AS rating_count, CAST(AVG(rating) AS FLOAT) AS average_rating " +
		"FROM ratings GROUP BY project_id) r ON r.project_id = projects.id"
	projectColumns = "projects.*, COALESCE(r.rating_count, 0) AS rating_count, COALESCE(r.average_rating, 0) AS average_rating"
)

type projectRow struct {
	models.Project
	RatingCount   int64
	AverageRating float64
}

type technologyRow struct {
	ProjectID uint
	SkillID   uint
	Name      string
}

func (r *GormRepo) ListProjects(ctx context.Context) ([]transport.ProjectSummary, error) {
	db, cancel := r.db(ctx)
	defer cancel()

	rows, err := selectProjects(db, func(q *gorm.DB) *gorm.DB { return q.Order("projects.id ASC") })
	if err != nil {
		return nil, fail(err, projectNotFound)
	}
	out, err := summaries(db, rows)
	if err != nil {
		return nil, fail(err, projectNotFound)
	}
	return out, nil
}

// ProjectsByIDs returns summaries in the order of ids, skipping unknown ids.
func (r *GormRepo) ProjectsByIDs(ctx context.Context, ids []uint) ([]transport.ProjectSummary, error) {
	if len(ids) == 0 {
		return []transport.ProjectSummary{}, nil
	}
	db, cancel := r.db(ctx)
	defer cancel()

	rows, err := selectProjects(db, func(q *gorm.DB) *gorm.DB { return q.Where("projects.id IN ?", ids) })
	if err != nil {
		return nil, fail(err, projectNotFound)
	}
	found, err := summaries(db, rows)
	if err != nil {
		return nil, fail(err, projectNotFound)
	}

	byID := make(map[uint]transport.ProjectSummary, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	out := make([]transport.ProjectSummary, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *GormRepo) SearchProjects(ctx context.Context, q string, offset, limit int) (int64, []transport.ProjectSummary, error) {
	db, cancel := r.db(ctx)
	defer cancel()

	pattern := "%" + escapeLike(strings.ToLower(q)) + "%"
	match := func(tx *gorm.DB) *gorm.DB {
		return tx.Where(
			`LOWER(projects.title) LIKE ? ESCAPE '\' OR LOWER(projects.description) LIKE ? ESCAPE '\' OR LOWER(COALESCE(projects.full_description, '')) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := match(db.Model(&models.Project{})).Count(&total).Error; err != nil {
		return 0, nil, fail(err, projectNotFound)
	}
	if total == 0 {
		return 0, []transport.ProjectSummary{}, nil
	}

	rows, err := selectProjects(db, func(tx *gorm.DB) *gorm.DB {
		return match(tx).Order("projects.id ASC").Offset(offset).Limit(limit)
	})
	if err != nil {
		return 0, nil, fail(err, projectNotFound)
	}
	out, err := summaries(db, rows)
	if err != nil {
		return 0, nil, fail(err, projectNotFound)
	}
	return total, out, nil
}

func (r *GormRepo) GetProject(ctx context.Context, id uint) (*transport.ProjectDetail, error) {
	db, cancel := r.db(ctx)
	defer cancel()

	rows, err := selectProjects(db, func(q *gorm.DB) *gorm.DB { return q.Where("projects.id = ?", id) })
	if err != nil {
		return nil, fail(err, projectNotFound)
	}
	if len(rows) == 0 {
		return nil, apperr.NotFound(projectNotFound)
	}

	techs, err := technologies(db, []uint{id})
	if err != nil {
		return nil, fail(err, projectNotFound)
	}

	refs := make([]transport.TechnologyRef, 0, len(techs[id]))
	for _, t := range techs[id] {
		refs = append(refs, transport.TechnologyRef{ID: t.SkillID, Name: t.Name})
	}

	row := rows[0]
	return &transport.ProjectDetail{
		Project:       row.Project,
		Technologies:  refs,
		RatingCount:   row.RatingCount,
		AverageRating: transport.RoundRating(row.AverageRating),
	}, nil
}

// CreateProject inserts the project and its technology links in one
// transaction and sets p.ID.
func (r *GormRepo) CreateProject(ctx context.Context, p *models.Project, skillIDs []uint) error {
	db, cancel := r.db(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return replaceTechnologies(tx, p.ID, skillIDs)
	})
	return fail(err, projectNotFound)
}

// UpdateProject overwrites every field of the project and replaces its
// technology set. Readers see either the old set or the new one.
func (r *GormRepo) UpdateProject(ctx context.Context, id uint, p *models.Project, skillIDs []uint) error {
	db, cancel := r.db(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Project{}).Where("id = ?", id).Updates(map[string]any{
			"title":            p.Title,
			"description":      p.Description,
			"full_description": p.FullDescription,
			"academic_track":   p.AcademicTrack,
			"students":         p.Students,
			"mentor":           p.Mentor,
			"youtube_url":      p.YoutubeURL,
			"image":            p.Image,
			"live":             p.Live,
			"github":           p.Github,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return replaceTechnologies(tx, id, skillIDs)
	})
	if err == nil {
		p.ID = id
	}
	return fail(err, projectNotFound)
}

// DeleteProject removes the project with its ratings and links. It reports
// whether a project row was deleted.
func (r *GormRepo) DeleteProject(ctx context.Context, id uint) (bool, error) {
	db, cancel := r.db(ctx)
	defer cancel()

	var deleted bool
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectTechnology{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Project{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fail(err, projectNotFound)
	}
	return deleted, nil
}

func selectProjects(db *gorm.DB, scope func(*gorm.DB) *gorm.DB) ([]projectRow, error) {
	var rows []projectRow
	q := db.Table("projects").Select(projectColumns).Joins(ratingAggregate)
	if err := scope(q).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func summaries(db *gorm.DB, rows []projectRow) ([]transport.ProjectSummary, error) {
	out := make([]transport.ProjectSummary, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]uint, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	techs, err := technologies(db, ids)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		names := make([]string, 0, len(techs[row.ID]))
		seen := make(map[string]struct{}, len(techs[row.ID]))
		for _, t := range techs[row.ID] {
			if _, dup := seen[t.Name]; dup {
				continue
			}
			seen[t.Name] = struct{}{}
			names = append(names, t.Name)
		}
		out = append(out, transport.ProjectSummary{
			Project:       row.Project,
			Technologies:  names,
			RatingCount:   row.RatingCount,
			AverageRating: transport.RoundRating(row.AverageRating),
		})
	}
	return out, nil
}

func technologies(db *gorm.DB, projectIDs []uint) (map[uint][]technologyRow, error) {
	var rows []technologyRow
	err := db.Table("technologies").
		Select("technologies.project_id, technologies.skill_id, skills.name").
		Joins("JOIN skills ON skills.id = technologies.skill_id").
		Where("technologies.project_id IN ?", projectIDs).
		Order("technologies.project_id, technologies.position, technologies.skill_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint][]technologyRow, len(projectIDs))
	for _, row := range rows {
		out[row.ProjectID] = append(out[row.ProjectID], row)
	}
	return out, nil
}

func replaceTechnologies(tx *gorm.DB, projectID uint, skillIDs []uint) error {
	if err := tx.Where("project_id = ?", projectID).Delete(&models.ProjectTechnology{}).Error; err != nil {
		return err
	}

	ids := UniqueIDs(skillIDs)
	if len(ids) == 0 {
		return nil
	}

	var known int64
	if err := tx.Model(&models.Skill{}).Where("id IN ?", ids).Count(&known).Error; err != nil {
		return err
	}
	if known != int64(len(ids)) {
		return apperr.Validation("technologies reference unknown skills")
	}

	links := make([]models.ProjectTechnology, len(ids))
	for i, sid := range ids {
		links[i] = models.ProjectTechnology{ProjectID: projectID, SkillID: sid, Position: i}
	}
	return tx.Create(&links).Error
}

// UniqueIDs drops zero and repeated ids, keeping first occurrence order.
func UniqueIDs(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
