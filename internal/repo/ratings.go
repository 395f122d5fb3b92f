package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/portfolio/internal/models"
	"github.com/Skotchmaster/portfolio/internal/transport"
)

// CreateRating fails with not found when the project does not exist.
func (r *GormRepo) CreateRating(ctx context.Context, rating *models.Rating) error {
	db, cancel := r.db(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Project{}).Where("id = ?", rating.ProjectID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(rating).Error
	})
	return fail(err, projectNotFound)
}

func (r *GormRepo) RatingSummary(ctx context.Context, projectID uint) (transport.RatingSummary, error) {
	db, cancel := r.db(ctx)
	defer cancel()

	var row struct {
		Count   int64
		Average float64
	}
	err := db.Model(&models.Rating{}).
		Select("COUNT(*) AS count, COALESCE(CAST(AVG(rating) AS FLOAT), 0) AS average").
		Where("project_id = ?", projectID).
		Scan(&row).Error
	if err != nil {
		return transport.RatingSummary{}, fail(err, projectNotFound)
	}
	return transport.RatingSummary{Count: row.Count, Average: transport.RoundRating(row.Average)}, nil
}
