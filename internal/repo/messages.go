package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/portfolio/internal/models"
)

const messageNotFound = "message not found"

func (r *GormRepo) CreateMessage(ctx context.Context, m *models.Message) error {
	db, cancel := r.db(ctx)
	defer cancel()

	if m.SentAt.IsZero() {
		m.SentAt = db.NowFunc()
	}
	return fail(db.Create(m).Error, messageNotFound)
}

// ListMessages returns every message, newest first.
func (r *GormRepo) ListMessages(ctx context.Context) ([]models.Message, error) {
	db, cancel := r.db(ctx)
	defer cancel()

	items := make([]models.Message, 0)
	if err := db.Order("sent_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return nil, fail(err, messageNotFound)
	}
	return items, nil
}

func (r *GormRepo) DeleteMessages(ctx context.Context) (int64, error) {
	db, cancel := r.db(ctx)
	defer cancel()

	res := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Message{})
	if res.Error != nil {
		return 0, fail(res.Error, messageNotFound)
	}
	return res.RowsAffected, nil
}
