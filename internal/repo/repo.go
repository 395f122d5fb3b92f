package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/portfolio/internal/apperr"
)

const DefaultTimeout = 5 * time.Second

// GormRepo is the storage boundary. Every call runs under its own deadline and
// every error leaving it is an *apperr.Error.
type GormRepo struct {
	DB      *gorm.DB
	Timeout time.Duration
}

func New(db *gorm.DB, timeout time.Duration) *GormRepo {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GormRepo{DB: db, Timeout: timeout}
}

func (r *GormRepo) db(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return r.DB.WithContext(ctx), cancel
}

func fail(err error, notFound string) error {
	return apperr.FromStorage(err, notFound)
}
