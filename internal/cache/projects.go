package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Skotchmaster/portfolio/internal/transport"
)

const (
	projectListKey = "portfolio:projects:list"
	projectGenKey  = "portfolio:projects:gen"
)

// ErrStale reports that the list was invalidated after its generation was
// read, so the rows loaded under that generation were not stored.
var ErrStale = errors.New("project list changed while loading")

// ProjectCache stores the public project list. Callers read Generation
// before loading rows and hand it back to SetProjects.
type ProjectCache interface {
	GetProjects(ctx context.Context) ([]transport.ProjectSummary, bool, error)
	Generation(ctx context.Context) (int64, error)
	SetProjects(ctx context.Context, gen int64, items []transport.ProjectSummary) error
	Invalidate(ctx context.Context) error
}

// ProjectList caches the public project list as a single JSON value next to
// a generation counter that every invalidation bumps.
type ProjectList struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProjectList(client *redis.Client, ttl time.Duration) *ProjectList {
	return &ProjectList{client: client, ttl: ttl}
}

// NewClient parses a redis:// URL and checks the server is reachable.
func NewClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (c *ProjectList) GetProjects(ctx context.Context) ([]transport.ProjectSummary, bool, error) {
	data, err := c.client.Get(ctx, projectListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get project list: %w", err)
	}

	var items []transport.ProjectSummary
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, fmt.Errorf("decode project list: %w", err)
	}
	return items, true, nil
}

func (c *ProjectList) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, projectGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get project list generation: %w", err)
	}
	return gen, nil
}

// SetProjects stores items only while the generation still equals gen.
func (c *ProjectList) SetProjects(ctx context.Context, gen int64, items []transport.ProjectSummary) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode project list: %w", err)
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, projectGenKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if cur != gen {
			return ErrStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, projectListKey, data, c.ttl)
			return nil
		})
		return err
	}, projectGenKey)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStale), errors.Is(err, redis.TxFailedErr):
		return ErrStale
	default:
		return fmt.Errorf("set project list: %w", err)
	}
}

func (c *ProjectList) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, projectGenKey)
		pipe.Del(ctx, projectListKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate project list: %w", err)
	}
	return nil
}

type Nop struct{}

func (Nop) GetProjects(context.Context) ([]transport.ProjectSummary, bool, error) {
	return nil, false, nil
}
func (Nop) Generation(context.Context) (int64, error)                            { return 0, nil }
func (Nop) SetProjects(context.Context, int64, []transport.ProjectSummary) error { return nil }
func (Nop) Invalidate(context.Context) error                                     { return nil }
