package lasr

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/lasr/internal/db"
	dbRedis "github.com/kailas-cloud/lasr/internal/db/redis"
	"github.com/kailas-cloud/lasr/internal/domain/search/result"
	"github.com/kailas-cloud/lasr/internal/repository/record"
	searchuc "github.com/kailas-cloud/lasr/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client searches records stored in Redis or Valkey.
type Client struct {
	store     db.Store
	searchSvc *searchuc.Service
}

// New creates a Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("lasr: database address required (use WithValkey or WithRedis)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("lasr: database not ready: %w", err)
	}

	c, err := wireClient(store, cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			Standalone: cfg.standalone,
		})
		if err != nil {
			return nil, fmt.Errorf("lasr: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("lasr: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig) (*Client, error) {
	repo, err := record.New(store, cfg.keyPrefix, cfg.recordFormat)
	if err != nil {
		return nil, fmt.Errorf("lasr: %w", err)
	}
	svc := searchuc.New(repo).WithParallelism(cfg.workers, cfg.parallelThreshold)
	return &Client{store: store, searchSvc: svc}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Collection returns a handle for searching one stored collection.
func (c *Client) Collection(name string) *Collection {
	return &Collection{name: name, svc: c.searchSvc}
}

// Collection searches the records stored for a single collection.
type Collection struct {
	name string
	svc  *searchuc.Service
}

// Name returns the collection name.
func (c *Collection) Name() string { return c.name }

// Search loads the collection and ranks its records against query. limit
// follows Options.Limit: 0 means DefaultLimit, negative means none.
// Result.Item holds the record decoded into plain Go values.
func (c *Collection) Search(ctx context.Context, query string, keys []string, limit int) ([]Result, error) {
	req := newRequest(query, keys, limit)
	results, err := c.svc.SearchCollection(ctx, c.name, &req)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", c.name, err)
	}
	return fromResults(results, func(r *result.Result) any {
		return r.Record().Any()
	}), nil
}
