package redis

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/lasr/internal/db"
)

var _ db.Store = (*Store)(nil)

// readyPollInterval is how often WaitForReady retries Ping.
const readyPollInterval = 100 * time.Millisecond

// Config holds connection parameters for a Redis or Valkey deployment.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
	// Standalone skips cluster topology discovery. Leave it off for clusters:
	// collection loads then scan every node.
	Standalone bool
}

// Store reads host records over rueidis. It never writes. JSON reads need
// the JSON module on the server.
type Store struct {
	client rueidis.Client
}

// NewStore connects to the deployment described by cfg.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:       cfg.Addrs,
		Username:          cfg.Username,
		Password:          cfg.Password,
		SelectDB:          cfg.DB,
		DisableCache:      true,
		ForceSingleClient: cfg.Standalone,
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", strings.Join(cfg.Addrs, ","), err)
	}
	return &Store{client: client}, nil
}

// Ping checks that every known node answers. A collection is spread over all
// nodes of a cluster, so one unreachable shard means incomplete results.
func (s *Store) Ping(ctx context.Context) error {
	return s.eachNode(func(addr string, node rueidis.Client) error {
		if err := node.Do(ctx, node.B().Ping().Build()).Error(); err != nil {
			return &db.Error{Op: db.OpPing, Err: fmt.Errorf("node %s: %w", addr, err)}
		}
		return nil
	})
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady polls Ping until every node responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(readyPollInterval)
	defer ticker.Stop()

	var lastErr error
	for {
		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("timeout waiting for database: %w", lastErr)
			}
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if lastErr = s.Ping(ctx); lastErr == nil {
				return nil
			}
		}
	}
}

// eachNode calls fn for every node the client knows, in address order.
// A standalone client reports itself as its only node.
func (s *Store) eachNode(fn func(addr string, node rueidis.Client) error) error {
	nodes := s.client.Nodes()
	addrs := make([]string, 0, len(nodes))
	for addr := range nodes {
		addrs = append(addrs, addr)
	}
	slices.Sort(addrs)
	for _, addr := range addrs {
		if err := fn(addr, nodes[addr]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) b() rueidis.Builder {
	return s.client.B()
}

// isUnknownCommand reports a server that lacks the command, e.g. JSON.GET
// without the JSON module.
func isUnknownCommand(err error) bool {
	re, ok := rueidis.IsRedisErr(err)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(re.Error()), "unknown command")
}
