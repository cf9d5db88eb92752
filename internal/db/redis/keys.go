package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/lasr/internal/db"
)

// scanCount is the SCAN COUNT hint per page.
const scanCount = 500

// Scan lists keys matching pattern on every node. Cluster nodes each own a
// slice of the keyspace, and replicas repeat their primary's keys, so the
// result is the de-duplicated union in node order.
func (s *Store) Scan(ctx context.Context, pattern string) ([]string, error) {
	seen := make(map[string]struct{})
	var keys []string

	err := s.eachNode(func(addr string, node rueidis.Client) error {
		nodeKeys, err := scanNode(ctx, node, pattern)
		if err != nil {
			return &db.Error{Op: db.OpScan, Err: fmt.Errorf("node %s: %w", addr, err)}
		}
		for _, k := range nodeKeys {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// scanNode walks the SCAN cursor of a single node to completion.
func scanNode(ctx context.Context, node rueidis.Client, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64
	for {
		cmd := node.B().Scan().Cursor(cursor).Match(pattern).Count(scanCount).Build()
		page, err := node.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, err
		}
		keys = append(keys, page.Elements...)
		if cursor = page.Cursor; cursor == 0 {
			return keys, nil
		}
	}
}
