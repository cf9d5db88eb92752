package redis

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/lasr/internal/db"
)

// JSONGetMulti fetches many root JSON documents in a single DoMulti
// round-trip. Missing keys yield nil entries.
func (s *Store) JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make([]rueidis.Completed, len(keys))
	for i, key := range keys {
		cmds[i] = s.b().Arbitrary("JSON.GET").Keys(key).Build()
	}

	out := make([][]byte, len(keys))
	for i, res := range s.client.DoMulti(ctx, cmds...) {
		raw, err := res.ToString()
		if rueidis.IsRedisNil(err) {
			continue
		}
		if err != nil {
			return nil, jsonError(keys[i], err)
		}
		if raw != "" {
			out[i] = []byte(raw)
		}
	}
	return out, nil
}

func jsonError(key string, err error) error {
	if isUnknownCommand(err) {
		err = fmt.Errorf("%w: %w", db.ErrJSONNotSupported, err)
	}
	return &db.Error{Op: db.OpJSONGet, Err: fmt.Errorf("key %s: %w", key, err)}
}
