// Package record loads the host records of a collection from the store.
package record

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/lasr/internal/db"
	"github.com/kailas-cloud/lasr/internal/domain"
	"github.com/kailas-cloud/lasr/internal/domain/value"
	"github.com/kailas-cloud/lasr/internal/logger"
)

// Record payload formats.
const (
	FormatString = "string" // plain keys read with GET
	FormatJSON   = "json"   // JSON documents read with JSON.GET
)

// DefaultKeyPrefix namespaces collection keys when no prefix is configured.
const DefaultKeyPrefix = "lasr:"

// fetchBatch bounds how many keys go into one pipeline.
const fetchBatch = 500

// store is the consumer interface for record loading (ISP).
type store interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	JSONGetMulti(ctx context.Context, keys []string) ([][]byte, error)
}

// Repo implements usecase/search.RecordSource.
type Repo struct {
	store     store
	keyPrefix string
	format    string
}

// New creates a record repository. An empty prefix falls back to
// DefaultKeyPrefix and an empty format to FormatString.
func New(s store, keyPrefix, format string) (*Repo, error) {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	switch format {
	case "":
		format = FormatString
	case FormatString, FormatJSON:
	default:
		return nil, fmt.Errorf("unknown record format %q", format)
	}
	return &Repo{store: s, keyPrefix: keyPrefix, format: format}, nil
}

// Load returns every record stored under the collection prefix, ordered by key.
// Keys removed between SCAN and the read are skipped, as are payloads that
// are not valid JSON.
func (r *Repo) Load(ctx context.Context, collection string) ([]value.Value, error) {
	if err := validateName(collection); err != nil {
		return nil, err
	}

	keys, err := r.store.Scan(ctx, r.pattern(collection))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w: %w", collection, domain.ErrStoreUnavailable, err)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("collection %q: %w", collection, domain.ErrNotFound)
	}
	sort.Strings(keys)

	log := logger.FromContext(ctx)
	records := make([]value.Value, 0, len(keys))
	for lo := 0; lo < len(keys); lo += fetchBatch {
		batch := keys[lo:min(lo+fetchBatch, len(keys))]
		payloads, err := r.fetch(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w: %w", collection, domain.ErrStoreUnavailable, err)
		}
		for i, raw := range payloads {
			if raw == nil {
				continue
			}
			v, err := value.ParseJSON(raw)
			if err != nil {
				log.Warn("skipping undecodable record",
					zap.String("key", batch[i]),
					zap.Error(err),
				)
				continue
			}
			records = append(records, v)
		}
	}
	return records, nil
}

func (r *Repo) fetch(ctx context.Context, keys []string) ([][]byte, error) {
	if r.format == FormatJSON {
		out, err := r.store.JSONGetMulti(ctx, keys)
		if errors.Is(err, db.ErrJSONNotSupported) {
			return nil, fmt.Errorf("record format json needs the JSON module: %w", err)
		}
		return out, err
	}
	return r.store.GetMulti(ctx, keys)
}

func (r *Repo) pattern(collection string) string {
	return fmt.Sprintf("%s%s:*", r.keyPrefix, collection)
}

func validateName(collection string) error {
	if collection == "" {
		return fmt.Errorf("empty collection name: %w", domain.ErrInvalidRequest)
	}
	if strings.ContainsAny(collection, "*?[]:\\") {
		return fmt.Errorf("collection name %q has reserved characters: %w", collection, domain.ErrInvalidRequest)
	}
	return nil
}
