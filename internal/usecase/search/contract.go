package search

import (
	"context"

	"github.com/kailas-cloud/lasr/internal/domain/value"
)

// RecordSource loads the records of a named collection. Records are owned by
// the source and only read here.
type RecordSource interface {
	Load(ctx context.Context, collection string) ([]value.Value, error)
}
