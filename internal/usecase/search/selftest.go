package search

import (
	"context"
	"errors"

	"github.com/kailas-cloud/lasr/internal/domain/search/request"
	"github.com/kailas-cloud/lasr/internal/domain/value"
)

var errCanaryMissed = errors.New("search: canary record not ranked first")

var canaryRecords = []value.Value{
	value.Map(map[string]value.Value{"name": value.String("The Mage")}),
	value.Map(map[string]value.Value{"name": value.String("The Wizard")}),
}

// SelfTest runs a fixed search through the scoring pipeline and checks that
// the expected record wins.
func (s *Service) SelfTest(ctx context.Context) error {
	req := request.New("wizard", []string{"name"}, 1)
	scored, err := s.scoreAll(ctx, canaryRecords, &req)
	if err != nil {
		return err
	}
	results := rank(scored, req.Limit())
	if len(results) != 1 || results[0].Index() != 1 {
		return errCanaryMissed
	}
	return nil
}
