package health

import "context"

// DBPinger checks record store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EngineChecker runs a canary search through the scoring pipeline.
type EngineChecker interface {
	SelfTest(ctx context.Context) error
}
