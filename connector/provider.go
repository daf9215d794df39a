package connector

import (
	"context"

	"github.com/Konsultn-Engineering/sqlbridge/dialect"
)

// Provider opens connections for one backend. Providers register themselves
// from an init function.
type Provider interface {
	Connect(ctx context.Context, config Config) (Connection, error)
	Dialect() dialect.Dialect
}
