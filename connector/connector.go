package connector

import (
	"context"

	"github.com/Konsultn-Engineering/sqlbridge/database"
	"github.com/Konsultn-Engineering/sqlbridge/dialect"
)

// Connection is an open, pool-backed handle to one database.
type Connection interface {
	Database() database.Database
	Dialect() dialect.Dialect
	Health(ctx context.Context) error
	Stats() ConnectionStats
	Close() error
}

type Connector interface {
	Connect(ctx context.Context) (Connection, error)
	ConnectWithRetry(ctx context.Context) (Connection, error)
	Close() error
}
