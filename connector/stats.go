package connector

import "database/sql"

// ConnectionStats represents database connection pool statistics.
type ConnectionStats struct {
	MaxOpen         int `json:"max_open"`
	OpenConnections int `json:"open_connections"`
	InUse           int `json:"in_use"`
	Idle            int `json:"idle"`
}

func statsFromDB(s sql.DBStats) ConnectionStats {
	return ConnectionStats{
		MaxOpen:         s.MaxOpenConnections,
		OpenConnections: s.OpenConnections,
		InUse:           s.InUse,
		Idle:            s.Idle,
	}
}
