package shared

import "time"

// DatabaseConfig holds connection pool configuration for the Postgres store
type DatabaseConfig struct {
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time"`
	PingTimeout     time.Duration `json:"ping_timeout"`
}

// HistoryAPIConfig holds configuration for the upstream historical-events API
type HistoryAPIConfig struct {
	URL             string        `json:"url"`
	FetchTimeout    time.Duration `json:"fetch_timeout"`
	PolitenessDelay time.Duration `json:"politeness_delay"`
}

// ServiceConfiguration aggregates the per-concern configuration blocks
type ServiceConfiguration struct {
	Database   DatabaseConfig   `json:"database"`
	HistoryAPI HistoryAPIConfig `json:"history_api"`
}

// NewDefaultServiceConfiguration returns the default configuration for all services
func NewDefaultServiceConfiguration() *ServiceConfiguration {
	return &ServiceConfiguration{
		Database: DatabaseConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    10,
			ConnMaxLifetime: 30 * time.Minute,
			ConnMaxIdleTime: 5 * time.Minute,
			PingTimeout:     10 * time.Second,
		},
		HistoryAPI: HistoryAPIConfig{
			URL:             "https://today.zenquotes.io/api",
			FetchTimeout:    10 * time.Second,
			PolitenessDelay: 500 * time.Millisecond,
		},
	}
}
