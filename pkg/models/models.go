package models

import "strconv"

// Data source labels reported in stats payloads and health checks
const (
	SourcePostgres  = "postgres"
	SourceSynthetic = "synthetic"
)

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// HealthStatus is returned by the health endpoint
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Source    string `json:"source"`
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
