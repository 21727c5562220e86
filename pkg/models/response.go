package models

import "time"

// SyncResponse is the response from a completed sync run
type SyncResponse struct {
	Success        bool              `json:"success"`
	Applications   []*ApplicationRec `json:"applications"`
	Messages       int               `json:"messages"`
	Processed      int               `json:"processed"`
	Failed         int               `json:"failed"`
	ProcessingTime time.Duration     `json:"processing_time"`
	RequestID      string            `json:"request_id"`
}

// SyncStatusResponse reports whether a sync is currently running and
// summarizes the last completed run.
type SyncStatusResponse struct {
	Syncing     bool       `json:"syncing"`
	Progress    string     `json:"progress,omitempty"`
	Percent     float64    `json:"percent"`
	LastRunAt   *time.Time `json:"last_run_at,omitempty"`
	LastCount   int        `json:"last_count,omitempty"`
	LastFailed  int        `json:"last_failed,omitempty"`
	LastPartial bool       `json:"last_partial,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}
