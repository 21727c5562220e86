package models

// ExtractionRequest carries the email fields handed to the extraction oracle
type ExtractionRequest struct {
	Subject string `json:"subject"`
	Snippet string `json:"snippet"`
	Body    string `json:"body"`
}

// SyncRequest is the request payload for triggering a mailbox sync
type SyncRequest struct {
	Token        string `json:"token" validate:"required"`
	UserID       string `json:"user_id,omitempty"`
	LookbackDays int    `json:"lookback_days,omitempty" validate:"omitempty,min=1,max=365"`
	ForceRefresh bool   `json:"force_refresh,omitempty"`
}
