package models

import "time"

// EmailMessage is a fetched mail message in the shape the pipeline
// consumes: decoded headers, the provider snippet and the first
// text/plain and text/html body parts found.
type EmailMessage struct {
	ID       string    `json:"id"`
	ThreadID string    `json:"thread_id,omitempty"`
	Subject  string    `json:"subject"`
	From     string    `json:"from"`
	Date     time.Time `json:"date"`
	Snippet  string    `json:"snippet"`
	Body     string    `json:"body"`
	BodyHTML string    `json:"body_html,omitempty"`
}
