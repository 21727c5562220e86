package mail

import (
	"encoding/base64"
	"testing"
	"time"

	"google.golang.org/api/gmail/v1"
)

func TestHeaderVal(t *testing.T) {
	headers := []*gmail.MessagePartHeader{
		{Name: "Subject", Value: "Your application was sent"},
		{Name: "From", Value: "jobs-noreply@linkedin.com"},
	}

	if got := headerVal(headers, "Subject"); got != "Your application was sent" {
		t.Errorf("Subject = %q", got)
	}
	if got := headerVal(headers, "From"); got != "jobs-noreply@linkedin.com" {
		t.Errorf("From = %q", got)
	}
	if got := headerVal(headers, "subject"); got != "Your application was sent" {
		t.Errorf("lowercase lookup = %q, want match regardless of case", got)
	}
	if got := headerVal(headers, "Date"); got != "" {
		t.Errorf("missing header = %q, want empty", got)
	}
}

func TestParseDate(t *testing.T) {
	internalMillis := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC).UnixMilli()

	tests := []struct {
		name   string
		header string
		want   time.Time
	}{
		{
			name:   "RFC 5322 header",
			header: "Sun, 01 Jun 2025 09:00:00 +0000",
			want:   time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			name:   "malformed header falls back to internal date",
			header: "not a date",
			want:   time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name: "empty header falls back to internal date",
			want: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDate(tt.header, internalMillis)
			if !got.Equal(tt.want) {
				t.Errorf("parseDate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeBody(t *testing.T) {
	content := "Your application was sent to Acme Corp"

	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "URL-safe base64",
			data: base64.RawURLEncoding.EncodeToString([]byte(content)),
			want: content,
		},
		{
			name: "standard base64 fallback",
			data: base64.StdEncoding.EncodeToString([]byte(content + "+/")),
			want: content + "+/",
		},
		{
			name: "garbage yields empty",
			data: "!!not base64!!",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeBody(tt.data); got != tt.want {
				t.Errorf("decodeBody() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractBodies(t *testing.T) {
	plainData := base64.RawURLEncoding.EncodeToString([]byte("plain text body"))
	htmlData := base64.RawURLEncoding.EncodeToString([]byte("<p>html body</p>"))

	payload := &gmail.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmail.MessagePart{
			{
				MimeType: "text/plain",
				Body:     &gmail.MessagePartBody{Data: plainData},
			},
			{
				MimeType: "multipart/related",
				Parts: []*gmail.MessagePart{
					{
						MimeType: "text/html",
						Body:     &gmail.MessagePartBody{Data: htmlData},
					},
				},
			},
		},
	}

	plain, html := extractBodies(payload)
	if plain != "plain text body" {
		t.Errorf("plain = %q", plain)
	}
	if html != "<p>html body</p>" {
		t.Errorf("html = %q", html)
	}
}

func TestExtractBodiesKeepsFirstOfEachType(t *testing.T) {
	first := base64.RawURLEncoding.EncodeToString([]byte("first"))
	second := base64.RawURLEncoding.EncodeToString([]byte("second"))

	payload := &gmail.MessagePart{
		Parts: []*gmail.MessagePart{
			{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: first}},
			{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: second}},
		},
	}

	plain, _ := extractBodies(payload)
	if plain != "first" {
		t.Errorf("plain = %q, want first part", plain)
	}
}
