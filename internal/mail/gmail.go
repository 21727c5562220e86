package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	nmail "net/mail"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"jobtrail/internal/config"
	"jobtrail/internal/logging"
	"jobtrail/pkg/models"
)

// GmailProvider fetches messages through the Gmail REST API using a
// caller-supplied OAuth access token.
type GmailProvider struct {
	config *config.Config
	logger logging.Logger
}

// NewGmailProvider creates a new Gmail-backed mail provider
func NewGmailProvider(cfg *config.Config) *GmailProvider {
	return &GmailProvider{
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// service builds a Gmail service bound to the access token for this call.
// Tokens arrive per sync request, so the service cannot be cached on the
// provider.
func (g *GmailProvider) service(ctx context.Context, token string) (*gmail.Service, error) {
	if token == "" {
		token = g.config.Gmail.AccessToken
	}
	if token == "" {
		return nil, fmt.Errorf("no Gmail access token configured")
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	srv, err := gmail.NewService(ctx, option.WithTokenSource(src))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return srv, nil
}

// Session binds the provider to a single access token for the duration
// of one sync run.
type Session struct {
	provider *GmailProvider
	token    string
}

// NewSession creates a token-bound session implementing Provider
func (g *GmailProvider) NewSession(token string) *Session {
	return &Session{provider: g, token: token}
}

// Search lists message ids matching the query, following pagination
// until max results are collected.
func (s *Session) Search(ctx context.Context, query string, max int64) ([]string, error) {
	srv, err := s.provider.service(ctx, s.token)
	if err != nil {
		return nil, err
	}

	userID := s.provider.config.Gmail.UserID
	var ids []string
	pageToken := ""

	for {
		call := srv.Users.Messages.List(userID).Q(query).MaxResults(max).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("gmail search failed: %w", err)
		}

		for _, m := range resp.Messages {
			ids = append(ids, m.Id)
			if int64(len(ids)) >= max {
				return ids, nil
			}
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return ids, nil
}

// Fetch retrieves a full message and flattens it into an EmailMessage
func (s *Session) Fetch(ctx context.Context, id string) (*models.EmailMessage, error) {
	srv, err := s.provider.service(ctx, s.token)
	if err != nil {
		return nil, err
	}

	userID := s.provider.config.Gmail.UserID
	msg, err := srv.Users.Messages.Get(userID, id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("gmail fetch failed for message %s: %w", id, err)
	}

	email := &models.EmailMessage{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Snippet:  msg.Snippet,
	}

	if msg.Payload != nil {
		email.Subject = headerVal(msg.Payload.Headers, "Subject")
		email.From = headerVal(msg.Payload.Headers, "From")
		email.Date = parseDate(headerVal(msg.Payload.Headers, "Date"), msg.InternalDate)
		email.Body, email.BodyHTML = extractBodies(msg.Payload)
	} else {
		email.Date = time.UnixMilli(msg.InternalDate).UTC()
	}

	return email, nil
}

// Name returns the provider name
func (s *Session) Name() string {
	return "gmail"
}

// headerVal finds a header by name, case-insensitively per RFC 5322
func headerVal(headers []*gmail.MessagePartHeader, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// parseDate parses the Date header, falling back to Gmail's internal
// timestamp when the header is missing or malformed.
func parseDate(header string, internalDate int64) time.Time {
	if header != "" {
		if t, err := nmail.ParseDate(header); err == nil {
			return t.UTC()
		}
	}
	return time.UnixMilli(internalDate).UTC()
}

// extractBodies walks the MIME tree collecting the first text/plain and
// text/html parts.
func extractBodies(payload *gmail.MessagePart) (plain, html string) {
	var walk func(part *gmail.MessagePart)
	walk = func(part *gmail.MessagePart) {
		if part == nil {
			return
		}
		if part.Body != nil && part.Body.Data != "" {
			data := decodeBody(part.Body.Data)
			switch part.MimeType {
			case "text/plain":
				if plain == "" {
					plain = data
				}
			case "text/html":
				if html == "" {
					html = data
				}
			}
		}
		for _, child := range part.Parts {
			walk(child)
		}
	}
	walk(payload)
	return plain, html
}

// decodeBody decodes a Gmail body payload. The API documents URL-safe
// base64 but some senders produce standard encoding.
func decodeBody(data string) string {
	if decoded, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	if decoded, err := base64.StdEncoding.DecodeString(data); err == nil {
		return string(decoded)
	}
	return ""
}
