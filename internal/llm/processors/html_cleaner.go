package processors

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// EmailCleaner converts HTML email bodies into plain text suitable for
// extraction prompts. Notification emails carry heavy markup (tracking
// pixels, hidden preheaders, footers) that only wastes oracle tokens.
type EmailCleaner struct {
	// Tags to remove completely
	removeTags []string
}

// NewEmailCleaner creates a new email cleaner instance
func NewEmailCleaner() *EmailCleaner {
	return &EmailCleaner{
		removeTags: []string{
			"script", "style", "noscript", "iframe", "object", "embed",
			"head", "meta", "link", "title", "base",
			"img", "svg", "path", "g", "defs", "use", "symbol",
			"form", "input", "button", "select", "textarea",
		},
	}
}

// ExtractText strips markup from an HTML email body and returns the
// readable text content. Returns an error only when the HTML cannot
// be parsed at all.
func (ec *EmailCleaner) ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	for _, tag := range ec.removeTags {
		doc.Find(tag).Remove()
	}

	// Hidden preheader text is a common trick in notification emails
	doc.Find("[style*='display:none'], [style*='display: none']").Remove()

	var parts []string
	doc.Find("body").Each(func(i int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	// Fragments without a body element still carry text at the top level
	if len(parts) == 0 {
		if text := strings.TrimSpace(doc.Text()); text != "" {
			parts = append(parts, text)
		}
	}

	return ec.cleanExtractedText(strings.Join(parts, "\n")), nil
}

// BestBody picks the most useful body text for an email: plain text when
// present, otherwise the cleaned HTML body, otherwise the snippet.
func (ec *EmailCleaner) BestBody(plain, html, snippet string) string {
	if strings.TrimSpace(plain) != "" {
		return ec.cleanExtractedText(plain)
	}
	if strings.TrimSpace(html) != "" {
		if text, err := ec.ExtractText(html); err == nil && text != "" {
			return text
		}
	}
	return strings.TrimSpace(snippet)
}

// cleanExtractedText normalizes whitespace in extracted text content
func (ec *EmailCleaner) cleanExtractedText(text string) string {
	// Collapse runs of spaces and tabs but keep line structure
	spaceRegex := regexp.MustCompile(`[ \t]+`)
	text = spaceRegex.ReplaceAllString(text, " ")

	// Remove excessive newlines
	newlineRegex := regexp.MustCompile(`\n{3,}`)
	text = newlineRegex.ReplaceAllString(text, "\n\n")

	// Unsubscribe footers add nothing for extraction
	patterns := []string{
		`(?i)\bunsubscribe\b.*`,
		`(?i)\byou are receiving this email because\b.*`,
		`(?i)\bview this email in your browser\b.*`,
	}

	for _, pattern := range patterns {
		regex := regexp.MustCompile(pattern)
		text = regex.ReplaceAllString(text, "")
	}

	return strings.TrimSpace(text)
}
