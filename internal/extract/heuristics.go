package extract

import (
	"regexp"
	"strings"

	"jobtrail/pkg/models"
	"jobtrail/pkg/utils"
)

// Regex-based fallback extraction, used when the oracle is unavailable
// or returns garbage. Precision is low but every result carries enough
// to form a dedup key.
var (
	companyRegex  = regexp.MustCompile(`(?i)(?:application was sent to|viewed your application|at company:?)\s+([^,.\n]+)`)
	positionRegex = regexp.MustCompile(`(?i)(?:position:|role:|job title:|for position)\s*([^,.\n]+)`)
	locationRegex = regexp.MustCompile(`(?i)(?:location:|based in|office:)\s*([^,.\n]+)`)
	salaryRegex   = regexp.MustCompile(`(?i)\$[\d,]+(?:k)?(?:\s*-\s*\$[\d,]+(?:k)?)?(?:\s*(?:per year|/year|annually|per hour|/hour))?`)

	companyFallbackRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)sent to\s+([^,.\n]+)`),
		regexp.MustCompile(`(?i)^([^:]+?)\s+viewed`),
		regexp.MustCompile(`at\s+([A-Z][A-Za-z0-9 &]+)`),
	}

	positionFallbackRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?:Senior|Junior|Lead|Principal|Staff)\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*`),
		regexp.MustCompile(`(?i)(?:Software|Data|Product|Business|Marketing)\s+(?:Engineer|Manager|Analyst|Developer|Scientist)`),
		regexp.MustCompile(`(?i)(?:Director|VP|Head)\s+of\s+[A-Z][a-z]+`),
	}
)

// HeuristicParse extracts job fields from email text using regex
// patterns alone.
func HeuristicParse(subject, snippet, body string) *models.ExtractedJob {
	// Newline joins keep the capture groups from running across segment
	// boundaries, since the character classes exclude '\n'.
	fullText := subject + "\n" + snippet + "\n" + body
	if len(fullText) > 2000 {
		fullText = fullText[:2000]
	}

	job := &models.ExtractedJob{
		Company:  models.UnknownCompany,
		Position: models.UnknownPosition,
		Location: models.DefaultLocation,
	}

	if m := companyRegex.FindStringSubmatch(fullText); m != nil {
		job.Company = strings.TrimSpace(m[1])
	}
	if m := positionRegex.FindStringSubmatch(fullText); m != nil {
		job.Position = strings.TrimSpace(m[1])
	}
	if m := locationRegex.FindStringSubmatch(fullText); m != nil {
		job.Location = strings.TrimSpace(m[1])
	}
	if m := salaryRegex.FindString(fullText); m != "" {
		job.Salary = strings.TrimSpace(m)
	}
	if url := utils.FindJobURL(fullText); url != "" {
		job.LinkedInURL = url
	}

	return job
}

// companyFallback tries subject/snippet patterns when the oracle failed
// to name a company.
func companyFallback(subject, snippet string) string {
	text := subject + "\n" + snippet
	for _, re := range companyFallbackRegexes {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return models.UnknownCompany
}

// positionFallback scans for common job-title shapes when the oracle
// failed to name a position.
func positionFallback(subject, snippet, body string) string {
	text := subject + "\n" + snippet + "\n" + body
	if len(text) > 1000 {
		text = text[:1000]
	}
	for _, re := range positionFallbackRegexes {
		if m := re.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
	}
	return models.UnknownPosition
}

// fillSentinels backfills missing oracle fields with heuristic guesses
// and defaults so downstream dedup always has a usable key.
func fillSentinels(job *models.ExtractedJob, subject, snippet, body string) {
	if job.Company == "" || job.Company == models.UnknownCompany {
		job.Company = companyFallback(subject, snippet)
	}
	if job.Position == "" || job.Position == models.UnknownPosition {
		job.Position = positionFallback(subject, snippet, body)
	}
	if job.Location == "" {
		job.Location = models.DefaultLocation
	}
	if job.LinkedInURL == "" {
		if url := utils.FindJobURL(subject + " " + snippet + " " + body); url != "" {
			job.LinkedInURL = url
		}
	}
}
