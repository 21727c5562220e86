package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// LinkedInURLType represents the type of LinkedIn URL
type LinkedInURLType int

const (
	LinkedInURLTypeUnknown       LinkedInURLType = iota
	LinkedInURLTypeJobView                       // Direct job view: /jobs/view/123
	LinkedInURLTypeJobCollection                 // Job collection: /jobs/collections/recommended/?currentJobId=123
	LinkedInURLTypeNonJob                        // Non-job URLs: profiles, company pages, etc.
)

// LinkedInURLInfo contains information about a parsed LinkedIn URL
type LinkedInURLInfo struct {
	Type      LinkedInURLType
	JobID     string
	PublicURL string
}

var (
	jobViewPathRegex = regexp.MustCompile(`^/jobs/view/(\d+)/?$`)
	jobIDRegex       = regexp.MustCompile(`^\d+$`)
	jobURLInTextRe   = regexp.MustCompile(`(?i)https?://(?:www\.)?linkedin\.com/jobs/view/\d+`)
)

// IsLinkedInURL checks if a URL is a LinkedIn URL
func IsLinkedInURL(urlStr string) bool {
	if urlStr == "" {
		return false
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return false
	}

	hostname := strings.ToLower(parsedURL.Hostname())
	return hostname == "linkedin.com" || hostname == "www.linkedin.com"
}

// ParseLinkedInURL analyzes a LinkedIn URL and returns information about its type and job ID
func ParseLinkedInURL(urlStr string) (*LinkedInURLInfo, error) {
	if !IsLinkedInURL(urlStr) {
		return nil, fmt.Errorf("not a LinkedIn URL: %s", urlStr)
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	path := strings.ToLower(parsedURL.Path)
	query := parsedURL.Query()

	info := &LinkedInURLInfo{Type: LinkedInURLTypeUnknown}

	if matches := jobViewPathRegex.FindStringSubmatch(path); len(matches) > 1 {
		info.Type = LinkedInURLTypeJobView
		info.JobID = matches[1]
		info.PublicURL = fmt.Sprintf("https://www.linkedin.com/jobs/view/%s", info.JobID)
		return info, nil
	}

	// Collection URLs carry the job id in a query parameter:
	// /jobs/collections/recommended/?currentJobId=123456
	if strings.HasPrefix(path, "/jobs/collections/") {
		if currentJobID := query.Get("currentJobId"); currentJobID != "" && jobIDRegex.MatchString(currentJobID) {
			info.Type = LinkedInURLTypeJobCollection
			info.JobID = currentJobID
			info.PublicURL = fmt.Sprintf("https://www.linkedin.com/jobs/view/%s", info.JobID)
			return info, nil
		}
		info.Type = LinkedInURLTypeNonJob
		return info, nil
	}

	// Profiles, company pages, feed, search results
	info.Type = LinkedInURLTypeNonJob
	return info, nil
}

// NormalizeJobURL converts any LinkedIn job URL format to the canonical
// public /jobs/view/<id> form used as the dedup identity. Returns an
// empty string when the URL is not a job posting URL.
func NormalizeJobURL(urlStr string) string {
	info, err := ParseLinkedInURL(urlStr)
	if err != nil {
		return ""
	}
	if info.Type != LinkedInURLTypeJobView && info.Type != LinkedInURLTypeJobCollection {
		return ""
	}
	return info.PublicURL
}

// FindJobURL scans free text (email bodies) for the first LinkedIn job
// posting URL and returns it normalized, or "" when none is present.
func FindJobURL(text string) string {
	match := jobURLInTextRe.FindString(text)
	if match == "" {
		return ""
	}
	return NormalizeJobURL(match)
}

// ExtractLinkedInJobID extracts the job ID from a LinkedIn job URL
func ExtractLinkedInJobID(urlStr string) (string, error) {
	info, err := ParseLinkedInURL(urlStr)
	if err != nil {
		return "", err
	}
	if info.JobID == "" {
		return "", fmt.Errorf("no job ID found in LinkedIn URL: %s", urlStr)
	}
	return info.JobID, nil
}
