package tracker

import (
	"regexp"
	"strings"

	"jobtrail/pkg/models"
)

// Phrase groups checked in fixed priority order. An email mentioning
// both "viewed" and "interview" classifies as interview_requested
// because the higher group is tested first.
var (
	offerRegex     = regexp.MustCompile(`(?i)offer|congratulations|pleased to offer|we'd like to offer`)
	interviewRegex = regexp.MustCompile(`(?i)interview|phone screen|video call|meet with|speak with you|schedule a call`)
	rejectedRegex  = regexp.MustCompile(`(?i)unfortunately|not moving forward|position.*filled|regret|decided not to|other candidate`)
	viewedRegex    = regexp.MustCompile(`(?i)viewed|reviewed|looked at|seen your application`)
)

// Classify determines the application status signaled by an email.
// Pure and total: always returns a status, never fails.
func Classify(subject, snippet, body string) models.Status {
	fullText := strings.ToLower(subject + " " + snippet + " " + body)

	switch {
	case offerRegex.MatchString(fullText):
		return models.StatusOffer
	case interviewRegex.MatchString(fullText):
		return models.StatusInterviewRequested
	case rejectedRegex.MatchString(fullText):
		return models.StatusRejected
	case viewedRegex.MatchString(fullText):
		return models.StatusViewed
	default:
		return models.StatusPending
	}
}
