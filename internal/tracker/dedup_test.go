package tracker

import (
	"testing"

	"jobtrail/pkg/models"
)

func TestDedupKey(t *testing.T) {
	tests := []struct {
		name string
		job  *models.ExtractedJob
		want string
	}{
		{
			name: "LinkedIn URL preferred over company and position",
			job: &models.ExtractedJob{
				Company:     "Acme Corp",
				Position:    "Software Engineer",
				LinkedInURL: "https://www.linkedin.com/jobs/view/3891234567",
			},
			want: "https://www.linkedin.com/jobs/view/3891234567",
		},
		{
			name: "URL with trailing path segments normalizes to canonical form",
			job: &models.ExtractedJob{
				Company:     "Acme Corp",
				Position:    "Software Engineer",
				LinkedInURL: "https://linkedin.com/jobs/view/3891234567/?refId=abc123",
			},
			want: "https://www.linkedin.com/jobs/view/3891234567",
		},
		{
			name: "Fallback to lowercase company and position",
			job: &models.ExtractedJob{
				Company:  "Acme Corp",
				Position: "Software Engineer",
			},
			want: "acme corp::software engineer",
		},
		{
			name: "Unnormalizable URL falls back to company and position",
			job: &models.ExtractedJob{
				Company:     "Acme Corp",
				Position:    "Software Engineer",
				LinkedInURL: "https://example.com/jobs/12345",
			},
			want: "acme corp::software engineer",
		},
		{
			name: "Sentinel values still produce a usable key",
			job: &models.ExtractedJob{
				Company:  models.UnknownCompany,
				Position: models.UnknownPosition,
			},
			want: "unknown company::unknown position",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DedupKey(tt.job); got != tt.want {
				t.Errorf("DedupKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDedupKeySameJobDifferentEmails(t *testing.T) {
	// An application-sent email and a viewed email for the same job
	// must produce the same key
	sent := &models.ExtractedJob{Company: "Acme Corp", Position: "Software Engineer"}
	viewed := &models.ExtractedJob{Company: "ACME CORP", Position: "software engineer"}

	if DedupKey(sent) != DedupKey(viewed) {
		t.Errorf("keys differ: %q vs %q", DedupKey(sent), DedupKey(viewed))
	}
}
