package utils

import "testing"

func TestIsLinkedInURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"job view URL", "https://www.linkedin.com/jobs/view/1234567890", true},
		{"bare domain", "https://linkedin.com/feed", true},
		{"other site", "https://example.com/jobs/view/123", false},
		{"empty string", "", false},
		{"lookalike domain", "https://notlinkedin.com/jobs/view/123", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLinkedInURL(tt.url); got != tt.want {
				t.Errorf("IsLinkedInURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestParseLinkedInURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantType  LinkedInURLType
		wantJobID string
	}{
		{
			name:      "direct job view",
			url:       "https://www.linkedin.com/jobs/view/4012345678",
			wantType:  LinkedInURLTypeJobView,
			wantJobID: "4012345678",
		},
		{
			name:      "job view with trailing slash",
			url:       "https://www.linkedin.com/jobs/view/4012345678/",
			wantType:  LinkedInURLTypeJobView,
			wantJobID: "4012345678",
		},
		{
			name:      "collection URL with currentJobId",
			url:       "https://www.linkedin.com/jobs/collections/recommended/?currentJobId=4012345678",
			wantType:  LinkedInURLTypeJobCollection,
			wantJobID: "4012345678",
		},
		{
			name:     "profile URL is not a job",
			url:      "https://www.linkedin.com/in/someone",
			wantType: LinkedInURLTypeNonJob,
		},
		{
			name:     "collection without job id",
			url:      "https://www.linkedin.com/jobs/collections/recommended/",
			wantType: LinkedInURLTypeNonJob,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := ParseLinkedInURL(tt.url)
			if err != nil {
				t.Fatalf("ParseLinkedInURL(%q) error: %v", tt.url, err)
			}
			if info.Type != tt.wantType {
				t.Errorf("type = %v, want %v", info.Type, tt.wantType)
			}
			if info.JobID != tt.wantJobID {
				t.Errorf("job id = %q, want %q", info.JobID, tt.wantJobID)
			}
		})
	}
}

func TestNormalizeJobURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "already canonical",
			url:  "https://www.linkedin.com/jobs/view/4012345678",
			want: "https://www.linkedin.com/jobs/view/4012345678",
		},
		{
			name: "query params stripped",
			url:  "https://linkedin.com/jobs/view/4012345678/?refId=abc&trackingId=def",
			want: "https://www.linkedin.com/jobs/view/4012345678",
		},
		{
			name: "collection URL canonicalized",
			url:  "https://www.linkedin.com/jobs/collections/recommended/?currentJobId=4012345678",
			want: "https://www.linkedin.com/jobs/view/4012345678",
		},
		{
			name: "non-job URL yields empty",
			url:  "https://www.linkedin.com/company/acme",
			want: "",
		},
		{
			name: "non-LinkedIn URL yields empty",
			url:  "https://example.com/jobs/view/123",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeJobURL(tt.url); got != tt.want {
				t.Errorf("NormalizeJobURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestFindJobURL(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "URL embedded in text",
			text: "View the posting at https://www.linkedin.com/jobs/view/4012345678 before it closes",
			want: "https://www.linkedin.com/jobs/view/4012345678",
		},
		{
			name: "URL without www",
			text: "see https://linkedin.com/jobs/view/99887766",
			want: "https://www.linkedin.com/jobs/view/99887766",
		},
		{
			name: "no URL present",
			text: "Thanks for applying to the role",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindJobURL(tt.text); got != tt.want {
				t.Errorf("FindJobURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractLinkedInJobID(t *testing.T) {
	id, err := ExtractLinkedInJobID("https://www.linkedin.com/jobs/view/4012345678")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "4012345678" {
		t.Errorf("job id = %q, want 4012345678", id)
	}

	if _, err := ExtractLinkedInJobID("https://www.linkedin.com/in/someone"); err == nil {
		t.Error("expected error for a non-job URL")
	}
}
