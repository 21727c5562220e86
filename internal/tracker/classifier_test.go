package tracker

import (
	"testing"

	"jobtrail/pkg/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		snippet string
		body    string
		want    models.Status
	}{
		{
			name:    "Application sent email is pending",
			subject: "Your application was sent to Acme Corp",
			snippet: "Your application for Software Engineer was submitted",
			want:    models.StatusPending,
		},
		{
			name:    "Viewed notification",
			subject: "Acme Corp viewed your application",
			snippet: "Your application was reviewed by the employer",
			want:    models.StatusViewed,
		},
		{
			name:    "Rejection email",
			subject: "Update on your application",
			snippet: "Unfortunately we are not moving forward with your candidacy",
			want:    models.StatusRejected,
		},
		{
			name:    "Interview request",
			subject: "Next steps for your application",
			snippet: "We would like to schedule a call to discuss the role",
			want:    models.StatusInterviewRequested,
		},
		{
			name:    "Offer email",
			subject: "Congratulations!",
			snippet: "We are pleased to offer you the position",
			want:    models.StatusOffer,
		},
		{
			name:    "Interview wins over viewed when both phrases appear",
			subject: "Acme viewed your application",
			snippet: "They reviewed your profile and want to schedule an interview",
			want:    models.StatusInterviewRequested,
		},
		{
			name:    "Offer wins over all other phrase groups",
			subject: "Interview follow-up",
			snippet: "After your interview, congratulations, we'd like to offer you the role",
			want:    models.StatusOffer,
		},
		{
			name:    "Rejection wins over viewed",
			subject: "We reviewed your application",
			snippet: "Unfortunately the position has been filled",
			want:    models.StatusRejected,
		},
		{
			name:    "Body text alone can classify",
			subject: "Application update",
			snippet: "",
			body:    "The hiring team looked at your application last week.",
			want:    models.StatusViewed,
		},
		{
			name: "Empty input is pending",
			want: models.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.subject, tt.snippet, tt.body)
			if got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	subject := "Acme viewed your application"
	snippet := "schedule a call with the team"

	first := Classify(subject, snippet, "")
	for i := 0; i < 10; i++ {
		if got := Classify(subject, snippet, ""); got != first {
			t.Fatalf("Classify() returned %q on run %d, want %q", got, i, first)
		}
	}
}
