package models

import "time"

// Status represents the lifecycle stage of a job application
type Status string

const (
	StatusPending            Status = "pending"
	StatusViewed             Status = "viewed"
	StatusRejected           Status = "rejected"
	StatusInterviewRequested Status = "interview_requested"
	StatusOffer              Status = "offer"
)

// EmploymentType represents the contract type of a position
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full_time"
	EmploymentPartTime   EmploymentType = "part_time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentTemporary  EmploymentType = "temporary"
	EmploymentInternship EmploymentType = "internship"
)

// WorkLocation represents where a position is performed
type WorkLocation string

const (
	WorkRemote WorkLocation = "remote"
	WorkHybrid WorkLocation = "hybrid"
	WorkOnsite WorkLocation = "onsite"
)

// HistorySource identifies where a status event originated
type HistorySource string

const (
	SourceEmail    HistorySource = "email"
	SourceManual   HistorySource = "manual"
	SourceLinkedIn HistorySource = "linkedin"
)

// StatusEvent is a single entry in an application's status history.
// MessageID links the event back to the email that produced it and is
// what makes re-sync idempotent.
type StatusEvent struct {
	Status    Status        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Source    HistorySource `json:"source"`
	MessageID string        `json:"message_id,omitempty"`
}

// EmailRefs groups the message ids linked to an application.
// Application is first-write-wins, Viewed is last-write-wins and
// Response accumulates every interview/offer/rejection message.
type EmailRefs struct {
	Application string   `json:"application,omitempty"`
	Viewed      string   `json:"viewed,omitempty"`
	Response    []string `json:"response,omitempty"`
}

// MatchScore is the result of scoring an application against the
// candidate profile. All sub-scores are 0-100.
type MatchScore struct {
	Overall      int       `json:"overall"`
	Skills       int       `json:"skills"`
	Experience   int       `json:"experience"`
	Location     int       `json:"location"`
	Salary       int       `json:"salary"`
	Reasons      []string  `json:"reasons"`
	Suggestions  []string  `json:"suggestions"`
	CalculatedAt time.Time `json:"calculated_at"`
}

// ApplicationRec is the canonical record for a single job application,
// built by folding classified emails into the working map keyed by the
// dedup key. ID equals the dedup key and never changes.
type ApplicationRec struct {
	ID       string `json:"id"`
	Company  string `json:"company"`
	Position string `json:"position"`
	Location string `json:"location"`

	Status          Status     `json:"status"`
	ApplicationDate time.Time  `json:"application_date"`
	ViewDate        *time.Time `json:"view_date,omitempty"`
	ResponseDate    *time.Time `json:"response_date,omitempty"`

	Description    string         `json:"description,omitempty"`
	LinkedInURL    string         `json:"linkedin_url,omitempty"`
	SalaryRange    string         `json:"salary_range,omitempty"`
	EmploymentType EmploymentType `json:"employment_type,omitempty"`
	WorkLocation   WorkLocation   `json:"work_location,omitempty"`
	CompanySize    string         `json:"company_size,omitempty"`
	Industry       string         `json:"industry,omitempty"`
	CompanyLogo    string         `json:"company_logo,omitempty"`
	RecruiterName  string         `json:"recruiter_name,omitempty"`
	Notes          string         `json:"notes,omitempty"`
	ContactInfo    string         `json:"contact_info,omitempty"`
	NextSteps      string         `json:"next_steps,omitempty"`

	DaysSinceApplication int     `json:"days_since_application"`
	ResponseRate         float64 `json:"response_rate"`

	EmailRefs     EmailRefs     `json:"email_ids"`
	StatusHistory []StatusEvent `json:"status_history"`

	MatchScore *MatchScore `json:"match_score,omitempty"`
}

// Responded reports whether the application has progressed past pending.
func (a *ApplicationRec) Responded() bool {
	return a.Status != StatusPending
}

// ExtractedJob is the best-effort tuple produced by the text extractor,
// either by the LLM oracle or by the regex fallback.
type ExtractedJob struct {
	Company        string         `json:"company"`
	Position       string         `json:"position"`
	Location       string         `json:"location,omitempty"`
	Salary         string         `json:"salary,omitempty"`
	WorkMode       WorkLocation   `json:"work_mode,omitempty"`
	EmploymentType EmploymentType `json:"employment_type,omitempty"`
	Industry       string         `json:"industry,omitempty"`
	CompanySize    string         `json:"company_size,omitempty"`
	LinkedInURL    string         `json:"linkedin_url,omitempty"`
}

// Sentinel values used when extraction cannot identify a field
const (
	UnknownCompany  = "Unknown Company"
	UnknownPosition = "Unknown Position"
	DefaultLocation = "Remote"
)

// CandidateProfile describes the person the match scorer compares
// applications against.
type CandidateProfile struct {
	Resume      string   `json:"resume"`
	Skills      []string `json:"skills,omitempty"`
	Preferences string   `json:"preferences,omitempty"`
}

// Stats is the aggregate view computed over a record set
type Stats struct {
	Total           int     `json:"total"`
	Viewed          int     `json:"viewed"`
	Interviews      int     `json:"interviews"`
	Offers          int     `json:"offers"`
	Rejected        int     `json:"rejected"`
	ResponseRate    float64 `json:"response_rate"`
	AvgResponseTime float64 `json:"avg_response_time"`
}
