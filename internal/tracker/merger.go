package tracker

import (
	"sort"
	"time"

	"jobtrail/internal/logging"
	"jobtrail/pkg/models"
)

// Merger folds classified emails into the working map of application
// records. Merging is idempotent per message id and order-independent
// for a fixed message set: any processing permutation yields the same
// status, email refs and history multiset.
type Merger struct {
	logger logging.Logger
	now    func() time.Time
}

// NewMerger creates a new record merger
func NewMerger() *Merger {
	return &Merger{
		logger: logging.GetGlobalLogger(),
		now:    time.Now,
	}
}

// Merge applies one classified email to the working map. A message id
// already present in the record's history is a no-op, which keeps
// re-syncs from duplicating events.
func (m *Merger) Merge(working map[string]*models.ApplicationRec, key string, job *models.ExtractedJob, status models.Status, timestamp time.Time, messageID string) {
	if key == "" {
		m.logger.Warn("Skipping message with empty dedup key", map[string]interface{}{
			"message_id": messageID,
		})
		return
	}

	rec, ok := working[key]
	if !ok {
		rec = m.newRecord(key, job, timestamp)
		working[key] = rec
	}

	if hasMessage(rec, messageID) {
		return
	}

	// Earliest email defines the application date regardless of
	// processing order
	if timestamp.Before(rec.ApplicationDate) {
		rec.ApplicationDate = timestamp
	}

	if ShouldUpdateStatus(rec.Status, status) {
		rec.Status = status
		switch status {
		case models.StatusViewed:
			t := timestamp
			rec.ViewDate = &t
		case models.StatusInterviewRequested, models.StatusOffer, models.StatusRejected:
			t := timestamp
			rec.ResponseDate = &t
		}
	}

	m.updateEmailRefs(rec, status, timestamp, messageID)
	enrich(rec, job)

	rec.StatusHistory = append(rec.StatusHistory, models.StatusEvent{
		Status:    status,
		Timestamp: timestamp,
		Source:    models.SourceEmail,
		MessageID: messageID,
	})
	sort.SliceStable(rec.StatusHistory, func(i, j int) bool {
		return rec.StatusHistory[i].Timestamp.Before(rec.StatusHistory[j].Timestamp)
	})

	rec.DaysSinceApplication = daysBetween(rec.ApplicationDate, m.now())
}

// newRecord seeds a record from the first email observed for a key.
// Status starts at pending so the priority rule decides every
// transition, including the first.
func (m *Merger) newRecord(key string, job *models.ExtractedJob, timestamp time.Time) *models.ApplicationRec {
	return &models.ApplicationRec{
		ID:              key,
		Company:         job.Company,
		Position:        job.Position,
		Location:        job.Location,
		Status:          models.StatusPending,
		ApplicationDate: timestamp,
		LinkedInURL:     job.LinkedInURL,
		SalaryRange:     job.Salary,
		EmploymentType:  job.EmploymentType,
		WorkLocation:    job.WorkMode,
		Industry:        job.Industry,
		CompanySize:     job.CompanySize,
	}
}

// updateEmailRefs applies the bucket rules: the application slot is
// written once by the earliest pending email, the viewed slot follows
// the latest viewed email, and response emails accumulate.
func (m *Merger) updateEmailRefs(rec *models.ApplicationRec, status models.Status, timestamp time.Time, messageID string) {
	switch status {
	case models.StatusPending:
		// Timestamp ties resolve by message id so the slot does not
		// depend on processing order
		cur := pendingTimestamp(rec)
		if rec.EmailRefs.Application == "" || timestamp.Before(cur) ||
			(timestamp.Equal(cur) && messageID < rec.EmailRefs.Application) {
			rec.EmailRefs.Application = messageID
		}
	case models.StatusViewed:
		cur := viewedTimestamp(rec)
		if rec.EmailRefs.Viewed == "" || timestamp.After(cur) ||
			(timestamp.Equal(cur) && messageID > rec.EmailRefs.Viewed) {
			rec.EmailRefs.Viewed = messageID
		}
	default:
		rec.EmailRefs.Response = append(rec.EmailRefs.Response, messageID)
		sort.Strings(rec.EmailRefs.Response)
	}
}

// enrich backfills record fields from later extractions without
// overwriting anything already known.
func enrich(rec *models.ApplicationRec, job *models.ExtractedJob) {
	if (rec.Company == "" || rec.Company == models.UnknownCompany) && job.Company != "" {
		rec.Company = job.Company
	}
	if (rec.Position == "" || rec.Position == models.UnknownPosition) && job.Position != "" {
		rec.Position = job.Position
	}
	if (rec.Location == "" || rec.Location == models.DefaultLocation) && job.Location != "" {
		rec.Location = job.Location
	}
	if rec.SalaryRange == "" {
		rec.SalaryRange = job.Salary
	}
	if rec.LinkedInURL == "" {
		rec.LinkedInURL = job.LinkedInURL
	}
	if rec.EmploymentType == "" {
		rec.EmploymentType = job.EmploymentType
	}
	if rec.WorkLocation == "" {
		rec.WorkLocation = job.WorkMode
	}
	if rec.Industry == "" {
		rec.Industry = job.Industry
	}
	if rec.CompanySize == "" {
		rec.CompanySize = job.CompanySize
	}
}

// hasMessage reports whether a message id was already merged into the
// record.
func hasMessage(rec *models.ApplicationRec, messageID string) bool {
	if messageID == "" {
		return false
	}
	for _, ev := range rec.StatusHistory {
		if ev.MessageID == messageID {
			return true
		}
	}
	return false
}

// pendingTimestamp finds the earliest pending event's timestamp
func pendingTimestamp(rec *models.ApplicationRec) time.Time {
	for _, ev := range rec.StatusHistory {
		if ev.Status == models.StatusPending && ev.MessageID == rec.EmailRefs.Application {
			return ev.Timestamp
		}
	}
	return rec.ApplicationDate
}

// viewedTimestamp finds the timestamp of the event holding the viewed slot
func viewedTimestamp(rec *models.ApplicationRec) time.Time {
	for _, ev := range rec.StatusHistory {
		if ev.Status == models.StatusViewed && ev.MessageID == rec.EmailRefs.Viewed {
			return ev.Timestamp
		}
	}
	return time.Time{}
}

func daysBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}
