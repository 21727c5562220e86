package tracker

import (
	"fmt"
	"reflect"
	"sort"
	"testing"
	"time"

	"jobtrail/pkg/models"
)

type mergeEvent struct {
	status    models.Status
	timestamp time.Time
	messageID string
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestMerger() *Merger {
	m := NewMerger()
	m.now = func() time.Time { return testNow }
	return m
}

func testJob() *models.ExtractedJob {
	return &models.ExtractedJob{
		Company:  "Acme Corp",
		Position: "Software Engineer",
		Location: "Remote",
	}
}

func applyEvents(m *Merger, events []mergeEvent) map[string]*models.ApplicationRec {
	working := make(map[string]*models.ApplicationRec)
	for _, ev := range events {
		m.Merge(working, "acme corp::software engineer", testJob(), ev.status, ev.timestamp, ev.messageID)
	}
	return working
}

func permutations(events []mergeEvent) [][]mergeEvent {
	if len(events) <= 1 {
		return [][]mergeEvent{events}
	}
	var result [][]mergeEvent
	for i := range events {
		rest := make([]mergeEvent, 0, len(events)-1)
		rest = append(rest, events[:i]...)
		rest = append(rest, events[i+1:]...)
		for _, perm := range permutations(rest) {
			result = append(result, append([]mergeEvent{events[i]}, perm...))
		}
	}
	return result
}

func historyMultiset(rec *models.ApplicationRec) []string {
	entries := make([]string, 0, len(rec.StatusHistory))
	for _, ev := range rec.StatusHistory {
		entries = append(entries, fmt.Sprintf("%s@%s@%s", ev.Status, ev.Timestamp.Format(time.RFC3339), ev.MessageID))
	}
	sort.Strings(entries)
	return entries
}

func TestMergeCreatesRecord(t *testing.T) {
	m := newTestMerger()
	ts := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	working := applyEvents(m, []mergeEvent{
		{models.StatusPending, ts, "msg-1"},
	})

	rec, ok := working["acme corp::software engineer"]
	if !ok {
		t.Fatal("expected record to be created")
	}
	if rec.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", rec.Status)
	}
	if !rec.ApplicationDate.Equal(ts) {
		t.Errorf("application date = %v, want %v", rec.ApplicationDate, ts)
	}
	if len(rec.StatusHistory) != 1 {
		t.Fatalf("history length = %d, want 1", len(rec.StatusHistory))
	}
	if rec.EmailRefs.Application != "msg-1" {
		t.Errorf("application email ref = %q, want msg-1", rec.EmailRefs.Application)
	}
	if rec.DaysSinceApplication != 14 {
		t.Errorf("days since application = %d, want 14", rec.DaysSinceApplication)
	}
}

func TestMergeNoStatusRegression(t *testing.T) {
	// A late-delivered viewed notification must not regress an
	// interview status
	m := newTestMerger()
	t1 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC)
	t3 := time.Date(2025, 6, 5, 9, 0, 0, 0, time.UTC)

	working := applyEvents(m, []mergeEvent{
		{models.StatusPending, t1, "msg-1"},
		{models.StatusInterviewRequested, t2, "msg-2"},
		{models.StatusViewed, t3, "msg-3"},
	})

	rec := working["acme corp::software engineer"]
	if rec.Status != models.StatusInterviewRequested {
		t.Errorf("status = %q, want interview_requested", rec.Status)
	}
	if len(rec.StatusHistory) != 3 {
		t.Fatalf("history length = %d, want 3", len(rec.StatusHistory))
	}
	for i := 1; i < len(rec.StatusHistory); i++ {
		if rec.StatusHistory[i].Timestamp.Before(rec.StatusHistory[i-1].Timestamp) {
			t.Errorf("history not sorted ascending at index %d", i)
		}
	}
}

func TestMergeOrderIndependence(t *testing.T) {
	events := []mergeEvent{
		{models.StatusPending, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), "msg-1"},
		{models.StatusViewed, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), "msg-2"},
		{models.StatusInterviewRequested, time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC), "msg-3"},
		{models.StatusRejected, time.Date(2025, 6, 6, 9, 0, 0, 0, time.UTC), "msg-4"},
	}

	reference := applyEvents(newTestMerger(), events)["acme corp::software engineer"]

	for i, perm := range permutations(events) {
		got := applyEvents(newTestMerger(), perm)["acme corp::software engineer"]

		if got.Status != reference.Status {
			t.Errorf("permutation %d: status = %q, want %q", i, got.Status, reference.Status)
		}
		if !reflect.DeepEqual(got.EmailRefs, reference.EmailRefs) {
			t.Errorf("permutation %d: email refs = %+v, want %+v", i, got.EmailRefs, reference.EmailRefs)
		}
		if !reflect.DeepEqual(historyMultiset(got), historyMultiset(reference)) {
			t.Errorf("permutation %d: history multiset differs", i)
		}
		if !got.ApplicationDate.Equal(reference.ApplicationDate) {
			t.Errorf("permutation %d: application date = %v, want %v", i, got.ApplicationDate, reference.ApplicationDate)
		}
		for j := 1; j < len(got.StatusHistory); j++ {
			if got.StatusHistory[j].Timestamp.Before(got.StatusHistory[j-1].Timestamp) {
				t.Errorf("permutation %d: history not sorted ascending", i)
				break
			}
		}
	}
}

func TestMergeResyncIsIdempotent(t *testing.T) {
	// The same message set arriving again must not duplicate history
	// entries or change the record
	events := []mergeEvent{
		{models.StatusPending, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), "msg-1"},
		{models.StatusViewed, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), "msg-2"},
	}

	m := newTestMerger()
	working := applyEvents(m, events)
	rec := working["acme corp::software engineer"]

	firstHistory := historyMultiset(rec)
	firstStatus := rec.Status

	for _, ev := range events {
		m.Merge(working, "acme corp::software engineer", testJob(), ev.status, ev.timestamp, ev.messageID)
	}

	if rec.Status != firstStatus {
		t.Errorf("status changed on re-sync: %q -> %q", firstStatus, rec.Status)
	}
	if got := historyMultiset(rec); !reflect.DeepEqual(got, firstHistory) {
		t.Errorf("history changed on re-sync: %v -> %v", firstHistory, got)
	}
	if len(rec.StatusHistory) != 2 {
		t.Errorf("history length = %d after re-sync, want 2", len(rec.StatusHistory))
	}
}

func TestMergeEmailRefBuckets(t *testing.T) {
	m := newTestMerger()
	working := applyEvents(m, []mergeEvent{
		{models.StatusPending, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), "msg-applied"},
		{models.StatusViewed, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), "msg-viewed-1"},
		{models.StatusViewed, time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC), "msg-viewed-2"},
		{models.StatusRejected, time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC), "msg-rejected"},
		{models.StatusInterviewRequested, time.Date(2025, 6, 5, 9, 0, 0, 0, time.UTC), "msg-interview"},
	})

	rec := working["acme corp::software engineer"]

	if rec.EmailRefs.Application != "msg-applied" {
		t.Errorf("application ref = %q, want msg-applied", rec.EmailRefs.Application)
	}
	if rec.EmailRefs.Viewed != "msg-viewed-2" {
		t.Errorf("viewed ref = %q, want latest msg-viewed-2", rec.EmailRefs.Viewed)
	}
	wantResponses := []string{"msg-interview", "msg-rejected"}
	if !reflect.DeepEqual(rec.EmailRefs.Response, wantResponses) {
		t.Errorf("response refs = %v, want %v", rec.EmailRefs.Response, wantResponses)
	}
}

func TestMergeEmailRefTimestampTies(t *testing.T) {
	// Identical timestamps must still resolve the slots the same way
	// regardless of processing order
	ts := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	events := []mergeEvent{
		{models.StatusPending, ts, "msg-b"},
		{models.StatusPending, ts, "msg-a"},
		{models.StatusViewed, ts, "msg-c"},
		{models.StatusViewed, ts, "msg-d"},
	}

	for i, perm := range permutations(events) {
		rec := applyEvents(newTestMerger(), perm)["acme corp::software engineer"]

		if rec.EmailRefs.Application != "msg-a" {
			t.Errorf("permutation %d: application ref = %q, want msg-a", i, rec.EmailRefs.Application)
		}
		if rec.EmailRefs.Viewed != "msg-d" {
			t.Errorf("permutation %d: viewed ref = %q, want msg-d", i, rec.EmailRefs.Viewed)
		}
	}
}

func TestMergeSetsViewAndResponseDates(t *testing.T) {
	m := newTestMerger()
	viewTs := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	respTs := time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC)

	working := applyEvents(m, []mergeEvent{
		{models.StatusPending, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), "msg-1"},
		{models.StatusViewed, viewTs, "msg-2"},
		{models.StatusOffer, respTs, "msg-3"},
	})

	rec := working["acme corp::software engineer"]
	if rec.ViewDate == nil || !rec.ViewDate.Equal(viewTs) {
		t.Errorf("view date = %v, want %v", rec.ViewDate, viewTs)
	}
	if rec.ResponseDate == nil || !rec.ResponseDate.Equal(respTs) {
		t.Errorf("response date = %v, want %v", rec.ResponseDate, respTs)
	}
}

func TestMergeSkipsEmptyKey(t *testing.T) {
	m := newTestMerger()
	working := make(map[string]*models.ApplicationRec)

	m.Merge(working, "", testJob(), models.StatusPending, testNow, "msg-1")

	if len(working) != 0 {
		t.Errorf("working map has %d entries, want 0", len(working))
	}
}

func TestMergeEnrichesUnknownFields(t *testing.T) {
	m := newTestMerger()
	working := make(map[string]*models.ApplicationRec)
	key := "acme corp::software engineer"

	sparse := &models.ExtractedJob{
		Company:  models.UnknownCompany,
		Position: "Software Engineer",
	}
	m.Merge(working, key, sparse, models.StatusPending, testNow.Add(-48*time.Hour), "msg-1")

	full := &models.ExtractedJob{
		Company:  "Acme Corp",
		Position: "Software Engineer",
		Salary:   "$150,000 - $180,000",
	}
	m.Merge(working, key, full, models.StatusViewed, testNow.Add(-24*time.Hour), "msg-2")

	rec := working[key]
	if rec.Company != "Acme Corp" {
		t.Errorf("company = %q, want Acme Corp", rec.Company)
	}
	if rec.SalaryRange != "$150,000 - $180,000" {
		t.Errorf("salary = %q, want enriched value", rec.SalaryRange)
	}
}
