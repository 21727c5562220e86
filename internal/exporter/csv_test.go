package exporter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"jobtrail/pkg/models"
)

func TestWriteCSV(t *testing.T) {
	viewDate := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)

	recs := []*models.ApplicationRec{
		{
			Company:              "Acme Corp",
			Position:             "Software Engineer",
			Location:             "Remote",
			Status:               models.StatusViewed,
			ApplicationDate:      time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
			DaysSinceApplication: 14,
			ViewDate:             &viewDate,
			SalaryRange:          "$150,000 - $180,000",
			EmploymentType:       models.EmploymentFullTime,
			WorkLocation:         models.WorkRemote,
			LinkedInURL:          "https://www.linkedin.com/jobs/view/1234567890",
			Notes:                `Said "we'll be in touch", follow up next week`,
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, recs); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("row count = %d, want 2", len(rows))
	}
	if len(rows[0]) != len(csvHeaders) {
		t.Errorf("header column count = %d, want %d", len(rows[0]), len(csvHeaders))
	}

	row := rows[1]
	if row[0] != "Acme Corp" {
		t.Errorf("company = %q", row[0])
	}
	if row[3] != "viewed" {
		t.Errorf("status = %q, want viewed", row[3])
	}
	if row[4] != "2025-06-01" {
		t.Errorf("applied date = %q, want 2025-06-01", row[4])
	}
	if row[5] != "14" {
		t.Errorf("days since = %q, want 14", row[5])
	}
	if row[6] != "2025-06-03" {
		t.Errorf("view date = %q, want 2025-06-03", row[6])
	}
	if row[7] != "" {
		t.Errorf("response date = %q, want empty", row[7])
	}
	if !strings.Contains(row[12], `we'll be in touch`) {
		t.Errorf("notes lost quoted content: %q", row[12])
	}
}

func TestWriteCSVEmptySet(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("row count = %d, want header only", len(rows))
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	if got := Filename(now); got != "job_applications_2025-06-15.csv" {
		t.Errorf("Filename() = %q", got)
	}
}
