package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"jobtrail/pkg/models"
)

var csvHeaders = []string{
	"Company",
	"Position",
	"Location",
	"Status",
	"Applied Date",
	"Days Since",
	"View Date",
	"Response Date",
	"Salary Range",
	"Employment Type",
	"Work Location",
	"LinkedIn URL",
	"Notes",
}

const dateLayout = "2006-01-02"

// WriteCSV streams a record set as CSV
func WriteCSV(w io.Writer, recs []*models.ApplicationRec) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeaders); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range recs {
		row := []string{
			rec.Company,
			rec.Position,
			rec.Location,
			string(rec.Status),
			rec.ApplicationDate.Format(dateLayout),
			strconv.Itoa(rec.DaysSinceApplication),
			formatOptionalDate(rec.ViewDate),
			formatOptionalDate(rec.ResponseDate),
			rec.SalaryRange,
			string(rec.EmploymentType),
			string(rec.WorkLocation),
			rec.LinkedInURL,
			rec.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Filename returns the suggested download filename for an export
func Filename(now time.Time) string {
	return fmt.Sprintf("job_applications_%s.csv", now.Format(dateLayout))
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
