package tracker

import (
	"sort"

	"jobtrail/pkg/models"
)

// StampResponseRate computes the share of applications that progressed
// past pending and writes it onto every record.
func StampResponseRate(recs []*models.ApplicationRec) {
	if len(recs) == 0 {
		return
	}
	responded := 0
	for _, rec := range recs {
		if rec.Responded() {
			responded++
		}
	}
	rate := float64(responded) / float64(len(recs))
	for _, rec := range recs {
		rec.ResponseRate = rate
	}
}

// Collect flattens the working map into a slice sorted by application
// date descending, newest first.
func Collect(working map[string]*models.ApplicationRec) []*models.ApplicationRec {
	recs := make([]*models.ApplicationRec, 0, len(working))
	for _, rec := range working {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].ApplicationDate.Equal(recs[j].ApplicationDate) {
			return recs[i].ID < recs[j].ID
		}
		return recs[i].ApplicationDate.After(recs[j].ApplicationDate)
	})
	return recs
}

// BuildStats aggregates dashboard statistics over a set of records
func BuildStats(recs []*models.ApplicationRec) models.Stats {
	stats := models.Stats{Total: len(recs)}
	if len(recs) == 0 {
		return stats
	}

	responded := 0
	var totalResponseDays float64
	var respondedWithDate int

	for _, rec := range recs {
		switch rec.Status {
		case models.StatusViewed:
			stats.Viewed++
		case models.StatusInterviewRequested:
			stats.Interviews++
		case models.StatusOffer:
			stats.Offers++
		case models.StatusRejected:
			stats.Rejected++
		}
		if rec.Responded() {
			responded++
		}
		if rec.ResponseDate != nil {
			totalResponseDays += rec.ResponseDate.Sub(rec.ApplicationDate).Hours() / 24
			respondedWithDate++
		}
	}

	stats.ResponseRate = float64(responded) / float64(len(recs))
	if respondedWithDate > 0 {
		stats.AvgResponseTime = totalResponseDays / float64(respondedWithDate)
	}
	return stats
}
