package tracker

import "jobtrail/pkg/models"

// statusPriority defines the total order over lifecycle stages. A
// rejection outranks a view but not an interview: recruiters sometimes
// send automated rejections for one role while actively interviewing
// for another under the same posting.
var statusPriority = map[models.Status]int{
	models.StatusPending:            0,
	models.StatusViewed:             1,
	models.StatusRejected:           2,
	models.StatusInterviewRequested: 3,
	models.StatusOffer:              4,
}

// ShouldUpdateStatus reports whether a candidate status should replace
// the current one. Only a strictly greater priority wins; ties and
// regressions keep the current status.
func ShouldUpdateStatus(current, candidate models.Status) bool {
	return statusPriority[candidate] > statusPriority[current]
}

// StatusPriority exposes the priority rank of a status
func StatusPriority(s models.Status) int {
	return statusPriority[s]
}
