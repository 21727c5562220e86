package tracker

import (
	"strings"

	"jobtrail/pkg/models"
	"jobtrail/pkg/utils"
)

// DedupKey computes the identity key for an extracted job. A normalized
// job-posting URL is preferred; otherwise the key falls back to
// lowercase company::position. Two emails extracting different strings
// for the same job will not merge, which is accepted fuzziness.
func DedupKey(job *models.ExtractedJob) string {
	if job.LinkedInURL != "" {
		if normalized := utils.NormalizeJobURL(job.LinkedInURL); normalized != "" {
			return strings.ToLower(normalized)
		}
	}
	return strings.ToLower(job.Company + "::" + job.Position)
}
