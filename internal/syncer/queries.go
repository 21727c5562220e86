package syncer

import (
	"fmt"
	"time"
)

// Gmail search query groups targeting LinkedIn notification emails.
// Each group maps to one lifecycle signal; the classifier still makes
// the final call per message.
var emailQueries = map[string][]string{
	"applicationSent": {
		`from:jobs-noreply@linkedin.com "application was sent"`,
		`from:jobs-noreply@linkedin.com "applied to"`,
		`from:linkedin.com subject:"application sent"`,
		`from:linkedin.com "submitted your application"`,
	},
	"applicationViewed": {
		`from:jobs-noreply@linkedin.com "viewed your application"`,
		`from:linkedin.com "employer viewed"`,
		`from:linkedin.com subject:"application viewed"`,
	},
	"interview": {
		`from:linkedin.com "interview" OR "phone screen" OR "video call"`,
		`subject:"interview" from:linkedin.com`,
	},
	"rejection": {
		`from:linkedin.com "unfortunately" OR "not moving forward" OR "position filled"`,
		`from:linkedin.com "regret to inform"`,
	},
	"offer": {
		`from:linkedin.com "offer" OR "congratulations"`,
		`from:linkedin.com "next steps" subject:"offer"`,
	},
}

// queryGroupOrder keeps query execution deterministic
var queryGroupOrder = []string{
	"applicationSent",
	"applicationViewed",
	"interview",
	"rejection",
	"offer",
}

// BuildQueries expands all query groups with a date filter bounding the
// lookback window.
func BuildQueries(lookbackDays int, now time.Time) []string {
	afterEpoch := now.Add(-time.Duration(lookbackDays) * 24 * time.Hour).Unix()
	dateFilter := fmt.Sprintf("after:%d", afterEpoch)

	var queries []string
	for _, group := range queryGroupOrder {
		for _, q := range emailQueries[group] {
			queries = append(queries, q+" "+dateFilter)
		}
	}
	return queries
}
