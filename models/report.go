package models

import "time"

// UsersReportData feeds the HTML template rendered into the admin PDF report.
type UsersReportData struct {
	Users        []*User
	DeletedUsers []*DeletedUser
	GeneratedAt  time.Time
	ActiveCount  int
	DeletedCount int
}
