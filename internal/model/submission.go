package model

import (
	"strconv"
	"time"
)

// DateLayout is the calendar-date format used in the Inputs sheet and exports.
const DateLayout = "2006-01-02"

// SubmissionColumns is the fixed 14-column schema of the Inputs sheet, in
// storage order. Loads map headers by name; persists always write exactly
// these columns, which is how legacy misspelt columns get dropped.
var SubmissionColumns = []string{
	"Date",
	"Project Owner",
	"Project Name",
	"Emirate",
	"Indoors Completed",
	"VRF OD Completed",
	"DX Outdoor Completed",
	"AHU Completed",
	"Technician name 1",
	"Technician name 2",
	"Technician name 3",
	"Helper name 1",
	"Helper name 2",
	"Helper name 3",
}

// Submission is one day's completed-work record. Records are append-only and
// never mutated after creation.
type Submission struct {
	ID uint `json:"id,omitempty" gorm:"primaryKey"`

	Date         string `json:"date" gorm:"type:varchar(10)"`
	ProjectOwner string `json:"project_owner" gorm:"type:varchar(255);index:idx_submission_project"`
	ProjectName  string `json:"project_name" gorm:"type:varchar(255);index:idx_submission_project"`
	Emirate      string `json:"emirate" gorm:"type:varchar(100)"`

	IndoorCompleted int `json:"indoor_completed"`
	VRFCompleted    int `json:"vrf_completed"`
	DXCompleted     int `json:"dx_completed"`
	AHUCompleted    int `json:"ahu_completed"`

	Technician1 string `json:"technician_1" gorm:"type:varchar(255)"`
	Technician2 string `json:"technician_2" gorm:"type:varchar(255)"`
	Technician3 string `json:"technician_3" gorm:"type:varchar(255)"`
	Helper1     string `json:"helper_1" gorm:"type:varchar(255)"`
	Helper2     string `json:"helper_2" gorm:"type:varchar(255)"`
	Helper3     string `json:"helper_3" gorm:"type:varchar(255)"`

	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Completed returns the four completed counts as a UnitCounts value.
func (s Submission) Completed() UnitCounts {
	return UnitCounts{
		Indoor: s.IndoorCompleted,
		VRF:    s.VRFCompleted,
		DX:     s.DXCompleted,
		AHU:    s.AHUCompleted,
	}
}

// Row renders the submission as the 14 text values of the Inputs schema, in
// SubmissionColumns order.
func (s Submission) Row() []string {
	return []string{
		s.Date,
		s.ProjectOwner,
		s.ProjectName,
		s.Emirate,
		itoa(s.IndoorCompleted),
		itoa(s.VRFCompleted),
		itoa(s.DXCompleted),
		itoa(s.AHUCompleted),
		s.Technician1,
		s.Technician2,
		s.Technician3,
		s.Helper1,
		s.Helper2,
		s.Helper3,
	}
}

func itoa(n int) string { return strconv.Itoa(n) }

// Deduplicate drops exact repeats of the 14 stored fields, keeping first
// occurrences and preserving order. IDs and timestamps do not participate.
func Deduplicate(subs []Submission) []Submission {
	seen := make(map[[14]string]struct{}, len(subs))
	out := make([]Submission, 0, len(subs))
	for _, s := range subs {
		var key [14]string
		copy(key[:], s.Row())
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
