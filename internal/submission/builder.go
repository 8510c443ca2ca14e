// Package submission validates user input against the live remaining quotas
// and assembles the record to append. Construction is pure: the date is
// injected by the caller and nothing here touches storage.
package submission

import (
	"fmt"
	"time"

	"ppm-service/internal/model"
	"ppm-service/internal/quota"
)

// MaxTeamNames is the cap on technician and helper selections per record.
const MaxTeamNames = 3

// ValidationError rejects one input field. Handlers surface the message to the
// user and make no state change.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Input carries the user-supplied field values of one form submit.
type Input struct {
	Owner       string
	Name        string
	Counts      model.UnitCounts
	Technicians []string
	Helpers     []string
}

// Build re-validates the counts against the remaining quotas computed from the
// current log, looks up the project's emirate, and assembles the record. The
// bounds check is mandatory here even though the form limits its inputs, since
// direct API calls bypass the form.
func Build(projects []model.Project, subs []model.Submission, in Input, today time.Time) (model.Submission, error) {
	var zero model.Submission

	p := quota.FindProject(projects, in.Owner, in.Name)
	if p == nil {
		return zero, &ValidationError{Field: "project", Reason: "unknown (owner, name) pair"}
	}

	remaining := quota.Remaining(projects, subs, in.Owner, in.Name)
	checks := []struct {
		field     string
		value     int
		remaining int
	}{
		{"indoor", in.Counts.Indoor, remaining.Indoor},
		{"vrf", in.Counts.VRF, remaining.VRF},
		{"dx", in.Counts.DX, remaining.DX},
		{"ahu", in.Counts.AHU, remaining.AHU},
	}
	for _, c := range checks {
		if c.value < 0 {
			return zero, &ValidationError{Field: c.field, Reason: "count must not be negative"}
		}
		if c.value > c.remaining {
			return zero, &ValidationError{
				Field:  c.field,
				Reason: fmt.Sprintf("count %d exceeds remaining %d", c.value, c.remaining),
			}
		}
	}

	techs, err := teamNames("technicians", in.Technicians)
	if err != nil {
		return zero, err
	}
	helpers, err := teamNames("helpers", in.Helpers)
	if err != nil {
		return zero, err
	}

	return model.Submission{
		Date:            today.Format(model.DateLayout),
		ProjectOwner:    in.Owner,
		ProjectName:     in.Name,
		Emirate:         p.Emirate,
		IndoorCompleted: in.Counts.Indoor,
		VRFCompleted:    in.Counts.VRF,
		DXCompleted:     in.Counts.DX,
		AHUCompleted:    in.Counts.AHU,
		Technician1:     techs[0],
		Technician2:     techs[1],
		Technician3:     techs[2],
		Helper1:         helpers[0],
		Helper2:         helpers[1],
		Helper3:         helpers[2],
	}, nil
}

// teamNames pads up to MaxTeamNames distinct non-empty names with empty
// strings. Technicians and helpers are not required to be disjoint.
func teamNames(field string, names []string) ([MaxTeamNames]string, error) {
	var out [MaxTeamNames]string
	if len(names) > MaxTeamNames {
		return out, &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("at most %d names allowed", MaxTeamNames),
		}
	}
	seen := make(map[string]struct{}, len(names))
	for i, n := range names {
		if n == "" {
			return out, &ValidationError{Field: field, Reason: "empty name"}
		}
		if _, dup := seen[n]; dup {
			return out, &ValidationError{Field: field, Reason: "duplicate name " + n}
		}
		seen[n] = struct{}{}
		out[i] = n
	}
	return out, nil
}
