// Package quota computes remaining capacity and per-project progress from the
// project quotas and the submissions log. Everything here is pure; results are
// recomputed on every request because each submission changes the sums.
package quota

import "ppm-service/internal/model"

// FindProject returns the unique project row matching (owner, name), or nil.
func FindProject(projects []model.Project, owner, name string) *model.Project {
	for i := range projects {
		if projects[i].Owner == owner && projects[i].Name == name {
			return &projects[i]
		}
	}
	return nil
}

// CompletedSum sums the four completed columns across all submissions for
// (owner, name). An empty selection sums to zero.
func CompletedSum(subs []model.Submission, owner, name string) model.UnitCounts {
	var sum model.UnitCounts
	for _, s := range subs {
		if s.ProjectOwner != owner || s.ProjectName != name {
			continue
		}
		sum.Indoor += s.IndoorCompleted
		sum.VRF += s.VRFCompleted
		sum.DX += s.DXCompleted
		sum.AHU += s.AHUCompleted
	}
	return sum
}

// Remaining computes quota minus completed per category, floored at zero.
// Over-submission in prior records is clamped silently, not reported. An
// unknown project yields all zeros.
func Remaining(projects []model.Project, subs []model.Submission, owner, name string) model.UnitCounts {
	p := FindProject(projects, owner, name)
	if p == nil {
		return model.UnitCounts{}
	}
	total := p.Quotas()
	done := CompletedSum(subs, owner, name)
	return model.UnitCounts{
		Indoor: clampFloor(total.Indoor - done.Indoor),
		VRF:    clampFloor(total.VRF - done.VRF),
		DX:     clampFloor(total.DX - done.DX),
		AHU:    clampFloor(total.AHU - done.AHU),
	}
}

func clampFloor(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
