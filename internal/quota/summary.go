package quota

import "ppm-service/internal/model"

// CategoryProgress pairs the raw completed/total numbers with the display
// ratio. Completed is reported unclamped so over-submission stays visible;
// Ratio is clamped to [0,1] because it feeds progress bars, and is nil when
// the total is zero.
type CategoryProgress struct {
	Completed int      `json:"completed"`
	Total     int      `json:"total"`
	Ratio     *float64 `json:"ratio,omitempty"`
}

// ProjectSummary is one row of the admin summary: progress per unit category
// for one project.
type ProjectSummary struct {
	Owner   string           `json:"owner"`
	Name    string           `json:"name"`
	Emirate string           `json:"emirate"`
	Indoor  CategoryProgress `json:"indoor"`
	VRF     CategoryProgress `json:"vrf"`
	DX      CategoryProgress `json:"dx"`
	AHU     CategoryProgress `json:"ahu"`
}

// Summarize produces one summary row per project row, in project order.
func Summarize(projects []model.Project, subs []model.Submission) []ProjectSummary {
	out := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		done := CompletedSum(subs, p.Owner, p.Name)
		out = append(out, ProjectSummary{
			Owner:   p.Owner,
			Name:    p.Name,
			Emirate: p.Emirate,
			Indoor:  progress(done.Indoor, p.IndoorQty),
			VRF:     progress(done.VRF, p.VRFQty),
			DX:      progress(done.DX, p.DXQty),
			AHU:     progress(done.AHU, p.AHUQty),
		})
	}
	return out
}

func progress(completed, total int) CategoryProgress {
	cp := CategoryProgress{Completed: completed, Total: total}
	if total > 0 {
		r := float64(completed) / float64(total)
		if r > 1 {
			r = 1
		}
		if r < 0 {
			r = 0
		}
		cp.Ratio = &r
	}
	return cp
}
