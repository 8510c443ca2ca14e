package quota

import (
	"testing"

	"ppm-service/internal/model"
)

func TestSummarizeOneRowPerProject(t *testing.T) {
	rows := Summarize(acmeProjects(), nil)
	if len(rows) != 3 {
		t.Fatalf("Summarize() returned %d rows, want 3", len(rows))
	}
	if rows[0].Owner != "Acme" || rows[0].Name != "Tower A" {
		t.Errorf("first row = %s/%s, want Acme/Tower A", rows[0].Owner, rows[0].Name)
	}
	if rows[0].Indoor.Total != 10 || rows[0].Indoor.Completed != 0 {
		t.Errorf("Indoor progress = %+v, want completed 0 of 10", rows[0].Indoor)
	}
}

func TestSummarizeRatio(t *testing.T) {
	subs := []model.Submission{
		{ProjectOwner: "Acme", ProjectName: "Tower A", IndoorCompleted: 5, VRFCompleted: 7},
	}

	rows := Summarize(acmeProjects(), subs)
	towerA := rows[0]

	if towerA.Indoor.Ratio == nil || *towerA.Indoor.Ratio != 0.5 {
		t.Errorf("Indoor.Ratio = %v, want 0.5", towerA.Indoor.Ratio)
	}

	// Over-submitted: raw numbers stay unclamped, the display ratio caps at 1.
	if towerA.VRF.Completed != 7 || towerA.VRF.Total != 5 {
		t.Errorf("VRF progress = %+v, want raw 7 of 5", towerA.VRF)
	}
	if towerA.VRF.Ratio == nil || *towerA.VRF.Ratio != 1 {
		t.Errorf("VRF.Ratio = %v, want clamped 1", towerA.VRF.Ratio)
	}

	// Zero total: no ratio at all.
	if towerA.DX.Ratio != nil {
		t.Errorf("DX.Ratio = %v, want nil for zero total", towerA.DX.Ratio)
	}
}
