package quota

import (
	"testing"

	"ppm-service/internal/model"
)

func acmeProjects() []model.Project {
	return []model.Project{
		{Owner: "Acme", Name: "Tower A", Emirate: "Dubai", IndoorQty: 10, VRFQty: 5, DXQty: 0, AHUQty: 2},
		{Owner: "Acme", Name: "Tower B", Emirate: "Sharjah", IndoorQty: 3, VRFQty: 0, DXQty: 1, AHUQty: 0},
		{Owner: "Globex", Name: "Mall", Emirate: "Abu Dhabi", IndoorQty: 100, VRFQty: 20, DXQty: 10, AHUQty: 4},
	}
}

func TestRemaining(t *testing.T) {
	tests := []struct {
		name  string
		subs  []model.Submission
		owner string
		proj  string
		want  model.UnitCounts
	}{
		{
			name:  "no prior submissions",
			subs:  nil,
			owner: "Acme",
			proj:  "Tower A",
			want:  model.UnitCounts{Indoor: 10, VRF: 5, DX: 0, AHU: 2},
		},
		{
			name: "after one submission",
			subs: []model.Submission{
				{ProjectOwner: "Acme", ProjectName: "Tower A", IndoorCompleted: 4, VRFCompleted: 1},
			},
			owner: "Acme",
			proj:  "Tower A",
			want:  model.UnitCounts{Indoor: 6, VRF: 4, DX: 0, AHU: 2},
		},
		{
			name: "submissions for other projects do not count",
			subs: []model.Submission{
				{ProjectOwner: "Acme", ProjectName: "Tower B", IndoorCompleted: 3},
				{ProjectOwner: "Globex", ProjectName: "Mall", IndoorCompleted: 50},
			},
			owner: "Acme",
			proj:  "Tower A",
			want:  model.UnitCounts{Indoor: 10, VRF: 5, DX: 0, AHU: 2},
		},
		{
			name: "over-submission clamps at zero",
			subs: []model.Submission{
				{ProjectOwner: "Acme", ProjectName: "Tower A", IndoorCompleted: 8, AHUCompleted: 2},
				{ProjectOwner: "Acme", ProjectName: "Tower A", IndoorCompleted: 7, AHUCompleted: 1},
			},
			owner: "Acme",
			proj:  "Tower A",
			want:  model.UnitCounts{Indoor: 0, VRF: 5, DX: 0, AHU: 0},
		},
		{
			name:  "unknown project yields all zeros",
			subs:  nil,
			owner: "Acme",
			proj:  "Tower C",
			want:  model.UnitCounts{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Remaining(acmeProjects(), tt.subs, tt.owner, tt.proj)
			if got != tt.want {
				t.Errorf("Remaining() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRemainingIsIdempotent(t *testing.T) {
	subs := []model.Submission{
		{ProjectOwner: "Acme", ProjectName: "Tower A", IndoorCompleted: 4, VRFCompleted: 1},
	}

	first := Remaining(acmeProjects(), subs, "Acme", "Tower A")
	second := Remaining(acmeProjects(), subs, "Acme", "Tower A")
	if first != second {
		t.Errorf("Remaining() not idempotent: first %+v, second %+v", first, second)
	}
}

func TestRemainingNeverNegative(t *testing.T) {
	subs := []model.Submission{
		{ProjectOwner: "Acme", ProjectName: "Tower A", IndoorCompleted: 1000, VRFCompleted: 1000, DXCompleted: 1000, AHUCompleted: 1000},
	}

	got := Remaining(acmeProjects(), subs, "Acme", "Tower A")
	for _, v := range []int{got.Indoor, got.VRF, got.DX, got.AHU} {
		if v < 0 {
			t.Fatalf("Remaining() returned negative value: %+v", got)
		}
	}
}

func TestCompletedSumEmptySelection(t *testing.T) {
	got := CompletedSum(nil, "Acme", "Tower A")
	if got != (model.UnitCounts{}) {
		t.Errorf("CompletedSum(nil) = %+v, want zeros", got)
	}
}

func TestFindProject(t *testing.T) {
	projects := acmeProjects()

	p := FindProject(projects, "Acme", "Tower B")
	if p == nil {
		t.Fatal("FindProject() returned nil for existing project")
	}
	if p.Emirate != "Sharjah" {
		t.Errorf("FindProject().Emirate = %q, want %q", p.Emirate, "Sharjah")
	}

	if got := FindProject(projects, "Acme", "Missing"); got != nil {
		t.Errorf("FindProject() = %+v, want nil for unknown project", got)
	}
}
