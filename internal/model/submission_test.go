package model

import (
	"testing"
)

func TestRowMatchesSchema(t *testing.T) {
	s := Submission{
		Date:            "2026-09-01",
		ProjectOwner:    "Acme",
		ProjectName:     "Tower A",
		Emirate:         "Dubai",
		IndoorCompleted: 4,
		VRFCompleted:    1,
		Technician1:     "Ali",
		Technician2:     "Omar",
	}

	row := s.Row()
	if len(row) != len(SubmissionColumns) {
		t.Fatalf("Row() has %d values, want %d", len(row), len(SubmissionColumns))
	}
	if row[0] != "2026-09-01" || row[4] != "4" || row[5] != "1" || row[8] != "Ali" {
		t.Errorf("Row() = %v, values out of schema order", row)
	}
}

func TestDeduplicate(t *testing.T) {
	a := Submission{Date: "2026-09-01", ProjectOwner: "Acme", ProjectName: "Tower A", IndoorCompleted: 4}
	b := Submission{Date: "2026-09-01", ProjectOwner: "Acme", ProjectName: "Tower A", IndoorCompleted: 4}
	c := Submission{Date: "2026-09-02", ProjectOwner: "Acme", ProjectName: "Tower A", IndoorCompleted: 4}

	// IDs differ but the stored fields match, so b is a duplicate of a.
	a.ID, b.ID, c.ID = 1, 2, 3

	out := Deduplicate([]Submission{a, b, c})
	if len(out) != 2 {
		t.Fatalf("Deduplicate() kept %d rows, want 2", len(out))
	}
	if out[0].ID != 1 || out[1].ID != 3 {
		t.Errorf("Deduplicate() kept IDs %d,%d; want first occurrences 1,3", out[0].ID, out[1].ID)
	}
}
