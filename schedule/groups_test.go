package schedule

import (
	"testing"

	"github.com/Wadidurrahman/shiftara-web/models"
)

func TestBuildGroupsOrderAndDefault(t *testing.T) {
	kitchenA := emp("Citra", "Kitchen")
	kitchenB := emp("Andi", "Kitchen")
	bar := emp("Budi", "Bar")
	nobody := emp("Dewi", "")

	idx := BuildGroups([]models.Employee{kitchenA, bar, nobody, kitchenB})

	want := []string{"Bar", "Kitchen", DefaultDivision}
	if len(idx.Order) != len(want) {
		t.Fatalf("group order = %v, want %v", idx.Order, want)
	}
	for i := range want {
		if idx.Order[i] != want[i] {
			t.Fatalf("group order = %v, want %v", idx.Order, want)
		}
	}

	kitchen := idx.Members["Kitchen"]
	if len(kitchen) != 2 || kitchen[0].Name != "Andi" || kitchen[1].Name != "Citra" {
		t.Errorf("kitchen members out of order: %v, %v", kitchen[0].Name, kitchen[1].Name)
	}
	if got := idx.Members[DefaultDivision]; len(got) != 1 || got[0].Name != "Dewi" {
		t.Errorf("unlabelled employee must fall into %q", DefaultDivision)
	}
}

func TestBuildGroupsNameTieBreaksOnID(t *testing.T) {
	a := emp("Andi", "Kitchen")
	b := emp("Andi", "Kitchen")
	idx := BuildGroups([]models.Employee{a, b})

	members := idx.Members["Kitchen"]
	if len(members) != 2 {
		t.Fatalf("member count = %d, want 2", len(members))
	}
	if members[0].ID.String() > members[1].ID.String() {
		t.Error("equal names must be ordered by id ascending")
	}
}

func TestBuildGroupsExcludesInactive(t *testing.T) {
	a := emp("Andi", "Kitchen")
	gone := emp("Budi", "Kitchen")
	gone.Status = models.EmployeeInactive

	idx := BuildGroups([]models.Employee{a, gone})
	if len(idx.Members["Kitchen"]) != 1 {
		t.Errorf("inactive employees must not be grouped")
	}
}
