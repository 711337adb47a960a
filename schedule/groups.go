package schedule

import (
	"cmp"
	"slices"
	"sort"

	"github.com/Wadidurrahman/shiftara-web/models"
)

// DefaultDivision is where employees with no division label land.
const DefaultDivision = "Umum"

// GroupIndex partitions active employees by division. Order is the
// lexicographically sorted division list; members are sorted by name with id
// as the tie break, so rendering and generation iterate deterministically.
type GroupIndex struct {
	Order   []string
	Members map[string][]models.Employee
}

func BuildGroups(employees []models.Employee) GroupIndex {
	idx := GroupIndex{Members: map[string][]models.Employee{}}
	for _, emp := range employees {
		if !emp.IsActive() {
			continue
		}
		div := emp.Division
		if div == "" {
			div = DefaultDivision
		}
		idx.Members[div] = append(idx.Members[div], emp)
	}
	for div, members := range idx.Members {
		slices.SortFunc(members, func(a, b models.Employee) int {
			if c := cmp.Compare(a.Name, b.Name); c != 0 {
				return c
			}
			return cmp.Compare(a.ID.String(), b.ID.String())
		})
		idx.Members[div] = members
		idx.Order = append(idx.Order, div)
	}
	sort.Strings(idx.Order)
	return idx
}
