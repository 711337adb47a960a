package schedule

import (
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Wadidurrahman/shiftara-web/models"
)

// DefaultBlockDays is how many worked days an employee stays on one shift
// pattern before rotating to the next.
const DefaultBlockDays = 2

// Assignment is one generated (or re-planned) roster write: a full value
// snapshot of the shift, ready to be committed as a filled ScheduleEntry.
type Assignment struct {
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Role         string    `json:"role"`
	Date         string    `json:"date"`
	ShiftName    string    `json:"shift_name"`
	ShiftTime    string    `json:"shift_time"`
}

// Generator fills the empty cells of a weekly grid.
//
// Within each division the staff list is shuffled, so no employee is biased
// toward first pick across runs; everything after the shuffle is
// deterministic. Each employee starts at a pattern offset staggered by their
// shuffled index, then stays on a pattern for BlockDays worked days before
// advancing, wrapping modulo the pattern count. Committed cells are never
// overwritten, and leave days do not consume a rotation slot.
type Generator struct {
	BlockDays int
	Rand      *rand.Rand // injectable; tests pass a seeded source
}

func NewGenerator(blockDays int) *Generator {
	if blockDays < 1 {
		blockDays = DefaultBlockDays
	}
	return &Generator{
		BlockDays: blockDays,
		Rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Fill computes assignments for every still-empty cell of the grid. It does
// not mutate its inputs. A nil error with an empty batch means the week was
// already full ("nothing to fill"), which callers report distinctly from a
// failure.
func (g *Generator) Fill(grid Grid, groups GroupIndex, patterns []models.ShiftPattern) ([]Assignment, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}
	ordered := make([]models.ShiftPattern, len(patterns))
	copy(ordered, patterns)
	slices.SortStableFunc(ordered, func(a, b models.ShiftPattern) int {
		return strings.Compare(a.StartTime, b.StartTime)
	})
	p := len(ordered)

	blockDays := g.BlockDays
	if blockDays < 1 {
		blockDays = DefaultBlockDays
	}

	var batch []Assignment
	for _, div := range groups.Order {
		staff := make([]models.Employee, len(groups.Members[div]))
		copy(staff, groups.Members[div])
		g.Rand.Shuffle(len(staff), func(i, j int) { staff[i], staff[j] = staff[j], staff[i] })

		for staffIndex, emp := range staff {
			startShiftOffset := staffIndex % p
			workingDayCounter := 0

			for day := 0; day < 7; day++ {
				slot := grid.Slot(emp.ID, day)
				if slot.State == SlotFilled {
					workingDayCounter++
					continue
				}
				if slot.State == SlotLeave {
					continue
				}

				shiftBlock := workingDayCounter / blockDays
				shiftIndex := (startShiftOffset + shiftBlock) % p
				selected := ordered[shiftIndex]

				batch = append(batch, Assignment{
					EmployeeID:   emp.ID,
					EmployeeName: emp.Name,
					Role:         emp.Role,
					Date:         grid.Days[day],
					ShiftName:    selected.Name,
					ShiftTime:    selected.TimeRange(),
				})
				workingDayCounter++
			}
		}
	}
	return batch, nil
}
