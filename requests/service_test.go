package requests

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Wadidurrahman/shiftara-web/models"
)

type fakeCreds struct {
	pins map[uuid.UUID]string // employee id -> pin
	byID map[uuid.UUID]models.Employee
}

func (f *fakeCreds) VerifyPIN(ownerID, employeeID uuid.UUID, pin string) (models.Employee, error) {
	if want, ok := f.pins[employeeID]; ok && want == pin {
		return f.byID[employeeID], nil
	}
	return models.Employee{}, ErrPinMismatch
}

type fakeRoster struct {
	entries    map[string]models.ScheduleEntry // "empID|date"
	swapped    []models.Request
	leaveCalls []string // "empID|date"
	failSwap   error
}

func key(id uuid.UUID, date string) string { return id.String() + "|" + date }

func (f *fakeRoster) FindEntry(ownerID, employeeID uuid.UUID, date string) (*models.ScheduleEntry, error) {
	if e, ok := f.entries[key(employeeID, date)]; ok {
		return &e, nil
	}
	return nil, nil
}

func (f *fakeRoster) ApplySwapRequest(ownerID uuid.UUID, req models.Request) error {
	if f.failSwap != nil {
		return f.failSwap
	}
	f.swapped = append(f.swapped, req)
	return nil
}

func (f *fakeRoster) MarkLeave(ownerID, employeeID uuid.UUID, date string) error {
	f.leaveCalls = append(f.leaveCalls, key(employeeID, date))
	return nil
}

type fakeStore struct {
	rows       map[uuid.UUID]models.Request
	leaveCount map[uuid.UUID]int64
}

func (f *fakeStore) Create(r *models.Request) error {
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	f.rows[r.ID] = *r
	return nil
}

func (f *fakeStore) Get(ownerID, id uuid.UUID) (models.Request, error) {
	r, ok := f.rows[id]
	if !ok {
		return models.Request{}, errors.New("not found")
	}
	return r, nil
}

func (f *fakeStore) Update(r *models.Request) error {
	f.rows[r.ID] = *r
	return nil
}

func (f *fakeStore) CountLeaveBetween(ownerID, requesterID uuid.UUID, from, to time.Time) (int64, error) {
	return f.leaveCount[requesterID], nil
}

type fakeSettings struct{ limit int }

func (f *fakeSettings) MaxRequestsPerMonth(ownerID uuid.UUID) int { return f.limit }

type fixture struct {
	svc     *Service
	creds   *fakeCreds
	roster  *fakeRoster
	store   *fakeStore
	ownerID uuid.UUID
	empA    models.Employee
	empB    models.Employee
}

func newFixture() *fixture {
	owner := uuid.New()
	a := models.Employee{ID: uuid.New(), Name: "Andi", Role: "Staff", Division: "Kitchen", Status: models.EmployeeActive, OwnerID: owner}
	b := models.Employee{ID: uuid.New(), Name: "Budi", Role: "Staff", Division: "Kitchen", Status: models.EmployeeActive, OwnerID: owner}
	f := &fixture{
		creds: &fakeCreds{
			pins: map[uuid.UUID]string{a.ID: "123456", b.ID: "654321"},
			byID: map[uuid.UUID]models.Employee{a.ID: a, b.ID: b},
		},
		roster:  &fakeRoster{entries: map[string]models.ScheduleEntry{}},
		store:   &fakeStore{rows: map[uuid.UUID]models.Request{}, leaveCount: map[uuid.UUID]int64{}},
		ownerID: owner,
		empA:    a,
		empB:    b,
	}
	f.svc = NewService(f.creds, f.roster, f.store, &fakeSettings{limit: 3})
	return f
}

func (f *fixture) fillCell(id uuid.UUID, date string) {
	f.roster.entries[key(id, date)] = models.ScheduleEntry{
		EmployeeID: id, Date: date, Type: models.EntryFilled, ShiftName: "Pagi", ShiftTime: "08:00 - 16:00",
	}
}

func TestCreateLeaveGoesStraightToAdmin(t *testing.T) {
	f := newFixture()
	req, err := f.svc.Create(CreateInput{
		OwnerID: f.ownerID, RequesterID: f.empA.ID, PIN: "123456",
		Type: models.RequestLeave, OriginalDate: "2024-03-13", Reason: "sakit",
	})
	if err != nil {
		t.Fatal(err)
	}
	if req.Status != models.StatusPendingAdmin {
		t.Errorf("leave status = %s, want pending_admin (leave never waits for a partner)", req.Status)
	}
	if req.TargetEmployeeID != nil {
		t.Error("leave request must not carry a target employee")
	}
}

func TestCreateRejectsWrongPin(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Create(CreateInput{
		OwnerID: f.ownerID, RequesterID: f.empA.ID, PIN: "000000",
		Type: models.RequestLeave, OriginalDate: "2024-03-13",
	})
	if !errors.Is(err, ErrPinMismatch) {
		t.Fatalf("err = %v, want ErrPinMismatch", err)
	}
}

func TestCreateUnknownEmployeeLooksLikePinMismatch(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Create(CreateInput{
		OwnerID: f.ownerID, RequesterID: uuid.New(), PIN: "123456",
		Type: models.RequestLeave, OriginalDate: "2024-03-13",
	})
	if !errors.Is(err, ErrPinMismatch) {
		t.Fatalf("err = %v, want ErrPinMismatch (no enumeration signal)", err)
	}
}

func TestCreateLeaveQuota(t *testing.T) {
	f := newFixture()
	f.svc.Settings = &fakeSettings{limit: 2}
	f.store.leaveCount[f.empA.ID] = 2

	_, err := f.svc.Create(CreateInput{
		OwnerID: f.ownerID, RequesterID: f.empA.ID, PIN: "123456",
		Type: models.RequestLeave, OriginalDate: "2024-03-13",
	})
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}

	// A different employee under the same cap still gets through.
	if _, err := f.svc.Create(CreateInput{
		OwnerID: f.ownerID, RequesterID: f.empB.ID, PIN: "654321",
		Type: models.RequestLeave, OriginalDate: "2024-03-13",
	}); err != nil {
		t.Fatalf("empB create failed: %v", err)
	}
}

func TestCreateSwapRequiresFilledTarget(t *testing.T) {
	f := newFixture()
	in := CreateInput{
		OwnerID: f.ownerID, RequesterID: f.empA.ID, PIN: "123456",
		Type: models.RequestSwap, OriginalDate: "2024-03-13",
		TargetDate: "2024-03-15", TargetEmployeeID: f.empB.ID,
	}

	if _, err := f.svc.Create(in); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("empty target cell: err = %v, want ErrInvalidTarget", err)
	}

	f.roster.entries[key(f.empB.ID, "2024-03-15")] = models.ScheduleEntry{
		EmployeeID: f.empB.ID, Date: "2024-03-15", Type: models.EntryLeave,
	}
	if _, err := f.svc.Create(in); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("leave target cell: err = %v, want ErrInvalidTarget", err)
	}

	f.fillCell(f.empB.ID, "2024-03-15")
	req, err := f.svc.Create(in)
	if err != nil {
		t.Fatal(err)
	}
	if req.Status != models.StatusPendingPartner {
		t.Errorf("swap status = %s, want pending_partner", req.Status)
	}
	if req.TargetEmployeeID == nil || *req.TargetEmployeeID != f.empB.ID {
		t.Error("swap must record the partner")
	}
}

func TestCreateSwapRejectsSelfTarget(t *testing.T) {
	f := newFixture()
	f.fillCell(f.empA.ID, "2024-03-15")
	_, err := f.svc.Create(CreateInput{
		OwnerID: f.ownerID, RequesterID: f.empA.ID, PIN: "123456",
		Type: models.RequestSwap, OriginalDate: "2024-03-13",
		TargetDate: "2024-03-15", TargetEmployeeID: f.empA.ID,
	})
	if !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("err = %v, want ErrInvalidTarget", err)
	}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	f := newFixture()
	_, err := f.svc.Create(CreateInput{
		OwnerID: f.ownerID, RequesterID: f.empA.ID, PIN: "123456",
		Type: "vacation", OriginalDate: "2024-03-13",
	})
	if !errors.Is(err, ErrInvalidType) {
		t.Fatalf("err = %v, want ErrInvalidType", err)
	}
}

func makeSwap(t *testing.T, f *fixture) models.Request {
	t.Helper()
	f.fillCell(f.empA.ID, "2024-03-13")
	f.fillCell(f.empB.ID, "2024-03-15")
	req, err := f.svc.Create(CreateInput{
		OwnerID: f.ownerID, RequesterID: f.empA.ID, PIN: "123456",
		Type: models.RequestSwap, OriginalDate: "2024-03-13",
		TargetDate: "2024-03-15", TargetEmployeeID: f.empB.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func TestPartnerApproveHandsOffToAdmin(t *testing.T) {
	f := newFixture()
	req := makeSwap(t, f)

	got, err := f.svc.PartnerDecide(f.ownerID, req.ID, true)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusPendingAdmin {
		t.Errorf("status = %s, want pending_admin", got.Status)
	}
	if len(f.roster.swapped) != 0 {
		t.Error("partner approval must not mutate the roster")
	}
}

func TestPartnerRejectIsTerminal(t *testing.T) {
	f := newFixture()
	req := makeSwap(t, f)

	got, err := f.svc.PartnerDecide(f.ownerID, req.ID, false)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusRejected {
		t.Errorf("status = %s, want rejected", got.Status)
	}
	if _, err := f.svc.AdminDecide(f.ownerID, req.ID, uuid.New(), true); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("admin decide on rejected: err = %v, want ErrInvalidState", err)
	}
}

func TestPartnerDecideRequiresPendingPartner(t *testing.T) {
	f := newFixture()
	req, err := f.svc.Create(CreateInput{
		OwnerID: f.ownerID, RequesterID: f.empA.ID, PIN: "123456",
		Type: models.RequestLeave, OriginalDate: "2024-03-13",
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.PartnerDecide(f.ownerID, req.ID, true); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState (leave has no partner step)", err)
	}
}

func TestAdminApproveSwapPerformsTheSwap(t *testing.T) {
	f := newFixture()
	req := makeSwap(t, f)
	if _, err := f.svc.PartnerDecide(f.ownerID, req.ID, true); err != nil {
		t.Fatal(err)
	}

	admin := uuid.New()
	got, err := f.svc.AdminDecide(f.ownerID, req.ID, admin, true)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusApproved {
		t.Errorf("status = %s, want approved", got.Status)
	}
	if len(f.roster.swapped) != 1 || f.roster.swapped[0].ID != req.ID {
		t.Error("admin approval must execute the grid swap")
	}
	if got.DecidedBy == nil || *got.DecidedBy != admin {
		t.Error("decided_by must record the admin")
	}
	if got.DecidedAt == nil {
		t.Error("decided_at must be set")
	}
}

func TestAdminApproveLeaveMarksLeave(t *testing.T) {
	f := newFixture()
	req, err := f.svc.Create(CreateInput{
		OwnerID: f.ownerID, RequesterID: f.empA.ID, PIN: "123456",
		Type: models.RequestLeave, OriginalDate: "2024-03-13",
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := f.svc.AdminDecide(f.ownerID, req.ID, uuid.New(), true)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusApproved {
		t.Errorf("status = %s, want approved", got.Status)
	}
	want := key(f.empA.ID, "2024-03-13")
	if len(f.roster.leaveCalls) != 1 || f.roster.leaveCalls[0] != want {
		t.Errorf("leave calls = %v, want [%s]", f.roster.leaveCalls, want)
	}
}

func TestAdminRejectLeavesRosterAlone(t *testing.T) {
	f := newFixture()
	req := makeSwap(t, f)
	if _, err := f.svc.PartnerDecide(f.ownerID, req.ID, true); err != nil {
		t.Fatal(err)
	}

	got, err := f.svc.AdminDecide(f.ownerID, req.ID, uuid.New(), false)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.StatusRejected {
		t.Errorf("status = %s, want rejected", got.Status)
	}
	if len(f.roster.swapped) != 0 || len(f.roster.leaveCalls) != 0 {
		t.Error("rejection must not mutate the roster")
	}
}

func TestAdminApproveSwapFailureKeepsRequestPending(t *testing.T) {
	f := newFixture()
	req := makeSwap(t, f)
	if _, err := f.svc.PartnerDecide(f.ownerID, req.ID, true); err != nil {
		t.Fatal(err)
	}
	f.roster.failSwap = errors.New("db down")

	if _, err := f.svc.AdminDecide(f.ownerID, req.ID, uuid.New(), true); err == nil {
		t.Fatal("want error when the grid swap fails")
	}
	after, _ := f.svc.Requests.Get(f.ownerID, req.ID)
	if after.Status != models.StatusPendingAdmin {
		t.Errorf("status after failed swap = %s, want still pending_admin", after.Status)
	}
}

func TestAdminDecideRequiresPendingAdmin(t *testing.T) {
	f := newFixture()
	req := makeSwap(t, f) // still pending_partner
	if _, err := f.svc.AdminDecide(f.ownerID, req.ID, uuid.New(), true); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}
}
