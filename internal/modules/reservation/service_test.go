package reservation

import (
	"context"
	"testing"
	"time"

	"equiplend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	if args.Error(0) == nil {
		r.ID = 100
	}
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListByRequester(ctx context.Context, requesterID int64) ([]domain.Reservation, error) {
	args := m.Called(ctx, requesterID)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Approve(ctx context.Context, id, staffID int64, at time.Time) (*domain.Reservation, error) {
	args := m.Called(ctx, id, staffID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Reject(ctx context.Context, id, staffID int64, at time.Time) (*domain.Reservation, error) {
	args := m.Called(ctx, id, staffID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

type MockEquipmentLookup struct {
	mock.Mock
}

func (m *MockEquipmentLookup) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

type MockGate struct {
	mock.Mock
}

func (m *MockGate) Require(ctx context.Context, actorID int64, allowed ...domain.Role) (*domain.Actor, error) {
	args := m.Called(ctx, actorID, allowed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Actor), args.Error(1)
}

type capturePublisher struct {
	events []domain.StatusEvent
}

func (p *capturePublisher) Publish(ev domain.StatusEvent) { p.events = append(p.events, ev) }

var (
	student  = &domain.Actor{ID: 7, Role: domain.RoleStudent}
	staff    = &domain.Actor{ID: 1, Role: domain.RoleAdmin}
	clockNow = time.Date(2025, 5, 20, 15, 30, 0, 0, time.UTC)
)

type deps struct {
	repo  *MockReservationRepository
	items *MockEquipmentLookup
	gate  *MockGate
	pub   *capturePublisher
}

func newService() (*Service, deps) {
	d := deps{
		repo:  new(MockReservationRepository),
		items: new(MockEquipmentLookup),
		gate:  new(MockGate),
		pub:   &capturePublisher{},
	}
	s := NewService(d.repo, d.items, d.gate, d.pub)
	s.now = func() time.Time { return clockNow }
	return s, d
}

func TestService_Request_CreatesPending(t *testing.T) {
	ctx := context.Background()
	svc, d := newService()
	d.gate.On("Require", ctx, int64(7), mock.Anything).Return(student, nil)
	d.items.On("GetByID", ctx, int64(3)).Return(&domain.Equipment{ID: 3, Status: domain.EquipmentCheckedOut}, nil)
	d.repo.On("Create", ctx, mock.MatchedBy(func(r *domain.Reservation) bool {
		return r.Status == domain.ReservationPending && r.RequesterID == 7 &&
			r.RequestedDate.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	})).Return(nil)

	r, err := svc.Request(ctx, CreateReservationRequest{RequesterID: 7, EquipmentID: 3, RequestedDate: "2025-06-01"})

	require.NoError(t, err)
	assert.Equal(t, int64(100), r.ID)
	require.Len(t, d.pub.events, 1)
	assert.Equal(t, domain.EventReservationRequested, d.pub.events[0].Type)
	d.repo.AssertExpectations(t)
}

func TestService_Request_TodayIsAllowed(t *testing.T) {
	ctx := context.Background()
	svc, d := newService()
	d.gate.On("Require", ctx, int64(7), mock.Anything).Return(student, nil)
	d.items.On("GetByID", ctx, int64(3)).Return(&domain.Equipment{ID: 3}, nil)
	d.repo.On("Create", ctx, mock.Anything).Return(nil)

	_, err := svc.Request(ctx, CreateReservationRequest{RequesterID: 7, EquipmentID: 3, RequestedDate: "2025-05-20"})
	assert.NoError(t, err)
}

func TestService_Request_Validation(t *testing.T) {
	past := "2025-05-19"
	early := "2025-05-31"
	cases := map[string]CreateReservationRequest{
		"missing date":          {RequesterID: 7, EquipmentID: 3},
		"malformed date":        {RequesterID: 7, EquipmentID: 3, RequestedDate: "06/01/2025"},
		"date in past":          {RequesterID: 7, EquipmentID: 3, RequestedDate: past},
		"return before request": {RequesterID: 7, EquipmentID: 3, RequestedDate: "2025-06-01", ReturnDate: &early},
		"missing equipment":     {RequesterID: 7, RequestedDate: "2025-06-01"},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			svc, d := newService()
			d.gate.On("Require", ctx, int64(7), mock.Anything).Return(student, nil)

			_, err := svc.Request(ctx, req)

			assert.ErrorIs(t, err, domain.ErrValidation)
			d.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Request_UnknownEquipment(t *testing.T) {
	ctx := context.Background()
	svc, d := newService()
	d.gate.On("Require", ctx, int64(7), mock.Anything).Return(student, nil)
	d.items.On("GetByID", ctx, int64(404)).Return(nil, domain.ErrNotFound)

	_, err := svc.Request(ctx, CreateReservationRequest{RequesterID: 7, EquipmentID: 404, RequestedDate: "2025-06-01"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Request_StaffCannotRequest(t *testing.T) {
	ctx := context.Background()
	svc, d := newService()
	d.gate.On("Require", ctx, int64(1), mock.Anything).Return(nil, domain.ErrAccessDenied)

	_, err := svc.Request(ctx, CreateReservationRequest{RequesterID: 1, EquipmentID: 3, RequestedDate: "2025-06-01"})

	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestService_ListForActor_Visibility(t *testing.T) {
	ctx := context.Background()

	svc, d := newService()
	d.gate.On("Require", ctx, int64(1), mock.Anything).Return(staff, nil)
	d.repo.On("List", ctx).Return([]domain.Reservation{{ID: 1}, {ID: 2}}, nil)
	all, err := svc.ListForActor(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	svc, d = newService()
	d.gate.On("Require", ctx, int64(7), mock.Anything).Return(student, nil)
	d.repo.On("ListByRequester", ctx, int64(7)).Return([]domain.Reservation{{ID: 2, RequesterID: 7}}, nil)
	own, err := svc.ListForActor(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, own, 1)
	d.repo.AssertNotCalled(t, "List", mock.Anything)
}

func TestService_Get_OtherRequesterDenied(t *testing.T) {
	ctx := context.Background()
	svc, d := newService()
	d.gate.On("Require", ctx, int64(7), mock.Anything).Return(student, nil)
	d.repo.On("GetByID", ctx, int64(5)).Return(&domain.Reservation{ID: 5, RequesterID: 8}, nil)

	_, err := svc.Get(ctx, 7, 5)

	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestService_Decide_Approve(t *testing.T) {
	ctx := context.Background()
	svc, d := newService()
	d.gate.On("Require", ctx, int64(1), mock.Anything).Return(staff, nil)
	d.repo.On("Approve", ctx, int64(5), int64(1), clockNow).
		Return(&domain.Reservation{ID: 5, EquipmentID: 3, Status: domain.ReservationApproved}, nil)

	r, err := svc.Decide(ctx, 5, domain.DecisionApprove, 1)

	require.NoError(t, err)
	assert.Equal(t, domain.ReservationApproved, r.Status)
	require.Len(t, d.pub.events, 1)
	assert.Equal(t, string(domain.EquipmentReserved), d.pub.events[0].Status)
	d.repo.AssertNotCalled(t, "Reject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Decide_RejectLeavesEquipment(t *testing.T) {
	ctx := context.Background()
	svc, d := newService()
	d.gate.On("Require", ctx, int64(1), mock.Anything).Return(staff, nil)
	d.repo.On("Reject", ctx, int64(5), int64(1), clockNow).
		Return(&domain.Reservation{ID: 5, Status: domain.ReservationRejected}, nil)

	r, err := svc.Decide(ctx, 5, domain.DecisionReject, 1)

	require.NoError(t, err)
	assert.Equal(t, domain.ReservationRejected, r.Status)
	assert.Empty(t, d.pub.events[0].Status)
	d.repo.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Decide_ConflictPublishesNothing(t *testing.T) {
	ctx := context.Background()
	svc, d := newService()
	d.gate.On("Require", ctx, int64(1), mock.Anything).Return(staff, nil)
	d.repo.On("Approve", ctx, int64(5), int64(1), clockNow).Return(nil, domain.ErrConflict)

	_, err := svc.Decide(ctx, 5, domain.DecisionApprove, 1)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, d.pub.events)
}

func TestService_Decide_RequesterDenied(t *testing.T) {
	ctx := context.Background()
	svc, d := newService()
	d.gate.On("Require", ctx, int64(7), mock.Anything).Return(nil, domain.ErrAccessDenied)

	_, err := svc.Decide(ctx, 5, domain.DecisionApprove, 7)

	assert.ErrorIs(t, err, domain.ErrAccessDenied)
	d.repo.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Decide_UnknownDecision(t *testing.T) {
	ctx := context.Background()
	svc, d := newService()
	d.gate.On("Require", ctx, int64(1), mock.Anything).Return(staff, nil)

	_, err := svc.Decide(ctx, 5, domain.Decision("maybe"), 1)

	assert.ErrorIs(t, err, domain.ErrValidation)
}
