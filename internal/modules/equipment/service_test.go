package equipment

import (
	"context"
	"testing"
	"time"

	"equiplend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEquipmentRepository struct {
	mock.Mock
}

func (m *MockEquipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	args := m.Called(ctx, e)
	if args.Error(0) == nil {
		e.ID = 11
	}
	return args.Error(0)
}

func (m *MockEquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) List(ctx context.Context, f domain.EquipmentFilter) ([]domain.Equipment, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEquipmentRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
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
	staff   = &domain.Actor{ID: 1, Role: domain.RoleMediaStaff}
	fixedAt = time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC)
)

func newService(repo *MockEquipmentRepository, gate *MockGate, pub Publisher) *Service {
	s := NewService(repo, gate, pub)
	s.now = func() time.Time { return fixedAt }
	return s
}

func TestService_Create_ForcesAvailable(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEquipmentRepository)
	gate := new(MockGate)
	pub := &capturePublisher{}
	svc := newService(repo, gate, pub)

	gate.On("Require", ctx, int64(1), mock.Anything).Return(staff, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(e *domain.Equipment) bool {
		return e.Name == "Sony A7" && e.Condition == domain.ConditionGood && e.Status == domain.EquipmentAvailable
	})).Return(nil)

	e, err := svc.Create(ctx, 1, CreateEquipmentRequest{Name: "  Sony A7 ", Category: "camera", Condition: "Good"})

	require.NoError(t, err)
	assert.Equal(t, int64(11), e.ID)
	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.EventEquipmentChanged, pub.events[0].Type)
	repo.AssertExpectations(t)
}

func TestService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	cases := map[string]CreateEquipmentRequest{
		"missing name":      {Category: "camera", Condition: "good"},
		"blank category":    {Name: "Tripod", Category: "   ", Condition: "good"},
		"unknown condition": {Name: "Tripod", Category: "support", Condition: "mint"},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			repo := new(MockEquipmentRepository)
			gate := new(MockGate)
			gate.On("Require", ctx, int64(1), mock.Anything).Return(staff, nil)

			_, err := newService(repo, gate, nil).Create(ctx, 1, req)

			assert.ErrorIs(t, err, domain.ErrValidation)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Create_RequesterDenied(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEquipmentRepository)
	gate := new(MockGate)
	gate.On("Require", ctx, int64(5), mock.Anything).Return(nil, domain.ErrAccessDenied)

	_, err := newService(repo, gate, nil).Create(ctx, 5, CreateEquipmentRequest{Name: "x", Category: "y", Condition: "good"})

	assert.ErrorIs(t, err, domain.ErrAccessDenied)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Update_AllowsStatusOverride(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEquipmentRepository)
	gate := new(MockGate)
	gate.On("Require", ctx, int64(1), mock.Anything).Return(staff, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(e *domain.Equipment) bool {
		return e.ID == 3 && e.Status == domain.EquipmentCheckedOut && e.Condition == domain.ConditionPoor
	})).Return(nil)

	e, err := newService(repo, gate, nil).Update(ctx, 1, 3, UpdateEquipmentRequest{
		Name: "Mic", Category: "audio", Condition: "poor", Status: "Checked Out",
	})

	require.NoError(t, err)
	assert.Equal(t, fixedAt, e.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestService_Update_UnknownStatus(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEquipmentRepository)
	gate := new(MockGate)
	gate.On("Require", ctx, int64(1), mock.Anything).Return(staff, nil)

	_, err := newService(repo, gate, nil).Update(ctx, 1, 3, UpdateEquipmentRequest{
		Name: "Mic", Category: "audio", Condition: "good", Status: "lost",
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Delete_PropagatesConflict(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEquipmentRepository)
	gate := new(MockGate)
	pub := &capturePublisher{}
	gate.On("Require", ctx, int64(1), mock.Anything).Return(staff, nil)
	repo.On("Delete", ctx, int64(9)).Return(domain.ErrConflict)

	err := newService(repo, gate, pub).Delete(ctx, 1, 9)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, pub.events)
}

func TestService_Delete_PublishesOnSuccess(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEquipmentRepository)
	gate := new(MockGate)
	pub := &capturePublisher{}
	gate.On("Require", ctx, int64(1), mock.Anything).Return(staff, nil)
	repo.On("Delete", ctx, int64(9)).Return(nil)

	require.NoError(t, newService(repo, gate, pub).Delete(ctx, 1, 9))
	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.EventEquipmentDeleted, pub.events[0].Type)
	assert.Equal(t, int64(9), pub.events[0].EquipmentID)
}

func TestService_List_RejectsUnknownStatus(t *testing.T) {
	bad := domain.EquipmentStatus("broken")
	_, err := newService(new(MockEquipmentRepository), new(MockGate), nil).
		List(context.Background(), domain.EquipmentFilter{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_List_PassesFilter(t *testing.T) {
	ctx := context.Background()
	repo := new(MockEquipmentRepository)
	st := domain.EquipmentAvailable
	want := []domain.Equipment{{ID: 1}, {ID: 2}}
	repo.On("List", ctx, domain.EquipmentFilter{Status: &st, Category: "camera"}).Return(want, nil)

	got, err := newService(repo, new(MockGate), nil).List(ctx, domain.EquipmentFilter{Status: &st, Category: " camera "})

	require.NoError(t, err)
	assert.Equal(t, want, got)
}
