package reschedule_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lumea-app/SBM-ClientCore/internal/domain"
	"github.com/lumea-app/SBM-ClientCore/internal/integrations/backend"
	"github.com/lumea-app/SBM-ClientCore/pkg/logger"
	"github.com/lumea-app/SBM-ClientCore/pkg/types"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) GetSalon(ctx context.Context, salonID string) (*domain.Salon, error) {
	args := m.Called(ctx, salonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salon), args.Error(1)
}

func (m *mockGateway) RescheduleBooking(ctx context.Context, bookingID string, req backend.RescheduleBookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type mockInvalidator struct {
	mock.Mock
}

func (m *mockInvalidator) Invalidate(booking *domain.Booking) {
	m.Called(booking)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

func testSalon() *domain.Salon {
	return &domain.Salon{
		ID: "s-1",
		WorkingHours: domain.WorkingHours{
			time.Wednesday: {IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
		},
		Services: []domain.Service{
			{ID: "svc-1", Name: "Haircut", DurationMinutes: 30, Price: 45},
		},
	}
}

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         "b-1",
		CustomerID: "u-1",
		SalonID:    "s-1",
		ServiceID:  "svc-1",
		Date:       time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:  "14:00",
		EndTime:    "14:30",
		Status:     status,
	}
}

func newUseCase(gw *mockGateway, inv *mockInvalidator) *UseCase {
	return NewUseCase(gw, inv, logger.NewNop()).
		WithTimeProvider(&fixedTime{now: time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)})
}

func customer() domain.Identity {
	return domain.Identity{ID: "u-1", Role: domain.RoleCustomer}
}

// 2025-10-22 - среда
func validRequest() *Request {
	return &Request{
		BookingID:    "b-1",
		NewDate:      time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC),
		NewStartTime: types.TimeString("15:00"),
	}
}

func TestExecute_ConfirmedStaysConfirmed(t *testing.T) {
	gw := new(mockGateway)
	inv := new(mockInvalidator)
	uc := newUseCase(gw, inv)

	updated := testBooking(domain.StatusConfirmed)
	updated.Date = time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)
	updated.StartTime = "15:00"
	updated.EndTime = "15:30"

	gw.On("GetSalon", mock.Anything, "s-1").Return(testSalon(), nil)
	gw.On("RescheduleBooking", mock.Anything, "b-1", backend.RescheduleBookingRequest{
		NewDate:      "2025-10-22",
		NewStartTime: "15:00",
	}).Return(updated, nil)
	inv.On("Invalidate", updated).Return()

	result, err := uc.Execute(context.Background(), customer(), testBooking(domain.StatusConfirmed), validRequest())

	require.NoError(t, err)
	// перенос сохраняет статус
	assert.Equal(t, domain.StatusConfirmed, result.Status)
	assert.Equal(t, types.TimeString("15:00"), result.StartTime)
	gw.AssertExpectations(t)
	inv.AssertExpectations(t)
}

func TestExecute_LocalGuardRejectsWithoutNetwork(t *testing.T) {
	cases := []struct {
		name   string
		actor  domain.Identity
		status domain.BookingStatus
	}{
		{"cancelled booking", customer(), domain.StatusCancelled},
		{"rejected booking", customer(), domain.StatusRejected},
		{"completed booking", customer(), domain.StatusCompleted},
		{"owner cannot reschedule", domain.Identity{ID: "o-1", Role: domain.RoleSalonOwner}, domain.StatusPending},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			gw := new(mockGateway)
			uc := newUseCase(gw, new(mockInvalidator))

			_, err := uc.Execute(context.Background(), tt.actor, testBooking(tt.status), validRequest())

			assert.ErrorIs(t, err, ErrTransitionNotAllowed)
			gw.AssertNotCalled(t, "GetSalon", mock.Anything, mock.Anything)
			gw.AssertNotCalled(t, "RescheduleBooking", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_DateInPast(t *testing.T) {
	gw := new(mockGateway)
	uc := newUseCase(gw, new(mockInvalidator))

	req := validRequest()
	req.NewDate = time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), customer(), testBooking(domain.StatusPending), req)

	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_NewSlotOutsideWorkingHours(t *testing.T) {
	gw := new(mockGateway)
	uc := newUseCase(gw, new(mockInvalidator))

	gw.On("GetSalon", mock.Anything, "s-1").Return(testSalon(), nil)

	req := validRequest()
	req.NewStartTime = "17:45" // окончание 18:15 позже закрытия

	_, err := uc.Execute(context.Background(), customer(), testBooking(domain.StatusPending), req)

	assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	gw.AssertNotCalled(t, "RescheduleBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_ClosedDay(t *testing.T) {
	gw := new(mockGateway)
	uc := newUseCase(gw, new(mockInvalidator))

	gw.On("GetSalon", mock.Anything, "s-1").Return(testSalon(), nil)

	req := validRequest()
	req.NewDate = time.Date(2025, 10, 26, 0, 0, 0, 0, time.UTC) // воскресенье

	_, err := uc.Execute(context.Background(), customer(), testBooking(domain.StatusPending), req)

	assert.ErrorIs(t, err, ErrSalonClosed)
}

func TestExecute_ConflictInvalidatesCache(t *testing.T) {
	gw := new(mockGateway)
	inv := new(mockInvalidator)
	uc := newUseCase(gw, inv)

	booking := testBooking(domain.StatusPending)
	conflict := fmt.Errorf("%w: slot already taken", backend.ErrConflict)

	gw.On("GetSalon", mock.Anything, "s-1").Return(testSalon(), nil)
	gw.On("RescheduleBooking", mock.Anything, "b-1", mock.Anything).Return(nil, conflict)
	inv.On("Invalidate", booking).Return()

	_, err := uc.Execute(context.Background(), customer(), booking, validRequest())

	assert.ErrorIs(t, err, backend.ErrConflict)
	inv.AssertExpectations(t)
}
