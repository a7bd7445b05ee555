package create_booking

import (
	"context"
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

func (m *mockGateway) CreateBooking(ctx context.Context, req backend.CreateBookingRequest) (*domain.Booking, error) {
	args := m.Called(ctx, req)
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
		ID:   "s-1",
		Name: "Lumea Studio",
		WorkingHours: domain.WorkingHours{
			time.Wednesday: {IsOpen: true, OpenTime: "09:00", CloseTime: "18:00"},
			// воскресенье отсутствует в расписании - салон закрыт
		},
		Services: []domain.Service{
			{ID: "svc-1", Name: "Haircut", DurationMinutes: 30, Price: 45},
			{ID: "svc-2", Name: "Full color", DurationMinutes: 180, Price: 160},
		},
	}
}

// 2025-10-15 - среда
func newUseCase(gw *mockGateway, inv *mockInvalidator) *UseCase {
	return NewUseCase(gw, inv, logger.NewNop()).
		WithTimeProvider(&fixedTime{now: time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)})
}

func validRequest() *Request {
	return &Request{
		SalonID:   "s-1",
		ServiceID: "svc-1",
		Date:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime: types.TimeString("14:00"),
	}
}

func TestExecute_Success(t *testing.T) {
	gw := new(mockGateway)
	inv := new(mockInvalidator)
	uc := newUseCase(gw, inv)

	created := &domain.Booking{
		ID:         "b-1",
		CustomerID: "u-1",
		SalonID:    "s-1",
		ServiceID:  "svc-1",
		StartTime:  "14:00",
		EndTime:    "14:30",
		Status:     domain.StatusPending,
	}

	gw.On("GetSalon", mock.Anything, "s-1").Return(testSalon(), nil)
	gw.On("CreateBooking", mock.Anything, backend.CreateBookingRequest{
		SalonID:   "s-1",
		ServiceID: "svc-1",
		Date:      "2025-10-15",
		StartTime: "14:00",
	}).Return(created, nil)
	inv.On("Invalidate", created).Return()

	result, err := uc.Execute(context.Background(), domain.Identity{ID: "u-1", Role: domain.RoleCustomer}, validRequest())

	require.NoError(t, err)
	// новое бронирование всегда начинается в статусе pending
	assert.Equal(t, domain.StatusPending, result.Status)
	assert.Equal(t, types.TimeString("14:30"), result.EndTime)
	gw.AssertExpectations(t)
	inv.AssertExpectations(t)
}

func TestExecute_OnlyCustomerCanCreate(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleSalonOwner, domain.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			gw := new(mockGateway)
			uc := newUseCase(gw, new(mockInvalidator))

			_, err := uc.Execute(context.Background(), domain.Identity{ID: "x", Role: role}, validRequest())

			assert.ErrorIs(t, err, ErrAccessDenied)
			gw.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_DateInPast(t *testing.T) {
	gw := new(mockGateway)
	uc := newUseCase(gw, new(mockInvalidator))

	req := validRequest()
	req.Date = time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), domain.Identity{ID: "u-1", Role: domain.RoleCustomer}, req)

	assert.ErrorIs(t, err, ErrInvalidDate)
	gw.AssertNotCalled(t, "GetSalon", mock.Anything, mock.Anything)
}

func TestExecute_SalonClosed(t *testing.T) {
	gw := new(mockGateway)
	uc := newUseCase(gw, new(mockInvalidator))

	gw.On("GetSalon", mock.Anything, "s-1").Return(testSalon(), nil)

	req := validRequest()
	req.Date = time.Date(2025, 10, 19, 0, 0, 0, 0, time.UTC) // воскресенье

	_, err := uc.Execute(context.Background(), domain.Identity{ID: "u-1", Role: domain.RoleCustomer}, req)

	assert.ErrorIs(t, err, ErrSalonClosed)
	gw.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	cases := []struct {
		name      string
		serviceID string
		startTime types.TimeString
	}{
		{"starts before opening", "svc-1", "08:30"},
		{"ends after closing", "svc-1", "17:45"},
		{"long service does not fit", "svc-2", "16:00"},
		{"ends after midnight", "svc-2", "23:00"},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			gw := new(mockGateway)
			uc := newUseCase(gw, new(mockInvalidator))

			gw.On("GetSalon", mock.Anything, "s-1").Return(testSalon(), nil)

			req := validRequest()
			req.ServiceID = tt.serviceID
			req.StartTime = tt.startTime

			_, err := uc.Execute(context.Background(), domain.Identity{ID: "u-1", Role: domain.RoleCustomer}, req)

			assert.ErrorIs(t, err, ErrOutsideWorkingHours)
			gw.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_EndAtClosingIsAllowed(t *testing.T) {
	gw := new(mockGateway)
	inv := new(mockInvalidator)
	uc := newUseCase(gw, inv)

	created := &domain.Booking{ID: "b-2", CustomerID: "u-1", SalonID: "s-1", Status: domain.StatusPending}

	gw.On("GetSalon", mock.Anything, "s-1").Return(testSalon(), nil)
	gw.On("CreateBooking", mock.Anything, mock.Anything).Return(created, nil)
	inv.On("Invalidate", created).Return()

	req := validRequest()
	req.StartTime = "17:30" // 30 минут, окончание ровно в 18:00

	_, err := uc.Execute(context.Background(), domain.Identity{ID: "u-1", Role: domain.RoleCustomer}, req)

	require.NoError(t, err)
	gw.AssertExpectations(t)
}

func TestExecute_SalonAndServiceNotFound(t *testing.T) {
	gw := new(mockGateway)
	uc := newUseCase(gw, new(mockInvalidator))

	gw.On("GetSalon", mock.Anything, "missing").Return(nil, backend.ErrNotFound)

	req := validRequest()
	req.SalonID = "missing"
	_, err := uc.Execute(context.Background(), domain.Identity{ID: "u-1", Role: domain.RoleCustomer}, req)
	assert.ErrorIs(t, err, ErrSalonNotFound)

	gw.On("GetSalon", mock.Anything, "s-1").Return(testSalon(), nil)

	req = validRequest()
	req.ServiceID = "svc-missing"
	_, err = uc.Execute(context.Background(), domain.Identity{ID: "u-1", Role: domain.RoleCustomer}, req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	longNotes := make([]byte, domain.MaxNotesLength+1)
	for i := range longNotes {
		longNotes[i] = 'a'
	}
	notes := string(longNotes)

	cases := []struct {
		name    string
		mutate  func(*Request)
		wantErr error
	}{
		{"empty salonID", func(r *Request) { r.SalonID = "" }, ErrInvalidInput},
		{"empty serviceID", func(r *Request) { r.ServiceID = "" }, ErrInvalidInput},
		{"zero date", func(r *Request) { r.Date = time.Time{} }, ErrInvalidInput},
		{"empty startTime", func(r *Request) { r.StartTime = "" }, ErrInvalidInput},
		{"malformed startTime", func(r *Request) { r.StartTime = "9:45" }, ErrInvalidInput},
		{"notes too long", func(r *Request) { r.Notes = &notes }, ErrNotesTooLong},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			gw := new(mockGateway)
			uc := newUseCase(gw, new(mockInvalidator))

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), domain.Identity{ID: "u-1", Role: domain.RoleCustomer}, req)

			assert.ErrorIs(t, err, tt.wantErr)
			gw.AssertNotCalled(t, "GetSalon", mock.Anything, mock.Anything)
		})
	}
}
