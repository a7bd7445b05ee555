package stubapi

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumea-app/SBM-ClientCore/internal/domain"
	"github.com/lumea-app/SBM-ClientCore/internal/integrations/backend"
	"github.com/lumea-app/SBM-ClientCore/pkg/logger"
)

// tokenHolder минимальный источник токена для клиента
type tokenHolder struct {
	mu    sync.Mutex
	token string
}

func (h *tokenHolder) Token() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.token, h.token != ""
}

func (h *tokenHolder) set(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = token
}

func (h *tokenHolder) HandleUnauthorized() {
	h.set("")
}

// newTestClient поднимает стаб и настоящий backend-клиент поверх него
func newTestClient(t *testing.T) (*backend.Client, *tokenHolder) {
	t.Helper()

	server := httptest.NewServer(NewServer(logger.NewNop()).Handler())
	t.Cleanup(server.Close)

	holder := &tokenHolder{}
	client := backend.NewClient(server.URL, 5*time.Second, holder, holder, logger.NewNop())
	return client, holder
}

func login(t *testing.T, client *backend.Client, holder *tokenHolder, email string) domain.Identity {
	t.Helper()

	cred, err := client.Login(context.Background(), email, SeedPassword)
	require.NoError(t, err)
	holder.set(cred.Token)
	return cred.Identity
}

func TestLoginWithSeededUsers(t *testing.T) {
	client, _ := newTestClient(t)

	cred, err := client.Login(context.Background(), SeedCustomerEmail, SeedPassword)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, cred.Identity.Role)
	assert.NotEmpty(t, cred.Token)

	_, err = client.Login(context.Background(), SeedCustomerEmail, "wrong-password")
	assert.ErrorIs(t, err, backend.ErrUnauthorized)
}

func TestRegisterThenLogin(t *testing.T) {
	client, _ := newTestClient(t)

	resp, err := client.Register(context.Background(), backend.RegisterRequest{
		Firstname: "Nora",
		Email:     "nora@example.com",
		Password:  "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleCustomer), resp.User.Role)

	// повторная регистрация на тот же email отклоняется
	_, err = client.Register(context.Background(), backend.RegisterRequest{
		Firstname: "Nora",
		Email:     "nora@example.com",
		Password:  "s3cret",
	})
	assert.ErrorIs(t, err, backend.ErrConflict)

	cred, err := client.Login(context.Background(), "nora@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "Nora", cred.Identity.Firstname)
}

func TestSalonCatalog(t *testing.T) {
	client, _ := newTestClient(t)

	salons, err := client.ListSalons(context.Background())
	require.NoError(t, err)
	require.Len(t, salons, 2)

	salon, err := client.GetSalon(context.Background(), SeedSalonID)
	require.NoError(t, err)
	assert.Equal(t, "Lumea Downtown", salon.Name)
	assert.NotNil(t, salon.FindService("svc-haircut"))

	hours, err := client.GetWorkingHours(context.Background(), SeedSalonID)
	require.NoError(t, err)
	assert.True(t, hours[time.Monday].IsOpen)
	assert.False(t, hours[time.Sunday].IsOpen)

	services, err := client.GetServices(context.Background(), SeedSalonID)
	require.NoError(t, err)
	assert.Len(t, services, 3)

	_, err = client.GetSalon(context.Background(), "missing")
	assert.ErrorIs(t, err, backend.ErrNotFound)
}

// 2031-06-02 - понедельник, заведомо в будущем
const testDate = "2031-06-02"

func createTestBooking(t *testing.T, client *backend.Client, startTime string) *domain.Booking {
	t.Helper()

	booking, err := client.CreateBooking(context.Background(), backend.CreateBookingRequest{
		SalonID:   SeedSalonID,
		ServiceID: "svc-haircut",
		Date:      testDate,
		StartTime: startTime,
	})
	require.NoError(t, err)
	return booking
}

func TestBookingLifecycle(t *testing.T) {
	client, holder := newTestClient(t)
	login(t, client, holder, SeedCustomerEmail)

	booking := createTestBooking(t, client, "14:00")
	assert.Equal(t, domain.StatusPending, booking.Status)
	assert.Equal(t, "14:30", string(booking.EndTime))

	history, err := client.CustomerBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)

	// владелец салона подтверждает запись
	login(t, client, holder, SeedOwnerEmail)

	salonBookings, err := client.SalonBookings(context.Background(), SeedSalonID)
	require.NoError(t, err)
	require.Len(t, salonBookings, 1)

	approved, err := client.ApproveBooking(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, approved.Status)

	// повторное подтверждение отклоняется как конфликт
	_, err = client.ApproveBooking(context.Background(), booking.ID)
	assert.ErrorIs(t, err, backend.ErrConflict)

	// клиент отменяет подтверждённую запись
	login(t, client, holder, SeedCustomerEmail)

	cancelled, err := client.CancelBooking(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	// отмена отменённой записи - конфликт
	_, err = client.CancelBooking(context.Background(), booking.ID)
	assert.ErrorIs(t, err, backend.ErrConflict)
}

func TestCreateBookingConflictsAndValidation(t *testing.T) {
	client, holder := newTestClient(t)
	login(t, client, holder, SeedCustomerEmail)

	createTestBooking(t, client, "14:00")

	// тот же слот занят
	_, err := client.CreateBooking(context.Background(), backend.CreateBookingRequest{
		SalonID:   SeedSalonID,
		ServiceID: "svc-haircut",
		Date:      testDate,
		StartTime: "14:00",
	})
	assert.ErrorIs(t, err, backend.ErrConflict)

	// воскресенье - салон закрыт
	_, err = client.CreateBooking(context.Background(), backend.CreateBookingRequest{
		SalonID:   SeedSalonID,
		ServiceID: "svc-haircut",
		Date:      "2031-06-01",
		StartTime: "14:00",
	})
	assert.ErrorIs(t, err, backend.ErrValidation)

	// слот выходит за рабочие часы
	_, err = client.CreateBooking(context.Background(), backend.CreateBookingRequest{
		SalonID:   SeedSalonID,
		ServiceID: "svc-coloring",
		Date:      testDate,
		StartTime: "17:00",
	})
	assert.ErrorIs(t, err, backend.ErrValidation)
}

func TestRescheduleKeepsStatus(t *testing.T) {
	client, holder := newTestClient(t)
	login(t, client, holder, SeedCustomerEmail)

	booking := createTestBooking(t, client, "14:00")
	createTestBooking(t, client, "15:00")

	// перенос на занятый слот - конфликт
	_, err := client.RescheduleBooking(context.Background(), booking.ID, backend.RescheduleBookingRequest{
		NewDate:      testDate,
		NewStartTime: "15:00",
	})
	assert.ErrorIs(t, err, backend.ErrConflict)

	// перенос на свой же слот допустим
	moved, err := client.RescheduleBooking(context.Background(), booking.ID, backend.RescheduleBookingRequest{
		NewDate:      testDate,
		NewStartTime: "16:00",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, moved.Status)
	assert.Equal(t, "16:00", string(moved.StartTime))
	assert.Equal(t, "16:30", string(moved.EndTime))
}

func TestRejectBookingWithDefaultReason(t *testing.T) {
	client, holder := newTestClient(t)
	login(t, client, holder, SeedCustomerEmail)
	booking := createTestBooking(t, client, "14:00")

	login(t, client, holder, SeedOwnerEmail)

	rejected, err := client.RejectBooking(context.Background(), booking.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, rejected.Status)
}

func TestModerationRequiresOwnSalon(t *testing.T) {
	client, holder := newTestClient(t)
	login(t, client, holder, SeedCustomerEmail)
	booking := createTestBooking(t, client, "14:00")

	// клиент не может подтверждать записи
	_, err := client.ApproveBooking(context.Background(), booking.ID)
	assert.ErrorIs(t, err, backend.ErrValidation)

	// админ управляет любым салоном
	login(t, client, holder, SeedAdminEmail)
	approved, err := client.ApproveBooking(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, approved.Status)
}

func TestUnauthorizedRequestsAreRejected(t *testing.T) {
	client, holder := newTestClient(t)

	_, err := client.CustomerBookings(context.Background())
	assert.ErrorIs(t, err, backend.ErrUnauthorized)

	// протухший токен отклоняется и сбрасывается обработчиком 401
	holder.set("stale-token")
	_, err = client.CustomerBookings(context.Background())
	assert.ErrorIs(t, err, backend.ErrUnauthorized)

	_, ok := holder.Token()
	assert.False(t, ok)
}

func TestLogoutRevokesToken(t *testing.T) {
	client, holder := newTestClient(t)
	login(t, client, holder, SeedCustomerEmail)

	require.NoError(t, client.Logout(context.Background()))

	// токен отозван сервером, следующий запрос получает 401
	_, err := client.CustomerBookings(context.Background())
	assert.ErrorIs(t, err, backend.ErrUnauthorized)
}

func TestPasswordResetFlow(t *testing.T) {
	client, _ := newTestClient(t)

	// существование email не раскрывается
	resp, err := client.ForgotPassword(context.Background(), "unknown@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Message)

	_, err = client.ForgotPassword(context.Background(), SeedCustomerEmail)
	require.NoError(t, err)

	// неверный код отклоняется
	_, err = client.ResetPassword(context.Background(), backend.ResetPasswordRequest{
		Email:       SeedCustomerEmail,
		Token:       "wrong-token",
		NewPassword: "new-password",
	})
	assert.ErrorIs(t, err, backend.ErrValidation)
}
