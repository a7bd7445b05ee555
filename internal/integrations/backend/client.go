package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lumea-app/SBM-ClientCore/internal/domain"
)

// Client клиент backend API маркетплейса.
// Единственная точка обмена с сервером: прикладывает bearer-токен,
// транслирует статус-коды в таксономию ошибок и сообщает о 401
// хранилищу сессии. Ответы сервера считаются авторитетными.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	tokenSource  TokenSource
	unauthorized UnauthorizedHandler
	metrics      Metrics
	log          Logger
}

// NewClient создает новый экземпляр клиента backend API
func NewClient(
	baseURL string,
	timeout time.Duration,
	tokenSource TokenSource,
	unauthorized UnauthorizedHandler,
	log Logger,
) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokenSource:  tokenSource,
		unauthorized: unauthorized,
		metrics:      nopMetrics{},
		log:          log,
	}
}

// WithMetrics включает запись метрик исходящих запросов
func (c *Client) WithMetrics(m Metrics) *Client {
	c.metrics = m
	return c
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.doJSON(ctx, "register", http.MethodPost, "/api/users", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login выполняет вход и возвращает учетные данные
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Credential, error) {
	var resp LoginResponse
	err := c.doJSON(ctx, "login", http.MethodPost, "/api/users/login",
		LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	identity, err := resp.User.ToIdentity()
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("%w: login response without token", ErrInvalidResponse)
	}

	return &domain.Credential{Token: resp.Token, Identity: identity}, nil
}

// Logout сообщает серверу о выходе. Локальная очистка сессии выполняется
// вызывающим кодом независимо от результата.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, "logout", http.MethodPost, "/api/users/logout", nil, nil)
}

// ForgotPassword запрашивает письмо восстановления пароля
func (c *Client) ForgotPassword(ctx context.Context, email string) (*MessageResponse, error) {
	var resp MessageResponse
	err := c.doJSON(ctx, "forgot_password", http.MethodPost, "/api/users/forgot-password",
		ForgotPasswordRequest{Email: email}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResetPassword устанавливает новый пароль по коду из письма
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.doJSON(ctx, "reset_password", http.MethodPost, "/api/users/reset-password", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListSalons возвращает список салонов маркетплейса
func (c *Client) ListSalons(ctx context.Context) ([]*domain.Salon, error) {
	var resp salonListEnvelope
	if err := c.doJSON(ctx, "list_salons", http.MethodGet, "/api/salon", nil, &resp); err != nil {
		return nil, err
	}

	salons := make([]*domain.Salon, 0, len(resp.Salons))
	for _, dto := range resp.Salons {
		salon, err := dto.ToDomain()
		if err != nil {
			return nil, err
		}
		salons = append(salons, salon)
	}
	return salons, nil
}

// GetSalon возвращает детали салона
func (c *Client) GetSalon(ctx context.Context, salonID string) (*domain.Salon, error) {
	var resp SalonDTO
	if err := c.doJSON(ctx, "get_salon", http.MethodGet, "/api/salon/"+salonID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.ToDomain()
}

// GetWorkingHours возвращает расписание работы салона по дням недели
func (c *Client) GetWorkingHours(ctx context.Context, salonID string) (domain.WorkingHours, error) {
	var resp workingHoursEnvelope
	err := c.doJSON(ctx, "get_working_hours", http.MethodGet, "/api/salon/"+salonID+"/working-hours", nil, &resp)
	if err != nil {
		return nil, err
	}
	return toDomainWorkingHours(resp.WorkingHours)
}

// GetServices возвращает услуги салона
func (c *Client) GetServices(ctx context.Context, salonID string) ([]domain.Service, error) {
	var resp servicesEnvelope
	err := c.doJSON(ctx, "get_services", http.MethodGet, "/api/salon/"+salonID+"/services", nil, &resp)
	if err != nil {
		return nil, err
	}

	services := make([]domain.Service, 0, len(resp.Services))
	for _, dto := range resp.Services {
		services = append(services, dto.ToDomain())
	}
	return services, nil
}

// CreateBooking создает бронирование
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	var resp bookingEnvelope
	if err := c.doJSON(ctx, "create_booking", http.MethodPost, "/api/booking", req, &resp); err != nil {
		return nil, err
	}
	return resp.Booking.ToDomain()
}

// CustomerBookings возвращает историю бронирований текущего пользователя
func (c *Client) CustomerBookings(ctx context.Context) ([]*domain.Booking, error) {
	var resp bookingListEnvelope
	err := c.doJSON(ctx, "customer_bookings", http.MethodGet, "/api/booking/customer/history", nil, &resp)
	if err != nil {
		return nil, err
	}
	return toDomainBookingList(resp.Bookings)
}

// CancelBooking отменяет бронирование
func (c *Client) CancelBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	var resp bookingEnvelope
	err := c.doJSON(ctx, "cancel_booking", http.MethodPut, "/api/booking/"+bookingID+"/cancel", nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Booking.ToDomain()
}

// RescheduleBooking переносит бронирование на новую дату и время
func (c *Client) RescheduleBooking(ctx context.Context, bookingID string, req RescheduleBookingRequest) (*domain.Booking, error) {
	var resp bookingEnvelope
	err := c.doJSON(ctx, "reschedule_booking", http.MethodPut, "/api/booking/"+bookingID+"/reschedule", req, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Booking.ToDomain()
}

// ApproveBooking подтверждает бронирование (владелец салона)
func (c *Client) ApproveBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	var resp bookingEnvelope
	err := c.doJSON(ctx, "approve_booking", http.MethodPut, "/api/booking/"+bookingID+"/approve", nil, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Booking.ToDomain()
}

// RejectBooking отклоняет бронирование с причиной (владелец салона).
// Пустая причина заменяется значением по умолчанию, как в мобильном клиенте.
func (c *Client) RejectBooking(ctx context.Context, bookingID string, reason string) (*domain.Booking, error) {
	if reason == "" {
		reason = domain.DefaultRejectionReason
	}

	var resp bookingEnvelope
	err := c.doJSON(ctx, "reject_booking", http.MethodPut, "/api/booking/"+bookingID+"/reject",
		RejectBookingRequest{RejectionReason: reason}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Booking.ToDomain()
}

// SalonBookings возвращает бронирования салона (владелец салона)
func (c *Client) SalonBookings(ctx context.Context, salonID string) ([]*domain.Booking, error) {
	var resp bookingListEnvelope
	err := c.doJSON(ctx, "salon_bookings", http.MethodGet, "/api/booking/salon/"+salonID+"/bookings", nil, &resp)
	if err != nil {
		return nil, err
	}
	return toDomainBookingList(resp.Bookings)
}

// doJSON выполняет один запрос: прикладывает токен, сериализует тело,
// транслирует статус-коды в таксономию ошибок и пишет метрики.
// out == nil, когда тело успешного ответа не нужно.
func (c *Client) doJSON(ctx context.Context, operation, method, path string, body, out interface{}) error {
	started := time.Now()
	outcome, err := c.doJSONInner(ctx, method, path, body, out)
	c.metrics.ObserveRequest(operation, outcome, time.Since(started))

	if err != nil {
		c.log.Warn("%s %s - %s: %v", method, path, outcome, err)
	}
	return err
}

func (c *Client) doJSONInner(ctx context.Context, method, path string, body, out interface{}) (string, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return "error", fmt.Errorf("%w: failed to encode request body: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return "error", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.tokenSource.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// ответ не получен: транспортная ошибка, таймаут или отмена контекста
		return "network", fmt.Errorf("%w: %v", ErrNetworkUnreachable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// продолжаем обработку

	case resp.StatusCode == http.StatusUnauthorized:
		c.unauthorized.HandleUnauthorized()
		return "unauthorized", ErrUnauthorized

	case resp.StatusCode == http.StatusNotFound:
		return "not_found", fmt.Errorf("%w: %s", ErrNotFound, c.serverMessage(resp.Body))

	case resp.StatusCode == http.StatusConflict:
		return "conflict", fmt.Errorf("%w: %s", ErrConflict, c.serverMessage(resp.Body))

	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		// сообщение валидации показывается пользователю дословно
		return "validation", fmt.Errorf("%w: %s", ErrValidation, c.serverMessage(resp.Body))

	default:
		raw, _ := io.ReadAll(resp.Body)
		return "error", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	if out == nil {
		return "ok", nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return "error", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return "ok", nil
}

// serverMessage извлекает человекочитаемое сообщение из тела ошибки
func (c *Client) serverMessage(body io.Reader) string {
	var envelope errorEnvelope
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return "request failed"
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	if envelope.Error != "" {
		return envelope.Error
	}
	return "request failed"
}
