package backend

import (
	"fmt"
	"time"

	"github.com/lumea-app/SBM-ClientCore/internal/domain"
	"github.com/lumea-app/SBM-ClientCore/pkg/types"
)

// RegisterRequest запрос регистрации
type RegisterRequest struct {
	Firstname string `json:"firstname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// RegisterResponse ответ регистрации. Токен опционален - часть инсталляций
// требует входа после регистрации.
type RegisterResponse struct {
	Message string  `json:"message"`
	User    UserDTO `json:"user"`
	Token   *string `json:"token,omitempty"`
}

// LoginRequest запрос входа
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse ответ входа
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// ForgotPasswordRequest запрос восстановления пароля
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest запрос сброса пароля по коду из письма
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// MessageResponse ответ с человекочитаемым сообщением
type MessageResponse struct {
	Message string `json:"message"`
}

// UserDTO модель пользователя на проводе
type UserDTO struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// ToIdentity конвертирует UserDTO в доменную идентичность
func (u UserDTO) ToIdentity() (domain.Identity, error) {
	role := domain.Role(u.Role)
	if !role.IsValid() {
		return domain.Identity{}, fmt.Errorf("%w: unknown role %q", ErrInvalidResponse, u.Role)
	}
	return domain.Identity{
		ID:        u.ID,
		Firstname: u.Firstname,
		Email:     u.Email,
		Role:      role,
	}, nil
}

// DayScheduleDTO расписание одного дня на проводе; nil = салон закрыт
type DayScheduleDTO struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// SalonDTO модель салона на проводе
type SalonDTO struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	Address      string                     `json:"address"`
	Phone        string                     `json:"phone"`
	Email        string                     `json:"email"`
	Rating       float64                    `json:"rating"`
	WorkingHours map[string]*DayScheduleDTO `json:"workingHours,omitempty"`
	Services     []ServiceDTO               `json:"services,omitempty"`
}

// ServiceDTO модель услуги на проводе
type ServiceDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// BookingDTO модель бронирования на проводе
type BookingDTO struct {
	ID          string  `json:"id"`
	CustomerID  string  `json:"customerId"`
	SalonID     string  `json:"salonId"`
	ServiceID   string  `json:"serviceId"`
	BookingDate string  `json:"bookingDate"` // "2025-10-15"
	StartTime   string  `json:"startTime"`   // "14:00"
	EndTime     string  `json:"endTime"`     // "14:30"
	Status      string  `json:"status"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
	UpdatedAt   string  `json:"updatedAt,omitempty"`
}

// CreateBookingRequest запрос создания бронирования
type CreateBookingRequest struct {
	SalonID   string  `json:"salonId"`
	ServiceID string  `json:"serviceId"`
	Date      string  `json:"bookingDate"` // "2025-10-15"
	StartTime string  `json:"startTime"`   // "14:00"
	Notes     *string `json:"notes,omitempty"`
}

// RescheduleBookingRequest запрос переноса бронирования
type RescheduleBookingRequest struct {
	NewDate      string `json:"newBookingDate"`
	NewStartTime string `json:"newStartTime"`
}

// RejectBookingRequest запрос отказа с причиной
type RejectBookingRequest struct {
	RejectionReason string `json:"rejectionReason"`
}

// bookingEnvelope конверт ответа с одним бронированием
type bookingEnvelope struct {
	Booking BookingDTO `json:"booking"`
}

// bookingListEnvelope конверт ответа со списком бронирований
type bookingListEnvelope struct {
	Bookings []BookingDTO `json:"bookings"`
}

// salonListEnvelope конверт ответа со списком салонов
type salonListEnvelope struct {
	Salons []SalonDTO `json:"salons"`
}

// servicesEnvelope конверт ответа со списком услуг
type servicesEnvelope struct {
	Services []ServiceDTO `json:"services"`
}

// workingHoursEnvelope конверт ответа с расписанием работы
type workingHoursEnvelope struct {
	WorkingHours map[string]*DayScheduleDTO `json:"workingHours"`
}

// errorEnvelope тело ответа об ошибке
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// wireWeekdays соответствие ключей расписания дням недели
var wireWeekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// toDomainWorkingHours конвертирует расписание с провода в доменную модель
func toDomainWorkingHours(wire map[string]*DayScheduleDTO) (domain.WorkingHours, error) {
	hours := make(domain.WorkingHours, len(wire))
	for key, day := range wire {
		weekday, ok := wireWeekdays[key]
		if !ok {
			return nil, fmt.Errorf("%w: unknown weekday %q", ErrInvalidResponse, key)
		}
		if day == nil {
			hours[weekday] = domain.DaySchedule{IsOpen: false}
			continue
		}

		open, err := types.NewTimeStringFromString(day.Open)
		if err != nil {
			return nil, fmt.Errorf("%w: %s open time: %v", ErrInvalidResponse, key, err)
		}
		closeTime, err := types.NewTimeStringFromString(day.Close)
		if err != nil {
			return nil, fmt.Errorf("%w: %s close time: %v", ErrInvalidResponse, key, err)
		}

		hours[weekday] = domain.DaySchedule{IsOpen: true, OpenTime: open, CloseTime: closeTime}
	}
	return hours, nil
}

// ToDomain конвертирует SalonDTO в доменную модель
func (s SalonDTO) ToDomain() (*domain.Salon, error) {
	hours, err := toDomainWorkingHours(s.WorkingHours)
	if err != nil {
		return nil, err
	}

	services := make([]domain.Service, 0, len(s.Services))
	for _, svc := range s.Services {
		services = append(services, svc.ToDomain())
	}

	return &domain.Salon{
		ID:           s.ID,
		Name:         s.Name,
		Address:      s.Address,
		Phone:        s.Phone,
		Email:        s.Email,
		Rating:       s.Rating,
		WorkingHours: hours,
		Services:     services,
	}, nil
}

// ToDomain конвертирует ServiceDTO в доменную модель
func (s ServiceDTO) ToDomain() domain.Service {
	return domain.Service{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
	}
}

// ToDomain конвертирует BookingDTO в доменную модель
func (b BookingDTO) ToDomain() (*domain.Booking, error) {
	date, err := time.Parse(domain.DateFormat, b.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: booking date %q: %v", ErrInvalidResponse, b.BookingDate, err)
	}

	startTime, err := types.NewTimeStringFromString(b.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: booking start time: %v", ErrInvalidResponse, err)
	}
	endTime, err := types.NewTimeStringFromString(b.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: booking end time: %v", ErrInvalidResponse, err)
	}

	status := domain.BookingStatus(b.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown booking status %q", ErrInvalidResponse, b.Status)
	}

	booking := &domain.Booking{
		ID:         b.ID,
		CustomerID: b.CustomerID,
		SalonID:    b.SalonID,
		ServiceID:  b.ServiceID,
		Date:       date,
		StartTime:  startTime,
		EndTime:    endTime,
		Status:     status,
		Notes:      b.Notes,
	}

	if b.CreatedAt != "" {
		if createdAt, err := time.Parse(time.RFC3339, b.CreatedAt); err == nil {
			booking.CreatedAt = createdAt
		}
	}
	if b.UpdatedAt != "" {
		if updatedAt, err := time.Parse(time.RFC3339, b.UpdatedAt); err == nil {
			booking.UpdatedAt = updatedAt
		}
	}

	return booking, nil
}

// toDomainBookingList конвертирует список бронирований с провода
func toDomainBookingList(dtos []BookingDTO) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0, len(dtos))
	for _, dto := range dtos {
		booking, err := dto.ToDomain()
		if err != nil {
			return nil, err
		}
		result = append(result, booking)
	}
	return result, nil
}
