package domain

import (
	"time"

	"github.com/lumea-app/SBM-ClientCore/pkg/types"
)

// BookingStatus статус бронирования
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusRejected  BookingStatus = "rejected"
)

// IsValid возвращает true для известного статуса
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// IsTerminal возвращает true для терминального статуса - дальнейшие переходы запрещены
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusRejected
}

// Booking бронирование услуги в салоне.
// EndTime всегда производное значение (StartTime + длительность услуги)
// и пересчитывается, а не редактируется независимо.
type Booking struct {
	ID         string
	CustomerID string
	SalonID    string
	ServiceID  string
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Status     BookingStatus
	Notes      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeCancelled возвращает true, если бронирование можно отменить
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeRescheduled возвращает true, если бронирование можно перенести.
// Перенос не меняет статус, поэтому допустим только из активных статусов.
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsActive возвращает true, если бронирование ещё может измениться
func (b *Booking) IsActive() bool {
	return !b.Status.IsTerminal()
}
