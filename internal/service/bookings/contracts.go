package bookings

import (
	"context"

	"github.com/lumea-app/SBM-ClientCore/internal/domain"
)

// Gateway интерфейс backend-клиента для операций над бронированиями
type Gateway interface {
	CancelBooking(ctx context.Context, bookingID string) (*domain.Booking, error)
	ApproveBooking(ctx context.Context, bookingID string) (*domain.Booking, error)
	RejectBooking(ctx context.Context, bookingID string, reason string) (*domain.Booking, error)
	CustomerBookings(ctx context.Context) ([]*domain.Booking, error)
	SalonBookings(ctx context.Context, salonID string) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
