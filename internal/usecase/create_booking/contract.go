package create_booking

import (
	"context"
	"time"

	"github.com/lumea-app/SBM-ClientCore/internal/domain"
	"github.com/lumea-app/SBM-ClientCore/internal/integrations/backend"
)

// Gateway интерфейс backend-клиента для создания бронирования
type Gateway interface {
	GetSalon(ctx context.Context, salonID string) (*domain.Salon, error)
	CreateBooking(ctx context.Context, req backend.CreateBookingRequest) (*domain.Booking, error)
}

// Invalidator интерфейс для сброса кэшированных списков бронирований
type Invalidator interface {
	Invalidate(booking *domain.Booking)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
