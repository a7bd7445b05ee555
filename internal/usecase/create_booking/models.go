package create_booking

import (
	"time"

	"github.com/lumea-app/SBM-ClientCore/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	SalonID   string           // ID салона
	ServiceID string           // ID услуги
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота (например, "14:00")
	Notes     *string          // Пожелания клиента (опционально)
}
