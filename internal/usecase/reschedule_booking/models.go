package reschedule_booking

import (
	"time"

	"github.com/lumea-app/SBM-ClientCore/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID    string           // ID переносимого бронирования
	NewDate      time.Time        // Новая дата (без времени)
	NewStartTime types.TimeString // Новое время начала
}
