package domain

import (
	"time"

	"github.com/lumea-app/SBM-ClientCore/pkg/types"
)

// Service услуга салона.
// Справочные данные, клиент их никогда не изменяет.
type Service struct {
	ID              string
	Name            string
	DurationMinutes int
	Price           float64
}

// DaySchedule расписание работы салона на один день недели
type DaySchedule struct {
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// WorkingHours расписание работы салона по дням недели
type WorkingHours map[time.Weekday]DaySchedule

// ForDate возвращает расписание на день недели указанной даты.
// Для дня без записи в расписании салон считается закрытым.
func (w WorkingHours) ForDate(date time.Time) DaySchedule {
	schedule, ok := w[date.Weekday()]
	if !ok {
		return DaySchedule{IsOpen: false}
	}
	return schedule
}

// Salon салон в маркетплейсе
type Salon struct {
	ID           string
	Name         string
	Address      string
	Phone        string
	Email        string
	Rating       float64
	WorkingHours WorkingHours
	Services     []Service
}

// FindService ищет услугу салона по ID, возвращает nil если не найдена
func (s *Salon) FindService(serviceID string) *Service {
	for i := range s.Services {
		if s.Services[i].ID == serviceID {
			return &s.Services[i]
		}
	}
	return nil
}
