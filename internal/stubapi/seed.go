package stubapi

import (
	"github.com/google/uuid"

	"github.com/lumea-app/SBM-ClientCore/internal/domain"
	"github.com/lumea-app/SBM-ClientCore/internal/integrations/backend"
)

// Учетные данные предзаполненных пользователей стаба.
// Используются в интеграционных тестах и при локальной разработке.
const (
	SeedCustomerEmail = "customer@example.com"
	SeedOwnerEmail    = "owner@example.com"
	SeedAdminEmail    = "admin@example.com"
	SeedPassword      = "password123"

	SeedSalonID = "salon-lumea-downtown"
)

func weekdaySchedule(open, close string) *backend.DayScheduleDTO {
	return &backend.DayScheduleDTO{Open: open, Close: close}
}

// seed предзаполняет хранилище салонами и пользователями
func (s *store) seed() {
	owner := &userRecord{
		ID:        uuid.NewString(),
		Firstname: "Olivia",
		Email:     SeedOwnerEmail,
		Password:  SeedPassword,
		Role:      domain.RoleSalonOwner,
		SalonID:   SeedSalonID,
	}

	s.users[SeedCustomerEmail] = &userRecord{
		ID:        uuid.NewString(),
		Firstname: "Clara",
		Email:     SeedCustomerEmail,
		Password:  SeedPassword,
		Role:      domain.RoleCustomer,
	}
	s.users[SeedOwnerEmail] = owner
	s.users[SeedAdminEmail] = &userRecord{
		ID:        uuid.NewString(),
		Firstname: "Ida",
		Email:     SeedAdminEmail,
		Password:  SeedPassword,
		Role:      domain.RoleAdmin,
	}

	s.salons = []backend.SalonDTO{
		{
			ID:      SeedSalonID,
			Name:    "Lumea Downtown",
			Address: "12 Riverside Ave",
			Phone:   "+1 555 010 2030",
			Email:   "downtown@lumea.example",
			Rating:  4.8,
			WorkingHours: map[string]*backend.DayScheduleDTO{
				"monday":    weekdaySchedule("09:00", "18:00"),
				"tuesday":   weekdaySchedule("09:00", "18:00"),
				"wednesday": weekdaySchedule("09:00", "18:00"),
				"thursday":  weekdaySchedule("09:00", "20:00"),
				"friday":    weekdaySchedule("09:00", "20:00"),
				"saturday":  weekdaySchedule("10:00", "16:00"),
				"sunday":    nil, // закрыт
			},
			Services: []backend.ServiceDTO{
				{ID: "svc-haircut", Name: "Haircut", DurationMinutes: 30, Price: 45},
				{ID: "svc-coloring", Name: "Full color", DurationMinutes: 180, Price: 160},
				{ID: "svc-manicure", Name: "Manicure", DurationMinutes: 60, Price: 55},
			},
		},
		{
			ID:      "salon-lumea-harbor",
			Name:    "Lumea Harbor",
			Address: "4 Pier Street",
			Phone:   "+1 555 010 4050",
			Email:   "harbor@lumea.example",
			Rating:  4.5,
			WorkingHours: map[string]*backend.DayScheduleDTO{
				"tuesday":  weekdaySchedule("10:00", "19:00"),
				"thursday": weekdaySchedule("10:00", "19:00"),
				"saturday": weekdaySchedule("10:00", "14:00"),
			},
			Services: []backend.ServiceDTO{
				{ID: "svc-barber", Name: "Barber cut", DurationMinutes: 45, Price: 50},
			},
		},
	}
}
