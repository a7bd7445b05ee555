package stubapi

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lumea-app/SBM-ClientCore/internal/domain"
	"github.com/lumea-app/SBM-ClientCore/internal/integrations/backend"
)

// userRecord учетная запись пользователя в памяти
type userRecord struct {
	ID         string
	Firstname  string
	Email      string
	Password   string
	Role       domain.Role
	SalonID    string // заполнен для владельцев салонов
	ResetToken string // код восстановления пароля, пуст если не запрашивался
}

// bookingRecord бронирование в памяти, хранится в wire-представлении
type bookingRecord struct {
	backend.BookingDTO
	RejectionReason string
}

// store потокобезопасное хранилище состояния стаба в памяти
type store struct {
	mu       sync.RWMutex
	users    map[string]*userRecord // ключ - email
	tokens   map[string]string      // токен -> ID пользователя
	salons   []backend.SalonDTO
	bookings map[string]*bookingRecord // ключ - ID бронирования
}

func newStore() *store {
	s := &store{
		users:    make(map[string]*userRecord),
		tokens:   make(map[string]string),
		bookings: make(map[string]*bookingRecord),
	}
	s.seed()
	return s
}

// createUser регистрирует пользователя, возвращает false при занятом email
func (s *store) createUser(firstname, email, password string) (*userRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		return nil, false
	}

	user := &userRecord{
		ID:        uuid.NewString(),
		Firstname: firstname,
		Email:     email,
		Password:  password,
		Role:      domain.RoleCustomer,
	}
	s.users[email] = user
	return user, true
}

// authenticate проверяет пару email/пароль и выдает новый токен
func (s *store) authenticate(email, password string) (*userRecord, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok || user.Password != password {
		return nil, "", false
	}

	token := uuid.NewString()
	s.tokens[token] = user.ID
	return user, token, true
}

// userByToken возвращает пользователя по bearer-токену
func (s *store) userByToken(token string) (*userRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.tokens[token]
	if !ok {
		return nil, false
	}
	for _, user := range s.users {
		if user.ID == userID {
			return user, true
		}
	}
	return nil, false
}

// revokeToken отзывает токен, повторный отзыв безопасен
func (s *store) revokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// issueResetToken генерирует код восстановления пароля.
// Для неизвестного email возвращает false, наружу это не раскрывается.
func (s *store) issueResetToken(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok {
		return "", false
	}
	user.ResetToken = uuid.NewString()
	return user.ResetToken, true
}

// resetPassword устанавливает новый пароль по коду восстановления
func (s *store) resetPassword(email, token, newPassword string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok || user.ResetToken == "" || user.ResetToken != token {
		return false
	}
	user.Password = newPassword
	user.ResetToken = ""
	return true
}

// listSalons возвращает все салоны
func (s *store) listSalons() []backend.SalonDTO {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]backend.SalonDTO, len(s.salons))
	copy(result, s.salons)
	return result
}

// salonByID ищет салон по ID
func (s *store) salonByID(salonID string) (backend.SalonDTO, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, salon := range s.salons {
		if salon.ID == salonID {
			return salon, true
		}
	}
	return backend.SalonDTO{}, false
}

// createBooking сохраняет новое бронирование
func (s *store) createBooking(dto backend.BookingDTO) backend.BookingDTO {
	s.mu.Lock()
	defer s.mu.Unlock()

	dto.ID = uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	dto.CreatedAt = now
	dto.UpdatedAt = now
	s.bookings[dto.ID] = &bookingRecord{BookingDTO: dto}
	return dto
}

// bookingByID ищет бронирование по ID
func (s *store) bookingByID(bookingID string) (backend.BookingDTO, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.bookings[bookingID]
	if !ok {
		return backend.BookingDTO{}, false
	}
	return record.BookingDTO, true
}

// updateBooking применяет изменение к бронированию под блокировкой
func (s *store) updateBooking(bookingID string, apply func(*bookingRecord)) (backend.BookingDTO, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.bookings[bookingID]
	if !ok {
		return backend.BookingDTO{}, false
	}
	apply(record)
	record.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return record.BookingDTO, true
}

// bookingsByCustomer возвращает бронирования пользователя
func (s *store) bookingsByCustomer(customerID string) []backend.BookingDTO {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]backend.BookingDTO, 0)
	for _, record := range s.bookings {
		if record.CustomerID == customerID {
			result = append(result, record.BookingDTO)
		}
	}
	return result
}

// bookingsBySalon возвращает бронирования салона
func (s *store) bookingsBySalon(salonID string) []backend.BookingDTO {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]backend.BookingDTO, 0)
	for _, record := range s.bookings {
		if record.SalonID == salonID {
			result = append(result, record.BookingDTO)
		}
	}
	return result
}

// slotTaken проверяет, занят ли слот активным бронированием.
// excludeID исключает из проверки само переносимое бронирование.
func (s *store) slotTaken(salonID, date, startTime, excludeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.bookings {
		if record.ID == excludeID {
			continue
		}
		if record.SalonID != salonID || record.BookingDate != date || record.StartTime != startTime {
			continue
		}
		status := domain.BookingStatus(record.Status)
		if status == domain.StatusPending || status == domain.StatusConfirmed {
			return true
		}
	}
	return false
}
