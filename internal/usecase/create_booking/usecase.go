package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumea-app/SBM-ClientCore/internal/domain"
	"github.com/lumea-app/SBM-ClientCore/internal/integrations/backend"
	"github.com/lumea-app/SBM-ClientCore/internal/slots"
	"github.com/lumea-app/SBM-ClientCore/pkg/types"
)

// UseCase use case для создания бронирования.
// Все проверки здесь предварительные: сервер повторяет их и остаётся
// последней инстанцией, локальный отказ лишь экономит сетевой запрос.
type UseCase struct {
	gateway      Gateway
	invalidator  Invalidator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(gateway Gateway, invalidator Invalidator, logger Logger) *UseCase {
	return &UseCase{
		gateway:      gateway,
		invalidator:  invalidator,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, actor domain.Identity, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CreateBooking: actor=%s, salon=%s, service=%s, date=%s, time=%s",
		actor.ID, req.SalonID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Создавать бронирования может только клиент
	if !domain.CanCreate(actor.Role) {
		uc.logger.Warn("CreateBooking: role %s cannot create bookings", actor.Role)
		return nil, fmt.Errorf("%w: role %s cannot create bookings", ErrAccessDenied, actor.Role)
	}

	// 3. Дата не должна быть в прошлом
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Получаем салон со справочными данными
	salon, err := uc.gateway.GetSalon(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			uc.logger.Warn("CreateBooking: salon id=%s not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateBooking: failed to get salon id=%s: %v", req.SalonID, err)
		return nil, err
	}

	// 5. Проверяем существование услуги
	service := salon.FindService(req.ServiceID)
	if service == nil {
		uc.logger.Warn("CreateBooking: service id=%s not found in salon id=%s", req.ServiceID, req.SalonID)
		return nil, ErrServiceNotFound
	}

	// 6. Салон должен работать в указанную дату
	schedule := salon.WorkingHours.ForDate(req.Date)
	if !schedule.IsOpen {
		uc.logger.Warn("CreateBooking: salon id=%s is closed on %s", req.SalonID, req.Date.Format(domain.DateFormat))
		return nil, ErrSalonClosed
	}

	// 7. Услуга целиком помещается в рабочие часы
	if err := validateFitsWorkingHours(req.StartTime, service.DurationMinutes, schedule); err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		return nil, err
	}

	// 8. Отправляем запрос на сервер
	created, err := uc.gateway.CreateBooking(ctx, backend.CreateBookingRequest{
		SalonID:   req.SalonID,
		ServiceID: req.ServiceID,
		Date:      req.Date.Format(domain.DateFormat),
		StartTime: string(req.StartTime),
		Notes:     req.Notes,
	})
	if err != nil {
		uc.logger.Error("CreateBooking: backend request failed: %v", err)
		return nil, err
	}

	// 9. Сбрасываем кэшированные списки, затронутые новым бронированием
	uc.invalidator.Invalidate(created)

	uc.logger.Info("CreateBooking: successfully created booking id=%s, status=%s", created.ID, created.Status)
	return created, nil
}

// validateFitsWorkingHours проверяет, что услуга начинается не раньше открытия
// и заканчивается не позже закрытия. Окончание ровно в момент закрытия допустимо.
func validateFitsWorkingHours(startTime types.TimeString, durationMinutes int, schedule domain.DaySchedule) error {
	if startTime.IsBefore(schedule.OpenTime) {
		return fmt.Errorf("%w: starts at %s before opening %s", ErrOutsideWorkingHours, startTime, schedule.OpenTime)
	}

	endTime, err := slots.ComputeEndTime(startTime, durationMinutes)
	if err != nil {
		if errors.Is(err, slots.ErrEndsAfterMidnight) {
			return fmt.Errorf("%w: service ends after midnight", ErrOutsideWorkingHours)
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if endTime.IsAfter(schedule.CloseTime) {
		return fmt.Errorf("%w: ends at %s after closing %s", ErrOutsideWorkingHours, endTime, schedule.CloseTime)
	}

	return nil
}
