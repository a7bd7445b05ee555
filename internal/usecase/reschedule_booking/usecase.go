package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lumea-app/SBM-ClientCore/internal/domain"
	"github.com/lumea-app/SBM-ClientCore/internal/integrations/backend"
	"github.com/lumea-app/SBM-ClientCore/internal/slots"
	"github.com/lumea-app/SBM-ClientCore/pkg/types"
)

// UseCase use case для переноса бронирования.
// Перенос сохраняет текущий статус: подтверждённая запись после переноса
// остаётся подтверждённой, решение о новой модерации принимает сервер.
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

// Execute выполняет use case переноса бронирования
func (uc *UseCase) Execute(ctx context.Context, actor domain.Identity, booking *domain.Booking, req *Request) (*domain.Booking, error) {
	if booking == nil {
		return nil, fmt.Errorf("%w: booking is required", ErrInvalidInput)
	}

	uc.logger.Info("RescheduleBooking: actor=%s, booking=%s, status=%s, newDate=%s, newTime=%s",
		actor.ID, booking.ID, booking.Status, req.NewDate.Format(domain.DateFormat), req.NewStartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Локальная проверка перехода по таблице
	if !domain.ValidTransition(actor.Role, domain.ActionReschedule, booking.Status) {
		uc.logger.Warn("RescheduleBooking: reschedule by %s from status %s rejected locally",
			actor.Role, booking.Status)
		return nil, fmt.Errorf("%w: reschedule by %s from status %s",
			ErrTransitionNotAllowed, actor.Role, booking.Status)
	}

	// 3. Новая дата не должна быть в прошлом
	now := uc.timeProvider.Now()
	if isDateInPast(req.NewDate, now) {
		uc.logger.Warn("RescheduleBooking: date %s is in the past", req.NewDate.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Новый слот должен помещаться в рабочие часы салона
	salon, err := uc.gateway.GetSalon(ctx, booking.SalonID)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			uc.logger.Warn("RescheduleBooking: salon id=%s not found", booking.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("RescheduleBooking: failed to get salon id=%s: %v", booking.SalonID, err)
		return nil, err
	}

	service := salon.FindService(booking.ServiceID)
	if service == nil {
		uc.logger.Warn("RescheduleBooking: service id=%s not found in salon id=%s",
			booking.ServiceID, booking.SalonID)
		return nil, ErrServiceNotFound
	}

	schedule := salon.WorkingHours.ForDate(req.NewDate)
	if !schedule.IsOpen {
		uc.logger.Warn("RescheduleBooking: salon id=%s is closed on %s",
			booking.SalonID, req.NewDate.Format(domain.DateFormat))
		return nil, ErrSalonClosed
	}

	if err := validateFitsWorkingHours(req.NewStartTime, service.DurationMinutes, schedule); err != nil {
		uc.logger.Warn("RescheduleBooking: slot validation failed: %v", err)
		return nil, err
	}

	// 5. Отправляем запрос на сервер
	updated, err := uc.gateway.RescheduleBooking(ctx, booking.ID, backend.RescheduleBookingRequest{
		NewDate:      req.NewDate.Format(domain.DateFormat),
		NewStartTime: string(req.NewStartTime),
	})
	if err != nil {
		if errors.Is(err, backend.ErrConflict) {
			// слот уже занят или запись изменена другой стороной,
			// кэш сбрасывается и состояние перечитывается
			uc.logger.Warn("RescheduleBooking: backend refused reschedule for booking=%s, reconciling: %v",
				booking.ID, err)
			uc.invalidator.Invalidate(booking)
		}
		return nil, err
	}

	// 6. Сбрасываем кэшированные списки
	uc.invalidator.Invalidate(updated)

	uc.logger.Info("RescheduleBooking: booking=%s moved to %s %s, status=%s",
		updated.ID, updated.Date.Format(domain.DateFormat), updated.StartTime, updated.Status)
	return updated, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.BookingID == "" {
		return fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}

	if req.NewStartTime.IsZero() {
		return fmt.Errorf("%w: newStartTime is required", ErrInvalidInput)
	}

	if err := req.NewStartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid newStartTime format: %v", ErrInvalidInput, err)
	}

	return nil
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

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
