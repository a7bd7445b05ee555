package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/lumea-app/SBM-ClientCore/internal/domain"
	"github.com/lumea-app/SBM-ClientCore/internal/integrations/backend"
)

// Service контроллер жизненного цикла бронирований.
// Проверяет переходы по таблице до отправки запроса (быстрый локальный отказ),
// но окончательное слово остаётся за сервером: его отказ принимается как
// авторитетный, кэш сбрасывается и состояние перечитывается.
type Service struct {
	gateway Gateway
	cache   *listCache
	logger  Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(gateway Gateway, logger Logger) *Service {
	return &Service{
		gateway: gateway,
		cache:   newListCache(),
		logger:  logger,
	}
}

// TransitionRequest параметры запроса перехода статуса
type TransitionRequest struct {
	Action domain.Action
	Reason string // причина для reject, опциональна
}

// RequestTransition выполняет переход статуса бронирования от имени актора.
// Действия вне таблицы переходов отклоняются локально без обращения к серверу.
func (s *Service) RequestTransition(ctx context.Context, actor domain.Identity, booking *domain.Booking, req TransitionRequest) (*domain.Booking, error) {
	if booking == nil {
		return nil, fmt.Errorf("%w: booking is required", ErrInvalidInput)
	}

	s.logger.Info("RequestTransition: action=%s, booking=%s, status=%s, actor=%s, role=%s",
		req.Action, booking.ID, booking.Status, actor.ID, actor.Role)

	switch req.Action {
	case domain.ActionCancel, domain.ActionApprove, domain.ActionReject:
		// переходы, выполняемые этим сервисом
	case domain.ActionCreate, domain.ActionReschedule:
		// у создания и переноса собственные сценарии с дополнительной валидацией
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAction, req.Action)
	default:
		s.logger.Warn("RequestTransition: unknown action %q rejected locally", req.Action)
		return nil, fmt.Errorf("%w: unknown action %q", ErrTransitionNotAllowed, req.Action)
	}

	if !domain.ValidTransition(actor.Role, req.Action, booking.Status) {
		s.logger.Warn("RequestTransition: %s by %s from status %s rejected locally",
			req.Action, actor.Role, booking.Status)
		return nil, fmt.Errorf("%w: %s by %s from status %s",
			ErrTransitionNotAllowed, req.Action, actor.Role, booking.Status)
	}

	var (
		updated *domain.Booking
		err     error
	)

	switch req.Action {
	case domain.ActionCancel:
		updated, err = s.gateway.CancelBooking(ctx, booking.ID)
	case domain.ActionApprove:
		updated, err = s.gateway.ApproveBooking(ctx, booking.ID)
	case domain.ActionReject:
		updated, err = s.gateway.RejectBooking(ctx, booking.ID, req.Reason)
	}

	if err != nil {
		if errors.Is(err, backend.ErrConflict) {
			// сервер отклонил локально разрешённый переход - например, другая
			// сторона уже отменила запись. Кэш сбрасывается, состояние перечитывается.
			s.logger.Warn("RequestTransition: backend refused %s for booking=%s, reconciling: %v",
				req.Action, booking.ID, err)
			s.Invalidate(booking)
		}
		return nil, err
	}

	s.logger.Info("RequestTransition: booking=%s %s -> %s", booking.ID, booking.Status, updated.Status)
	s.Invalidate(booking)
	return updated, nil
}

// History возвращает историю бронирований пользователя.
// Список кэшируется до первой инвалидации.
func (s *Service) History(ctx context.Context, actor domain.Identity) ([]*domain.Booking, error) {
	if actor.Role != domain.RoleCustomer {
		return nil, fmt.Errorf("%w: booking history is a customer surface", ErrAccessDenied)
	}

	key := customerKey(actor.ID)
	if list, ok := s.cache.get(key); ok {
		s.logger.Info("History: cache hit for user=%s (%d bookings)", actor.ID, len(list))
		return list, nil
	}

	list, err := s.gateway.CustomerBookings(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.put(key, list)
	s.logger.Info("History: fetched %d bookings for user=%s", len(list), actor.ID)
	return list, nil
}

// SalonBookings возвращает бронирования салона для его владельца
func (s *Service) SalonBookings(ctx context.Context, actor domain.Identity, salonID string) ([]*domain.Booking, error) {
	if actor.Role != domain.RoleSalonOwner && actor.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: salon bookings are a back-office surface", ErrAccessDenied)
	}
	if salonID == "" {
		return nil, fmt.Errorf("%w: salonID is required", ErrInvalidInput)
	}

	key := salonKey(salonID)
	if list, ok := s.cache.get(key); ok {
		s.logger.Info("SalonBookings: cache hit for salon=%s (%d bookings)", salonID, len(list))
		return list, nil
	}

	list, err := s.gateway.SalonBookings(ctx, salonID)
	if err != nil {
		return nil, err
	}

	s.cache.put(key, list)
	s.logger.Info("SalonBookings: fetched %d bookings for salon=%s", len(list), salonID)
	return list, nil
}

// Invalidate сбрасывает кэшированные списки, затронутые бронированием.
// Вызывается после каждого успешного изменения, включая create и reschedule.
func (s *Service) Invalidate(booking *domain.Booking) {
	if booking == nil {
		return
	}
	s.cache.invalidate(customerKey(booking.CustomerID), salonKey(booking.SalonID))
}
