package stubapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/lumea-app/SBM-ClientCore/internal/domain"
	"github.com/lumea-app/SBM-ClientCore/internal/integrations/backend"
	"github.com/lumea-app/SBM-ClientCore/internal/slots"
	"github.com/lumea-app/SBM-ClientCore/pkg/types"
)

const (
	msgBookingNotFound    = "booking not found"
	msgServiceNotFound    = "service not found"
	msgInvalidDate        = "invalid booking date, expected YYYY-MM-DD"
	msgInvalidTime        = "invalid start time, expected HH:MM"
	msgSalonClosed        = "salon is closed on this date"
	msgOutsideHours       = "slot is outside salon working hours"
	msgSlotTaken          = "time slot is already taken"
	msgNotYourBooking     = "booking belongs to another customer"
	msgCustomersOnly      = "only customers can perform this action"
	msgBackOfficeOnly     = "only salon owners can perform this action"
	msgTransitionConflict = "booking status does not allow this action"
)

// handleCreateBooking POST /api/booking
func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if user.Role != domain.RoleCustomer {
		respondForbidden(w, msgCustomersOnly)
		return
	}

	var req backend.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		s.logger.Warn("POST /booking - invalid request body: %v", err)
		respondBadRequest(w, msgInvalidRequestBody)
		return
	}

	salon, ok := s.store.salonByID(req.SalonID)
	if !ok {
		respondNotFound(w, msgSalonNotFound)
		return
	}

	service, ok := findService(salon, req.ServiceID)
	if !ok {
		respondNotFound(w, msgServiceNotFound)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		respondBadRequest(w, msgInvalidDate)
		return
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		respondBadRequest(w, msgInvalidTime)
		return
	}

	endTime, ok := s.validateSlot(w, salon, date, startTime, service.DurationMinutes)
	if !ok {
		return
	}

	if s.store.slotTaken(req.SalonID, req.Date, req.StartTime, "") {
		s.logger.Warn("POST /booking - slot %s %s taken at salon=%s", req.Date, req.StartTime, req.SalonID)
		respondConflict(w, msgSlotTaken)
		return
	}

	created := s.store.createBooking(backend.BookingDTO{
		CustomerID:  user.ID,
		SalonID:     req.SalonID,
		ServiceID:   req.ServiceID,
		BookingDate: req.Date,
		StartTime:   req.StartTime,
		EndTime:     string(endTime),
		Status:      string(domain.StatusPending),
		Notes:       req.Notes,
	})

	s.logger.Info("POST /booking - created booking id=%s for customer=%s", created.ID, user.ID)
	respondJSON(w, http.StatusCreated, map[string]interface{}{"booking": created})
}

// handleCustomerHistory GET /api/booking/customer/history
func (s *Server) handleCustomerHistory(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if user.Role != domain.RoleCustomer {
		respondForbidden(w, msgCustomersOnly)
		return
	}

	bookings := s.store.bookingsByCustomer(user.ID)
	respondJSON(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

// handleSalonBookings GET /api/booking/salon/{salonId}/bookings
func (s *Server) handleSalonBookings(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	salonID := mux.Vars(r)["salonId"]

	if !canManageSalon(user, salonID) {
		respondForbidden(w, msgBackOfficeOnly)
		return
	}

	bookings := s.store.bookingsBySalon(salonID)
	respondJSON(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

// handleCancelBooking PUT /api/booking/{bookingId}/cancel
func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	bookingID := mux.Vars(r)["bookingId"]

	booking, ok := s.store.bookingByID(bookingID)
	if !ok {
		respondNotFound(w, msgBookingNotFound)
		return
	}

	// отменить запись может её клиент либо сторона салона
	isOwner := booking.CustomerID == user.ID
	if !isOwner && !canManageSalon(user, booking.SalonID) {
		respondForbidden(w, msgNotYourBooking)
		return
	}

	if !activeStatus(booking.Status) {
		s.logger.Warn("PUT /booking/%s/cancel - refused from status %s", bookingID, booking.Status)
		respondConflict(w, msgTransitionConflict)
		return
	}

	updated, _ := s.store.updateBooking(bookingID, func(record *bookingRecord) {
		record.Status = string(domain.StatusCancelled)
	})

	s.logger.Info("PUT /booking/%s/cancel - cancelled by %s", bookingID, user.ID)
	respondJSON(w, http.StatusOK, map[string]interface{}{"booking": updated})
}

// handleRescheduleBooking PUT /api/booking/{bookingId}/reschedule
func (s *Server) handleRescheduleBooking(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	bookingID := mux.Vars(r)["bookingId"]

	var req backend.RescheduleBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, ok := s.store.bookingByID(bookingID)
	if !ok {
		respondNotFound(w, msgBookingNotFound)
		return
	}

	if booking.CustomerID != user.ID {
		respondForbidden(w, msgNotYourBooking)
		return
	}

	if !activeStatus(booking.Status) {
		s.logger.Warn("PUT /booking/%s/reschedule - refused from status %s", bookingID, booking.Status)
		respondConflict(w, msgTransitionConflict)
		return
	}

	salon, ok := s.store.salonByID(booking.SalonID)
	if !ok {
		respondInternalError(w)
		return
	}
	service, ok := findService(salon, booking.ServiceID)
	if !ok {
		respondInternalError(w)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.NewDate)
	if err != nil {
		respondBadRequest(w, msgInvalidDate)
		return
	}

	startTime, err := types.NewTimeStringFromString(req.NewStartTime)
	if err != nil {
		respondBadRequest(w, msgInvalidTime)
		return
	}

	endTime, ok := s.validateSlot(w, salon, date, startTime, service.DurationMinutes)
	if !ok {
		return
	}

	if s.store.slotTaken(booking.SalonID, req.NewDate, req.NewStartTime, bookingID) {
		s.logger.Warn("PUT /booking/%s/reschedule - slot %s %s taken", bookingID, req.NewDate, req.NewStartTime)
		respondConflict(w, msgSlotTaken)
		return
	}

	// перенос сохраняет текущий статус записи
	updated, _ := s.store.updateBooking(bookingID, func(record *bookingRecord) {
		record.BookingDate = req.NewDate
		record.StartTime = req.NewStartTime
		record.EndTime = string(endTime)
	})

	s.logger.Info("PUT /booking/%s/reschedule - moved to %s %s", bookingID, req.NewDate, req.NewStartTime)
	respondJSON(w, http.StatusOK, map[string]interface{}{"booking": updated})
}

// handleApproveBooking PUT /api/booking/{bookingId}/approve
func (s *Server) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	s.resolveModeration(w, r, domain.StatusConfirmed, "")
}

// handleRejectBooking PUT /api/booking/{bookingId}/reject
func (s *Server) handleRejectBooking(w http.ResponseWriter, r *http.Request) {
	var req backend.RejectBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.RejectionReason == "" {
		req.RejectionReason = domain.DefaultRejectionReason
	}

	s.resolveModeration(w, r, domain.StatusRejected, req.RejectionReason)
}

// resolveModeration общий путь approve и reject: оба допустимы
// только стороной салона и только из статуса pending
func (s *Server) resolveModeration(w http.ResponseWriter, r *http.Request, target domain.BookingStatus, reason string) {
	user := currentUser(r)
	bookingID := mux.Vars(r)["bookingId"]

	booking, ok := s.store.bookingByID(bookingID)
	if !ok {
		respondNotFound(w, msgBookingNotFound)
		return
	}

	if !canManageSalon(user, booking.SalonID) {
		respondForbidden(w, msgBackOfficeOnly)
		return
	}

	if booking.Status != string(domain.StatusPending) {
		s.logger.Warn("PUT /booking/%s - %s refused from status %s", bookingID, target, booking.Status)
		respondConflict(w, msgTransitionConflict)
		return
	}

	updated, _ := s.store.updateBooking(bookingID, func(record *bookingRecord) {
		record.Status = string(target)
		record.RejectionReason = reason
	})

	s.logger.Info("PUT /booking/%s - status set to %s by %s", bookingID, target, user.ID)
	respondJSON(w, http.StatusOK, map[string]interface{}{"booking": updated})
}

// validateSlot проверяет, что слот попадает в рабочие часы салона.
// При ошибке пишет ответ и возвращает false, иначе время окончания.
func (s *Server) validateSlot(w http.ResponseWriter, salon backend.SalonDTO, date time.Time, startTime types.TimeString, durationMinutes int) (types.TimeString, bool) {
	schedule, open := scheduleForDate(salon, date)
	if !open {
		respondBadRequest(w, msgSalonClosed)
		return "", false
	}

	endTime, err := slots.ComputeEndTime(startTime, durationMinutes)
	if err != nil {
		respondBadRequest(w, msgOutsideHours)
		return "", false
	}

	if startTime.IsBefore(types.TimeString(schedule.Open)) || endTime.IsAfter(types.TimeString(schedule.Close)) {
		respondBadRequest(w, msgOutsideHours)
		return "", false
	}

	return endTime, true
}

// scheduleForDate возвращает расписание салона на день недели даты
func scheduleForDate(salon backend.SalonDTO, date time.Time) (backend.DayScheduleDTO, bool) {
	keys := map[time.Weekday]string{
		time.Sunday:    "sunday",
		time.Monday:    "monday",
		time.Tuesday:   "tuesday",
		time.Wednesday: "wednesday",
		time.Thursday:  "thursday",
		time.Friday:    "friday",
		time.Saturday:  "saturday",
	}

	day, ok := salon.WorkingHours[keys[date.Weekday()]]
	if !ok || day == nil {
		return backend.DayScheduleDTO{}, false
	}
	return *day, true
}

// findService ищет услугу салона по ID
func findService(salon backend.SalonDTO, serviceID string) (backend.ServiceDTO, bool) {
	for _, service := range salon.Services {
		if service.ID == serviceID {
			return service, true
		}
	}
	return backend.ServiceDTO{}, false
}

// activeStatus проверяет, что статус допускает отмену или перенос
func activeStatus(status string) bool {
	return status == string(domain.StatusPending) || status == string(domain.StatusConfirmed)
}

// canManageSalon проверяет, что пользователь управляет салоном
func canManageSalon(user *userRecord, salonID string) bool {
	if user.Role == domain.RoleAdmin {
		return true
	}
	return user.Role == domain.RoleSalonOwner && user.SalonID == salonID
}
