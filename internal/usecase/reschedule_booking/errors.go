package reschedule_booking

import "errors"

var (
	// ErrTransitionNotAllowed возвращается, когда перенос невозможен из текущего статуса
	ErrTransitionNotAllowed = errors.New("reschedule_booking: transition not allowed")

	// ErrSalonNotFound возвращается, когда салон бронирования не найден
	ErrSalonNotFound = errors.New("reschedule_booking: salon not found")

	// ErrServiceNotFound возвращается, когда услуга бронирования не найдена в салоне
	ErrServiceNotFound = errors.New("reschedule_booking: service not found")

	// ErrInvalidDate возвращается при новой дате в прошлом
	ErrInvalidDate = errors.New("reschedule_booking: invalid booking date")

	// ErrSalonClosed возвращается, когда салон закрыт в новую дату
	ErrSalonClosed = errors.New("reschedule_booking: salon is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда услуга не помещается в рабочие часы
	ErrOutsideWorkingHours = errors.New("reschedule_booking: slot is outside working hours")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
