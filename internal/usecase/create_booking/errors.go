package create_booking

import "errors"

var (
	// ErrAccessDenied возвращается, когда роль актора не позволяет создавать бронирования
	ErrAccessDenied = errors.New("create_booking: access denied")

	// ErrSalonNotFound возвращается, когда салон не найден
	ErrSalonNotFound = errors.New("create_booking: salon not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в салоне
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSalonClosed возвращается, когда салон закрыт в указанную дату
	ErrSalonClosed = errors.New("create_booking: salon is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда услуга не помещается в рабочие часы
	ErrOutsideWorkingHours = errors.New("create_booking: slot is outside working hours")

	// ErrNotesTooLong возвращается при превышении допустимой длины заметок
	ErrNotesTooLong = errors.New("create_booking: notes are too long")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
