package bookings

import "errors"

var (
	// ErrTransitionNotAllowed возвращается, когда действие не разрешено таблицей
	// переходов для роли и текущего статуса. Запрос к серверу не отправляется.
	ErrTransitionNotAllowed = errors.New("transition not allowed for this role and status")

	// ErrUnsupportedAction возвращается для действий, которые не выполняются
	// через переход статуса (create и reschedule имеют собственные сценарии)
	ErrUnsupportedAction = errors.New("action is not a status transition")

	// ErrAccessDenied возвращается, когда роль не может работать с этим списком
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")
)
