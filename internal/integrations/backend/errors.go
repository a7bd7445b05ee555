package backend

import "errors"

var (
	// ErrNetworkUnreachable возвращается, когда ответ от сервера не получен.
	// Автоматических повторов нет - повтор инициирует пользователь.
	ErrNetworkUnreachable = errors.New("backend unreachable")

	// ErrUnauthorized возвращается при ответе 401.
	// Клиент при этом выполняет неявный выход из сессии.
	ErrUnauthorized = errors.New("credential rejected by backend")

	// ErrValidation возвращается при 4xx с сообщением валидации от сервера.
	// Сообщение сервера показывается пользователю дословно.
	ErrValidation = errors.New("request rejected by backend validation")

	// ErrConflict возвращается, когда сервер отклонил переход, разрешённый
	// локальной проверкой. Клиент перечитывает состояние, а не спорит.
	ErrConflict = errors.New("transition rejected by backend")

	// ErrNotFound возвращается, когда запрошенный объект не существует
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidResponse возвращается при некорректном ответе сервера
	ErrInvalidResponse = errors.New("backend client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("backend client: internal error")
)
