package session

import "errors"

var (
	// ErrInvalidCredential возвращается при попытке входа с пустым токеном или идентичностью
	ErrInvalidCredential = errors.New("credential token and identity are required")

	// ErrInternal возвращается при внутренних ошибках хранилища
	ErrInternal = errors.New("session store: internal error")
)
