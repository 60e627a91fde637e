package service

import (
	"errors"
	"fmt"
)

// Ошибки OAuth-потока. Тексты стабильны: обработчик колбэка использует их
// как машиночитаемые коды в redirect на страницу логина.
var (
	ErrNoCode              = errors.New("no_code")
	ErrTokenExchangeFailed = errors.New("token_exchange_failed")
	ErrUserInfoFailed      = errors.New("user_info_failed")
	ErrNoEmail             = errors.New("no_email")
	ErrDatabase            = errors.New("database_error")
)

// ProviderDeniedError означает, что провайдер вернул параметр error в колбэке
// (например, пользователь отклонил согласие). Code — строка ошибки провайдера,
// она передается на страницу логина как есть.
type ProviderDeniedError struct {
	Code string
}

func (e *ProviderDeniedError) Error() string {
	return fmt.Sprintf("provider returned error: %s", e.Code)
}
