package rhq

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport — сервер недоступен: отказ в соединении, таймаут, ошибка DNS.
	ErrTransport = errors.New("monitoring server unreachable")
	// ErrProtocol — ответ не 2xx или тело ответа не удалось разобрать.
	ErrProtocol = errors.New("monitoring server protocol failure")
	// ErrProvisioning — не удалось получить идентификатор платформы или ресурса.
	ErrProvisioning = errors.New("resource provisioning failed")
)

// StatusError описывает ответ сервера с кодом, отличным от 2xx.
//
// Поля:
//   - Method: HTTP-метод запроса
//   - Path: путь запроса относительно базового URL
//   - StatusCode: код ответа
//   - Body: тело ответа с ошибкой (может быть пустым)
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// Unwrap позволяет сопоставлять StatusError с ErrProtocol через errors.Is.
func (e *StatusError) Unwrap() error {
	return ErrProtocol
}
