package config

import (
	"fmt"
	"os"
)

// Имена переменных окружения приложения.
const (
	EnvAddress  = "ADDRESS"
	EnvConfig   = "RHQ_CONFIG"
	EnvLogLevel = "LOG_LEVEL"
)

// AddrSetter определяет интерфейс для установки адреса из строки.
type AddrSetter interface {
	Set(string) error
}

// EnvServer устанавливает адрес сервера из переменной окружения.
//
// Если переменная окружения с именем envKey присутствует, функция вызывает метод Set интерфейса AddrSetter
// с её значением. В случае ошибки возвращает ошибку с описанием.
func EnvServer(addr AddrSetter, envKey string) error {
	if envVal, ok := os.LookupEnv(envKey); ok && envVal != "" {
		if err := addr.Set(envVal); err != nil {
			return fmt.Errorf("invalid %s: %w", envKey, err)
		}
	}
	return nil
}

// EnvOrFlag возвращает значение переменной окружения key, а если она не задана или пуста — flagValue.
func EnvOrFlag(key, flagValue string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return flagValue
}
