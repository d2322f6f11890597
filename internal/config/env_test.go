package config

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// mockNetAddr — мок-реализация интерфейса AddrSetter для тестирования.
type mockNetAddr struct {
	setValue string // Последнее установленное значение
	err      error  // Ошибка, которую нужно вернуть при вызове Set
}

func (m *mockNetAddr) Set(val string) error {
	m.setValue = val
	return m.err
}

// TestEnvServer тестирует установку адреса из переменной окружения.
func TestEnvServer(t *testing.T) {
	tests := []struct {
		name      string // Название теста
		envValue  string // Значение переменной окружения
		setErr    error  // Ошибка, которую должен вернуть Set
		expectErr bool   // Ожидается ли ошибка
		expectSet string // Ожидаемое переданное в Set значение
	}{
		{"valid address", "localhost:9000", nil, false, "localhost:9000"},
		{"Set returns error", "invalid", fmt.Errorf("bad addr"), true, "invalid"},
		{"env var not set", "", nil, false, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ADDR_ENV", tt.envValue)

			mockAddr := &mockNetAddr{err: tt.setErr}
			err := EnvServer(mockAddr, "ADDR_ENV")
			if tt.expectErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.expectSet, mockAddr.setValue)
		})
	}
}

// TestEnvOrFlag проверяет приоритет переменной окружения над значением флага.
func TestEnvOrFlag(t *testing.T) {
	tests := []struct {
		name      string
		envValue  string
		flagValue string
		expected  string
	}{
		{"env wins", "/etc/rhq.properties", "rhq.properties", "/etc/rhq.properties"},
		{"empty env falls back to flag", "", "rhq.properties", "rhq.properties"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_RHQ_CONFIG", tt.envValue)
			require.Equal(t, tt.expected, EnvOrFlag("TEST_RHQ_CONFIG", tt.flagValue))
		})
	}
}
