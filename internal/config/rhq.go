package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	models "github.com/RoGogDBD/ticket-monitor/internal/model"
	"github.com/spf13/viper"
)

// DefaultPropertiesFile — имя файла настроек клиента мониторинга по умолчанию.
const DefaultPropertiesFile = "rhq.properties"

// ErrConfigUnavailable — файл настроек отсутствует, не читается или неполон.
var ErrConfigUnavailable = errors.New("monitoring configuration unavailable")

// Ключи настроек и их устаревшие синонимы.
const (
	keyEnabled         = "rhq.enabled"
	keyServerURL       = "rhq.server-url"
	keyUser            = "rhq.user"
	keyPassword        = "rhq.password"
	keyTimeout         = "rhq.timeout"
	keyWorkers         = "rhq.workers"
	keyQueue           = "rhq.queue"
	keyAppShortName    = "rhq.app.short-name"
	keyAppPlugin       = "rhq.app.plugin"
	keyAppDisplayName  = "rhq.app.display-name"
	legacyKeyEnabled   = "rhq.sendto.enabled"
	legacyKeyServerURL = "rhq.server.rest.url"
	legacyKeyUser      = "rhq.server.user"
	legacyKeyPassword  = "rhq.server.password"
)

// PropertiesLoader читает настройки клиента мониторинга из .properties файла.
//
// Переменные окружения RHQ_ENABLED, RHQ_SERVER_URL, RHQ_USER, RHQ_PASSWORD и т.д.
// имеют приоритет над значениями из файла.
type PropertiesLoader struct {
	Path string
}

// Load загружает и проверяет конфигурацию.
//
// Возвращает ошибку, оборачивающую ErrConfigUnavailable, если файл нельзя прочитать
// или отправка включена без адреса сервера.
func (l PropertiesLoader) Load() (models.ClientConfig, error) {
	path := l.Path
	if path == "" {
		path = DefaultPropertiesFile
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("properties")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyTimeout, 10*time.Second)
	v.SetDefault(keyWorkers, 2)
	v.SetDefault(keyQueue, 64)
	v.SetDefault(keyAppShortName, "tm")
	v.SetDefault(keyAppPlugin, "TicketMonster")
	v.SetDefault(keyAppDisplayName, "TicketMonster")

	if err := v.ReadInConfig(); err != nil {
		return models.ClientConfig{}, fmt.Errorf("%w: %s: %v", ErrConfigUnavailable, path, err)
	}

	cfg := models.ClientConfig{
		Enabled:  v.GetBool(pick(v, keyEnabled, legacyKeyEnabled)),
		BaseURL:  v.GetString(pick(v, keyServerURL, legacyKeyServerURL)),
		Username: v.GetString(pick(v, keyUser, legacyKeyUser)),
		Password: v.GetString(pick(v, keyPassword, legacyKeyPassword)),
		Timeout:  v.GetDuration(keyTimeout),
		Workers:  v.GetInt(keyWorkers),
		Queue:    v.GetInt(keyQueue),
		App: models.AppDescriptor{
			ShortName:   v.GetString(keyAppShortName),
			Plugin:      v.GetString(keyAppPlugin),
			DisplayName: v.GetString(keyAppDisplayName),
		},
	}

	if cfg.Enabled && cfg.BaseURL == "" {
		return models.ClientConfig{}, fmt.Errorf("%w: %s is required when reporting is enabled", ErrConfigUnavailable, keyServerURL)
	}
	return cfg, nil
}

// pick возвращает key, если он задан, иначе legacy.
func pick(v *viper.Viper, key, legacy string) string {
	if !v.IsSet(key) && v.IsSet(legacy) {
		return legacy
	}
	return key
}
