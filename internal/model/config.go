package models

import "time"

// ClientConfig содержит настройки клиента мониторинга.
//
// Загружается один раз при инициализации и далее не изменяется.
type ClientConfig struct {
	Enabled  bool
	BaseURL  string
	Username string
	Password string
	Timeout  time.Duration
	Workers  int
	Queue    int
	App      AppDescriptor
}

// AppDescriptor описывает ресурс отслеживаемого приложения на сервере.
//
//   - ShortName: тип ресурса в пути запроса (/resource/{ShortName})
//   - Plugin: имя плагина, к которому относится тип ресурса
//   - DisplayName: отображаемое имя ресурса
type AppDescriptor struct {
	ShortName   string
	Plugin      string
	DisplayName string
}
