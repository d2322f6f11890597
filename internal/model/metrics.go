package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// AvailabilityUp и AvailabilityDown — значения поля type в отчёте о доступности ресурса.
const (
	AvailabilityUp   = "UP"
	AvailabilityDown = "DOWN"
)

// MetricSample представляет одно числовое наблюдение с именем и временем.
//
// Значение неизменяемо после создания: поля доступны только через методы.
type MetricSample struct {
	name      string
	timestamp int64
	value     float64
}

// NewMetricSample создаёт новый MetricSample.
//
// name — имя метрики, как оно описано в дескрипторе плагина на сервере.
// timestamp — время в миллисекундах с начала эпохи.
// value — числовое значение.
func NewMetricSample(name string, timestamp int64, value float64) MetricSample {
	return MetricSample{name: name, timestamp: timestamp, value: value}
}

// Name возвращает имя метрики.
func (m MetricSample) Name() string { return m.name }

// Timestamp возвращает время наблюдения в миллисекундах.
func (m MetricSample) Timestamp() int64 { return m.timestamp }

// Value возвращает значение метрики.
func (m MetricSample) Value() float64 { return m.value }

// RawMetric — элемент тела запроса POST /metric/data/raw/{resourceId}.
type RawMetric struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
	Metric    string  `json:"metric"`
}

// NewRawMetrics преобразует выборку в тело запроса, сохраняя порядок элементов.
func NewRawMetrics(samples []MetricSample) []RawMetric {
	out := make([]RawMetric, 0, len(samples))
	for _, s := range samples {
		out = append(out, RawMetric{Timestamp: s.timestamp, Value: s.value, Metric: s.name})
	}
	return out
}

// Availability — тело запроса PUT /resource/{resourceId}/availability.
//
// Until всегда сериализуется как null.
type Availability struct {
	Since      int64  `json:"since"`
	Type       string `json:"type"`
	Until      *int64 `json:"until"`
	ResourceID int    `json:"resourceId"`
}

// ResourceValue — тело запросов на создание платформы и ресурса приложения.
type ResourceValue struct {
	Value string `json:"value"`
}

// ResourceRef — ответ сервера, содержащий идентификатор ресурса.
type ResourceRef struct {
	ResourceID ResourceID `json:"resourceId"`
}

// ResourceID — идентификатор ресурса на сервере мониторинга.
//
// Сервер отдаёт его строкой ("10001"), но число тоже принимается.
type ResourceID int

// UnmarshalJSON разбирает идентификатор из строки или числа.
func (id *ResourceID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var raw json.Number
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = json.Number(s)
	} else {
		raw = json.Number(data)
	}

	n, err := strconv.Atoi(raw.String())
	if err != nil {
		return fmt.Errorf("invalid resourceId %q: %w", raw, err)
	}
	*id = ResourceID(n)
	return nil
}
