package service

import (
	"net/http"

	"github.com/RoGogDBD/ticket-monitor/internal/config"
	"github.com/RoGogDBD/ticket-monitor/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter создает и настраивает HTTP-роутер демо-приложения.
//
// Параметры:
//   - h: обработчик запросов (handler.Handler)
//   - gatherer: источник метрик для /metrics; nil — эндпоинт не регистрируется
//   - logger: логгер для логирования запросов
//
// Возвращает:
//   - *chi.Mux: настроенный роутер
func NewRouter(h *handler.Handler, gatherer prometheus.Gatherer, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)         // Добавляет уникальный идентификатор запроса
	r.Use(middleware.RealIP)            // Определяет реальный IP клиента
	r.Use(config.RequestLogger(logger)) // Логирует запросы с помощью zap
	r.Use(middleware.Recoverer)         // Восстанавливает после паники
	r.Use(middleware.Compress(5))       // Сжимает ответы

	r.Post("/bookings", h.HandleCreateBooking)
	r.Get("/ping", h.HandlePing)

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
