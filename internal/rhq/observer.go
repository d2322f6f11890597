package rhq

import (
	"time"

	models "github.com/RoGogDBD/ticket-monitor/internal/model"
)

// Имена метрик, как они описаны в дескрипторе плагина TicketMonster.
const (
	MetricTickets = "tickets"
	MetricPrice   = "price"
)

// MetricsReporter принимает выборки метрик без блокировки.
type MetricsReporter interface {
	ReportMetrics(samples []models.MetricSample)
}

// BookingReporter превращает событие о созданном бронировании в метрики.
//
// Реализует models.BookingObserver.
type BookingReporter struct {
	reporter MetricsReporter
	now      func() time.Time
}

// NewBookingReporter создаёт BookingReporter, отправляющий метрики в reporter.
func NewBookingReporter(reporter MetricsReporter) *BookingReporter {
	return &BookingReporter{reporter: reporter, now: time.Now}
}

// OnBookingCreated отправляет количество билетов и общую стоимость бронирования.
func (b *BookingReporter) OnBookingCreated(booking models.Booking) {
	ts := b.now().UnixMilli()
	b.reporter.ReportMetrics([]models.MetricSample{
		models.NewMetricSample(MetricTickets, ts, float64(len(booking.Tickets))),
		models.NewMetricSample(MetricPrice, ts, booking.TotalTicketPrice()),
	})
}
