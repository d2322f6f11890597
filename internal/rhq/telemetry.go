package rhq

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK        = "ok"
	outcomeTransport = "transport_error"
	outcomeProtocol  = "protocol_error"
)

// Telemetry считает запросы к серверу мониторинга и отброшенные отправки.
//
// Методы безопасны для nil-получателя.
type Telemetry struct {
	requests *prometheus.CounterVec
	dropped  prometheus.Counter
}

// NewTelemetry создаёт счётчики и регистрирует их в reg (если reg не nil).
func NewTelemetry(reg prometheus.Registerer) (*Telemetry, error) {
	t := &Telemetry{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rhq",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "Requests sent to the monitoring server by method and outcome.",
		}, []string{"method", "outcome"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rhq",
			Subsystem: "client",
			Name:      "dropped_submissions_total",
			Help:      "Metric submissions dropped because the task queue was full or closed.",
		}),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{t.requests, t.dropped} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

func (t *Telemetry) observe(method string, err error) {
	if t == nil {
		return
	}
	outcome := outcomeOK
	switch {
	case err == nil:
	case errors.Is(err, ErrProtocol):
		outcome = outcomeProtocol
	default:
		outcome = outcomeTransport
	}
	t.requests.WithLabelValues(method, outcome).Inc()
}

func (t *Telemetry) droppedSubmission() {
	if t == nil {
		return
	}
	t.dropped.Inc()
}
