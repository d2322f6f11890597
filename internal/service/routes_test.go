package service

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RoGogDBD/ticket-monitor/internal/event"
	"github.com/RoGogDBD/ticket-monitor/internal/handler"
	"github.com/RoGogDBD/ticket-monitor/internal/rhq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewRouter_TableDriven(t *testing.T) {
	tests := []struct {
		name        string
		withMetrics bool
		method      string
		path        string
		body        []byte
		expStatus   int
	}{
		{"create booking", false, http.MethodPost, "/bookings", []byte(`{"id":"b1","tickets":[{"price":10}]}`), http.StatusCreated},
		{"reject booking", false, http.MethodPost, "/bookings", []byte(`{"id":"b1"}`), http.StatusUnprocessableEntity},
		{"ping", false, http.MethodGet, "/ping", nil, http.StatusOK},
		{"metrics disabled", false, http.MethodGet, "/metrics", nil, http.StatusNotFound},
		{"metrics enabled", true, http.MethodGet, "/metrics", nil, http.StatusOK},
		{"unknown route", false, http.MethodGet, "/nope", nil, http.StatusNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			logger := zap.NewNop()
			h := handler.NewHandler(event.NewDispatcher(logger), logger)

			var gatherer prometheus.Gatherer
			if tt.withMetrics {
				reg := prometheus.NewRegistry()
				_, err := rhq.NewTelemetry(reg)
				require.NoError(t, err)
				gatherer = reg
			}

			r := NewRouter(h, gatherer, logger)

			var body io.Reader
			if tt.body != nil {
				body = bytes.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.expStatus, w.Code)
		})
	}
}
