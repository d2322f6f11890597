package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResourceID_UnmarshalJSON_TableDriven(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  ResourceID
		expectErr bool
	}{
		{"string id", `{"resourceId":"10001"}`, 10001, false},
		{"numeric id", `{"resourceId":42}`, 42, false},
		{"null id", `{"resourceId":null}`, 0, false},
		{"missing id", `{}`, 0, false},
		{"garbage id", `{"resourceId":"abc"}`, 0, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var ref ResourceRef
			err := json.Unmarshal([]byte(tt.input), &ref)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, ref.ResourceID)
		})
	}
}

func TestNewRawMetrics_PreservesOrder(t *testing.T) {
	samples := []MetricSample{
		NewMetricSample("tickets", 3, 2),
		NewMetricSample("price", 1, 99.9),
		NewMetricSample("tickets", 2, 1),
	}

	raw := NewRawMetrics(samples)
	require.Len(t, raw, len(samples))
	for i, s := range samples {
		require.Equal(t, s.Name(), raw[i].Metric)
		require.Equal(t, s.Timestamp(), raw[i].Timestamp)
		require.Equal(t, s.Value(), raw[i].Value)
	}

	body, err := json.Marshal(raw[:1])
	require.NoError(t, err)
	require.JSONEq(t, `[{"timestamp":3,"value":2,"metric":"tickets"}]`, string(body))
}

func TestAvailability_UntilIsNull(t *testing.T) {
	body, err := json.Marshal(Availability{Since: 10, Type: AvailabilityUp, ResourceID: 5})
	require.NoError(t, err)
	require.JSONEq(t, `{"since":10,"type":"UP","until":null,"resourceId":5}`, string(body))
}

func TestBooking_TotalTicketPrice(t *testing.T) {
	b := Booking{Tickets: []Ticket{{Price: 10.25}, {Price: 20}, {Price: 0.75}}}
	require.InDelta(t, 31.0, b.TotalTicketPrice(), 1e-9)
	require.Zero(t, Booking{}.TotalTicketPrice())
}
