package rhq

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalHost(t *testing.T) {
	hostname, osLabel := LocalHost(nil)(context.Background())
	require.NotEmpty(t, hostname)
	require.NotEmpty(t, osLabel)
}
