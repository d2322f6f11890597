package rhq

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
	"go.uber.org/zap"
)

// HostIdentity возвращает имя хоста и метку операционной системы.
type HostIdentity func(ctx context.Context) (hostname, osLabel string)

// LocalHost возвращает HostIdentity для текущей машины.
//
// Если имя хоста определить не удалось, используется "localhost",
// если ОС — runtime.GOOS.
func LocalHost(logger *zap.Logger) HostIdentity {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context) (string, string) {
		hostname, osLabel := "localhost", runtime.GOOS

		info, err := host.InfoWithContext(ctx)
		if err != nil {
			logger.Debug("Was not able to determine the hostname, taking localhost", zap.Error(err))
			return hostname, osLabel
		}
		if info.Hostname != "" {
			hostname = info.Hostname
		}
		if info.OS != "" {
			osLabel = info.OS
		}
		return hostname, osLabel
	}
}
