package version

import "go.uber.org/zap"

var (
	// buildVersion — версия сборки приложения.
	buildVersion string
	// buildDate — дата сборки приложения.
	buildDate string
	// buildCommit — хеш коммита сборки.
	buildCommit string
)

// Info содержит сведения о сборке; незаданные значения заменяются на "N/A".
type Info struct {
	Version string
	Date    string
	Commit  string
}

// Current возвращает сведения о текущей сборке.
func Current() Info {
	return Info{
		Version: orNA(buildVersion),
		Date:    orNA(buildDate),
		Commit:  orNA(buildCommit),
	}
}

// Log записывает сведения о сборке в лог.
func Log(logger *zap.Logger) {
	info := Current()
	logger.Info("Build info",
		zap.String("version", info.Version),
		zap.String("date", info.Date),
		zap.String("commit", info.Commit),
	)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
