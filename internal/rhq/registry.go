package rhq

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	models "github.com/RoGogDBD/ticket-monitor/internal/model"
	"go.uber.org/zap"
)

// Handle содержит идентификаторы ресурсов, по которым адресуются отчёты.
//
// Нулевое значение поля означает, что ресурс получить не удалось.
type Handle struct {
	PlatformID    int
	ApplicationID int
}

// Registry создаёт на сервере платформу и ресурс приложения и хранит их идентификаторы.
//
// Идентификаторы не сохраняются между запусками и выводятся заново при каждом старте.
type Registry struct {
	requester Requester
	logger    *zap.Logger
	handle    Handle
}

// NewRegistry создаёт Registry поверх requester.
func NewRegistry(requester Requester, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{requester: requester, logger: logger}
}

// Handle возвращает полученные идентификаторы.
func (r *Registry) Handle() Handle {
	return r.handle
}

// EnsurePlatform ищет платформу по имени хоста и создаёт её, если поиск ничего не дал.
//
// hostname — имя хоста, по которому ищется платформа.
// osLabel — отображаемое значение для новой платформы.
//
// Если не удались и поиск, и создание, возвращает 0 и ошибку, оборачивающую ErrProvisioning.
func (r *Registry) EnsurePlatform(ctx context.Context, hostname, osLabel string) (int, error) {
	var found []models.ResourceRef
	err := r.requester.Do(ctx, Call{
		Method: http.MethodGet,
		Path:   "/resource",
		Query:  map[string]string{"category": "platform", "q": hostname},
		Result: &found,
	})
	if err == nil && len(found) > 0 && found[0].ResourceID != 0 {
		r.handle.PlatformID = int(found[0].ResourceID)
		r.logger.Debug("Found platform resource",
			zap.String("hostname", hostname),
			zap.Int("platform_id", r.handle.PlatformID),
		)
		return r.handle.PlatformID, nil
	}

	var created models.ResourceRef
	err = r.requester.Do(ctx, Call{
		Method: http.MethodPost,
		Path:   "/resource/platform/" + url.PathEscape(hostname),
		Body:   models.ResourceValue{Value: osLabel},
		Result: &created,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: platform %q: %w", ErrProvisioning, hostname, err)
	}
	if created.ResourceID == 0 {
		return 0, fmt.Errorf("%w: platform %q: no resourceId in response", ErrProvisioning, hostname)
	}

	r.handle.PlatformID = int(created.ResourceID)
	r.logger.Info("Created platform resource",
		zap.String("hostname", hostname),
		zap.String("os", osLabel),
		zap.Int("platform_id", r.handle.PlatformID),
	)
	return r.handle.PlatformID, nil
}

// EnsureApplication создаёт ресурс приложения под платформой platformID.
//
// Поиск существующего ресурса не выполняется: дубликаты на сервере допускаются.
// При неудаче возвращает 0 и ошибку, оборачивающую ErrProvisioning.
func (r *Registry) EnsureApplication(ctx context.Context, platformID int, app models.AppDescriptor) (int, error) {
	var created models.ResourceRef
	err := r.requester.Do(ctx, Call{
		Method: http.MethodPost,
		Path:   "/resource/" + url.PathEscape(app.ShortName),
		Query: map[string]string{
			"plugin":   app.Plugin,
			"parentId": strconv.Itoa(platformID),
		},
		Body:   models.ResourceValue{Value: app.DisplayName},
		Result: &created,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: application %q: %w", ErrProvisioning, app.ShortName, err)
	}
	if created.ResourceID == 0 {
		return 0, fmt.Errorf("%w: application %q: no resourceId in response", ErrProvisioning, app.ShortName)
	}

	r.handle.ApplicationID = int(created.ResourceID)
	r.logger.Info("Created application resource",
		zap.String("name", app.DisplayName),
		zap.Int("platform_id", platformID),
		zap.Int("application_id", r.handle.ApplicationID),
	)
	return r.handle.ApplicationID, nil
}
