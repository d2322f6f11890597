// Package rhq реализует клиент, отправляющий метрики приложения на сервер
// мониторинга RHQ по REST/JSON.
//
// При старте клиент создаёт на сервере ресурс платформы и ресурс приложения,
// сообщает о доступности приложения и далее отправляет метрики в фоне.
// Любые ошибки сервера приводят лишь к записи в лог: телеметрия не должна
// влиять на работу основного приложения.
package rhq

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	models "github.com/RoGogDBD/ticket-monitor/internal/model"
	"github.com/RoGogDBD/ticket-monitor/pkg/pool"
	"go.uber.org/zap"
)

// State — состояние жизненного цикла клиента.
type State int32

const (
	StateUninitialized State = iota
	StateInitializing
	StateDisabled
	StateEnabled
	StateShuttingDown
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateDisabled:
		return "disabled"
	case StateEnabled:
		return "enabled"
	case StateShuttingDown:
		return "shutting-down"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

const (
	defaultWorkers = 2
	defaultQueue   = 64
)

// ConfigLoader загружает конфигурацию клиента.
type ConfigLoader interface {
	Load() (models.ClientConfig, error)
}

// Option настраивает Client.
type Option func(*Client)

// WithRequester подменяет транспорт, создаваемый по конфигурации.
func WithRequester(r Requester) Option {
	return func(c *Client) { c.requester = r }
}

// WithHostIdentity задаёт источник имени хоста и метки ОС.
func WithHostIdentity(h HostIdentity) Option {
	return func(c *Client) { c.host = h }
}

// WithTelemetry подключает счётчики запросов.
func WithTelemetry(t *Telemetry) Option {
	return func(c *Client) { c.telemetry = t }
}

// WithClock задаёт источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// Client — единственный на процесс клиент сервера мониторинга.
//
// Конфигурация и идентификаторы ресурсов записываются один раз в Initialize
// и дальше только читаются, поэтому отчёты защищены проверкой состояния, а не мьютексом.
type Client struct {
	logger    *zap.Logger
	requester Requester
	registry  *Registry
	tasks     *pool.Pool
	host      HostIdentity
	telemetry *Telemetry
	now       func() time.Time

	state     atomic.Int32
	lastSince atomic.Int64
}

// New создаёт клиента в состоянии StateUninitialized.
func New(logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.host == nil {
		c.host = LocalHost(logger)
	}
	return c
}

// State возвращает текущее состояние клиента.
func (c *Client) State() State {
	return State(c.state.Load())
}

// Handle возвращает идентификаторы ресурсов, полученные при инициализации.
func (c *Client) Handle() Handle {
	if c.registry == nil {
		return Handle{}
	}
	return c.registry.Handle()
}

// Initialize загружает конфигурацию и, если отправка включена, создаёт ресурсы
// на сервере и сообщает о доступности приложения.
//
// Выполняется один раз; повторные вызовы игнорируются. Неудачное создание
// ресурсов не считается фатальным: клиент всё равно переходит в StateEnabled,
// а отчёты адресуются нулевому идентификатору.
func (c *Client) Initialize(ctx context.Context, loader ConfigLoader) {
	if !c.state.CompareAndSwap(int32(StateUninitialized), int32(StateInitializing)) {
		c.logger.Warn("Monitoring client is already initialized", zap.Stringer("state", c.State()))
		return
	}

	cfg, err := loader.Load()
	if err != nil {
		c.logger.Info("Could not load monitoring configuration. Reporting will be disabled", zap.Error(err))
		c.state.Store(int32(StateDisabled))
		return
	}
	if !cfg.Enabled {
		c.logger.Info("Reporting to the monitoring server is disabled")
		c.state.Store(int32(StateDisabled))
		return
	}

	if c.requester == nil {
		c.requester = NewTransport(cfg, c.logger, c.telemetry)
	}
	c.registry = NewRegistry(c.requester, c.logger)

	workers, queue := cfg.Workers, cfg.Queue
	if workers <= 0 {
		workers = defaultWorkers
	}
	if queue <= 0 {
		queue = defaultQueue
	}
	c.tasks = pool.New(workers, queue, c.logger)

	hostname, osLabel := c.host(ctx)
	platformID, err := c.registry.EnsurePlatform(ctx, hostname, osLabel)
	if err != nil {
		c.logger.Info("Was not able to contact the monitoring server. Reporting will be disabled", zap.Error(err))
	}
	if _, err := c.registry.EnsureApplication(ctx, platformID, cfg.App); err != nil {
		c.logger.Info("Was not able to create the application resource", zap.Error(err))
	}

	c.sendAvailability(ctx, true)
	c.state.Store(int32(StateEnabled))

	h := c.registry.Handle()
	c.logger.Info("Monitoring client initialized",
		zap.String("server", cfg.BaseURL),
		zap.Int("platform_id", h.PlatformID),
		zap.Int("application_id", h.ApplicationID),
	)
}

// ReportMetrics отправляет выборку одним POST-запросом в фоне.
//
// Ничего не делает, если клиент не в StateEnabled. Не блокирует вызывающего:
// при заполненной очереди отправка отбрасывается. Ошибки только логируются.
func (c *Client) ReportMetrics(samples []models.MetricSample) {
	if c.State() != StateEnabled || len(samples) == 0 {
		return
	}

	body := models.NewRawMetrics(samples)
	path := fmt.Sprintf("/metric/data/raw/%d", c.registry.Handle().ApplicationID)

	submitted := c.tasks.Submit(func() {
		err := c.requester.Do(context.Background(), Call{
			Method: http.MethodPost,
			Path:   path,
			Body:   body,
		})
		if err != nil {
			c.logger.Debug("Failed to report metrics", zap.Int("count", len(body)), zap.Error(err))
		}
	})
	if !submitted {
		c.telemetry.droppedSubmission()
		c.logger.Warn("Metrics submission dropped", zap.Int("count", len(body)))
	}
}

// ReportAvailability сообщает серверу, работает ли приложение.
//
// Выполняется синхронно и только в StateEnabled.
func (c *Client) ReportAvailability(ctx context.Context, isUp bool) {
	if c.State() != StateEnabled {
		return
	}
	c.sendAvailability(ctx, isUp)
}

// Shutdown сообщает о недоступности приложения, если клиент был включён,
// и останавливает фоновые отправки, не дожидаясь их завершения.
func (c *Client) Shutdown(ctx context.Context) {
	switch s := c.State(); s {
	case StateEnabled:
		if !c.state.CompareAndSwap(int32(StateEnabled), int32(StateShuttingDown)) {
			return
		}
		c.logger.Info("Shutting down monitoring client")
		c.sendAvailability(ctx, false)
		c.tasks.Close()
		c.state.Store(int32(StateTerminated))
	case StateUninitialized, StateDisabled:
		c.state.CompareAndSwap(int32(s), int32(StateTerminated))
	}
}

func (c *Client) sendAvailability(ctx context.Context, isUp bool) {
	kind := models.AvailabilityDown
	if isUp {
		kind = models.AvailabilityUp
	}
	resourceID := c.registry.Handle().ApplicationID

	err := c.requester.Do(ctx, Call{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/resource/%d/availability", resourceID),
		Body: models.Availability{
			Since:      c.since(),
			Type:       kind,
			ResourceID: resourceID,
		},
	})
	if err != nil {
		c.logger.Debug("Failed to report availability", zap.String("type", kind), zap.Error(err))
	}
}

// since возвращает текущее время в миллисекундах, не меньшее предыдущего значения.
func (c *Client) since() int64 {
	now := c.now().UnixMilli()
	for {
		last := c.lastSince.Load()
		if now < last {
			now = last
		}
		if c.lastSince.CompareAndSwap(last, now) {
			return now
		}
	}
}
