package rhq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	models "github.com/RoGogDBD/ticket-monitor/internal/model"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultTimeout — таймаут соединения и таймаут чтения по умолчанию.
const DefaultTimeout = 10 * time.Second

const jsonMimeType = "application/json"

// Call описывает один запрос к REST API сервера мониторинга.
//
// Поля:
//   - Method: HTTP-метод (GET, POST, PUT)
//   - Path: путь относительно базового URL сервера
//   - Query: параметры строки запроса
//   - Body: полезная нагрузка, сериализуемая в JSON (только для POST и PUT)
//   - Result: указатель, в который разбирается JSON-ответ; nil — ответ игнорируется
type Call struct {
	Method string
	Path   string
	Query  map[string]string
	Body   any
	Result any
}

// Requester выполняет один цикл запрос/ответ к серверу мониторинга.
type Requester interface {
	Do(ctx context.Context, call Call) error
}

// Transport реализует Requester поверх resty.
//
// Каждый запрос несёт заголовки JSON и basic-auth, редиректы не выполняются.
// Все ошибки ввода-вывода и разбора возвращаются как ошибки и логируются,
// паники наружу не выходят.
type Transport struct {
	client    *resty.Client
	baseURL   string
	timeout   time.Duration
	logger    *zap.Logger
	telemetry *Telemetry
}

// NewTransport создаёт Transport по конфигурации клиента.
//
// Таймаут соединения, таймаут ожидания заголовков и таймаут каждого чтения
// тела ответа равны cfg.Timeout (DefaultTimeout, если не задан).
func NewTransport(cfg models.ClientConfig, logger *zap.Logger, telemetry *Telemetry) *Transport {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	dialer := &net.Dialer{Timeout: timeout}
	httpTransport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   timeout,
		ResponseHeaderTimeout: timeout,
	}

	client := resty.New().
		SetTransport(httpTransport).
		SetTimeout(2*timeout).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		})).
		SetBasicAuth(cfg.Username, cfg.Password).
		SetHeader("Accept", jsonMimeType).
		SetDisableWarn(true).
		SetLogger(logger.Sugar())

	return &Transport{
		client:    client,
		baseURL:   cfg.BaseURL,
		timeout:   timeout,
		logger:    logger,
		telemetry: telemetry,
	}
}

// Do выполняет запрос call.
//
// Ошибка соединения оборачивает ErrTransport, ответ не 2xx возвращается как
// *StatusError, неразбираемое тело оборачивает ErrProtocol. Пустое тело ответа
// не является ошибкой: call.Result остаётся нетронутым.
func (t *Transport) Do(ctx context.Context, call Call) error {
	err := t.do(ctx, call)
	t.telemetry.observe(call.Method, err)
	return err
}

func (t *Transport) do(ctx context.Context, call Call) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	req := t.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeader("Content-Type", jsonMimeType)

	if len(call.Query) > 0 {
		req.SetQueryParams(call.Query)
	}

	if call.Method == http.MethodPost || call.Method == http.MethodPut {
		payload, err := json.Marshal(call.Body)
		if err != nil {
			return fmt.Errorf("%w: encode %s %s payload: %v", ErrProtocol, call.Method, call.Path, err)
		}
		req.SetBody(payload)
	}

	resp, err := req.Execute(call.Method, joinURL(t.baseURL, call.Path))
	if err != nil {
		// Чаще всего это означает, что сервер просто не запущен.
		t.logger.Debug("Failed to reach monitoring server",
			zap.String("method", call.Method),
			zap.String("path", call.Path),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, call.Method, call.Path, err)
	}

	raw := resp.RawBody()
	defer func() { _ = raw.Close() }()

	deadline := newReadDeadline(raw, t.timeout, cancel)
	defer deadline.stop()

	body, readErr := readBody(deadline, resp.RawResponse.ContentLength)
	if readErr != nil && deadline.expired() {
		readErr = fmt.Errorf("no data received within %s: %w", t.timeout, readErr)
	}

	if !resp.IsSuccess() {
		statusErr := &StatusError{
			Method:     call.Method,
			Path:       call.Path,
			StatusCode: resp.StatusCode(),
			Body:       string(body),
		}
		t.logger.Info("Monitoring server rejected request",
			zap.String("method", call.Method),
			zap.String("path", call.Path),
			zap.Int("status", statusErr.StatusCode),
			zap.String("body", statusErr.Body),
		)
		return statusErr
	}

	if readErr != nil {
		t.logger.Info("Failed to read monitoring server response",
			zap.String("path", call.Path),
			zap.Error(readErr),
		)
		return fmt.Errorf("%w: read %s %s response: %v", ErrTransport, call.Method, call.Path, readErr)
	}

	if call.Result == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, call.Result); err != nil {
		t.logger.Info("Failed to parse monitoring server response",
			zap.String("path", call.Path),
			zap.Error(err),
		)
		return fmt.Errorf("%w: decode %s %s response: %v", ErrProtocol, call.Method, call.Path, err)
	}

	return nil
}

// readDeadline ограничивает каждое чтение тела ответа таймаутом.
//
// Если очередной Read не завершился за timeout, отменяется контекст запроса,
// и net/http прерывает чтение с ошибкой.
type readDeadline struct {
	r       io.Reader
	timeout time.Duration
	timer   *time.Timer
	fired   atomic.Bool
}

func newReadDeadline(r io.Reader, timeout time.Duration, cancel context.CancelFunc) *readDeadline {
	d := &readDeadline{r: r, timeout: timeout}
	d.timer = time.AfterFunc(timeout, func() {
		d.fired.Store(true)
		cancel()
	})
	d.timer.Stop()
	return d
}

func (d *readDeadline) Read(p []byte) (int, error) {
	if d.r == nil {
		return 0, io.EOF
	}
	d.timer.Reset(d.timeout)
	n, err := d.r.Read(p)
	d.timer.Stop()
	return n, err
}

func (d *readDeadline) expired() bool {
	return d.fired.Load()
}

func (d *readDeadline) stop() {
	d.timer.Stop()
}

// readBody читает тело ответа целиком, но не больше объявленной длины,
// если сервер прислал Content-Length.
func readBody(r io.Reader, contentLength int64) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	if contentLength >= 0 {
		r = io.LimitReader(r, contentLength)
	}
	return io.ReadAll(r)
}

// joinURL склеивает базовый URL и путь, ставя между ними ровно один "/".
func joinURL(base, path string) string {
	switch {
	case path == "":
		return base
	case strings.HasSuffix(base, "/") && strings.HasPrefix(path, "/"):
		return base + path[1:]
	case !strings.HasSuffix(base, "/") && !strings.HasPrefix(path, "/"):
		return base + "/" + path
	default:
		return base + path
	}
}
