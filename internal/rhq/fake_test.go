package rhq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	models "github.com/RoGogDBD/ticket-monitor/internal/model"
)

// fakeRequester записывает запросы и отвечает через handler.
type fakeRequester struct {
	mu      sync.Mutex
	calls   []Call
	handler func(call Call) error
}

func (f *fakeRequester) Do(_ context.Context, call Call) error {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	if f.handler == nil {
		return nil
	}
	return f.handler(call)
}

func (f *fakeRequester) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeRequester) CallsTo(method, pathPrefix string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Method == method && len(c.Path) >= len(pathPrefix) && c.Path[:len(pathPrefix)] == pathPrefix {
			out = append(out, c)
		}
	}
	return out
}

// respond заполняет call.Result так же, как это делает Transport при разборе JSON.
func respond(call Call, body string) error {
	if call.Result == nil {
		return nil
	}
	return json.Unmarshal([]byte(body), call.Result)
}

func refused(call Call) error {
	return fmt.Errorf("%w: %s %s: dial tcp 127.0.0.1:1: connect: connection refused", ErrTransport, call.Method, call.Path)
}

type staticLoader struct {
	cfg models.ClientConfig
	err error
}

func (l staticLoader) Load() (models.ClientConfig, error) {
	return l.cfg, l.err
}

func fixedHost(hostname, osLabel string) HostIdentity {
	return func(context.Context) (string, string) { return hostname, osLabel }
}
