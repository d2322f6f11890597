// Package pool реализует пул фоновых задач фиксированного размера.
//
// Задачи отправляются без ожидания результата. Если очередь заполнена или
// пул закрыт, задача отбрасывается, а вызывающий код никогда не блокируется.
package pool

import (
	"sync"

	"go.uber.org/zap"
)

// Pool — пул из фиксированного числа воркеров с ограниченной очередью.
type Pool struct {
	tasks  chan func()
	quit   chan struct{}
	once   sync.Once
	logger *zap.Logger
}

// New создаёт пул и запускает воркеры.
//
// workers — количество воркеров (минимум 1).
// queue — ёмкость очереди задач (минимум 0).
// logger — логгер для сообщений о паниках в задачах; nil заменяется на zap.NewNop().
func New(workers, queue int, logger *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queue < 0 {
		queue = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pool{
		tasks:  make(chan func(), queue),
		quit:   make(chan struct{}),
		logger: logger,
	}
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Submit ставит задачу в очередь без блокировки.
//
// Возвращает false, если пул закрыт или очередь заполнена.
func (p *Pool) Submit(task func()) bool {
	select {
	case <-p.quit:
		return false
	default:
	}

	select {
	case p.tasks <- task:
		return true
	default:
		return false
	}
}

// Close останавливает приём задач и воркеры.
//
// Выполняющиеся задачи не ожидаются, задачи из очереди отбрасываются.
// Повторный вызов безопасен.
func (p *Pool) Close() {
	p.once.Do(func() { close(p.quit) })
}

func (p *Pool) worker() {
	for {
		select {
		case <-p.quit:
			return
		case task := <-p.tasks:
			p.run(task)
		}
	}
}

func (p *Pool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Background task panicked", zap.Any("panic", r))
		}
	}()
	task()
}
