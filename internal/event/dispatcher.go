// Package event реализует внутрипроцессную рассылку доменных событий.
package event

import (
	"sync"

	models "github.com/RoGogDBD/ticket-monitor/internal/model"
	"go.uber.org/zap"
)

// Dispatcher управляет списком наблюдателей за бронированиями и уведомляет их о событиях.
//
// Поля:
//   - observers: список наблюдателей (BookingObserver)
//   - mu: RW-мьютекс для синхронизации доступа к списку наблюдателей
//   - logger: логгер для сообщений о сбоях наблюдателей
type Dispatcher struct {
	observers []models.BookingObserver
	mu        sync.RWMutex
	logger    *zap.Logger
}

// NewDispatcher создает новый экземпляр Dispatcher.
//
// Возвращает указатель на Dispatcher.
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		observers: make([]models.BookingObserver, 0),
		logger:    logger,
	}
}

// Attach добавляет наблюдателя к списку.
//
// observer — наблюдатель, реализующий интерфейс BookingObserver.
func (d *Dispatcher) Attach(observer models.BookingObserver) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, observer)
}

// Detach удаляет наблюдателя из списка.
//
// observer — наблюдатель для удаления.
func (d *Dispatcher) Detach(observer models.BookingObserver) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, obs := range d.observers {
		if obs == observer {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			break
		}
	}
}

// Notify уведомляет всех подключённых наблюдателей о созданном бронировании.
//
// Паника в наблюдателе логируется и не мешает остальным получить событие.
func (d *Dispatcher) Notify(booking models.Booking) {
	d.mu.RLock()
	observers := make([]models.BookingObserver, len(d.observers))
	copy(observers, d.observers)
	d.mu.RUnlock()

	for _, observer := range observers {
		d.deliver(observer, booking)
	}
}

// HasObservers проверяет, есть ли подключённые наблюдатели.
func (d *Dispatcher) HasObservers() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.observers) > 0
}

func (d *Dispatcher) deliver(observer models.BookingObserver, booking models.Booking) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Booking observer panicked",
				zap.String("booking_id", booking.ID),
				zap.Any("panic", r),
			)
		}
	}()
	observer.OnBookingCreated(booking)
}
