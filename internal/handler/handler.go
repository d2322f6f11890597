package handler

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	models "github.com/RoGogDBD/ticket-monitor/internal/model"
	"go.uber.org/zap"
)

var (
	ErrMissingBookingID = errors.New("booking id is required")
	ErrNoTickets        = errors.New("booking must contain at least one ticket")
	ErrNegativePrice    = errors.New("ticket price must not be negative")
)

// Handler принимает бронирования и рассылает события об их создании.
type Handler struct {
	bookings models.BookingSubject
	logger   *zap.Logger
	now      func() time.Time
}

// NewHandler создаёт Handler, уведомляющий bookings о каждом принятом бронировании.
func NewHandler(bookings models.BookingSubject, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{bookings: bookings, logger: logger, now: time.Now}
}

// BookingResponse — ответ на успешное создание бронирования.
type BookingResponse struct {
	ID               string    `json:"id"`
	Tickets          int       `json:"tickets"`
	TotalTicketPrice float64   `json:"totalTicketPrice"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ValidateBooking проверяет бронирование перед публикацией события.
func ValidateBooking(b models.Booking) error {
	if b.ID == "" {
		return ErrMissingBookingID
	}
	if len(b.Tickets) == 0 {
		return ErrNoTickets
	}
	for _, t := range b.Tickets {
		if t.Price < 0 {
			return ErrNegativePrice
		}
	}
	return nil
}

// HandleCreateBooking обрабатывает POST /bookings.
//
// Событие о создании публикуется только после успешной проверки бронирования.
func (h *Handler) HandleCreateBooking(w http.ResponseWriter, r *http.Request) {
	var booking models.Booking
	if err := decodeRequestBody(r, &booking); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := ValidateBooking(booking); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	booking.CreatedAt = h.now()

	h.bookings.Notify(booking)

	h.logger.Debug("Booking created",
		zap.String("id", booking.ID),
		zap.Int("tickets", len(booking.Tickets)),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(BookingResponse{
		ID:               booking.ID,
		Tickets:          len(booking.Tickets),
		TotalTicketPrice: booking.TotalTicketPrice(),
		CreatedAt:        booking.CreatedAt,
	}); err != nil {
		h.logger.Warn("Failed to write booking response", zap.Error(err))
	}
}

// HandlePing отвечает 200 OK, пока приложение работает.
func (h *Handler) HandlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func decodeRequestBody(r *http.Request, v interface{}) error {
	var reader io.Reader = r.Body
	if r.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			return err
		}
		defer gz.Close()
		reader = gz
	}
	return json.NewDecoder(reader).Decode(v)
}
