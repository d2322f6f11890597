package models

import "time"

// Ticket — отдельный билет в бронировании.
type Ticket struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

// Booking представляет завершённое бронирование.
type Booking struct {
	ID        string    `json:"id"`
	Tickets   []Ticket  `json:"tickets"`
	CreatedAt time.Time `json:"createdAt"`
}

// TotalTicketPrice возвращает суммарную стоимость билетов.
func (b Booking) TotalTicketPrice() float64 {
	var total float64
	for _, t := range b.Tickets {
		total += t.Price
	}
	return total
}

// BookingObserver интерфейс наблюдателя за созданием бронирований
type BookingObserver interface {
	OnBookingCreated(booking Booking)
}

// BookingSubject интерфейс субъекта, генерирующего события о бронированиях
type BookingSubject interface {
	Attach(observer BookingObserver)
	Detach(observer BookingObserver)
	Notify(booking Booking)
}
