// Package domain contains the core data types for the travel planner.
// Apart from decimal money and UUID booking references it has no external
// dependencies and is imported by every other internal package.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the only accepted calendar date format, both in wizard input
// and in the persisted store.
const DateLayout = "2006-01-02"

// ModeFlight is the mode tag carried by every Flight.
const ModeFlight = "Flight"

// Seat is the seat class chosen for a flight.
type Seat string

const (
	SeatWindow Seat = "window"
	SeatMiddle Seat = "middle"
	SeatAisle  Seat = "aisle"
)

// Seats lists every valid seat class in display order.
func Seats() []Seat {
	return []Seat{SeatWindow, SeatMiddle, SeatAisle}
}

// ParseSeat converts user input into a Seat.
func ParseSeat(s string) (Seat, error) {
	switch seat := Seat(s); seat {
	case SeatWindow, SeatMiddle, SeatAisle:
		return seat, nil
	}
	return "", NewValidationError(ReasonInvalidChoice, "seat", "seat must be one of window, middle, aisle")
}

// Transport is the base of every means of travel.
// Mode is empty on the base; concrete transports set it.
type Transport struct {
	Price decimal.Decimal
	Mode  string
}

// TravelTime is zero for a transport of unknown kind.
func (t Transport) TravelTime() time.Duration {
	return 0
}

// Flight is a Transport with an airline and a seat class.
type Flight struct {
	Transport
	Airline string
	Seat    Seat
}

// NewFlight builds a Flight. A negative price is rejected.
func NewFlight(price decimal.Decimal, airline string, seat Seat) (*Flight, error) {
	if price.IsNegative() {
		return nil, NewValidationError(ReasonNegativePrice, "price", "price must not be negative")
	}
	return &Flight{
		Transport: Transport{Price: price, Mode: ModeFlight},
		Airline:   airline,
		Seat:      seat,
	}, nil
}

// TravelTime overrides the base transport: every flight is a two hour hop.
func (f Flight) TravelTime() time.Duration {
	return 2 * time.Hour
}

// Hotel is a named accommodation. Its price can only change through SetPrice,
// so it is never negative.
type Hotel struct {
	Name  string
	price decimal.Decimal
}

// NewHotel builds a Hotel, rejecting a negative price.
func NewHotel(name string, price decimal.Decimal) (*Hotel, error) {
	h := &Hotel{Name: name}
	if err := h.SetPrice(price); err != nil {
		return nil, err
	}
	return h, nil
}

// Price returns the hotel's price.
func (h *Hotel) Price() decimal.Decimal {
	return h.price
}

// SetPrice replaces the price. A negative price is rejected and the previous
// price is kept.
func (h *Hotel) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return NewValidationError(ReasonNegativePrice, "price", "price must not be negative")
	}
	h.price = price
	return nil
}

// Trip is one booking, from the first wizard step until it is cancelled.
// Transport, Hotel and Budget are not persisted: a trip reloaded from storage
// carries only Destination and the two dates.
type Trip struct {
	ID            uuid.UUID
	Destination   string
	Budget        decimal.Decimal
	Transport     *Flight
	Hotel         *Hotel
	DepartureDate time.Time
	ReturnDate    time.Time
}

// NewTrip starts a trip for destination with the given budget.
func NewTrip(destination string, budget decimal.Decimal) Trip {
	return Trip{
		ID:          uuid.New(),
		Destination: destination,
		Budget:      budget,
	}
}

// TotalCost is the flight price plus the hotel price. Missing parts count as zero.
func (t Trip) TotalCost() decimal.Decimal {
	total := decimal.Zero
	if t.Transport != nil {
		total = total.Add(t.Transport.Price)
	}
	if t.Hotel != nil {
		total = total.Add(t.Hotel.Price())
	}
	return total
}

// CheckBudget returns a *BudgetExceededError when the total cost is greater
// than budget.
func (t Trip) CheckBudget(budget decimal.Decimal) error {
	total := t.TotalCost()
	if total.GreaterThan(budget) {
		return &BudgetExceededError{Attempted: total, Remaining: budget}
	}
	return nil
}

// HasPricing reports whether the trip still carries its flight and hotel.
// Trips reloaded from storage never do.
func (t Trip) HasPricing() bool {
	return t.Transport != nil && t.Hotel != nil
}
