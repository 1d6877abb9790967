package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/travel-planner/backend/internal/catalog"
	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// State is a step of the booking wizard.
type State int

const (
	// StateChooseDestinationAndDates is the initial step.
	StateChooseDestinationAndDates State = iota
	StateChooseTransport
	// StateChooseHotelAndPayment is the last step; Confirm commits from here.
	StateChooseHotelAndPayment
)

func (s State) String() string {
	switch s {
	case StateChooseDestinationAndDates:
		return "choose_destination_and_dates"
	case StateChooseTransport:
		return "choose_transport"
	case StateChooseHotelAndPayment:
		return "choose_hotel_and_payment"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Form carries the raw field values entered by the user.
// Each step reads only its own fields and ignores the rest.
type Form struct {
	Destination string
	Departure   string
	Return      string
	Airline     string
	Seat        string
	Hotel       string
	Payment     string
}

// Receipt describes a successful confirmation.
type Receipt struct {
	Trip           domain.Trip
	Total          decimal.Decimal
	Remaining      decimal.Decimal
	PaymentMessage string
}

// Snapshot is a read-only view of the wizard for the presentation layer.
type Snapshot struct {
	State State
	// Trip is nil before the first step has been completed.
	Trip         *domain.Trip
	Form         Form
	RunningTotal decimal.Decimal
	Remaining    decimal.Decimal
}

// Presenter is notified of every wizard outcome. The presentation layer
// implements it to render steps, errors and confirmations.
type Presenter interface {
	StepChanged(state State)
	Rejected(state State, err error)
	Booked(receipt Receipt)
}

// NopPresenter ignores all notifications.
type NopPresenter struct{}

func (NopPresenter) StepChanged(State)     {}
func (NopPresenter) Rejected(State, error) {}
func (NopPresenter) Booked(Receipt)        {}

// PriceCatalog is the lookup the wizard prices selections with.
// *catalog.Catalog satisfies it.
type PriceCatalog interface {
	PriceOf(kind catalog.Kind, name string) (decimal.Decimal, error)
	HasDestination(name string) bool
}

// Wallet is the budget the wizard checks and charges on confirmation.
// *ledger.Ledger satisfies it.
type Wallet interface {
	Remaining() decimal.Decimal
	TryDeduct(amount decimal.Decimal) error
}

// Wizard is the trip-building state machine. It is driven by one user at a
// time and is not safe for concurrent use.
type Wizard struct {
	catalog   PriceCatalog
	wallet    Wallet
	trips     repo.TripRepo
	presenter Presenter

	state   State
	trip    *domain.Trip
	payment domain.PaymentMethod
	form    Form
}

// NewWizard constructs a Wizard in its initial state.
// A nil presenter is replaced by NopPresenter.
func NewWizard(c PriceCatalog, w Wallet, trips repo.TripRepo, p Presenter) *Wizard {
	if p == nil {
		p = NopPresenter{}
	}
	return &Wizard{catalog: c, wallet: w, trips: trips, presenter: p}
}

// State returns the current step.
func (w *Wizard) State() State {
	return w.state
}

// Advance validates the fields of the current step.
//   - ChooseDestinationAndDates: starts a fresh trip and moves to ChooseTransport.
//   - ChooseTransport: attaches the flight and moves to ChooseHotelAndPayment.
//   - ChooseHotelAndPayment: records hotel and payment; the step is left only
//     by Confirm, Back or Cancel.
//
// A rejected step returns a *domain.ValidationError and leaves the wizard unchanged.
func (w *Wizard) Advance(_ context.Context, f Form) error {
	var err error
	switch w.state {
	case StateChooseDestinationAndDates:
		err = w.chooseDestinationAndDates(f)
	case StateChooseTransport:
		err = w.chooseTransport(f)
	case StateChooseHotelAndPayment:
		err = w.chooseHotelAndPayment(f)
	}
	if err != nil {
		w.presenter.Rejected(w.state, err)
		return err
	}
	w.presenter.StepChanged(w.state)
	return nil
}

func (w *Wizard) chooseDestinationAndDates(f Form) error {
	dest := strings.TrimSpace(f.Destination)
	if dest == "" {
		return missing("destination")
	}
	if !w.catalog.HasDestination(dest) {
		return domain.NewValidationError(domain.ReasonUnknownSelection, "destination",
			fmt.Sprintf("%q is not an offered destination", dest))
	}

	depRaw, retRaw := strings.TrimSpace(f.Departure), strings.TrimSpace(f.Return)
	if depRaw == "" {
		return missing("departure")
	}
	if retRaw == "" {
		return missing("return")
	}

	dep, err := parseDate("departure", depRaw)
	if err != nil {
		return err
	}
	ret, err := parseDate("return", retRaw)
	if err != nil {
		return err
	}
	if ret.Before(dep) {
		return domain.NewValidationError(domain.ReasonDateOrder, "return",
			"return date must not be before departure date")
	}

	trip := domain.NewTrip(dest, w.wallet.Remaining())
	trip.DepartureDate = dep
	trip.ReturnDate = ret

	w.trip = &trip
	w.payment = ""
	w.form = Form{Destination: dest, Departure: depRaw, Return: retRaw}
	w.state = StateChooseTransport
	return nil
}

func (w *Wizard) chooseTransport(f Form) error {
	airline, seatRaw := strings.TrimSpace(f.Airline), strings.TrimSpace(f.Seat)
	if airline == "" {
		return missing("airline")
	}
	if seatRaw == "" {
		return missing("seat")
	}

	price, err := w.lookup(catalog.KindAirline, "airline", airline)
	if err != nil {
		return err
	}
	seat, err := domain.ParseSeat(seatRaw)
	if err != nil {
		return err
	}
	flight, err := domain.NewFlight(price, airline, seat)
	if err != nil {
		return err
	}

	w.trip.Transport = flight
	w.form.Airline, w.form.Seat = airline, seatRaw
	w.form.Hotel, w.form.Payment = "", ""
	w.state = StateChooseHotelAndPayment
	return nil
}

func (w *Wizard) chooseHotelAndPayment(f Form) error {
	name, payRaw := strings.TrimSpace(f.Hotel), strings.TrimSpace(f.Payment)
	if name == "" {
		return missing("hotel")
	}
	if payRaw == "" {
		return missing("payment")
	}

	price, err := w.lookup(catalog.KindHotel, "hotel", name)
	if err != nil {
		return err
	}
	method, err := domain.ParsePaymentMethod(payRaw)
	if err != nil {
		return err
	}
	hotel, err := domain.NewHotel(name, price)
	if err != nil {
		return err
	}

	w.trip.Hotel = hotel
	w.payment = method
	w.form.Hotel, w.form.Payment = name, payRaw
	return nil
}

// RunningTotal is the flight price plus the price of hotel, for live display
// while the user is choosing. An empty hotel uses the recorded selection, or
// the flight alone when nothing is recorded yet. Nothing is stored.
func (w *Wizard) RunningTotal(hotel string) (decimal.Decimal, error) {
	if w.state != StateChooseHotelAndPayment {
		return decimal.Zero, wrongStep("running total is only available while choosing a hotel")
	}

	total := w.trip.Transport.Price
	hotel = strings.TrimSpace(hotel)
	switch {
	case hotel != "":
		price, err := w.lookup(catalog.KindHotel, "hotel", hotel)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(price)
	case w.trip.Hotel != nil:
		total = total.Add(w.trip.Hotel.Price())
	}
	return total, nil
}

// Confirm books the trip. It charges the wallet, appends the trip to the
// repository and returns the wizard to its initial state.
//
// When the total is over the remaining budget it returns a
// *domain.BudgetExceededError and stays in ChooseHotelAndPayment. When the
// repository cannot persist the trip the error wraps
// domain.ErrStorageUnavailable and neither the wallet nor the wizard change.
func (w *Wizard) Confirm(ctx context.Context) (Receipt, error) {
	if err := w.confirmable(); err != nil {
		w.presenter.Rejected(w.state, err)
		return Receipt{}, err
	}

	total := w.trip.TotalCost()
	if err := w.trip.CheckBudget(w.wallet.Remaining()); err != nil {
		w.presenter.Rejected(w.state, err)
		return Receipt{}, err
	}

	booked := *w.trip
	if err := w.trips.Append(ctx, booked); err != nil {
		err = fmt.Errorf("service.Wizard.Confirm: %w", err)
		w.presenter.Rejected(w.state, err)
		return Receipt{}, err
	}
	if err := w.wallet.TryDeduct(total); err != nil {
		return Receipt{}, fmt.Errorf("service.Wizard.Confirm: trip saved but not charged: %w", err)
	}

	receipt := Receipt{
		Trip:           booked,
		Total:          total,
		Remaining:      w.wallet.Remaining(),
		PaymentMessage: domain.PaymentFor(w.payment).Pay(total),
	}
	w.reset()
	w.presenter.Booked(receipt)
	w.presenter.StepChanged(w.state)
	return receipt, nil
}

func (w *Wizard) confirmable() error {
	if w.state != StateChooseHotelAndPayment {
		return wrongStep("confirm is only possible after choosing transport")
	}
	if w.trip.Hotel == nil {
		return missing("hotel")
	}
	if w.payment == "" {
		return missing("payment")
	}
	return nil
}

// Back moves one step backward without validating anything.
// Selections made on the step being left are dropped.
func (w *Wizard) Back() State {
	switch w.state {
	case StateChooseHotelAndPayment:
		w.trip.Hotel = nil
		w.payment = ""
		w.form.Hotel, w.form.Payment = "", ""
		w.state = StateChooseTransport
	case StateChooseTransport:
		// The trip is rebuilt by the next Advance; the form keeps destination
		// and dates for pre-filling.
		w.trip = nil
		w.form.Airline, w.form.Seat = "", ""
		w.state = StateChooseDestinationAndDates
	default:
		return w.state
	}
	w.presenter.StepChanged(w.state)
	return w.state
}

// Cancel discards the in-progress trip and returns to the initial step.
func (w *Wizard) Cancel() {
	w.reset()
	w.presenter.StepChanged(w.state)
}

// Snapshot returns the current state for display.
func (w *Wizard) Snapshot() Snapshot {
	s := Snapshot{
		State:     w.state,
		Form:      w.form,
		Remaining: w.wallet.Remaining(),
	}
	if w.trip != nil {
		trip := *w.trip
		s.Trip = &trip
		s.RunningTotal = trip.TotalCost()
	}
	return s
}

func (w *Wizard) reset() {
	w.state = StateChooseDestinationAndDates
	w.trip = nil
	w.payment = ""
	w.form = Form{}
}

// lookup prices name, turning an unknown catalog key into a validation error.
func (w *Wizard) lookup(kind catalog.Kind, field, name string) (decimal.Decimal, error) {
	price, err := w.catalog.PriceOf(kind, name)
	if errors.Is(err, domain.ErrNotFound) {
		return decimal.Zero, domain.NewValidationError(domain.ReasonUnknownSelection, field,
			fmt.Sprintf("%q is not in the catalog", name))
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("service.Wizard: price %s: %w", field, err)
	}
	return price, nil
}

func parseDate(field, raw string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError(domain.ReasonMalformedDate, field,
			field+" date must be in YYYY-MM-DD format")
	}
	return t, nil
}

func missing(field string) error {
	return domain.NewValidationError(domain.ReasonMissingField, field, field+" is required")
}

func wrongStep(msg string) error {
	return domain.NewValidationError(domain.ReasonWrongStep, "", msg)
}
