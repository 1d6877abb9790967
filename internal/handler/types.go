package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/service"
)

// Money is encoded by decimal.Decimal as a JSON string, e.g. "1400".

type healthResponse struct {
	Status string `json:"status"`
}

type errorDetail struct {
	Code      string           `json:"code"`
	Message   string           `json:"message"`
	Field     string           `json:"field,omitempty"`
	Attempted *decimal.Decimal `json:"attempted,omitempty"`
	Remaining *decimal.Decimal `json:"remaining,omitempty"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type flightResponse struct {
	Airline string          `json:"airline"`
	Seat    string          `json:"seat"`
	Mode    string          `json:"mode"`
	Price   decimal.Decimal `json:"price"`
}

type hotelResponse struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type tripResponse struct {
	Position      *int                `json:"position,omitempty"`
	ID            uuid.UUID           `json:"id"`
	Destination   string              `json:"destination"`
	DepartureDate *openapi_types.Date `json:"departure_date,omitempty"`
	ReturnDate    *openapi_types.Date `json:"return_date,omitempty"`
	Flight        *flightResponse     `json:"flight,omitempty"`
	Hotel         *hotelResponse      `json:"hotel,omitempty"`
	TotalCost     *decimal.Decimal    `json:"total_cost,omitempty"`
}

// formFields is both the POST /wizard/advance body and the echo of the
// recorded selections in GET /wizard.
type formFields struct {
	Destination   string `json:"destination,omitempty"`
	DepartureDate string `json:"departure_date,omitempty"`
	ReturnDate    string `json:"return_date,omitempty"`
	Airline       string `json:"airline,omitempty"`
	Seat          string `json:"seat,omitempty"`
	Hotel         string `json:"hotel,omitempty"`
	Payment       string `json:"payment,omitempty"`
}

type wizardResponse struct {
	State           string          `json:"state"`
	Trip            *tripResponse   `json:"trip,omitempty"`
	Form            formFields      `json:"form"`
	RunningTotal    decimal.Decimal `json:"running_total"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
	Message         string          `json:"message,omitempty"`
}

type receiptResponse struct {
	Trip            tripResponse    `json:"trip"`
	Total           decimal.Decimal `json:"total"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
	PaymentMessage  string          `json:"payment_message"`
}

type runningTotalResponse struct {
	RunningTotal decimal.Decimal `json:"running_total"`
}

type budgetResponse struct {
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
}

type catalogEntry struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type catalogResponse struct {
	Destinations   []string       `json:"destinations"`
	Airlines       []catalogEntry `json:"airlines"`
	Hotels         []catalogEntry `json:"hotels"`
	Seats          []string       `json:"seats"`
	PaymentMethods []string       `json:"payment_methods"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type tripListResponse struct {
	Data       []tripResponse `json:"data"`
	Pagination pagination     `json:"pagination"`
}

type exportRow struct {
	Position      int                 `json:"position"`
	TripID        uuid.UUID           `json:"trip_id"`
	Destination   string              `json:"destination"`
	DepartureDate *openapi_types.Date `json:"departure_date,omitempty"`
	ReturnDate    *openapi_types.Date `json:"return_date,omitempty"`
	Airline       *string             `json:"airline,omitempty"`
	Seat          *string             `json:"seat,omitempty"`
	FlightCost    *string             `json:"flight_cost,omitempty"`
	Hotel         *string             `json:"hotel,omitempty"`
	HotelCost     *string             `json:"hotel_cost,omitempty"`
	TotalCost     *string             `json:"total_cost,omitempty"`
}

// --- mapping helpers --------------------------------------------------------

// tripToResponse converts a domain.Trip into its JSON shape.
// Pricing is omitted for trips that no longer carry it.
func tripToResponse(t domain.Trip) tripResponse {
	resp := tripResponse{
		ID:            t.ID,
		Destination:   t.Destination,
		DepartureDate: optionalDate(t.DepartureDate),
		ReturnDate:    optionalDate(t.ReturnDate),
	}
	if t.Transport != nil {
		resp.Flight = &flightResponse{
			Airline: t.Transport.Airline,
			Seat:    string(t.Transport.Seat),
			Mode:    t.Transport.Mode,
			Price:   t.Transport.Price,
		}
	}
	if t.Hotel != nil {
		resp.Hotel = &hotelResponse{Name: t.Hotel.Name, Price: t.Hotel.Price()}
	}
	if t.HasPricing() {
		total := t.TotalCost()
		resp.TotalCost = &total
	}
	return resp
}

func snapshotToResponse(s service.Snapshot, message string) wizardResponse {
	resp := wizardResponse{
		State: s.State.String(),
		Form: formFields{
			Destination:   s.Form.Destination,
			DepartureDate: s.Form.Departure,
			ReturnDate:    s.Form.Return,
			Airline:       s.Form.Airline,
			Seat:          s.Form.Seat,
			Hotel:         s.Form.Hotel,
			Payment:       s.Form.Payment,
		},
		RunningTotal:    s.RunningTotal,
		RemainingBudget: s.Remaining,
		Message:         message,
	}
	if s.Trip != nil {
		trip := tripToResponse(*s.Trip)
		resp.Trip = &trip
	}
	return resp
}

func (f formFields) toForm() service.Form {
	return service.Form{
		Destination: f.Destination,
		Departure:   f.DepartureDate,
		Return:      f.ReturnDate,
		Airline:     f.Airline,
		Seat:        f.Seat,
		Hotel:       f.Hotel,
		Payment:     f.Payment,
	}
}

// writeJSON encodes v with the given status. Encoding errors can only come
// from a broken connection and are dropped.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
