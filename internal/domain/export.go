package domain

// ExportRow is a single booked trip in the full-data export.
// Position is the 0-based booking order, the same index used to cancel it.
//
// Pricing columns are empty strings for trips reloaded from storage, because
// the persisted format keeps only the destination and the dates.
type ExportRow struct {
	Position      int
	TripID        string
	Destination   string
	DepartureDate string // "2006-01-02" formatted date
	ReturnDate    string // "2006-01-02" formatted date

	// Pricing fields, empty when the trip was reloaded.
	Airline    string
	Seat       string
	FlightCost string
	Hotel      string
	HotelCost  string
	TotalCost  string
}
