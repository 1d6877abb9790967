package repo

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// lineSeparator splits the fields of a persisted trip line.
// Fields are not escaped: a destination containing it corrupts the line.
const lineSeparator = "|"

// FormatLine encodes the persisted projection of a trip:
//
//	<destination>|<departure YYYY-MM-DD>|<return YYYY-MM-DD>
//
// Transport, hotel and budget are dropped.
func FormatLine(t domain.Trip) string {
	return strings.Join([]string{
		t.Destination,
		formatDate(t.DepartureDate),
		formatDate(t.ReturnDate),
	}, lineSeparator)
}

// ParseLine decodes one persisted line. The trip gets a fresh ID and the
// supplied budget, since neither is stored.
func ParseLine(line string, budget decimal.Decimal) (domain.Trip, error) {
	parts := strings.Split(strings.TrimRight(line, "\r\n"), lineSeparator)
	if len(parts) != 3 {
		return domain.Trip{}, fmt.Errorf("want 3 fields, got %d", len(parts))
	}
	if parts[0] == "" {
		return domain.Trip{}, fmt.Errorf("destination is empty")
	}

	dep, err := time.Parse(domain.DateLayout, parts[1])
	if err != nil {
		return domain.Trip{}, fmt.Errorf("departure date: %w", err)
	}
	ret, err := time.Parse(domain.DateLayout, parts[2])
	if err != nil {
		return domain.Trip{}, fmt.Errorf("return date: %w", err)
	}

	t := domain.NewTrip(parts[0], budget)
	t.DepartureDate = dep
	t.ReturnDate = ret
	return t, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}
