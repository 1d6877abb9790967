package handler

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/service"
)

// LogPresenter records wizard outcomes as structured log lines and keeps the
// last user-facing message so GET /wizard can show it.
type LogPresenter struct {
	logger *slog.Logger

	mu       sync.Mutex
	last     string
	rejected bool
}

var _ service.Presenter = (*LogPresenter)(nil)

// NewLogPresenter returns a LogPresenter writing to logger.
// A nil logger falls back to slog.Default().
func NewLogPresenter(logger *slog.Logger) *LogPresenter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPresenter{logger: logger}
}

func (p *LogPresenter) StepChanged(state service.State) {
	p.logger.Debug("wizard step changed", "state", state.String())
	p.mu.Lock()
	defer p.mu.Unlock()
	// A booking message outlives the reset that follows it; a rejection does not.
	if p.rejected {
		p.last, p.rejected = "", false
	}
}

func (p *LogPresenter) Rejected(state service.State, err error) {
	attrs := []any{"state", state.String(), "error", err}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		attrs = append(attrs, "reason", string(ve.Reason), "field", ve.Field)
	}
	p.logger.Info("wizard step rejected", attrs...)
	p.setLast(err.Error(), true)
}

func (p *LogPresenter) Booked(r service.Receipt) {
	p.logger.Info("trip booked",
		"trip_id", r.Trip.ID.String(),
		"destination", r.Trip.Destination,
		"total", r.Total.StringFixed(2),
		"remaining", r.Remaining.StringFixed(2),
	)
	p.setLast(r.PaymentMessage, false)
}

// LastMessage returns the message of the most recent rejection or booking.
// A rejection message is cleared when the wizard moves to another step.
func (p *LogPresenter) LastMessage() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func (p *LogPresenter) setLast(msg string, rejected bool) {
	p.mu.Lock()
	p.last, p.rejected = msg, rejected
	p.mu.Unlock()
}
