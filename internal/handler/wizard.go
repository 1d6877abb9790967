package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkordes/travel-planner/backend/internal/service"
)

// GetWizard handles GET /wizard.
// It returns the current step, the recorded selections and the budget.
func (s *Server) GetWizard(w http.ResponseWriter, r *http.Request) {
	defer s.lock()()
	writeJSON(w, http.StatusOK, s.wizardView())
}

// AdvanceWizard handles POST /wizard/advance.
// The body carries the fields of the current step; fields of other steps are
// ignored. A rejected step leaves the wizard unchanged and returns 422.
func (s *Server) AdvanceWizard(w http.ResponseWriter, r *http.Request) {
	var body formFields
	if !decodeJSON(w, r, &body) {
		return
	}

	defer s.lock()()
	if err := s.wizard.Advance(r.Context(), body.toForm()); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.wizardView())
}

// GetRunningTotal handles GET /wizard/total?hotel=<name>.
// It prices the in-progress trip as if hotel were selected, without
// recording the choice.
func (s *Server) GetRunningTotal(w http.ResponseWriter, r *http.Request) {
	defer s.lock()()
	total, err := s.wizard.RunningTotal(r.URL.Query().Get("hotel"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, runningTotalResponse{RunningTotal: total})
}

// ConfirmWizard handles POST /wizard/confirm.
// On success the trip is persisted, the budget charged and the wizard reset;
// the response is 201 with the receipt.
func (s *Server) ConfirmWizard(w http.ResponseWriter, r *http.Request) {
	defer s.lock()()
	receipt, err := s.wizard.Confirm(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, receiptResponse{
		Trip:            tripToResponse(receipt.Trip),
		Total:           receipt.Total,
		RemainingBudget: receipt.Remaining,
		PaymentMessage:  receipt.PaymentMessage,
	})
}

// BackWizard handles POST /wizard/back.
func (s *Server) BackWizard(w http.ResponseWriter, _ *http.Request) {
	defer s.lock()()
	s.wizard.Back()
	writeJSON(w, http.StatusOK, s.wizardView())
}

// CancelWizard handles POST /wizard/cancel.
// The in-progress trip is discarded; nothing is charged or persisted.
func (s *Server) CancelWizard(w http.ResponseWriter, _ *http.Request) {
	defer s.lock()()
	s.wizard.Cancel()
	writeJSON(w, http.StatusOK, s.wizardView())
}

// wizardView must be called with the lock held.
func (s *Server) wizardView() wizardResponse {
	var msg string
	if s.presenter != nil {
		msg = s.presenter.LastMessage()
	}
	return snapshotToResponse(s.wizard.Snapshot(), msg)
}

// decodeJSON reads the request body into v. On failure it writes the error
// response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: errorDetail{
			Code: "request_too_large", Message: "request body too large",
		}})
		return false
	}
	writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body must be a JSON object"))
	return false
}

var _ WizardDriver = (*service.Wizard)(nil)
