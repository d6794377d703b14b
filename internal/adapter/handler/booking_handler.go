package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/srgjo27/hall_booking/internal/core/domain"
	"github.com/srgjo27/hall_booking/internal/core/services"
	"github.com/srgjo27/hall_booking/internal/core/wizard"
)

type BookingHandler struct {
	svc    *services.BookingService
	logger *zap.Logger
}

func NewBookingHandler(svc *services.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, logger: logger}
}

type startWizardRequest struct {
	BookingID *uuid.UUID `json:"booking_id"`
}

type changeStepRequest struct {
	Target domain.Step `json:"target"`
}

type applyDiscountRequest struct {
	DiscountID uuid.UUID `json:"discount_id"`
}

func (h *BookingHandler) StartWizard(w http.ResponseWriter, r *http.Request) {
	var req startWizardRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
			return
		}
	}

	sess, err := h.svc.StartWizard(r.Context(), req.BookingID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, sess.View())
}

func (h *BookingHandler) GetWizard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	sess, err := h.svc.Wizard(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, sess.View())
}

func (h *BookingHandler) DiscardWizard(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Discard(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *BookingHandler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	section, err := domain.ParseSection(mux.Vars(r)["section"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var update func(ctx context.Context, sess *wizard.Session) error
	dec := json.NewDecoder(r.Body)

	switch section {
	case domain.SectionBookingInfo:
		var info domain.BookingInfo
		err = dec.Decode(&info)
		update = func(ctx context.Context, sess *wizard.Session) error { return sess.UpdateBookingInfo(ctx, info) }
	case domain.SectionServices:
		var list []domain.AdditionalService
		err = dec.Decode(&list)
		update = func(ctx context.Context, sess *wizard.Session) error { return sess.SetServices(ctx, list) }
	case domain.SectionAttachments:
		var attachments []domain.Attachment
		err = dec.Decode(&attachments)
		update = func(ctx context.Context, sess *wizard.Session) error { return sess.SetAttachments(ctx, attachments) }
	case domain.SectionPayment:
		var payment domain.Payment
		err = dec.Decode(&payment)
		update = func(ctx context.Context, sess *wizard.Session) error { return sess.UpdatePayment(ctx, payment) }
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	h.mutate(w, r, id, func(sess *wizard.Session) error { return update(r.Context(), sess) })
}

func (h *BookingHandler) ResetSection(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	section, err := domain.ParseSection(mux.Vars(r)["section"])
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	h.mutate(w, r, id, func(sess *wizard.Session) error { return sess.ResetSection(r.Context(), section) })
}

func (h *BookingHandler) ChangeStep(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	var req changeStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	h.mutate(w, r, id, func(sess *wizard.Session) error { return sess.ChangeStep(r.Context(), req.Target) })
}

func (h *BookingHandler) ApplyDiscount(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	var req applyDiscountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json body"})
		return
	}

	sess, err := h.svc.ApplyDiscount(r.Context(), id, req.DiscountID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, sess.View())
}

func (h *BookingHandler) ClearDiscount(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	h.mutate(w, r, id, func(sess *wizard.Session) error { return sess.ClearCatalogDiscount(r.Context()) })
}

func (h *BookingHandler) ResetSpecialDiscount(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	h.mutate(w, r, id, func(sess *wizard.Session) error { return sess.ResetSpecialDiscount(r.Context()) })
}

func (h *BookingHandler) KeepStoredPrices(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	h.mutate(w, r, id, func(sess *wizard.Session) error { return sess.KeepStoredPrices(r.Context()) })
}

func (h *BookingHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	sess, err := h.svc.Wizard(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, sess.Summary())
}

func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.wizardID(w, r)
	if !ok {
		return
	}

	booking, err := h.svc.Submit(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) ListDiscounts(w http.ResponseWriter, r *http.Request) {
	discounts, err := h.svc.Discounts(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if discounts == nil {
		discounts = []domain.Discount{}
	}
	writeJSON(w, http.StatusOK, discounts)
}

func (h *BookingHandler) mutate(w http.ResponseWriter, r *http.Request, id uuid.UUID, fn func(*wizard.Session) error) {
	sess, err := h.svc.Mutate(r.Context(), id, fn)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, sess.View())
}

func (h *BookingHandler) wizardID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid wizard id"})
		return uuid.Nil, false
	}
	return id, true
}
