package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/srgjo27/shutterbook/internal/adapter/handler/response"
	"github.com/srgjo27/shutterbook/internal/core/domain"
	"github.com/srgjo27/shutterbook/internal/core/services"
)

type BookingHandler struct {
	svc     *services.BookingService
	reviews *services.ReviewService
}

func NewBookingHandler(svc *services.BookingService, reviews *services.ReviewService) *BookingHandler {
	return &BookingHandler{svc: svc, reviews: reviews}
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var req services.CreateBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	resp, err := h.svc.RequestBooking(r.Context(), user, req)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, resp)
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	overview, err := h.svc.ListForUser(r.Context(), user)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, overview)
}

func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.transition(w, r, ps, h.svc.Confirm)
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.transition(w, r, ps, h.svc.Cancel)
}

func (h *BookingHandler) Complete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.transition(w, r, ps, h.svc.Complete)
}

type transitionFunc func(ctx context.Context, actor domain.Identity, bookingID uuid.UUID) (*domain.Booking, error)

func (h *BookingHandler) transition(w http.ResponseWriter, r *http.Request, ps httprouter.Params, move transitionFunc) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	bookingID, err := uuidParam(ps, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	booking, err := move(r.Context(), user, bookingID)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) SubmitReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	bookingID, err := uuidParam(ps, "id")
	if err != nil {
		response.Error(w, r, err)
		return
	}

	var req services.SubmitReviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, r, err)
		return
	}

	review, err := h.reviews.SubmitReview(r.Context(), user, bookingID, req)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, review)
}

func (h *BookingHandler) Dashboard(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	user, err := currentUser(r)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	stats, err := h.svc.Dashboard(r.Context(), user)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, stats)
}
