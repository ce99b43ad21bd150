package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"carsharing-backend/internal/repository/filter"
	"carsharing-backend/internal/service"
)

type PaymentHandler struct {
	paymentSvc service.PaymentService
}

func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	var req paymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.RentalID <= 0 {
		writeError(w, validationError("rentalId must be positive"))
		return
	}
	p, err := h.paymentSvc.CreatePaymentSession(r.Context(), user, req.RentalID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentResponse(p))
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentSvc.ListPayments(r.Context(), filter.PaymentSearchParams{
		UsersIDs: queryIDTokens(r, filter.KeyUsersID),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]paymentResponse, 0, len(payments))
	for i := range payments {
		resp = append(resp, toPaymentResponse(&payments[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *PaymentHandler) Success(w http.ResponseWriter, r *http.Request) {
	h.reconcile(w, r, h.paymentSvc.CheckPaymentSuccess)
}

func (h *PaymentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.reconcile(w, r, h.paymentSvc.PausePayment)
}

func (h *PaymentHandler) reconcile(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, sessionID string) (string, error)) {
	sessionID := strings.TrimSpace(mux.Vars(r)["sessionId"])
	if sessionID == "" {
		writeError(w, validationError("sessionId is required"))
		return
	}
	msg, err := apply(r.Context(), sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}
