package http

import (
	"net/http"

	"carsharing-backend/internal/repository/filter"
	"carsharing-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

func (h *RentalHandler) Book(w http.ResponseWriter, r *http.Request) {
	user, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	var req rentalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	carID, rentalDate, returnDate, err := req.parse()
	if err != nil {
		writeError(w, err)
		return
	}

	rental, err := h.rentalSvc.BookRental(r.Context(), user, carID, rentalDate, returnDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toRentalResponse(rental))
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	active, err := queryBool(r, filter.KeyIsActive)
	if err != nil {
		writeError(w, err)
		return
	}
	rentals, err := h.rentalSvc.ListRentals(r.Context(), filter.RentalSearchParams{
		UserIDs:  queryIDTokens(r, filter.KeyUserID),
		IsActive: active,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]rentalResponse, 0, len(rentals))
	for i := range rentals {
		resp = append(resp, toRentalResponse(&rentals[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.rentalSvc.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRentalResponse(rental))
}

func (h *RentalHandler) Return(w http.ResponseWriter, r *http.Request) {
	user, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeErrorMessage(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rental, err := h.rentalSvc.ReturnRental(r.Context(), user, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRentalResponse(rental))
}
