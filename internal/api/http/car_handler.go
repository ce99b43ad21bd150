package http

import (
	"net/http"

	"carsharing-backend/internal/service"
)

type CarHandler struct {
	carSvc service.CarService
}

func NewCarHandler(carSvc service.CarService) *CarHandler {
	return &CarHandler{carSvc: carSvc}
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	car, err := req.toDomain()
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.carSvc.AddCar(r.Context(), car); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCarResponse(car))
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt32(r, "page", 0)
	if err != nil {
		writeError(w, err)
		return
	}
	size, err := queryInt32(r, "size", service.DefaultPageSize)
	if err != nil {
		writeError(w, err)
		return
	}
	if size == 0 {
		size = service.DefaultPageSize
	}
	if size > service.MaxPageSize {
		size = service.MaxPageSize
	}

	cars, total, err := h.carSvc.ListCars(r.Context(), page, size)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := carPageResponse{Cars: make([]carResponse, 0, len(cars)), Page: page, Size: size, Total: total}
	for i := range cars {
		resp.Cars = append(resp.Cars, toCarResponse(&cars[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	car, err := h.carSvc.GetCar(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCarResponse(car))
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req carRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	car, err := req.toDomain()
	if err != nil {
		writeError(w, err)
		return
	}
	car.ID = id
	if err := h.carSvc.UpdateCar(r.Context(), car); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCarResponse(car))
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.carSvc.DeleteCar(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
