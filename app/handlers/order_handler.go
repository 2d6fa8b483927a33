package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kalash-creations/go-bangles/app/models"
	"github.com/kalash-creations/go-bangles/app/services"
	"github.com/kalash-creations/go-bangles/app/utils/apperr"
)

func (h *APIHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderRepo.GetAllOrders(r.Context())
	if err != nil {
		h.respondError(w, "GetOrders", err)
		return
	}
	h.render.JSON(w, http.StatusOK, orders)
}

func (h *APIHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseOrderID(r)
	if err != nil {
		h.respondError(w, "GetOrder", err)
		return
	}

	order, err := h.orderRepo.GetByID(r.Context(), orderID)
	if err != nil {
		h.respondError(w, "GetOrder", err)
		return
	}
	if order == nil {
		h.respondError(w, "GetOrder", apperr.NotFoundf("Order not found"))
		return
	}
	h.render.JSON(w, http.StatusOK, order)
}

func (h *APIHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var input services.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondError(w, "CreateOrder", apperr.Validationf("Invalid request body."))
		return
	}

	order, err := h.orderSvc.CreateOrder(r.Context(), input)
	if err != nil {
		h.respondError(w, "CreateOrder", err)
		return
	}
	h.render.JSON(w, http.StatusCreated, order)
}

func (h *APIHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseOrderID(r)
	if err != nil {
		h.respondError(w, "UpdateOrderStatus", err)
		return
	}

	var body struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.respondError(w, "UpdateOrderStatus", apperr.Validationf("Invalid request body."))
		return
	}

	order, err := h.orderSvc.UpdateStatus(r.Context(), orderID, body.Status)
	if err != nil {
		h.respondError(w, "UpdateOrderStatus", err)
		return
	}
	h.render.JSON(w, http.StatusOK, order)
}

func parseOrderID(r *http.Request) (uint, error) {
	raw := mux.Vars(r)["orderId"]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperr.Validationf("Invalid Order ID format.")
	}
	return uint(id), nil
}
