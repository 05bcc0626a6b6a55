package api

import (
	"net/http"

	"shopora-be/internal/middleware"
	"shopora-be/internal/order"
)

type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type checkoutRequest struct {
	PaymentMethod   string       `json:"payment_method"`
	ShippingStreet  string       `json:"shipping_street"`
	ShippingCity    string       `json:"shipping_city"`
	ShippingState   string       `json:"shipping_state"`
	ShippingZipCode string       `json:"shipping_zip_code"`
	Items           []order.Line `json:"items"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	var req checkoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	o, err := h.orders.Create(r.Context(), actor, order.CreateOrderParams{
		PaymentMethod:   req.PaymentMethod,
		ShippingStreet:  req.ShippingStreet,
		ShippingCity:    req.ShippingCity,
		ShippingState:   req.ShippingState,
		ShippingZipCode: req.ShippingZipCode,
		Items:           req.Items,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderView(o))
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	orders, err := h.orders.ListOrders(r.Context(), actor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderViews(orders))
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	id, ok := urlID(r)
	if !ok {
		writeError(w, r, order.ErrOrderNotFound)
		return
	}

	o, err := h.orders.GetOrder(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderView(o))
}

func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	id, ok := urlID(r)
	if !ok {
		writeError(w, r, order.ErrOrderNotFound)
		return
	}

	o, err := h.orders.Cancel(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderView(o))
}

type requestCancellationRequest struct {
	Reason string `json:"reason"`
}

func (h *OrderHandler) RequestCancellation(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	id, ok := urlID(r)
	if !ok {
		writeError(w, r, order.ErrOrderNotFound)
		return
	}

	var req requestCancellationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	o, err := h.orders.RequestCancellation(r.Context(), actor, id, req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderView(o))
}

type confirmDeliveryRequest struct {
	Notes string `json:"notes"`
}

func (h *OrderHandler) ConfirmDelivery(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	id, ok := urlID(r)
	if !ok {
		writeError(w, r, order.ErrOrderNotFound)
		return
	}

	var req confirmDeliveryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	o, err := h.orders.ConfirmDelivery(r.Context(), actor, id, req.Notes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderView(o))
}

// Admin endpoints.

func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	var status *order.Status
	if s := r.URL.Query().Get("status"); s != "" {
		parsed, err := order.ParseStatus(s)
		if err != nil {
			writeError(w, r, err)
			return
		}
		status = &parsed
	}

	orders, err := h.orders.ListAllOrders(r.Context(), actor, status)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderViews(orders))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	id, ok := urlID(r)
	if !ok {
		writeError(w, r, order.ErrOrderNotFound)
		return
	}

	var req updateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), actor, id, req.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderView(o))
}

type respondCancellationRequest struct {
	Approve bool `json:"approve"`
}

func (h *OrderHandler) RespondCancellation(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	id, ok := urlID(r)
	if !ok {
		writeError(w, r, order.ErrOrderNotFound)
		return
	}

	var req respondCancellationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	o, err := h.orders.RespondCancellation(r.Context(), actor, id, req.Approve)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderView(o))
}

func (h *OrderHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	id, ok := urlID(r)
	if !ok {
		writeError(w, r, order.ErrOrderNotFound)
		return
	}

	o, err := h.orders.MarkDelivered(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderView(o))
}

func (h *OrderHandler) PendingCancellations(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	orders, err := h.orders.PendingCancellations(r.Context(), actor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderViews(orders))
}

func (h *OrderHandler) PendingDeliveries(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	orders, err := h.orders.PendingDeliveries(r.Context(), actor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderViews(orders))
}
