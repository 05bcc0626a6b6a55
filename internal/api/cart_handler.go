package api

import (
	"net/http"

	"shopora-be/internal/cart"
	"shopora-be/internal/middleware"
)

type CartHandler struct {
	carts cart.Service
}

func NewCartHandler(carts cart.Service) *CartHandler {
	return &CartHandler{carts: carts}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	c, err := h.carts.GetCart(r.Context(), actor.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCartView(c))
}

type addItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	var req addItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.carts.AddItem(r.Context(), actor.ID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toCartView(c))
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	itemID, ok := urlID(r)
	if !ok {
		writeError(w, r, cart.ErrCartItemNotFound)
		return
	}

	var req updateItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.carts.UpdateItem(r.Context(), actor.ID, itemID, req.Quantity)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCartView(c))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	itemID, ok := urlID(r)
	if !ok {
		writeError(w, r, cart.ErrCartItemNotFound)
		return
	}

	c, err := h.carts.RemoveItem(r.Context(), actor.ID, itemID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCartView(c))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	c, err := h.carts.Clear(r.Context(), actor.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toCartView(c))
}
