package api

import (
	"net/http"
	"strconv"

	"shopora-be/internal/middleware"
	"shopora-be/internal/product"

	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	products product.Service
}

func NewProductHandler(products product.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

func urlID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter product.ListFilter
	if c := r.URL.Query().Get("category"); c != "" {
		category := product.Category(c)
		filter.Category = &category
	}
	if s := r.URL.Query().Get("search"); s != "" {
		filter.Search = &s
	}

	products, err := h.products.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductViews(products))
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, r, product.ErrNotFound)
		return
	}

	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductView(*p))
}

type createProductRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	Manufacturer string  `json:"manufacturer"`
	Stock        int     `json:"stock"`
	ImageURL     *string `json:"image_url"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	var req createProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.products.Create(r.Context(), actor, product.CreateParams{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     product.Category(req.Category),
		Manufacturer: req.Manufacturer,
		Stock:        req.Stock,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toProductView(*p))
}

type updateProductRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	Category     *string  `json:"category"`
	Manufacturer *string  `json:"manufacturer"`
	Stock        *int     `json:"stock"`
	ImageURL     *string  `json:"image_url"`
	IsActive     *bool    `json:"is_active"`
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	id, ok := urlID(r)
	if !ok {
		writeError(w, r, product.ErrNotFound)
		return
	}

	var req updateProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	params := product.UpdateParams{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Manufacturer: req.Manufacturer,
		Stock:        req.Stock,
		ImageURL:     req.ImageURL,
		IsActive:     req.IsActive,
	}
	if req.Category != nil {
		category := product.Category(*req.Category)
		params.Category = &category
	}

	p, err := h.products.Update(r.Context(), actor, id, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProductView(*p))
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())

	id, ok := urlID(r)
	if !ok {
		writeError(w, r, product.ErrNotFound)
		return
	}

	if err := h.products.Delete(r.Context(), actor, id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
