package api

import (
	"time"

	"shopora-be/internal/cart"
	"shopora-be/internal/order"
	"shopora-be/internal/product"
	"shopora-be/internal/user"
)

type userView struct {
	ID      uint   `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Phone   string `json:"phone"`
}

func toUserView(u user.User) userView {
	return userView{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Role:    string(u.Role),
		Street:  u.Street,
		City:    u.City,
		State:   u.State,
		ZipCode: u.ZipCode,
		Phone:   u.Phone,
	}
}

type authView struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

type productView struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	Manufacturer string  `json:"manufacturer"`
	Stock        int     `json:"stock"`
	ImageURL     *string `json:"image_url"`
	Rating       float64 `json:"rating"`
	IsActive     bool    `json:"is_active"`
}

func toProductView(p product.Product) productView {
	return productView{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Category:     string(p.Category),
		Manufacturer: p.Manufacturer,
		Stock:        p.Stock,
		ImageURL:     p.ImageURL,
		Rating:       p.Rating,
		IsActive:     p.IsActive,
	}
}

func toProductViews(products []product.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	return views
}

type cartItemView struct {
	ID       uint        `json:"id"`
	Quantity int         `json:"quantity"`
	Total    float64     `json:"total"`
	Product  productView `json:"product"`
}

type cartView struct {
	ID        uint           `json:"id"`
	Items     []cartItemView `json:"items"`
	Total     float64        `json:"total"`
	ItemCount int            `json:"item_count"`
}

func toCartView(c *cart.Cart) cartView {
	items := make([]cartItemView, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, cartItemView{
			ID:       item.ID,
			Quantity: item.Quantity,
			Total:    item.Total,
			Product:  toProductView(item.Product),
		})
	}
	return cartView{
		ID:        c.ID,
		Items:     items,
		Total:     c.Total,
		ItemCount: c.ItemCount,
	}
}

type orderItemView struct {
	ID        uint    `json:"id"`
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}

type orderView struct {
	ID              uint            `json:"id"`
	UserID          uint            `json:"user_id"`
	TotalAmount     float64         `json:"total_amount"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"payment_status"`
	PaymentMethod   string          `json:"payment_method"`
	ShippingAddress string          `json:"shipping_address"`
	Items           []orderItemView `json:"items"`

	CancellationReason      *string    `json:"cancellation_reason,omitempty"`
	CancellationRequestedAt *time.Time `json:"cancellation_requested_at,omitempty"`
	CancellationApproved    bool       `json:"cancellation_approved"`
	CancellationRejected    bool       `json:"cancellation_rejected"`
	DeliveredAt             *time.Time `json:"delivered_at,omitempty"`
	DeliveryConfirmedAt     *time.Time `json:"delivery_confirmed_at,omitempty"`
	DeliveryNotes           *string    `json:"delivery_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func toOrderView(o *order.Order) orderView {
	items := make([]orderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     item.Total(),
		})
	}
	return orderView{
		ID:              o.ID,
		UserID:          o.UserID,
		TotalAmount:     o.TotalAmount,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		PaymentMethod:   string(o.PaymentMethod),
		ShippingAddress: o.ShippingAddress(),
		Items:           items,

		CancellationReason:      o.CancellationReason,
		CancellationRequestedAt: o.CancellationRequestedAt,
		CancellationApproved:    o.CancellationApproved,
		CancellationRejected:    o.CancellationRejected,
		DeliveredAt:             o.DeliveredAt,
		DeliveryConfirmedAt:     o.DeliveryConfirmedAt,
		DeliveryNotes:           o.DeliveryNotes,

		CreatedAt: o.CreatedAt,
	}
}

func toOrderViews(orders []*order.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toOrderView(o))
	}
	return views
}
