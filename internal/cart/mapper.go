package cart

// BuildCart assembles the cart projection from the cart row and its joined
// items: per-line totals, the cart total and the distinct item count.
func BuildCart(c Cart, rows []CartRow) *Cart {
	items := make([]CartItem, 0, len(rows))
	total := 0.0

	for _, r := range rows {
		lineTotal := r.Product.Price * float64(r.Quantity)
		total += lineTotal

		items = append(items, CartItem{
			ID:       r.ItemID,
			CartID:   r.CartID,
			Quantity: r.Quantity,
			Total:    lineTotal,
			Product:  r.Product,
		})
	}

	c.Items = items
	c.Total = total
	c.ItemCount = len(items)
	return &c
}
