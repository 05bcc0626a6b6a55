package order

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"shopora-be/internal/logger"

	"go.uber.org/zap"
)

// PricingMode decides what happens to a submitted line whose price is not
// numeric: lenient coerces it to zero, strict fails the whole order.
type PricingMode string

const (
	PricingLenient PricingMode = "lenient"
	PricingStrict  PricingMode = "strict"
)

func ParsePricingMode(s string) PricingMode {
	if s == string(PricingStrict) {
		return PricingStrict
	}
	return PricingLenient
}

// Money accepts a JSON number or a numeric string in the checkout payload.
type Money struct {
	Value float64
	OK    bool
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		*m = Money{}
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Mode-dependent handling is deferred to the calculator.
		*m = Money{}
		return nil
	}

	*m = Money{Value: v, OK: true}
	return nil
}

// Line is one submitted checkout line. Prices come from the client and are
// trusted as-is; they are not re-derived from the live catalog.
type Line struct {
	ProductID uint  `json:"id"`
	Quantity  int   `json:"quantity"`
	Price     Money `json:"price"`
}

// ResolvedLine is a Line after quantity defaulting and price coercion.
type ResolvedLine struct {
	ProductID uint
	Quantity  int
	Price     float64
}

// Calculator derives the order total from the submitted lines.
type Calculator struct {
	mode PricingMode
}

func NewCalculator(mode PricingMode) *Calculator {
	return &Calculator{mode: mode}
}

// Normalize coerces every line and sums the total. The total covers all
// submitted lines; lines whose product later turns out not to exist still
// contribute to it.
func (c *Calculator) Normalize(ctx context.Context, lines []Line) ([]ResolvedLine, float64, error) {
	resolved := make([]ResolvedLine, 0, len(lines))
	total := 0.0

	for i, line := range lines {
		qty := line.Quantity
		if qty <= 0 {
			qty = 1
		}

		price := line.Price.Value
		if !line.Price.OK {
			if c.mode == PricingStrict {
				return nil, 0, fmt.Errorf("%w: line %d has a non-numeric price", ErrValidation, i)
			}
			logger.FromCtx(ctx).Warn("non-numeric price coerced to zero",
				zap.Int("line", i),
				zap.Uint("product_id", line.ProductID),
			)
			price = 0
		}

		total += price * float64(qty)
		resolved = append(resolved, ResolvedLine{
			ProductID: line.ProductID,
			Quantity:  qty,
			Price:     price,
		})
	}

	return resolved, total, nil
}
