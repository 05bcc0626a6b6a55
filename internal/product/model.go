package product

import "time"

type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryHome        Category = "home"
	CategoryBooks       Category = "books"
	CategoryBeauty      Category = "beauty"
	CategorySports      Category = "sports"
	CategoryToys        Category = "toys"
	CategoryOther       Category = "other"
)

var validCategories = map[Category]bool{
	CategoryElectronics: true,
	CategoryClothing:    true,
	CategoryHome:        true,
	CategoryBooks:       true,
	CategoryBeauty:      true,
	CategorySports:      true,
	CategoryToys:        true,
	CategoryOther:       true,
}

func ValidCategory(c Category) bool {
	return validCategories[c]
}

type Product struct {
	ID           uint
	Name         string
	Description  string
	Price        float64
	Category     Category
	Manufacturer string
	Stock        int
	ImageURL     *string
	Rating       float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ListFilter struct {
	Category *Category
	Search   *string
}

type CreateParams struct {
	Name         string
	Description  string
	Price        float64
	Category     Category
	Manufacturer string
	Stock        int
	ImageURL     *string
}

type UpdateParams struct {
	Name         *string
	Description  *string
	Price        *float64
	Category     *Category
	Manufacturer *string
	Stock        *int
	ImageURL     *string
	IsActive     *bool
}
