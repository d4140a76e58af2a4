package models

// Product categories of the synthetic catalog.
const (
	CategoryElectronics = "Electronics"
	CategoryClothing    = "Clothing"
	CategoryBooks       = "Books"
	CategoryHome        = "Home"
)

// Categories lists every catalog category in display order.
var Categories = []string{CategoryElectronics, CategoryClothing, CategoryBooks, CategoryHome}

// Product represents an item in the catalog.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string  `json:"name" gorm:"type:varchar(100)"`
	Price       float64 `json:"price"`
	Category    string  `json:"category" gorm:"index;type:varchar(50)"`
	Stock       int     `json:"stock"`
	Description string  `json:"description" gorm:"type:varchar(500)"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Position    int     `json:"-" gorm:"index"` // catalog insertion order
}

// Pagination describes a sliced result set.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}
