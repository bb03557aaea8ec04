package models

import "time"

// Product represents a sellable item in the catalog.
type Product struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"not null" validate:"required"`
	Category  string    `json:"category" gorm:"not null" validate:"required"`
	Price     float64   `json:"price" gorm:"not null" validate:"gt=0"`
	Stock     float64   `json:"stock" gorm:"not null" validate:"gte=0"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductChanges holds the fields of a partial update. Nil means "keep the
// stored value".
type ProductChanges struct {
	Name     *string
	Category *string
	Price    *float64
	Stock    *float64
}

// Empty reports whether no field is set.
func (c ProductChanges) Empty() bool {
	return c.Name == nil && c.Category == nil && c.Price == nil && c.Stock == nil
}

// Apply copies the set fields onto p.
func (c ProductChanges) Apply(p *Product) {
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.Category != nil {
		p.Category = *c.Category
	}
	if c.Price != nil {
		p.Price = *c.Price
	}
	if c.Stock != nil {
		p.Stock = *c.Stock
	}
}
