package models

import "time"

// Product is a catalog entry. Colors holds ids of Color documents.
type Product struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Images        []string  `json:"images" bson:"images"`
	Title         string    `json:"title" bson:"title" validate:"required"`
	Description   string    `json:"description" bson:"description"`
	Category      string    `json:"category" bson:"category"`
	Subcategory   string    `json:"subcategory" bson:"subcategory"`
	Colors        []string  `json:"colors" bson:"colors"`
	Price         float64   `json:"price" bson:"price" validate:"gte=0"`
	SalePrice     float64   `json:"salePrice" bson:"salePrice" validate:"gte=0"`
	TotalStock    int       `json:"totalStock" bson:"totalStock" validate:"gte=0"`
	AverageReview float64   `json:"averageReview" bson:"averageReview"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}
