package models

import "time"

// Color is a named swatch selectable on products. Value is a hex color in
// #RGB or #RRGGBB form.
type Color struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name" validate:"required"`
	Value     string    `json:"value" bson:"value" validate:"required,hexcolor"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
