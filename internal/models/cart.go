package models

import "time"

// Cart is a collection of line items owned by exactly one of UserID or
// GuestID. Guest carts belong to anonymous sessions and are folded into the
// account cart at login.
type Cart struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	UserID    string     `json:"userId,omitempty" bson:"userId,omitempty"`
	GuestID   string     `json:"guestId,omitempty" bson:"guestId,omitempty"`
	Items     []CartItem `json:"items" bson:"items"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// CartItem is a single product line. A cart never holds two items with the
// same ProductID.
type CartItem struct {
	ProductID string    `json:"productId" bson:"productId" validate:"required"`
	Quantity  int       `json:"quantity" bson:"quantity" validate:"required,min=1"`
	AddedAt   time.Time `json:"addedAt" bson:"addedAt"`
}

// FindItem returns the index of the line item for productID, or -1.
func (c *Cart) FindItem(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
