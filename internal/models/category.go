package models

// Category groups products; subcategories are plain names nested under it.
type Category struct {
	ID            string   `json:"id" bson:"_id,omitempty"`
	Name          string   `json:"name" bson:"name" validate:"required"`
	Subcategories []string `json:"subcategories" bson:"subcategories"`
}

// HasSubcategory reports whether name is already registered.
func (c *Category) HasSubcategory(name string) bool {
	for _, s := range c.Subcategories {
		if s == name {
			return true
		}
	}
	return false
}
