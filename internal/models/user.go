package models

// Roles assignable to an account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a customer or administrator account.
// Password holds the bcrypt hash and is empty for Google-only accounts.
type User struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	UserName string `json:"userName" bson:"userName" validate:"required,min=2,max=100"`
	Email    string `json:"email" bson:"email" validate:"required,email"`
	Password string `json:"-" bson:"password,omitempty"`
	GoogleID string `json:"-" bson:"googleId,omitempty"`
	Role     string `json:"role" bson:"role"`
}

// IsAdmin reports whether the account has the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
