package entity

import "time"

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash. Phone is optional and only used to build
// contact links for the user's listings.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Favorite marks a property a user saved for later reference.
type Favorite struct {
	UserID     string    `json:"userId"`
	PropertyID string    `json:"propertyId"`
	CreatedAt  time.Time `json:"createdAt"`
}
