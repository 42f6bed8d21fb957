package entities

import "time"

// Profile is an investor/user profile row. Unlike the read-only projections,
// profiles support updates through the authenticated write path.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Company   string    `json:"company"`
	Role      string    `json:"role"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileUpdate carries the updatable profile fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	FullName *string `json:"fullName,omitempty"`
	Company  *string `json:"company,omitempty"`
	Role     *string `json:"role,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}
