package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// User represents an account document. The bcrypt hash lives in the
// "password" field; every read path excludes it with a projection, and the
// json tag keeps it out of serialized responses either way.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password,omitempty" json:"-"`
	Firstname    *string            `bson:"firstname" json:"firstname"`
	Lastname     *string            `bson:"lastname" json:"lastname"`
	Status       string             `bson:"status" json:"status"`
	ProfileImage *string            `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
}

// User statuses.
const (
	UserStatusActive    = "ACTIVE"
	UserStatusSuspended = "SUSPENDED"
	UserStatusDeleted   = "DELETED"
)

// ValidUserStatus reports whether s is one of the known user statuses.
func ValidUserStatus(s string) bool {
	return s == UserStatusActive || s == UserStatusSuspended || s == UserStatusDeleted
}

// PublicProfile is the response shape for the profile endpoints. Missing
// names render as empty strings, a missing image as null.
type PublicProfile struct {
	ID           string  `json:"id"`
	Firstname    string  `json:"firstname"`
	Lastname     string  `json:"lastname"`
	Email        string  `json:"email"`
	ProfileImage *string `json:"profileImage"`
}

// Profile converts a stored user into its public profile shape.
func (u *User) Profile() PublicProfile {
	p := PublicProfile{
		ID:           u.ID.Hex(),
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
	}
	if u.Firstname != nil {
		p.Firstname = *u.Firstname
	}
	if u.Lastname != nil {
		p.Lastname = *u.Lastname
	}
	return p
}
