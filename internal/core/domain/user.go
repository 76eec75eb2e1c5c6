package domain

// Role identifies what a user may see and change.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleAdvisor Role = "ADVISOR"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleAdvisor
}

// User models an authenticated actor in the system.
//
// PasswordHash is persisted under the "password" key of the data file so the
// snapshot round-trips; it must never reach an API response (see Sanitized).
type User struct {
	ID           string `json:"id" bson:"_id"`
	Name         string `json:"name" bson:"name"`
	Email        string `json:"email" bson:"email"`
	Role         Role   `json:"role" bson:"role"`
	PasswordHash string `json:"password,omitempty" bson:"password,omitempty"`
}

// Sanitized returns a copy of the user without credentials.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) IsAdvisor() bool {
	return u.Role == RoleAdvisor
}
