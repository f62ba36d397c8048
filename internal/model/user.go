package model

const (
	RoleDriver     = "DRIVER"
	RoleHeadDriver = "HEAD_DRIVER"
)

// User represents a driver or head-driver account. Usernames are the login
// key and must be unique across all users, compared case-insensitively.
type User struct {
	ID       string `json:"id" bson:"-"`
	Name     string `json:"name" bson:"name"`
	Username string `json:"username" bson:"username"`
	// Password is stored and compared verbatim (see DESIGN.md). The json tag
	// is needed by the local backend's persistence; handlers blank it before
	// returning users over the API.
	Password string `json:"password,omitempty" bson:"password"`
	Role     string `json:"role" bson:"role"`
}

// CreateUserRequest is used by the admin surface to add a user
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=DRIVER HEAD_DRIVER"`
}

// UpdateUserRequest mirrors CreateUserRequest except that a blank password
// keeps the user's current password.
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"required,oneof=DRIVER HEAD_DRIVER"`
}
