package users

import "errors"

// Roles a user can hold. The only transition this system performs is
// patient -> admin.
const (
	RolePatient = "patient"
	RoleAdmin   = "admin"
)

// User is an account identified by email.
type User struct {
	ID        string `dynamodbav:"id" json:"_id"`
	Email     string `dynamodbav:"email" json:"email"`
	Name      string `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Role      string `dynamodbav:"role" json:"role"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

var (
	// ErrEmailTaken means a user with that email already exists.
	ErrEmailTaken = errors.New("users: email already registered")
	// ErrNotFound means no user matches the requested identifier.
	ErrNotFound = errors.New("users: user not found")
)

// CreateRequest carries a signup request.
type CreateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
