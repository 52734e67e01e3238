package doctors

import "errors"

// Doctor is a practitioner profile managed by admins.
type Doctor struct {
	ID        string `dynamodbav:"id" json:"_id"`
	Name      string `dynamodbav:"name" json:"name"`
	Email     string `dynamodbav:"email,omitempty" json:"email,omitempty"`
	Specialty string `dynamodbav:"specialty" json:"specialty"`
	Image     string `dynamodbav:"image,omitempty" json:"image,omitempty"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// ErrNotFound means no doctor matches the requested identifier.
var ErrNotFound = errors.New("doctors: doctor not found")

// CreateRequest carries an admin's new-doctor submission.
type CreateRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Specialty string `json:"specialty"`
	Image     string `json:"image"`
}
