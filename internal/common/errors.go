package common

import (
	"fmt"
	"net/http"
)

// DomainError is a client-visible failure. Handlers surface Message with
// Status; nothing here is retried internally.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string { return e.Message }

var (
	ErrNotAuthor = &DomainError{
		Code:    "NOT_AUTHOR",
		Message: "Only the author of the startup can do this",
		Status:  http.StatusBadRequest,
	}
	ErrAlreadyAuthor = &DomainError{
		Code:    "ALREADY_AUTHOR",
		Message: "The author cannot join their own team",
		Status:  http.StatusBadRequest,
	}
	ErrAlreadyMember = &DomainError{
		Code:    "ALREADY_MEMBER",
		Message: "User is already a member of this team",
		Status:  http.StatusBadRequest,
	}
	ErrAlreadyRequested = &DomainError{
		Code:    "ALREADY_REQUESTED",
		Message: "User has already requested to join this team",
		Status:  http.StatusBadRequest,
	}
	ErrNotInRequests = &DomainError{
		Code:    "NOT_IN_REQUESTS",
		Message: "User has no pending request to this team",
		Status:  http.StatusBadRequest,
	}
	ErrInvalidSlot = &DomainError{
		Code:    "INVALID_SLOT",
		Message: "Progress link slot must be 1, 2 or 3",
		Status:  http.StatusBadRequest,
	}
	ErrMissingFile = &DomainError{
		Code:    "MISSING_FILE",
		Message: "File not found",
		Status:  http.StatusBadRequest,
	}
	ErrImageTooLarge = &DomainError{
		Code:    "IMAGE_TOO_LARGE",
		Message: "Image exceeds the 15MB limit",
		Status:  http.StatusRequestEntityTooLarge,
	}
	ErrCodeExpired = &DomainError{
		Code:    "CODE_EXPIRED",
		Message: "The code has expired",
		Status:  http.StatusBadRequest,
	}
	ErrInvalidCredentials = &DomainError{
		Code:    "INVALID_CREDENTIALS",
		Message: "Invalid email or password",
		Status:  http.StatusUnauthorized,
	}
	ErrEmailTaken = &DomainError{
		Code:    "EMAIL_TAKEN",
		Message: "User with this email already exists",
		Status:  http.StatusBadRequest,
	}
	ErrConfirmation = &DomainError{
		Code:    "CONFIRMATION_FAILED",
		Message: "Confirmation error",
		Status:  http.StatusBadRequest,
	}
	ErrNotConfirmed = &DomainError{
		Code:    "NOT_CONFIRMED",
		Message: "Email is not confirmed",
		Status:  http.StatusUnauthorized,
	}
	ErrInvalidTheme = &DomainError{
		Code:    "INVALID_THEME",
		Message: "Unknown color theme",
		Status:  http.StatusBadRequest,
	}
)

// NewNotFound names the missing entity and id, mirroring the lookup helper
// the services share.
func NewNotFound(entity string, id string) *DomainError {
	return &DomainError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("Field %s with id %s was not found", entity, id),
		Status:  http.StatusBadRequest,
	}
}

// NewRateLimited reports the remaining wait in whole minutes.
func NewRateLimited(remainingMinutes int) *DomainError {
	return &DomainError{
		Code:    "RATE_LIMITED",
		Message: fmt.Sprintf("Remaining time to use this feature: %d minutes", remainingMinutes),
		Status:  http.StatusBadRequest,
	}
}
