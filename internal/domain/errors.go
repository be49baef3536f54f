package domain

import (
	"errors"
	"fmt"
)

// ErrKind is used to map domain errors to HTTP status codes consistently.
type ErrKind string

const (
	KindValidation     ErrKind = "validation"     // 400
	KindAuth           ErrKind = "auth"           // 401
	KindForbidden      ErrKind = "forbidden"      // 403
	KindNotFound       ErrKind = "not_found"      // 404
	KindConflict       ErrKind = "conflict"       // 409
	KindUnprocessable  ErrKind = "unprocessable"  // 422
	KindRateLimited    ErrKind = "rate_limited"   // 429
	KindInfrastructure ErrKind = "infrastructure" // 503
	KindInternal       ErrKind = "internal"       // 500
)

// Error is a structured domain error.
// - Kind: high-level category for HTTP mapping
// - Code: stable machine code (do not change casually)
// - Message: safe summary for clients (avoid leaking sensitive details)
// - Meta: optional details (field, reason, etc.)
// - Cause: wrapped internal error for logging/diagnostics
type Error struct {
	Kind    ErrKind
	Code    string
	Message string
	Meta    map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Kind, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Kind, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(kind ErrKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

func Wrap(kind ErrKind, code, msg string, cause error) *Error {
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

func WithMeta(err *Error, meta map[string]string) *Error {
	err.Meta = meta
	return err
}

func Is(err error, code string) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ----------------------
// Validation errors (400)
// ----------------------

func ErrInvalidJSON(cause error) *Error {
	return Wrap(KindValidation, "invalid_json", "invalid JSON body", cause)
}

func ErrMissingField(field string) *Error {
	return WithMeta(New(KindValidation, "missing_field", "missing required field"), map[string]string{
		"field": field,
	})
}

func ErrInvalidField(field, reason string) *Error {
	return WithMeta(New(KindValidation, "invalid_field", "invalid field"), map[string]string{
		"field":  field,
		"reason": reason,
	})
}

func ErrValidationFailed(reason string) *Error {
	return WithMeta(New(KindValidation, "validation_failed", "Validation failed"), map[string]string{
		"reason": reason,
	})
}

func ErrWeakPassword(reason string) *Error {
	return WithMeta(New(KindValidation, "weak_password", "password does not meet requirements"), map[string]string{
		"reason": reason,
	})
}

// ----------------------
// Auth errors (401)
// ----------------------

// IMPORTANT: the login flow returns this for an unknown email AND for a wrong
// password. A single message prevents user enumeration.
func ErrInvalidCredentials() *Error {
	return New(KindAuth, "invalid_credentials", "Invalid credentials")
}

func ErrAuthenticationRequired() *Error {
	return New(KindAuth, "authentication_required", "Authentication required")
}

func ErrTokenInvalid() *Error {
	return New(KindAuth, "token_invalid", "Invalid or expired token")
}

func ErrRefreshTokenRequired() *Error {
	return New(KindAuth, "refresh_token_required", "Refresh token required")
}

// Absent and revoked records collapse into one message so a caller probing
// the ledger learns nothing about its state.
func ErrRefreshTokenNotFound() *Error {
	return New(KindAuth, "refresh_token_not_found", "Refresh token not found")
}

func ErrRefreshTokenExpired() *Error {
	return New(KindAuth, "refresh_token_expired", "Refresh token expired")
}

func ErrRefreshTokenInvalid() *Error {
	return New(KindAuth, "refresh_token_invalid", "Invalid refresh token")
}

// ----------------------
// Forbidden (403)
// ----------------------

func ErrInsufficientPermissions() *Error {
	return New(KindForbidden, "insufficient_permissions", "Insufficient permissions")
}

func ErrForbidden(msg string) *Error {
	if msg == "" {
		msg = "Forbidden"
	}
	return New(KindForbidden, "forbidden", msg)
}

// ----------------------
// Not Found (404)
// ----------------------

func ErrUserNotFound() *Error {
	return New(KindNotFound, "user_not_found", "User not found")
}

func ErrAthleteNotFound() *Error {
	return New(KindNotFound, "athlete_not_found", "Athlete not found")
}

func ErrTrainingPlanNotFound() *Error {
	return New(KindNotFound, "training_plan_not_found", "Training plan not found")
}

func ErrNutritionPlanNotFound() *Error {
	return New(KindNotFound, "nutrition_plan_not_found", "Nutrition plan not found")
}

func ErrMessageNotFound() *Error {
	return New(KindNotFound, "message_not_found", "Message not found")
}

// ----------------------
// Conflict (409)
// ----------------------

func ErrEmailAlreadyRegistered() *Error {
	return New(KindConflict, "email_already_registered", "Email is already registered")
}

func ErrAthleteProfileExists() *Error {
	return New(KindConflict, "athlete_profile_exists", "Athlete profile already exists for this user")
}

// ----------------------
// Unprocessable (422)
// ----------------------

func ErrUnprocessable(msg string) *Error {
	if msg == "" {
		msg = "Unprocessable entity"
	}
	return New(KindUnprocessable, "unprocessable_entity", msg)
}

// ----------------------
// Rate limit (429)
// ----------------------

func ErrRateLimited(scope string) *Error {
	return WithMeta(New(KindRateLimited, "rate_limited", "too many requests"), map[string]string{
		"scope": scope,
	})
}

// ----------------------
// Infrastructure / internal (5xx)
// ----------------------

func ErrStorage(cause error) *Error {
	return Wrap(KindInfrastructure, "storage_failure", "storage unavailable", cause)
}

func ErrHashFailed(cause error) *Error {
	return Wrap(KindInternal, "hash_failed", "password hashing failed", cause)
}

func ErrTokenSignFailed(cause error) *Error {
	return Wrap(KindInternal, "token_sign_failed", "token signing failed", cause)
}

func ErrInternal(cause error) *Error {
	return Wrap(KindInternal, "internal_error", "internal error", cause)
}
