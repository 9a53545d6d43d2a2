package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrWrongTokenType indicates a token issued for another purpose, such as a refresh token.
	ErrWrongTokenType = errors.New("wrong authentication token type")

	// ErrMissingUserID indicates a valid token that identifies no user.
	ErrMissingUserID = errors.New("authentication token has no user id")
)
