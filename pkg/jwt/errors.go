package jwt

import "errors"

var (
	ErrInvalidToken            = errors.New("jwt: invalid token")
	ErrExpiredToken            = errors.New("jwt: token is expired")
	ErrTokenNotYetValid        = errors.New("jwt: token is not valid yet")
	ErrMissingSigningKey       = errors.New("jwt: missing signing key")
	ErrMissingClaims           = errors.New("jwt: missing claims")
	ErrInvalidSignature        = errors.New("jwt: invalid signature")
	ErrUnexpectedSigningMethod = errors.New("jwt: unexpected signing method")
	ErrUnsupportedAlgorithm    = errors.New("jwt: unsupported algorithm")
	ErrInvalidExpiresIn        = errors.New("jwt: invalid expiresIn")
	ErrCanonicalization        = errors.New("jwt: claims cannot be canonicalized")
)
