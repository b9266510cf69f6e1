package jwtx

import "errors"

var (
	// ErrNoSecret indicates the signer was constructed without key material.
	ErrNoSecret = errors.New("jwtx: signing secret not configured")

	// ErrInvalidToken covers malformed tokens, bad signatures and tokens
	// signed with an unexpected algorithm.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	// ErrExpired indicates the token is outside its validity window.
	ErrExpired = errors.New("jwtx: token expired")

	// ErrIssuer indicates an issuer claim mismatch.
	ErrIssuer = errors.New("jwtx: issuer mismatch")
)
