// Package jwt signs and verifies HS256 JSON Web Tokens for IVR units.
//
// Service is the low-level signer bound to one key. Signer implements the
// host's signJwt capability, where the secret and the jsonwebtoken-style
// options ({"expiresIn": "1h", "algorithm": "HS256"}) arrive with every call:
//
//	signer := jwt.NewSigner(jwt.WithClock(clock))
//	token, err := signer.Sign(
//	    map[string]any{"userId": "12345", "sessionId": dialogID},
//	    secret,
//	    map[string]any{"expiresIn": "1h", "algorithm": "HS256"},
//	)
//
// Claims are serialized in RFC 8785 canonical form (sorted keys, normalized
// numbers) so the same payload and clock always produce the same token.
package jwt
