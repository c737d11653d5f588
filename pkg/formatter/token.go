package formatter

import (
	"time"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

// TokenOptions are the signJwt options of the generate-jwt unit.
var TokenOptions = map[string]any{
	"expiresIn": "1h",
	"algorithm": "HS256",
}

// Token signs {userId, sessionId, timestamp} through the host signer. It
// returns unit.ErrNoCapability when no signer is configured.
func Token(sign unit.SignFunc, secret, userID, sessionID string, now time.Time) (string, error) {
	if sign == nil {
		return "", unit.ErrNoCapability
	}

	opts := make(map[string]any, len(TokenOptions))
	for k, v := range TokenOptions {
		opts[k] = v
	}

	return sign(map[string]any{
		"userId":    userID,
		"sessionId": sessionID,
		"timestamp": now.UnixMilli(),
	}, secret, opts)
}
