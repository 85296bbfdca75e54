package api

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// SubjectFromToken pulls the user id out of a JWT's payload without
// verifying the signature. The hosted API keys are JWTs whose `sub`
// claim is the numeric account id, which the stats endpoints want in
// the path.
func SubjectFromToken(token string) (string, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", fmt.Errorf("token is not a JWT (%d segments)", len(parts))
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("decode token payload: %w", err)
	}
	var claims struct {
		Sub string `json:"sub"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", fmt.Errorf("parse token claims: %w", err)
	}
	if claims.Sub == "" {
		return "", fmt.Errorf("token has no sub claim")
	}
	return claims.Sub, nil
}
