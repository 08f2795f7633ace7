package auth

import "strings"

const bearerScheme = "Bearer"

// Credential holds the raw credential sources of one request.
type Credential struct {
	// Header is the Authorization header value.
	Header string
	// Cookie is the value of the token cookie.
	Cookie string
}

// ExtractToken selects the token string. A bearer-scheme header wins even when
// its token part is empty; otherwise the cookie is used. The scheme is matched
// case-sensitively, so "bearer x" falls back to the cookie.
func ExtractToken(cred Credential) (string, error) {
	if scheme, token, ok := splitAuthorization(cred.Header); ok && scheme == bearerScheme {
		if token == "" {
			return "", newError(KindMissingCredential, nil)
		}
		return token, nil
	}
	if cred.Cookie != "" {
		return cred.Cookie, nil
	}
	return "", newError(KindMissingCredential, nil)
}

func splitAuthorization(header string) (scheme, token string, ok bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", "", false
	}
	scheme, token, _ = strings.Cut(header, " ")
	return scheme, strings.TrimSpace(token), true
}
