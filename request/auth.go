package request

// Authorization decides whether an Authorization header is sent.
// The zero value sends no header.
type Authorization struct {
	token    string
	hasToken bool
}

// NoAuthorization sends no Authorization header.
func NoAuthorization() Authorization {
	return Authorization{}
}

// Token sends "Authorization: Bearer {token}".
func Token(token string) Authorization {
	return Authorization{token: token, hasToken: true}
}

// IsNone reports whether no header is sent.
func (a Authorization) IsNone() bool {
	return !a.hasToken
}

// Header returns the Authorization header value, if any.
func (a Authorization) Header() (string, bool) {
	if !a.hasToken {
		return "", false
	}
	return "Bearer " + a.token, true
}
