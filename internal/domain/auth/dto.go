package auth

// Principal is the authenticated caller taken from the token claims.
type Principal struct {
	Subject string
	Role    Role
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
