package types

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ConfessionResponse struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// CookieConfig carries the deployment-specific cookie attributes both
// surfaces use when writing the session cookie.
type CookieConfig struct {
	Domain string
	Secure bool
}
