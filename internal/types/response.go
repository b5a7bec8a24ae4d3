package types

// MessageResponse is the body of every error and of acknowledgement-only
// successes.
type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
