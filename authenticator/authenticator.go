package authenticator

// Claims represents the identity carried inside an issued token
type Claims struct {
	UserID string
	Role   string
}

// TokenProvider interface abstracts token issuing and verification
type TokenProvider interface {
	IssueToken(userID, role string) (string, error)
	VerifyToken(token string) (*Claims, error)
}
