package model

// TokenTypeBearer is the token_type reported alongside every token pair.
const TokenTypeBearer = "bearer"

// TokenPair is the envelope returned by signup, login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}
