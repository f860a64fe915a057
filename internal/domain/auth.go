package domain

// Credentials es el cuerpo de POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput es el cuerpo de POST /auth/register.
type RegisterInput struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Password      string `json:"password"`
	Role          Role   `json:"role,omitempty"`
	WalletAddress string `json:"wallet_address,omitempty"`
}

// AuthResponse devuelve el token de acceso emitido junto al usuario.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        User   `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
