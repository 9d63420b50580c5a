package usecase

import (
	authdomain "todovault-backend/internal/auth/domain"
	authdto "todovault-backend/internal/auth/dto"
)

// AuthUsecase is the identity-provider boundary. It owns every session
// transition: sign-in, sign-out, refresh, and per-request validation. The
// rest of the application only ever sees the resulting User.
type AuthUsecase interface {
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)

	// GoogleSignIn verifies a Google ID token and finds or creates the
	// matching user. Verification failure aborts the sign-in; it is logged
	// and never retried automatically.
	GoogleSignIn(idToken string) (*authdto.TokenResponse, error)

	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error

	// ValidateToken resolves a bearer token to its user. Used by the
	// request middleware on every protected call.
	ValidateToken(token string) (*authdomain.User, error)
}
