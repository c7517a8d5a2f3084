package service

import (
	"context"
	"log/slog"

	"github.com/dvalverde/pos-companion/internal/cart"
	"github.com/dvalverde/pos-companion/internal/currency"
	"github.com/dvalverde/pos-companion/internal/errors"
	"github.com/dvalverde/pos-companion/internal/models"
)

type authClient interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	ValidateToken(ctx context.Context) (bool, error)
}

type sessionStore interface {
	Save(ctx context.Context, session models.Session) error
	Delete(ctx context.Context) error
	Get(ctx context.Context) (*models.Session, error)
}

// AuthService wires login and logout through the session store and resets
// the device state that belongs to a seller: the cart, the client selection
// and the currency profile.
type AuthService struct {
	backend   authClient
	sessions  sessionStore
	cart      *cart.Store
	converter *currency.Converter
}

func NewAuthService(backendClient authClient, sessions sessionStore, cartStore *cart.Store, converter *currency.Converter) *AuthService {
	return &AuthService{
		backend:   backendClient,
		sessions:  sessions,
		cart:      cartStore,
		converter: converter,
	}
}

func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.User, error) {

	resp, err := s.backend.Login(ctx, *req)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, models.Session{Token: resp.Token, User: resp.User}); err != nil {
		return nil, err
	}

	s.converter.SetProfile(currency.ProfileFromUser(resp.User))

	slog.Info("Seller logged in",
		slog.String("userId", resp.User.ID),
		slog.String("country", resp.User.Country),
		slog.String("currency", resp.User.Currency))

	return &resp.User, nil
}

// Logout clears the session and every piece of per-seller device state. The
// display mode goes back to base, matching a fresh process start.
func (s *AuthService) Logout(ctx context.Context) error {

	if err := s.sessions.Delete(ctx); err != nil {
		return err
	}

	s.cart.Clear()
	s.cart.SetSelectedClient("")
	s.converter.SetMode(currency.ModeBase)

	slog.Info("Seller logged out")

	return nil
}

// CurrentUser returns the seller bound to the active session.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &sess.User, nil
}

// ValidateSession checks the stored token against the backend and logs the
// seller out when it is cleanly rejected. A network failure keeps the session:
// a register that loses connectivity mid-shift must not force a re-login.
func (s *AuthService) ValidateSession(ctx context.Context) (bool, error) {
	if _, err := s.sessions.Get(ctx); err != nil {
		if appErr, ok := errors.IsAppError(err); ok && appErr.Code == errors.ErrCodeUnauthorized {
			return false, nil
		}

		return false, err
	}

	valid, err := s.backend.ValidateToken(ctx)
	if err != nil {
		return false, err
	}

	if !valid {
		slog.Warn("Session token rejected by the backend, logging out")

		if err := s.Logout(ctx); err != nil {
			return false, err
		}

		return false, nil
	}

	return true, nil
}
