package account

import (
	"net/mail"
	"sync"
	"time"

	"app-webserver/core/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Account is the signed-in user.
type Account struct {
	UserID     string    `json:"userId"`
	Email      string    `json:"email"`
	SignedInAt time.Time `json:"signedInAt"`
}

// SignInRequest is the body of POST /api/account/sign-in.
type SignInRequest struct {
	Email string `json:"email"`
}

// Service holds the session of this device.
type Service struct {
	logger *zap.Logger

	mu      sync.Mutex
	current *Account
}

// NewService creates a signed-out service.
func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger}
}

// Current returns the signed-in account, or nil.
func (s *Service) Current() *Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	a := *s.current
	return &a
}

// SignIn replaces the current session.
func (s *Service) SignIn(req SignInRequest) (*Account, error) {
	addr, err := mail.ParseAddress(req.Email)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, err, "invalid email %q", req.Email)
	}

	a := &Account{
		UserID:     uuid.NewString(),
		Email:      addr.Address,
		SignedInAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.current = a
	s.mu.Unlock()

	s.logger.Info("Signed in", zap.String("user_id", a.UserID))
	cp := *a
	return &cp, nil
}

// SignOut clears the session.
func (s *Service) SignOut() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return apperr.New(apperr.KindUnauthorized, "not signed in")
	}
	s.logger.Info("Signed out", zap.String("user_id", s.current.UserID))
	s.current = nil
	return nil
}
