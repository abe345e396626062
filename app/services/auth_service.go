package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Rakhulsr/go-cart/app/helpers"
	"github.com/Rakhulsr/go-cart/app/models"
	"github.com/Rakhulsr/go-cart/app/repositories"
	"github.com/Rakhulsr/go-cart/app/store"
	"go.uber.org/zap"
)

type RegisterInput struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"max=100"`
	Email     string `json:"email" validate:"required,email,max=100"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthService issues opaque session tokens. Issued tokens live in memory and
// are bound to the user they were issued for.
type AuthService struct {
	userRepo repositories.UserRepositoryImpl
	logger   *zap.Logger

	mu     sync.RWMutex
	tokens map[string]string
}

func NewAuthService(userRepo repositories.UserRepositoryImpl, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		logger:   logger,
		tokens:   make(map[string]string),
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := helpers.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     email,
		Password:  hashed,
		Role:      models.RoleCustomer,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login checks credentials and records the outcome in st. The returned token
// is what the caller keeps in the session cookie.
func (s *AuthService) Login(ctx context.Context, st *store.Store, input LoginInput) (*models.User, string, error) {
	st.Dispatch(store.LoginRequested{})

	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, repositories.ErrRecordNotFound) {
		st.Dispatch(store.LoginFailed{Err: "Login failed, please try again"})
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(input.Password)) {
		s.logger.Info("login rejected", zap.String("email", input.Email))
		st.Dispatch(store.LoginFailed{Err: "Invalid email or password"})
		return nil, "", ErrInvalidCredentials
	}

	token, err := helpers.GenerateToken(32)
	if err != nil {
		st.Dispatch(store.LoginFailed{Err: "Login failed, please try again"})
		return nil, "", err
	}

	s.mu.Lock()
	s.tokens[token] = user.ID
	s.mu.Unlock()

	st.Dispatch(store.LoginSucceeded{User: *user, Token: token})
	s.logger.Info("user logged in", zap.String("user_id", user.ID))
	return user, token, nil
}

func (s *AuthService) Logout(st *store.Store) {
	if token := st.State().Auth.Token; token != "" {
		s.revoke(token)
	}
	st.Dispatch(store.LoggedOut{})
}

func (s *AuthService) revoke(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// Restore re-establishes the auth slice from a session cookie when the store
// was created after the login, for example after a registry restart.
func (s *AuthService) Restore(ctx context.Context, st *store.Store, userID, token string) (*models.User, error) {
	if userID == "" || token == "" {
		return nil, ErrNotAuthenticated
	}
	if auth := st.State().Auth; auth.IsAuthenticated() && auth.Token == token {
		return auth.User, nil
	}

	s.mu.RLock()
	owner, ok := s.tokens[token]
	s.mu.RUnlock()
	if !ok || owner != userID {
		return nil, ErrNotAuthenticated
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repositories.ErrRecordNotFound) {
		s.revoke(token)
		return nil, ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	st.Dispatch(store.LoginSucceeded{User: *user, Token: token})
	return user, nil
}

// CurrentUser returns the logged-in user of st.
func (s *AuthService) CurrentUser(st *store.Store) (*models.User, error) {
	auth := st.State().Auth
	if !auth.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	return auth.User, nil
}
