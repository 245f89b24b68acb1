package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/skotchmaster/storefront/internal/logging"
	"github.com/skotchmaster/storefront/internal/models"
	"github.com/skotchmaster/storefront/internal/store"
	"github.com/skotchmaster/storefront/internal/tokens"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// TokenTTL is the session token lifetime from issuance.
const TokenTTL = time.Hour

type AuthService struct {
	mu     sync.Mutex
	Store  store.UserStore
	Secret []byte
	Cost   int
}

func NewAuthService(s store.UserStore, secret []byte, cost int) *AuthService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{Store: s, Secret: secret, Cost: cost}
}

func (s *AuthService) Signup(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, ErrValidation
	}

	// bcrypt is CPU-bound, keep it outside the store lock
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.Cost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return nil, ErrUserExists
		}
	}

	user := models.User{
		ID:           uint(len(users)) + 1,
		Username:     username,
		PasswordHash: string(hash),
	}
	users = append(users, user)
	if err := s.Store.Save(ctx, users); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("user created", "svc", "auth.signup", "user_id", user.ID)
	return &user, nil
}

// Login checks the credentials and issues a signed session token. An
// unknown username and a wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	s.mu.Lock()
	users, err := s.Store.Load(ctx)
	s.mu.Unlock()
	if err != nil {
		return "", err
	}

	var user *models.User
	for i := range users {
		if users[i].Username == username {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	token, err := tokens.New(user.ID, user.Username, s.Secret, TokenTTL)
	if err != nil {
		return "", err
	}

	logging.FromContext(ctx).Info("login successful", "svc", "auth.login", "user_id", user.ID)
	return token, nil
}

func (s *AuthService) VerifyToken(tokenStr string) (*tokens.Claims, error) {
	return tokens.Parse(tokenStr, s.Secret)
}
