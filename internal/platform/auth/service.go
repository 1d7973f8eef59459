package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"sarpras-backend/internal/platform/db"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrAuthFailed    = errors.New("authentication failed")
	ErrInvalidInput  = errors.New("id and password (min 8 chars) are required")
)

const minPasswordLen = 8

type Service struct {
	store  AccountStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(d *db.DB, cfg db.AuthConfig) *Service {
	ttl := time.Duration(cfg.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		store:  NewStore(d),
		secret: []byte(cfg.JWTSecret),
		ttl:    ttl,
		now:    time.Now,
	}
}

type AuthService interface {
	Login(ctx context.Context, id, password string) (string, error)
	Register(ctx context.Context, id, password string) error
	Disable(ctx context.Context, id string) error
}

func (s *Service) Secret() []byte {
	return s.secret
}

func (s *Service) Login(ctx context.Context, id, password string) (string, error) {
	acct, err := s.store.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if acct == nil || acct.IsDisabled {
		return "", ErrAuthFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return "", ErrAuthFailed
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": acct.ID,
		"iat": s.now().Unix(),
		"exp": s.now().Add(s.ttl).Unix(),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

func (s *Service) Register(ctx context.Context, id, password string) error {
	id = strings.TrimSpace(id)
	if id == "" || len(password) < minPasswordLen {
		return ErrInvalidInput
	}

	exists, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if exists != nil {
		return ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	err = s.store.Create(ctx, &Account{ID: id, PasswordHash: string(hash)})
	if db.IsDuplicateKey(err) {
		return ErrAlreadyExists
	}
	return err
}

// Disable は行を消さずに無効化する（lent_by / recorded_by から参照されるため）
func (s *Service) Disable(ctx context.Context, id string) error {
	n, err := s.store.SetDisabled(ctx, id, true)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureAccount: 起動時の初期アカウント。既にあれば何もしない。
func (s *Service) EnsureAccount(ctx context.Context, id, password string) error {
	if id == "" || password == "" {
		return nil
	}
	err := s.Register(ctx, id, password)
	switch {
	case err == nil:
		log.Printf("[INFO] bootstrap account %q created", id)
		return nil
	case errors.Is(err, ErrAlreadyExists):
		return nil
	default:
		return fmt.Errorf("creating bootstrap account: %w", err)
	}
}
