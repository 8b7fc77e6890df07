package token

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidCode = errors.New("invalid confirmation code")

// State is the part of a user account a confirmation code is bound to.
// Any change to it invalidates previously issued codes.
type State struct {
	UserID    string
	Email     string
	IsActive  bool
	LastLogin *time.Time
}

func (s State) fingerprint() string {
	var lastLogin int64
	if s.LastLogin != nil {
		lastLogin = s.LastLogin.UnixMicro()
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%t|%d", s.UserID, s.Email, s.IsActive, lastLogin)))
	return hex.EncodeToString(sum[:])
}

// ConfirmationTokens generates and checks the codes emailed during sign-up.
type ConfirmationTokens interface {
	Generate(state State) (string, error)
	Verify(state State, code string) error
}

type confirmationClaims struct {
	State string `json:"st"`
	jwt.RegisteredClaims
}

type ConfirmationService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewConfirmationService(secret string, ttl time.Duration) (*ConfirmationService, error) {
	key, err := deriveKey(secret, "confirmation")
	if err != nil {
		return nil, err
	}
	return &ConfirmationService{key: key, ttl: ttl, now: time.Now}, nil
}

func (s *ConfirmationService) Generate(state State) (string, error) {
	now := s.now()
	claims := confirmationClaims{
		State: state.fingerprint(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   state.UserID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign confirmation code: %w", err)
	}
	return signed, nil
}

func (s *ConfirmationService) Verify(state State, code string) error {
	if code == "" {
		return ErrInvalidCode
	}

	claims := &confirmationClaims{}
	_, err := jwt.ParseWithClaims(code, claims, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithSubject(state.UserID),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	if subtle.ConstantTimeCompare([]byte(claims.State), []byte(state.fingerprint())) != 1 {
		return ErrInvalidCode
	}
	return nil
}
