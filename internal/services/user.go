package services

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"online-poll-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	jwtExpDays      = 7
	passwordSaltLen = 16
)

// UserService handles user-related business logic
type UserService struct {
	userStore UserStore
	jwtSecret string
}

// NewUserService creates a new user service
func NewUserService(userStore UserStore, jwtSecret string) *UserService {
	return &UserService{
		userStore: userStore,
		jwtSecret: jwtSecret,
	}
}

// Register creates a new user with a salted password hash
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a JWT token
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userStore.GetByUsername(ctx, username)
	if err != nil {
		// Same error for unknown user and bad password
		return "", models.ErrInvalidCredentials
	}
	if !verifyPassword(user.PasswordHash, password) {
		return "", models.ErrInvalidCredentials
	}
	return s.GenerateJWT(user.ID)
}

// GenerateJWT generates a JWT token for a user
func (s *UserService) GenerateJWT(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().AddDate(0, 0, jwtExpDays).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWT validates a JWT token and returns the user ID
func (s *UserService) ValidateJWT(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return "", fmt.Errorf("user_id not found in token")
	}

	return userID, nil
}

// hashPassword returns "salt$digest" with a random per-user salt
func hashPassword(password string) (string, error) {
	salt := make([]byte, passwordSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	sum := sha256.Sum256(append(salt, []byte(password)...))
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(sum[:]), nil
}

// verifyPassword checks a password against a stored "salt$digest" hash
func verifyPassword(stored, password string) bool {
	saltHex, digestHex, ok := strings.Cut(stored, "$")
	if !ok {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	sum := sha256.Sum256(append(salt, []byte(password)...))
	return hmac.Equal([]byte(hex.EncodeToString(sum[:])), []byte(digestHex))
}
