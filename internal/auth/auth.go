package auth

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/azurvoyages/tours-api/internal/config"
	"github.com/azurvoyages/tours-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const TokenDuration = 24 * time.Hour

var (
	// ErrNoToken means no bearer credential was presented at all.
	ErrNoToken = errors.New("no bearer token presented")
	// ErrInvalidToken means a credential was presented but did not
	// verify (bad signature, expired, unknown user).
	ErrInvalidToken = errors.New("invalid or expired token")
)

type AuthHandler struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{cfg: cfg, db: db}
}

// AuthInput is embedded by request structs for protected operations.
type AuthInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

func (h *AuthHandler) GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Email,
		"roles":    user.RoleSet(),
		"exp":      time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// ExtractBearer pulls the token out of an Authorization header value.
// Returns ErrNoToken when the header is absent or not a Bearer scheme.
func ExtractBearer(header string) (string, error) {
	if header == "" {
		return "", ErrNoToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrNoToken
	}
	return parts[1], nil
}

func (h *AuthHandler) parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// UserFromAuthorization resolves the caller from an Authorization
// header value. Errors are ErrNoToken or ErrInvalidToken so callers
// can tell "nothing presented" apart from "presented but bad".
func (h *AuthHandler) UserFromAuthorization(header string) (*models.User, error) {
	tokenString, err := ExtractBearer(header)
	if err != nil {
		return nil, err
	}
	claims, err := h.parseClaims(tokenString)
	if err != nil {
		return nil, err
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return nil, ErrInvalidToken
	}
	var user models.User
	if err := h.db.Where("email = ?", username).First(&user).Error; err != nil {
		return nil, ErrInvalidToken
	}
	return &user, nil
}

// Authorize resolves the caller or fails with 401.
func (h *AuthHandler) Authorize(header string) (*models.User, error) {
	user, err := h.UserFromAuthorization(header)
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return nil, huma.Error401Unauthorized("Authentication required: missing Authorization: Bearer <token> header")
		}
		return nil, huma.Error401Unauthorized("Authentication required: invalid or expired token")
	}
	return user, nil
}

// AuthorizeRole resolves the caller and requires a role, failing with
// 401 or 403.
func (h *AuthHandler) AuthorizeRole(header, required string) (*models.User, error) {
	user, err := h.Authorize(header)
	if err != nil {
		return nil, err
	}
	if !Granted(user.RoleSet(), required) {
		return nil, huma.Error403Forbidden("Access denied: missing " + required + " role")
	}
	return user, nil
}

func validEmail(address string) bool {
	parsed, err := mail.ParseAddress(address)
	return err == nil && parsed.Address == address
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
