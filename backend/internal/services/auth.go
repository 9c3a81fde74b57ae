package services

import (
	"errors"
	"fmt"
	"time"

	"habit-board/backend/internal/config"
	"habit-board/backend/internal/models"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned for a bad email/password pair. Handlers
// surface it as a generic 401 so login probing learns nothing.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService interface {
	LoginUser(db *gorm.DB, email, password string) (*models.User, error)
	GenerateToken(db *gorm.DB, userID uuid.UUID) (string, string, error)
	RefreshToken(db *gorm.DB, refreshToken string) (string, string, int64, error)
	RevokeToken(db *gorm.DB, refreshToken string) error
}

type AuthServiceImpl struct {
	cfg config.AuthConfig
}

func NewAuthService(cfg config.AuthConfig) *AuthServiceImpl {
	return &AuthServiceImpl{cfg: cfg}
}

func VerifyPassword(hashedPassword, plainPassword string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	return err == nil
}

func (s *AuthServiceImpl) LoginUser(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !VerifyPassword(user.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *AuthServiceImpl) GenerateToken(db *gorm.DB, userID uuid.UUID) (string, string, error) {
	now := time.Now()

	accessClaims := jwt.MapClaims{
		"user_id": userID.String(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.cfg.AccessTTL).Unix(),
		"iss":     s.cfg.Issuer,
		"aud":     s.cfg.Audience,
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}

	jti, err := uuid.NewV4()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate jti: %w", err)
	}

	refreshExpiry := now.Add(s.cfg.RefreshTTL)
	refreshClaims := jwt.MapClaims{
		"user_id": userID.String(),
		"type":    "refresh",
		"jti":     jti.String(),
		"iat":     now.Unix(),
		"exp":     refreshExpiry.Unix(),
		"iss":     s.cfg.Issuer,
		"aud":     s.cfg.Audience,
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	tokenRecord := models.Token{
		ID:           uuid.Must(uuid.NewV4()),
		UserID:       userID,
		JTI:          jti,
		RefreshToken: refreshTokenString,
		ExpiresAt:    refreshExpiry,
	}

	if err := db.Create(&tokenRecord).Error; err != nil {
		return "", "", fmt.Errorf("failed to create token record: %w", err)
	}

	return accessTokenString, refreshTokenString, nil
}

func (s *AuthServiceImpl) RefreshToken(db *gorm.DB, refreshToken string) (string, string, int64, error) {
	jti, userID, err := s.parseRefreshToken(refreshToken)
	if err != nil {
		return "", "", 0, err
	}

	var dbToken models.Token
	err = db.Where("jti = ? AND user_id = ? AND expires_at > ?", jti, userID, time.Now()).First(&dbToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", 0, fmt.Errorf("refresh token not found or expired")
		}
		return "", "", 0, fmt.Errorf("database error: %w", err)
	}

	accessToken, newRefreshToken, err := s.GenerateToken(db, userID)
	if err != nil {
		return "", "", 0, fmt.Errorf("failed to generate new tokens: %w", err)
	}

	// Rotation: the old refresh token dies with its row.
	if err := db.Delete(&dbToken).Error; err != nil {
		return "", "", 0, fmt.Errorf("failed to delete old token: %w", err)
	}

	return accessToken, newRefreshToken, int64(s.cfg.AccessTTL.Seconds()), nil
}

func (s *AuthServiceImpl) RevokeToken(db *gorm.DB, refreshToken string) error {
	jti, _, err := s.parseRefreshToken(refreshToken)
	if err != nil {
		return err
	}

	return db.Where("jti = ?", jti).Delete(&models.Token{}).Error
}

func (s *AuthServiceImpl) parseRefreshToken(refreshToken string) (uuid.UUID, uuid.UUID, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid refresh token claims")
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid token type")
	}

	jtiStr, ok := claims["jti"].(string)
	if !ok {
		return uuid.Nil, uuid.Nil, fmt.Errorf("missing jti in token")
	}
	jti, err := uuid.FromString(jtiStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid jti format: %w", err)
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, uuid.Nil, fmt.Errorf("missing user_id in token")
	}
	userID, err := uuid.FromString(userIDStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid user_id format: %w", err)
	}

	return jti, userID, nil
}
