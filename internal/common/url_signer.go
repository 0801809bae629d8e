package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SignedToken represents a presigned download token
type SignedToken struct {
	InvoiceID      string
	OrganizationID string
	TokenID        string
	ExpiresAt      time.Time
}

// URLSignerService generates and validates presigned single-use links for
// invoice/receipt downloads.
type URLSignerService struct {
	secretKey []byte
	redis     *redis.Client
}

// NewURLSignerService creates a new URL signer service
func NewURLSignerService(secretKey []byte, redis *redis.Client) *URLSignerService {
	return &URLSignerService{
		secretKey: secretKey,
		redis:     redis,
	}
}

// GenerateInvoiceLink generates a single-use presigned token for an invoice
func (s *URLSignerService) GenerateInvoiceLink(
	invoiceID, organizationID string,
	ttl time.Duration,
) (string, time.Time, error) {
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"invoice_id":      invoiceID,
		"organization_id": organizationID,
		"jti":             tokenID,
		"exp":             expiresAt.Unix(),
		"iat":             time.Now().Unix(),
	}

	// Sign with HMAC
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a presigned token and burns it: a second
// validation of the same jti fails.
func (s *URLSignerService) ValidateToken(ctx context.Context, tokenString string) (*SignedToken, error) {
	token, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	invoiceID, _ := claims["invoice_id"].(string)
	orgID, _ := claims["organization_id"].(string)
	tokenID, _ := claims["jti"].(string)
	exp, _ := claims["exp"].(float64)
	expiresAt := time.Unix(int64(exp), 0)

	if invoiceID == "" || orgID == "" || tokenID == "" {
		return nil, errors.New("token missing required claims")
	}

	// Burn the jti. SetNX fails on replay.
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil, errors.New("token expired")
	}
	set, err := s.redis.SetNX(ctx, "used_token:"+tokenID, "1", ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check token usage: %w", err)
	}
	if !set {
		return nil, errors.New("token already used")
	}

	return &SignedToken{
		InvoiceID:      invoiceID,
		OrganizationID: orgID,
		TokenID:        tokenID,
		ExpiresAt:      expiresAt,
	}, nil
}
