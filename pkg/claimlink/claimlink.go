package claimlink

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// Signer mints time-boxed, signed claim URLs for issued vouchers. The token
// carries the voucher id; the code itself never appears in the URL.
type Signer struct {
	secret  []byte
	baseURL string
	ttl     time.Duration
}

type Claims struct {
	VoucherID string `json:"voucher_id"`
	jwt.StandardClaims
}

func NewSigner(secret, baseURL string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Signer{secret: []byte(secret), baseURL: baseURL, ttl: ttl}
}

// Link returns the claim URL for a voucher, valid for the signer's TTL from
// issuedAt.
func (s *Signer) Link(voucherID string, issuedAt time.Time) (string, error) {
	claims := &Claims{
		VoucherID: voucherID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  issuedAt.UTC().Unix(),
			ExpiresAt: issuedAt.UTC().Add(s.ttl).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign claim token: %w", err)
	}
	return fmt.Sprintf("%s/claim?token=%s", s.baseURL, token), nil
}

// Parse validates a claim token and returns the voucher id it names.
func (s *Signer) Parse(token string, now time.Time) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse claim token: %w", err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", fmt.Errorf("invalid claim token")
	}
	if claims.ExpiresAt > 0 && now.UTC().Unix() > claims.ExpiresAt {
		return "", fmt.Errorf("claim token expired")
	}
	return claims.VoucherID, nil
}
