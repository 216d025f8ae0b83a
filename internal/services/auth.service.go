package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService mints and validates the JWT tokens that gate the live
// stream. Tokens are issued from the CLI only; there is no HTTP
// endpoint that hands them out.
type AuthService struct {
	secretKey   string
	tokenExpiry time.Duration
}

// StreamClaims is the token payload: which client the token was minted for.
type StreamClaims struct {
	ClientName string `json:"client_name"`
	jwt.RegisteredClaims
}

// NewAuthService builds an auth service around secretKey. An empty key
// is loaded from, or generated into, a key file in the home directory
// so restarts keep accepting previously issued tokens.
func NewAuthService(secretKey string, tokenExpiry time.Duration) *AuthService {
	if secretKey == "" {
		homeDir, _ := os.UserHomeDir()
		keyFile := filepath.Join(homeDir, ".pitwall-secret-key")
		if homeDir == "" {
			keyFile = filepath.Join(os.TempDir(), ".pitwall-secret-key")
		}

		if data, err := os.ReadFile(keyFile); err == nil && len(data) > 0 {
			secretKey = strings.TrimSpace(string(data))
			log.Printf("[auth] loaded persisted secret key from %s", keyFile)
		} else {
			hostname, err := os.Hostname()
			if err != nil {
				hostname = "pitwall"
			}

			randomBytes := make([]byte, 16)
			if _, err := rand.Read(randomBytes); err != nil {
				secretKey = fmt.Sprintf("pitwall-%s-%d-backup", hostname, time.Now().UnixNano())
				log.Printf("[auth] warning: random generation failed, using fallback key")
			} else {
				secretKey = fmt.Sprintf("pitwall-%s-%s", hostname, hex.EncodeToString(randomBytes))
			}

			if err := os.WriteFile(keyFile, []byte(secretKey), 0600); err != nil {
				log.Printf("[auth] warning: could not persist secret key to %s: %v", keyFile, err)
			} else {
				log.Printf("[auth] generated and persisted secret key to %s", keyFile)
			}
		}
	}

	if tokenExpiry == 0 {
		tokenExpiry = 90 * 24 * time.Hour
	}

	secretKey = strings.TrimSpace(secretKey)

	// HMAC-SHA256 wants at least 32 bytes of key material.
	if len(secretKey) < 32 {
		log.Printf("[auth] warning: secret key is only %d bytes, padding to 32", len(secretKey))
		needed := 32 - len(secretKey)
		paddingBytes := make([]byte, needed)
		_, _ = rand.Read(paddingBytes)
		secretKey = secretKey + hex.EncodeToString(paddingBytes)
	}

	return &AuthService{
		secretKey:   secretKey,
		tokenExpiry: tokenExpiry,
	}
}

// GenerateToken creates a signed token for the named client.
func (a *AuthService) GenerateToken(clientName string) (string, error) {
	now := time.Now()

	claims := StreamClaims{
		ClientName: clientName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "pitwall",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(a.secretKey))
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// ValidateToken verifies the signature and expiry of a token.
func (a *AuthService) ValidateToken(tokenString string) (*StreamClaims, error) {
	claims := &StreamClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(a.secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// TokenExpiry reports when a token minted now would expire.
func (a *AuthService) TokenExpiry() time.Time {
	return time.Now().Add(a.tokenExpiry)
}
