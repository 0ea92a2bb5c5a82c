package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// TokenConfig holds the signing parameters of access tokens
type TokenConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Identity is the player an access token is issued for
type Identity struct {
	DiscordID int64
	Username  string
	FirstName string
	LastName  string
}

// AccessTokenClaims are the claims carried by an access token. The subject is the Discord ID.
type AccessTokenClaims struct {
	Username   string `json:"username,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	jwt.RegisteredClaims
}

// DiscordID parses the subject claim
func (c *AccessTokenClaims) DiscordID() (int64, error) {
	if c.Subject == "" {
		return 0, errors.New("token has no subject")
	}
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject %q: %w", c.Subject, err)
	}
	return id, nil
}

// MintAccessToken issues a signed JWT for the identity
func MintAccessToken(cfg TokenConfig, now time.Time, identity Identity) (string, error) {
	if cfg.Secret == "" {
		return "", fmt.Errorf("jwt secret is required")
	}
	if cfg.Issuer == "" {
		return "", fmt.Errorf("jwt issuer is required")
	}
	if cfg.TTL <= 0 {
		return "", fmt.Errorf("jwt ttl must be positive")
	}
	if identity.DiscordID <= 0 {
		return "", fmt.Errorf("invalid discord id %d", identity.DiscordID)
	}

	claims := AccessTokenClaims{
		Username:   identity.Username,
		GivenName:  identity.FirstName,
		FamilyName: identity.LastName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Subject:   strconv.FormatInt(identity.DiscordID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.TTL)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwtSigningMethod, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing jwt: %w", err)
	}
	return signed, nil
}

// ParseAccessToken validates the JWT string and returns typed claims
func ParseAccessToken(cfg TokenConfig, tokenString string) (*AccessTokenClaims, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	claims := &AccessTokenClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method != jwtSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	if _, err := claims.DiscordID(); err != nil {
		return nil, err
	}

	return claims, nil
}

// Identity returns the identity the token was issued for
func (c *AccessTokenClaims) Identity() Identity {
	id, _ := c.DiscordID()
	return Identity{
		DiscordID: id,
		Username:  c.Username,
		FirstName: c.GivenName,
		LastName:  c.FamilyName,
	}
}
