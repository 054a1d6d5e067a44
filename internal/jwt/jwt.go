package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"videopoker-server/internal/config"
	"videopoker-server/pkg/token"
)

// Issuer issues the JWT
const Issuer = "videopoker-server"

// Audience is the intended JWT audience
const Audience = "videopoker-players"

// RandomSecretLength is the length of the secret generated when none is configured
const RandomSecretLength = 43

var key []byte
var ttl time.Duration

// LoadKey will load the signing secret from the config
// If no secret is configured, a random one is generated, which means tokens
// do not survive a restart and are not shared between replicas.
// this method should only be called once.
func LoadKey() {
	cfg := config.Instance().JWT
	ttl = cfg.TTL

	if cfg.Secret != "" {
		key = []byte(cfg.Secret)
		return
	}

	logrus.Warn("no jwt secret configured, generating a random one")
	secret, err := token.Generate(RandomSecretLength)
	if err != nil {
		logrus.WithError(err).Fatal("could not generate jwt secret")
	}

	key = []byte(secret)
}

// SetKey sets the signing secret and token lifetime directly
// A zero lifetime issues tokens that never expire.
func SetKey(secret []byte, lifetime time.Duration) {
	key = secret
	ttl = lifetime
}

// Sign will sign a JWT for the user ID
func Sign(userID string) (string, error) {
	if key == nil {
		panic("LoadKey() not called")
	}

	now := time.Now()
	claims := jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(now),
		Issuer:   Issuer,
		Subject:  userID,
	}

	if ttl > 0 {
		claims.ExpiresAt = jwtgo.NewNumericDate(now.Add(ttl))
	}

	return jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, claims).SignedString(key)
}

// ValidUserID will validate a signed JWT and return its user ID
func ValidUserID(signedString string) (string, error) {
	if key == nil {
		panic("LoadKey() not called")
	}

	parsed, err := jwtgo.ParseWithClaims(signedString, &jwtgo.RegisteredClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodHMAC); !ok {
			return nil, errors.New("expected HS256 signing method")
		}

		return key, nil
	})

	if err != nil {
		return "", err
	}

	if parsed.Valid {
		if claims, ok := parsed.Claims.(*jwtgo.RegisteredClaims); ok {
			if !containsAudience(claims.Audience, Audience) {
				return "", errors.New("invalid audience")
			}

			if claims.Issuer != Issuer {
				return "", errors.New("invalid issuer")
			}

			if claims.Subject == "" {
				return "", errors.New("missing subject")
			}

			return claims.Subject, nil
		}

		return "", fmt.Errorf("expected jwt.RegisteredClaims, got %T", parsed.Claims)
	}

	logrus.Warn("token claims were not valid. did not expect to reach this code")
	return "", errors.New("claims were not valid")
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
