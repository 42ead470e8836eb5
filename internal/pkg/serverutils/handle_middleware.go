package serverutils

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const handleTTL = 365 * 24 * time.Hour

type HandleConfig struct {
	Secret     []byte
	CookieName string
	LocalKey   string
	Secure     bool
}

type handleClaims struct {
	Handle string `json:"handle"`
	jwt.RegisteredClaims
}

// SignHandle issues the HS256 token stored in the handle cookie.
func SignHandle(secret []byte, handle string, now time.Time) (string, error) {
	claims := handleClaims{
		Handle: handle,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(handleTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseHandle verifies the token and returns its handle.
func ParseHandle(secret []byte, token string) (string, error) {
	claims := &handleClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !parsed.Valid || claims.Handle == "" {
		return "", errors.New("invalid handle token")
	}
	return claims.Handle, nil
}

// UserHandleMiddleware identifies the browser by a signed opaque handle.
// Missing or invalid cookies get a fresh handle.
func UserHandleMiddleware(cfg HandleConfig) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if token := ctx.Cookies(cfg.CookieName); token != "" {
			if handle, err := ParseHandle(cfg.Secret, token); err == nil {
				ctx.Locals(cfg.LocalKey, handle)
				return ctx.Next()
			}
		}

		handle := uuid.NewString()
		now := time.Now()
		token, err := SignHandle(cfg.Secret, handle, now)
		if err != nil {
			return err
		}

		ctx.Cookie(&fiber.Cookie{
			Name:     cfg.CookieName,
			Value:    token,
			Expires:  now.Add(handleTTL),
			HTTPOnly: true,
			Secure:   cfg.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		ctx.Locals(cfg.LocalKey, handle)
		return ctx.Next()
	}
}

// HandleFrom reads the handle stored by UserHandleMiddleware.
func HandleFrom(ctx *fiber.Ctx, localKey string) string {
	handle, _ := ctx.Locals(localKey).(string)
	return handle
}
