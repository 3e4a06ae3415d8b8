package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"mooney-app-go/internal/config"
	"mooney-app-go/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
)

// Auth validates the bearer session token on every request and puts the
// authenticated user into the request context. Token issuing is not this
// service's job; it only checks HS256 signatures against the shared secret.
type Auth struct {
	secret   []byte
	skipAuth bool
	mockUser User
	log      logger.Logger
}

type User struct {
	ID    string
	Email string
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type contextKey int

const userKey contextKey = iota

func NewAuth(cfg config.AuthConfig, log logger.Logger) *Auth {
	return &Auth{
		secret:   []byte(cfg.JWTSecret),
		skipAuth: cfg.SkipAuth,
		mockUser: User{
			ID:    strings.TrimSpace(cfg.MockUserID),
			Email: strings.TrimSpace(cfg.MockUserEmail),
		},
		log: log,
	}
}

func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			if a.mockUser.ID == "" {
				writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth mock user id not configured")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), a.mockUser)))
			return
		}

		if len(a.secret) == 0 {
			writeError(w, http.StatusInternalServerError, "auth_not_configured", "auth not configured")
			return
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		user, err := a.validateToken(token)
		if err != nil {
			a.log.BusinessError("auth: token rejected", err)
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func (a *Auth) validateToken(token string) (User, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return User{}, err
	}
	if !parsed.Valid {
		return User{}, fmt.Errorf("invalid token")
	}
	if claims.Subject == "" {
		return User{}, fmt.Errorf("token missing subject")
	}

	return User{ID: claims.Subject, Email: claims.Email}, nil
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	return user, ok
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}
