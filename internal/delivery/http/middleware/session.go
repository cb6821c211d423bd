package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Pesokrava/ratingfy/internal/delivery/http/response"
	"github.com/Pesokrava/ratingfy/internal/domain"
	"github.com/Pesokrava/ratingfy/internal/pkg/logger"
)

type contextKey string

const shopKey contextKey = "shop"

const sessionLeeway = 10 * time.Second

// SessionClaims are the claims of a Shopify App Bridge session token
type SessionClaims struct {
	Dest string `json:"dest"`
	jwt.RegisteredClaims
}

// WithShop stores the authenticated shop in ctx
func WithShop(ctx context.Context, shop string) context.Context {
	return context.WithValue(ctx, shopKey, shop)
}

// ShopFromContext returns the shop set by Session
func ShopFromContext(ctx context.Context) (string, bool) {
	shop, ok := ctx.Value(shopKey).(string)
	return shop, ok && shop != ""
}

// Session verifies the bearer session token and puts the shop from its
// dest claim into the request context.
func Session(apiKey, apiSecret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			shop, err := ParseSessionToken(bearerToken(r), apiKey, apiSecret)
			if err != nil {
				log.Debugf("Rejected session token for %s: %v", r.URL.Path, err)
				response.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithShop(r.Context(), shop)))
		})
	}
}

// ParseSessionToken validates an HS256 session token signed with the app
// secret and returns the normalized shop domain of its destination.
func ParseSessionToken(token, apiKey, apiSecret string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: missing bearer token", domain.ErrUnauthorized)
	}
	if apiSecret == "" {
		return "", fmt.Errorf("%w: app secret is not configured", domain.ErrUnauthorized)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(sessionLeeway),
		jwt.WithExpirationRequired(),
	}
	if apiKey != "" {
		opts = append(opts, jwt.WithAudience(apiKey))
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(apiSecret), nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if !parsed.Valid {
		return "", fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}

	dest, err := url.Parse(claims.Dest)
	if err != nil || dest.Host == "" {
		return "", fmt.Errorf("%w: invalid dest claim %q", domain.ErrUnauthorized, claims.Dest)
	}

	return domain.NormalizeShop(dest.Hostname()), nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
