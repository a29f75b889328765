package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"commentsapi/app/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// TokenHeader is the legacy header carrying a bare token.
const TokenHeader = "x-auth-token"

const tokenIssuer = "commentsapi"

// Auth failure messages.
const (
	MsgNoToken      = "No token, authorization denied"
	MsgInvalidToken = "Token is not valid"
)

// Claims is the JWT payload: {"user":{"id":"..."}} plus registered claims.
type Claims struct {
	User models.User `json:"user"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for userID valid for ttl.
func IssueToken(secret []byte, userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("user id cannot be empty")
	}
	now := time.Now()
	claims := &Claims{
		User: models.User{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Auth is the auth gate: it rejects requests without a valid token and
// attaches the caller to the request context otherwise.
type Auth struct {
	secret []byte
	log    logrus.FieldLogger
}

// NewAuth creates an Auth verifying HS256 tokens signed with secret.
func NewAuth(secret []byte, log logrus.FieldLogger) *Auth {
	return &Auth{secret: secret, log: log}
}

// Handler returns the middleware handler
func (a *Auth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeMsg(w, http.StatusUnauthorized, MsgNoToken)
			return
		}

		user, err := a.verify(token)
		if err != nil {
			a.log.WithFields(logrus.Fields{
				"path":       r.URL.Path,
				"request_id": RequestIDFromContext(r.Context()),
			}).WithError(err).Warn("token validation failed")
			writeMsg(w, http.StatusUnauthorized, MsgInvalidToken)
			return
		}

		if rw, ok := w.(*responseWriter); ok {
			rw.userID = user.ID
		}
		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Auth) verify(tokenString string) (models.User, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.User{}, err
	}
	if claims.User.ID == "" {
		return models.User{}, errors.New("token has no user id")
	}
	return claims.User, nil
}

// bearerToken prefers an Authorization bearer token and falls back to the
// legacy header.
func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if token := strings.TrimSpace(parts[1]); token != "" {
			return token
		}
	}
	return strings.TrimSpace(r.Header.Get(TokenHeader))
}

// UserFromContext returns the caller attached by Auth.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
