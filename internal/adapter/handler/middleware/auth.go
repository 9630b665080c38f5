package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/srgjo27/shutterbook/internal/adapter/handler/response"
	"github.com/srgjo27/shutterbook/internal/core/apperrors"
	"github.com/srgjo27/shutterbook/internal/core/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// Claims is the token issued by the identity provider. The subject is the
// user id.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"user_role"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret []byte
	now    func() time.Time
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret), now: time.Now}
}

func (a *Authenticator) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		if header == "" {
			response.Error(w, r, apperrors.NewUnauthorizedError("missing token"))
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			response.Error(w, r, apperrors.NewUnauthorizedError("invalid token format"))
			return
		}

		identity, err := a.Verify(tokenString)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		next(w, r.WithContext(WithIdentity(r.Context(), identity)), ps)
	}
}

// Verify checks an HS256 token and resolves it into an Identity.
func (a *Authenticator) Verify(tokenString string) (domain.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil || !token.Valid {
		return domain.Identity{}, apperrors.NewUnauthorizedError("invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Identity{}, apperrors.NewUnauthorizedError("invalid token subject")
	}

	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return domain.Identity{}, apperrors.NewUnauthorizedError("invalid token role")
	}

	return domain.Identity{
		UserID: userID,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   role,
	}, nil
}

// SignToken issues a token for id. Used by the CLI to mint development
// tokens and by tests.
func (a *Authenticator) SignToken(id domain.Identity, ttl time.Duration) (string, error) {
	now := a.now()
	claims := Claims{
		Email: id.Email,
		Name:  id.Name,
		Role:  string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok
}

// RequireRole must run after Authenticate.
func RequireRole(roles ...domain.Role) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			id, ok := IdentityFrom(r.Context())
			if !ok {
				response.Error(w, r, apperrors.NewUnauthorizedError("not authenticated"))
				return
			}

			for _, role := range roles {
				if id.Role == role {
					next(w, r, ps)
					return
				}
			}

			response.Error(w, r, apperrors.NewForbiddenError("insufficient role"))
		}
	}
}

// Chain applies mws so that the first one runs outermost.
func Chain(mws ...func(httprouter.Handle) httprouter.Handle) func(httprouter.Handle) httprouter.Handle {
	return func(h httprouter.Handle) httprouter.Handle {
		for i := len(mws) - 1; i >= 0; i-- {
			h = mws[i](h)
		}
		return h
	}
}
