package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	v1 "github.com/dancecash/dancecash-api/internal/api/handler/v1"
	"github.com/dancecash/dancecash-api/internal/api/handler/v1/response"
	"github.com/dancecash/dancecash-api/internal/pkg/jwthelper"
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT checks the Bearer token and stores the studio ID in the
// request context for handlers downstream.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("missing Authorization header")))
			return
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("malformed Authorization header")))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("invalid or expired token")))
			return
		}

		// A token replayed from a different client is rejected.
		if claims.UserAgent != ctx.Request.UserAgent() {
			response.RenderErr(ctx, response.ErrWrongCredentials(errors.New("invalid token origin")))
			return
		}

		ctx.Set(v1.ContextKeyStudioID, claims.StudioID)
		ctx.Next()
	}
}
