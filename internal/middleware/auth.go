package middleware

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/jwalitptl/ward-api/internal/handler"
	"github.com/jwalitptl/ward-api/internal/model"
	"github.com/jwalitptl/ward-api/internal/repository"
	"github.com/jwalitptl/ward-api/pkg/auth"
	apperrors "github.com/jwalitptl/ward-api/pkg/errors"
)

// ContextActor is the gin context key holding the resolved *model.Actor.
const ContextActor = "actor"

type AuthMiddleware struct {
	tokens auth.JWTService
	users  repository.UserRepository
	actors *gocache.Cache
}

// NewAuthMiddleware resolves bearer tokens into actors. Resolved actors are
// cached for ttl so a burst of writes does not reload the user each time.
func NewAuthMiddleware(tokens auth.JWTService, users repository.UserRepository, ttl time.Duration) *AuthMiddleware {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
		actors: gocache.New(ttl, 2*ttl),
	}
}

// Authenticate verifies the JWT token and sets the actor in context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := m.resolve(c)
		if err != nil {
			handler.Fail(c, apperrors.NotAuthenticated(err))
			return
		}
		c.Set(ContextActor, actor)
		c.Next()
	}
}

func (m *AuthMiddleware) resolve(c *gin.Context) (*model.Actor, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, apperrors.Unauthorized(nil)
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, apperrors.BadRequest("invalid authorization format", nil)
	}

	claims, err := m.tokens.ValidateToken(parts[1])
	if err != nil {
		return nil, err
	}
	return m.lookup(c.Request.Context(), claims)
}

// lookup confirms the user is still active and takes the current display name.
func (m *AuthMiddleware) lookup(ctx context.Context, claims *auth.Claims) (*model.Actor, error) {
	key := strconv.FormatInt(claims.UserID, 10)
	if cached, ok := m.actors.Get(key); ok {
		return cached.(*model.Actor), nil
	}

	user, err := m.users.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user.Status != "active" {
		return nil, apperrors.Unauthorized(nil)
	}
	actor := claims.Actor()
	actor.Name, actor.Role = user.Name, user.Role
	m.actors.SetDefault(key, actor)
	return actor, nil
}

// ActorFrom returns the actor set by Authenticate or Optional, or nil.
func ActorFrom(c *gin.Context) *model.Actor {
	v, ok := c.Get(ContextActor)
	if !ok {
		return nil
	}
	actor, _ := v.(*model.Actor)
	return actor
}
