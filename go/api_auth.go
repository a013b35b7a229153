package shopserver

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Apurer/go-gin-shop-server/internal/shared/auth"
	sharederrors "github.com/Apurer/go-gin-shop-server/internal/shared/errors"
)

const (
	// HeaderUserID carries the authenticated user id, injected by the API
	// gateway after token verification.
	HeaderUserID = "X-User-Id"
	// HeaderUserRoles carries the caller's roles as a comma-separated list.
	HeaderUserRoles = "X-User-Roles"

	principalContextKey = "shop.principal"
)

// identityMiddleware resolves the caller identity from gateway headers and
// stores it on the request context. Requests without a valid user id proceed
// unauthenticated; handlers that need a principal reject them.
func identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if raw == "" {
			c.Next()
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil {
			c.Next()
			return
		}
		var roles []auth.Role
		for _, part := range strings.Split(c.GetHeader(HeaderUserRoles), ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			roles = append(roles, auth.ParseRole(part))
		}
		if len(roles) == 0 {
			roles = []auth.Role{auth.RoleCustomer}
		}
		c.Set(principalContextKey, auth.Principal{UserID: userID, Roles: roles})
		c.Next()
	}
}

// requirePrincipal fetches the caller identity or responds 401.
func requirePrincipal(c *gin.Context) (auth.Principal, bool) {
	value, exists := c.Get(principalContextKey)
	if !exists {
		respondProblem(c, sharederrors.ErrUnauthorized.WithDetail("missing or invalid "+HeaderUserID+" header"))
		return auth.Principal{}, false
	}
	principal, ok := value.(auth.Principal)
	if !ok {
		respondProblem(c, sharederrors.ErrUnauthorized.WithDetail("malformed principal"))
		return auth.Principal{}, false
	}
	return principal, true
}
