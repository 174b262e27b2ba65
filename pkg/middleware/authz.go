package middleware

import (
	"fmt"
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"

	"hostelhub/pkg/logger"
	"hostelhub/pkg/utils"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// defaultPolicies grants route prefixes per role. Admins inherit owner and student routes.
var defaultPolicies = [][]string{
	{utils.RoleStudent, "/api/me/*", "GET|POST|PATCH"},
	{utils.RoleOwner, "/api/owner/*", "GET|POST"},
	{utils.RoleAdmin, "/api/admin/*", "GET|POST|PUT|PATCH|DELETE"},
}

var defaultRoleLinks = [][]string{
	{utils.RoleOwner, utils.RoleStudent},
	{utils.RoleAdmin, utils.RoleOwner},
}

type Authorizer struct {
	enforcer *casbin.Enforcer
	logger   logger.Interface
}

func NewAuthorizer(log logger.Interface) (*Authorizer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("load rbac model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create casbin enforcer: %w", err)
	}

	if _, err := enforcer.AddPolicies(defaultPolicies); err != nil {
		return nil, fmt.Errorf("add policies: %w", err)
	}
	if _, err := enforcer.AddGroupingPolicies(defaultRoleLinks); err != nil {
		return nil, fmt.Errorf("add role links: %w", err)
	}

	return &Authorizer{enforcer: enforcer, logger: log.Named("authz")}, nil
}

func (a *Authorizer) Allowed(role, path, method string) (bool, error) {
	return a.enforcer.Enforce(role, path, method)
}

// Authorize must run after JWTAuthMiddleware.
func (a *Authorizer) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		path := c.Request.URL.Path
		method := c.Request.Method

		allowed, err := a.Allowed(role, path, method)
		if err != nil {
			a.logger.Errorw("permission check failed", "error", err, "role", role, "path", path)
			utils.RespondError(c, http.StatusInternalServerError, "permission check failed")
			c.Abort()
			return
		}

		if !allowed {
			a.logger.Warnw("permission denied", "user_id", c.GetString(ContextUserID), "role", role, "path", path, "method", method)
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
