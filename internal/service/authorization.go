package service

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
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
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// adminPolicies grants the admin role full management of every back
// office resource. Regular users get no policies: everything they may
// do is owner-scoped and enforced in the handlers instead.
var adminPolicies = [][]string{
	{"admin", "products", "manage"},
	{"admin", "categories", "manage"},
	{"admin", "orders", "manage"},
	{"admin", "users", "manage"},
	{"admin", "coupons", "manage"},
	{"admin", "stats", "read"},
	{"admin", "uploads", "manage"},
}

// AuthorizationService answers role-based permission checks for the
// admin surface.
type AuthorizationService interface {
	CheckPermission(role, resource, action string) (bool, error)
}

type authorizationService struct {
	enforcer *casbin.Enforcer
}

func NewAuthorizationService() (AuthorizationService, error) {
	m, err := casbinmodel.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to build rbac model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	for _, p := range adminPolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("failed to add policy: %w", err)
		}
	}

	return &authorizationService{enforcer: enforcer}, nil
}

func (s *authorizationService) CheckPermission(role, resource, action string) (bool, error) {
	allowed, err := s.enforcer.Enforce(role, resource, action)
	if err != nil {
		return false, fmt.Errorf("failed to enforce policy: %w", err)
	}
	return allowed, nil
}
