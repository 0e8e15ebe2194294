package authz

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	Anonymous = "anonymous"
	Staff     = "staff"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && regexMatch(r.act, p.act)
`

// Anonymous callers may only read the catalogue; staff inherit that and
// may do anything under /api.
var defaultRules = [][]string{
	{Anonymous, "/api/products/*", "^(GET|HEAD|OPTIONS)$"},
	{Staff, "/api/*", ".*"},
}

type Policy struct {
	enforcer *casbin.Enforcer
}

func NewPolicy() (*Policy, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse access model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize enforcer: %w", err)
	}
	if _, err := enforcer.AddPolicies(defaultRules); err != nil {
		return nil, fmt.Errorf("failed to load access rules: %w", err)
	}
	if _, err := enforcer.AddGroupingPolicy(Staff, Anonymous); err != nil {
		return nil, fmt.Errorf("failed to load role inheritance: %w", err)
	}
	return &Policy{enforcer: enforcer}, nil
}

func (p *Policy) Allow(subject, path, method string) (bool, error) {
	allowed, err := p.enforcer.Enforce(subject, path, method)
	if err != nil {
		return false, fmt.Errorf("access check failed: %w", err)
	}
	return allowed, nil
}
