package git

import (
	"github.com/go-git/go-git/v5/config"
)

// ConfigLoader loads git configuration for a scope.
type ConfigLoader func(scope config.Scope) (*config.Config, error)

// ResolveIdentity reads user.name and user.email from the user-level git
// configuration. Missing or unreadable configuration yields the zero
// Identity, which matches every author.
func ResolveIdentity() Identity {
	return ResolveIdentityWith(config.LoadConfig)
}

// ResolveIdentityWith is ResolveIdentity with an explicit loader.
func ResolveIdentityWith(load ConfigLoader) Identity {
	cfg, err := load(config.GlobalScope)
	if err != nil || cfg == nil {
		return Identity{}
	}
	return Identity{
		Name:  cfg.User.Name,
		Email: cfg.User.Email,
	}
}
