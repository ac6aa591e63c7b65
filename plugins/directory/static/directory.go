package static

import (
	"context"
	"fmt"

	"github.com/goto/oaflow/pkg/slices"
)

// Config maps a role to its users. A "role:routing" key takes precedence over the plain role
// so per-department directors can be listed next to a company-wide fallback.
type Config struct {
	Roles map[string][]string `mapstructure:"roles" validate:"required"`
}

type Directory struct {
	roles map[string][]string
}

func NewDirectory(config Config) *Directory {
	return &Directory{roles: config.Roles}
}

func (d *Directory) ResolveUsersByRole(_ context.Context, role string, routingContext string) ([]string, error) {
	if routingContext != "" {
		if users, ok := d.roles[fmt.Sprintf("%s:%s", role, routingContext)]; ok {
			return slices.UniqueFold(users), nil
		}
	}
	return slices.UniqueFold(d.roles[role]), nil
}
