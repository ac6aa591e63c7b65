package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"

	"github.com/mcuadros/go-defaults"
	"github.com/mcuadros/go-lookup"

	pkghttp "github.com/goto/oaflow/pkg/http"
	"github.com/goto/oaflow/pkg/slices"
)

type Config struct {
	Client pkghttp.ClientConfig `mapstructure:",squash"`

	RoleParam    string `mapstructure:"role_param" default:"role"`
	RoutingParam string `mapstructure:"routing_param" default:"routing"`
	// UsersPath locates the user list in the response body, e.g. "data.members"
	UsersPath string `mapstructure:"users_path" default:"users"`
}

// Directory resolves role members through a remote HR/IAM endpoint
type Directory struct {
	client *pkghttp.Client
	config Config
}

func NewDirectory(config Config, clientCreator pkghttp.ClientCreator) (*Directory, error) {
	defaults.SetDefaults(&config)
	if config.Client.Name == "" || config.Client.Name == "http" {
		config.Client.Name = "directory"
	}
	client, err := pkghttp.NewClient(&config.Client, clientCreator)
	if err != nil {
		return nil, fmt.Errorf("initializing directory client: %w", err)
	}
	return &Directory{client: client, config: config}, nil
}

func (d *Directory) ResolveUsersByRole(ctx context.Context, role string, routingContext string) ([]string, error) {
	query := url.Values{d.config.RoleParam: []string{role}}
	if routingContext != "" {
		query.Set(d.config.RoutingParam, routingContext)
	}

	resp, err := d.client.MakeRequest(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("requesting members of role %q: %w", role, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("directory responded %d for role %q: %s", resp.StatusCode, role, body)
	}

	var body interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding directory response: %w", err)
	}

	value, err := lookup.LookupString(body, d.config.UsersPath)
	if err != nil {
		return nil, fmt.Errorf("looking up %q in directory response: %w", d.config.UsersPath, err)
	}
	users, err := toStrings(value)
	if err != nil {
		return nil, err
	}
	return slices.UniqueFold(users), nil
}

func toStrings(v reflect.Value) ([]string, error) {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected a list of users, got %s", v.Kind())
	}

	result := make([]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		user, ok := v.Index(i).Interface().(string)
		if !ok {
			return nil, fmt.Errorf("expected user at index %d to be a string", i)
		}
		if user != "" {
			result = append(result, user)
		}
	}
	return result, nil
}
