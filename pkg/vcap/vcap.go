// Package vcap discovers MySQL and Kafka credentials from the service bindings
// a Cloud Foundry style platform injects into the application environment.
package vcap

import (
	"bytes"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/datazip-inc/maxwell-launcher/types"
)

// Load reads and parses the catalog held by the environment variable env.
// An absent variable fails before any parsing is attempted.
func Load(env string) (types.ServiceCatalog, error) {
	raw, found := os.LookupEnv(env)
	if !found {
		return nil, &types.ConfigError{
			Err: fmt.Errorf("%w: %s not found in environment variables (necessary for credentials)", types.ErrMissingBindings, env),
		}
	}

	return Parse([]byte(raw))
}

// Parse decodes a service catalog, keeping numeric credentials as their literal text
func Parse(data []byte) (types.ServiceCatalog, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	catalog := types.ServiceCatalog{}
	if err := decoder.Decode(&catalog); err != nil {
		return nil, &types.ConfigError{Err: fmt.Errorf("failed to parse service bindings: %w", err)}
	}

	return catalog, nil
}

// Discover loads the catalog from env, resolves it and validates the result
func Discover(env, defaultTopic string) (*types.LaunchConfig, error) {
	catalog, err := Load(env)
	if err != nil {
		return nil, err
	}

	config, err := Resolve(catalog, defaultTopic)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
