// internal/resolver/builder.go
package resolver

import (
	cfg "github.com/tamzrod/stalewatch/internal/config"
	rchef "github.com/tamzrod/stalewatch/internal/resolver/chef"
)

// Build constructs a Resolver backed by the Chef search API.
// The key is loaded here so a bad key fails before any query.
func Build(c *cfg.Config) (*Resolver, error) {
	client, err := rchef.New(rchef.Config{
		Endpoint:   c.Chef.Endpoint,
		ClientName: c.Chef.ClientName,
		Key:        c.Chef.ClientKey,
		SkipSSL:    c.Chef.SkipSSL,
		Timeout:    c.Timeout(),
	})
	if err != nil {
		return nil, err
	}

	return New(Config{Threshold: c.StaleAfter()}, client)
}
