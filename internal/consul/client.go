// Package consul provides service registration and discovery through
// HashiCorp Consul. Every service registers itself on startup with an HTTP
// health check; the gateway discovers healthy instances when proxying.
package consul

import (
	consulapi "github.com/hashicorp/consul/api"
)

// Client wraps the Consul API client.
type Client struct {
	api *consulapi.Client
}

// NewClient connects to the Consul agent at addr, authenticating with the
// ACL token when one is given.
func NewClient(addr, token string) (*Client, error) {
	config := consulapi.DefaultConfig()
	config.Address = addr
	if token != "" {
		config.Token = token
	}

	client, err := consulapi.NewClient(config)
	if err != nil {
		return nil, err
	}

	return &Client{api: client}, nil
}
