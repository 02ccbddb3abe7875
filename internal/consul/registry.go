package consul

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/google/uuid"
	consulapi "github.com/hashicorp/consul/api"
)

// ServiceConfig describes a service instance to register.
type ServiceConfig struct {
	ID      string
	Name    string
	Address string
	Port    int
	Tags    []string
	Check   *HealthCheck
}

// HealthCheck configures the agent-side HTTP health probe.
type HealthCheck struct {
	HTTP     string
	Interval string
	Timeout  string
}

// Register registers a service instance with Consul.
func (c *Client) Register(cfg *ServiceConfig) error {
	registration := &consulapi.AgentServiceRegistration{
		ID:      cfg.ID,
		Name:    cfg.Name,
		Address: cfg.Address,
		Port:    cfg.Port,
		Tags:    cfg.Tags,
	}

	if cfg.Check != nil {
		registration.Check = &consulapi.AgentServiceCheck{
			HTTP:     cfg.Check.HTTP,
			Interval: cfg.Check.Interval,
			Timeout:  cfg.Check.Timeout,
		}
	}

	if err := c.api.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("register service %s: %w", cfg.Name, err)
	}

	return nil
}

// Deregister removes a service instance from Consul.
func (c *Client) Deregister(serviceID string) error {
	if err := c.api.Agent().ServiceDeregister(serviceID); err != nil {
		return fmt.Errorf("deregister service %s: %w", serviceID, err)
	}

	return nil
}

// RegisterFromEnv registers the named service using CONSUL_HTTP_ADDR and
// SERVICE_ADDRESS, and returns a deregister func for shutdown. When
// CONSUL_HTTP_ADDR is unset the service runs unregistered (standalone
// development mode) and the returned func is a no-op.
func RegisterFromEnv(logger *slog.Logger, name, port string) func() {
	addr := os.Getenv("CONSUL_HTTP_ADDR")
	if addr == "" {
		logger.Info("consul registration skipped", "service", name)
		return func() {}
	}

	client, err := NewClient(addr, os.Getenv("CONSUL_HTTP_TOKEN"))
	if err != nil {
		logger.Warn("consul client unavailable", "service", name, "error", err)
		return func() {}
	}

	serviceAddr := os.Getenv("SERVICE_ADDRESS")
	if serviceAddr == "" {
		serviceAddr = "localhost"
	}
	portNum, err := strconv.Atoi(port)
	if err != nil {
		logger.Warn("invalid service port", "service", name, "port", port)
		return func() {}
	}

	id := fmt.Sprintf("%s-%s", name, uuid.New().String())
	cfg := &ServiceConfig{
		ID:      id,
		Name:    name,
		Address: serviceAddr,
		Port:    portNum,
		Check: &HealthCheck{
			HTTP:     fmt.Sprintf("http://%s:%d/health", serviceAddr, portNum),
			Interval: "10s",
			Timeout:  "2s",
		},
	}

	if err := client.Register(cfg); err != nil {
		logger.Warn("consul registration failed", "service", name, "error", err)
		return func() {}
	}

	logger.Info("registered with consul", "service", name, "id", id)
	return func() {
		if err := client.Deregister(id); err != nil {
			logger.Warn("consul deregistration failed", "service", name, "error", err)
		}
	}
}
