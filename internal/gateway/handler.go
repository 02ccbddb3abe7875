package gateway

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"

	"microblog/internal/consul"

	"github.com/gin-gonic/gin"
)

// ProxyHandler reverse-proxies requests to backend services discovered
// through Consul.
type ProxyHandler struct {
	discovery consul.ServiceDiscovery
}

func NewProxyHandler(discovery consul.ServiceDiscovery) *ProxyHandler {
	return &ProxyHandler{discovery: discovery}
}

// Proxy returns a handler that forwards requests to a healthy instance of
// serviceName, stripping stripPrefix from the path first. An empty
// stripPrefix forwards the path unchanged.
func (h *ProxyHandler) Proxy(serviceName, stripPrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		instance, err := h.discovery.DiscoverOne(serviceName)
		if err != nil {
			slog.Warn("service discovery failed",
				"service", serviceName,
				"error", err,
				"request_id", c.GetString("request_id"))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": fmt.Sprintf("service %s unavailable", serviceName),
			})
			return
		}

		targetURL, err := url.Parse(fmt.Sprintf("http://%s:%d", instance.Address, instance.Port))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		proxy := httputil.NewSingleHostReverseProxy(targetURL)

		proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			slog.Error("proxy error", "service", serviceName, "error", err)
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"error":"bad gateway"}`))
		}

		director := proxy.Director
		proxy.Director = func(req *http.Request) {
			director(req)
			req.URL.Scheme = targetURL.Scheme
			req.URL.Host = targetURL.Host
			req.Host = targetURL.Host

			if stripPrefix != "" && len(req.URL.Path) >= len(stripPrefix) {
				req.URL.Path = req.URL.Path[len(stripPrefix):]
				if req.URL.Path == "" {
					req.URL.Path = "/"
				}
			}
		}

		c.Set("upstream_service", serviceName)
		proxy.ServeHTTP(c.Writer, c.Request)
	}
}

// Health is the gateway's own health endpoint.
func (h *ProxyHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "api-gateway",
	})
}
