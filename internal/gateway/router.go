// Package gateway is the single entry point in front of the relationship
// services. It resolves the session cookie to a user, injects identity
// headers, and proxies to backends discovered through Consul. Routing and
// rendering concerns stop here; backends only ever see plain data
// requests with a resolved X-User-ID.
package gateway

import (
	"microblog/internal/consul"
	"microblog/internal/session"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gateway route table.
func SetupRouter(discovery consul.ServiceDiscovery, sessionMgr session.Manager) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware())
	r.Use(CORSMiddleware())

	proxyHandler := NewProxyHandler(discovery)

	r.GET("/health", proxyHandler.Health)

	// Login/logout go to the external auth service without a session.
	auth := r.Group("/auth")
	{
		auth.Any("/*path", proxyHandler.Proxy("auth-service", "/auth"))
	}

	// Everything else requires a resolved user.
	api := r.Group("/api")
	api.Use(SessionAuthMiddleware(sessionMgr))
	{
		people := api.Group("/people")
		{
			people.Any("/*path", proxyHandler.Proxy("people-service", "/api/people"))
			people.Any("", proxyHandler.Proxy("people-service", "/api/people"))
		}

		follow := api.Group("/follow")
		{
			follow.Any("/*path", proxyHandler.Proxy("follow-service", "/api/follow"))
			follow.Any("", proxyHandler.Proxy("follow-service", "/api/follow"))
		}

		bookmarks := api.Group("/bookmarks")
		{
			bookmarks.Any("/*path", proxyHandler.Proxy("bookmarks-service", "/api/bookmarks"))
			bookmarks.Any("", proxyHandler.Proxy("bookmarks-service", "/api/bookmarks"))
		}
	}

	return r
}
