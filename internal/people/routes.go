package people

import "github.com/gin-gonic/gin"

func SetupRouter(svc Service) *gin.Engine {
	r := gin.Default()
	h := NewHandler(svc)

	r.GET("/health", h.Health)

	// Followable users for the authenticated viewer
	r.GET("/", h.List)

	return r
}
