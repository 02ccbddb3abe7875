package bookmarks

import "github.com/gin-gonic/gin"

func SetupRouter(svc Service) *gin.Engine {
	r := gin.Default()
	h := NewHandler(svc)

	// Health
	r.GET("/health", h.Health)

	// Bookmarked posts for the authenticated user
	r.GET("/", h.List)

	// Toggle bookmark to desired state
	r.PUT("/:post_id", h.SetBookmark)

	return r
}
