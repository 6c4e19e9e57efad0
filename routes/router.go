package routes // Router setup layer.

import (
	"github.com/Luasgl/P2AULA2/handlers"
	"github.com/Luasgl/P2AULA2/middlewares"
	"github.com/Luasgl/P2AULA2/services"

	"github.com/gin-gonic/gin"
)

// Setup attaches middlewares and registers all endpoints.
func Setup(r *gin.Engine, svc services.UsuarioService) {
	// request id first so the access log and panic log can print it
	r.Use(middlewares.RequestID(), middlewares.RequestLogger(), middlewares.Recovery())

	uh := handlers.NewUsuarioHandler(svc)

	r.GET("/", uh.Home)
	r.GET("/healthz", uh.Health)

	r.POST("/usuarios", uh.Create)
	r.POST("/usuarios/", uh.Create) // older clients post with a trailing slash
	r.GET("/usuarios", uh.List)
}
