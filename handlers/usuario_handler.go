package handlers // Controller layer translates HTTP <-> service calls.

import ( // Imports needed by the handler.
	"errors"   // errors.Is to map sentinel errors.
	"net/http" // HTTP status codes.

	"github.com/Luasgl/P2AULA2/global"       // AppVersion for /healthz.
	"github.com/Luasgl/P2AULA2/models"       // Request/response DTOs.
	"github.com/Luasgl/P2AULA2/repositories" // ErrEmailTaken.
	"github.com/Luasgl/P2AULA2/services"     // Service interface + ErrInvalidName.

	"github.com/gin-gonic/gin" // Gin context, binding, JSON responses.
)

// WelcomeMessage is served on GET /.
const WelcomeMessage = "Bem-vindo! O servidor está funcionando!"

// UsuarioHandler bundles what the usuario endpoints need.
type UsuarioHandler struct {
	svc services.UsuarioService // Business logic dependency.
}

// NewUsuarioHandler is the constructor used by routes.
func NewUsuarioHandler(svc services.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{svc: svc}
}

// Home handles GET /.
func (h *UsuarioHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": WelcomeMessage}) // 200 + welcome text.
}

// Health handles GET /healthz.
func (h *UsuarioHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": global.AppVersion})
}

// Create handles POST /usuarios.
func (h *UsuarioHandler) Create(c *gin.Context) {
	var req models.CreateUsuarioRequest            // Bind target.
	if err := c.ShouldBindJSON(&req); err != nil { // missing/oversized nome, bad email, malformed JSON
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.svc.Create(c.Request.Context(), req) // Normalize + store + publish.
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()}) // 400/409/500.
		return
	}
	c.JSON(http.StatusCreated, out) // 201 + response DTO.
}

// List handles GET /usuarios.
func (h *UsuarioHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context()) // Cache first, then DB.
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items) // JSON array, [] when empty.
}

// statusFor maps service errors to HTTP codes. Both rejections keep the row out of the DB.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidName): // Name yields no e-mail local part.
		return http.StatusBadRequest
	case errors.Is(err, repositories.ErrEmailTaken): // Derived e-mail already stored.
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
