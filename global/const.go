package global

import "time"

const (
	AppVersion = "1.0.0" // shown in boot logs and /healthz

	// Gin context key holding the request ID set by middlewares.RequestID.
	CtxRequestIDKey = "request_id"

	// HeaderRequestID is read from and echoed back to clients.
	HeaderRequestID = "X-Request-ID"

	// CacheKeyUsuariosGen is a counter bumped (INCR) on every create.
	// The list JSON lives under CacheKeyUsuarios + ":<gen>", so a refill computed
	// before a create can only land on a generation nobody reads anymore.
	CacheKeyUsuariosGen = "usuarios:gen"
	CacheKeyUsuarios    = "usuarios:all"
	UsuariosCacheTTL    = 5 * time.Minute
)
