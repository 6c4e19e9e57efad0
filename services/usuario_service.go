package services // Use-case layer; orchestrates business rules, not HTTP/DB details.

import ( // Imports for this service layer.
	"context"       // Every call carries the request context down to DB/Redis/Kafka.
	"encoding/json" // Cached list is stored as a JSON string.
	"errors"        // Sentinel errors + errors.Is checks.
	"fmt"           // Cache keys and log meta formatting.

	"github.com/Luasgl/P2AULA2/core"           // Name/e-mail standardization pipeline.
	"github.com/Luasgl/P2AULA2/events"         // usuario.criado publisher.
	"github.com/Luasgl/P2AULA2/global"         // Cache keys and TTL.
	"github.com/Luasgl/P2AULA2/models"         // Usuario model + DTOs.
	"github.com/Luasgl/P2AULA2/repositories"   // Storage interface.
	"github.com/Luasgl/P2AULA2/utils/redislog" // Redis LIST logger.

	"github.com/redis/go-redis/v9" // Redis client for the list cache.
)

// ErrInvalidName means the name leaves nothing usable for an e-mail local part.
// Nothing is persisted when it is returned.
var ErrInvalidName = errors.New("name does not produce a valid email")

// UsuarioService lists the use cases handlers can call.
type UsuarioService interface {
	Create(ctx context.Context, req models.CreateUsuarioRequest) (*models.CreateUsuarioResponse, error) // Standardize + store.
	List(ctx context.Context) ([]models.Usuario, error)                                                 // Full table (cache-aware).
}

// usuarioService depends on the repo, an optional Redis cache, the Redis logger and an event publisher.
type usuarioService struct {
	repo     repositories.UsuarioRepository // Data access abstraction.
	rdb      *redis.Client                  // nil disables the list cache.
	log      *redislog.Logger               // nil-safe; may be nil in tests.
	pub      events.Publisher               // Nop when Kafka is off.
	pipeline core.Pipeline                  // Domain + accent folding settings.
}

// NewUsuarioService wires the service. rdb, rlog and pub may be nil.
func NewUsuarioService(repo repositories.UsuarioRepository, rdb *redis.Client, rlog *redislog.Logger, pub events.Publisher, p core.Pipeline) UsuarioService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &usuarioService{repo: repo, rdb: rdb, log: rlog, pub: pub, pipeline: p}
}

// listCacheKey formats the list key for one cache generation, e.g. "usuarios:all:3".
func listCacheKey(gen int64) string {
	return fmt.Sprintf("%s:%d", global.CacheKeyUsuarios, gen)
}

// Create standardizes req.Nome, stores the record and announces it.
func (s *usuarioService) Create(ctx context.Context, req models.CreateUsuarioRequest) (*models.CreateUsuarioResponse, error) {
	res, err := s.pipeline.Run(req.Nome) // Normalize name + derive e-mail.
	if err != nil {                      // Only ErrEmptyLocalPart can come out of here.
		s.log.Warn(ctx, "create rejected name", map[string]string{"nome": req.Nome, "err": err.Error()})
		return nil, fmt.Errorf("%w: %w", ErrInvalidName, err)
	}

	u := &models.Usuario{
		Nome:         res.Normalized, // "Pedro de Souza"
		NomeOriginal: res.Original,   // exactly what the client sent
		Email:        res.Email,      // "pedro.de.souza@empresa.com.br"
	}
	if err := s.repo.Create(ctx, u); err != nil { // Duplicate e-mail comes back as ErrEmailTaken.
		s.log.Error(ctx, "create db error", map[string]string{"email": u.Email, "err": err.Error()})
		return nil, err
	}

	// New generation: every cached list (and any refill still in flight) is now stale.
	if s.rdb != nil {
		if err := s.rdb.Incr(ctx, global.CacheKeyUsuariosGen).Err(); err != nil {
			s.log.Warn(ctx, "cache INCR error", map[string]string{"key": global.CacheKeyUsuariosGen, "err": err.Error()})
		}
	}

	s.publishCreated(ctx, u) // Best effort; never fails the request.

	s.log.Info(ctx, "create success", map[string]string{"id": fmt.Sprint(u.ID), "email": u.Email})
	return models.NewCreateUsuarioResponse(u), nil
}

// publishCreated is best effort: the row is already committed.
func (s *usuarioService) publishCreated(ctx context.Context, u *models.Usuario) {
	payload, key, err := events.EncodeUsuarioCriado(u)
	if err == nil {
		err = s.pub.Publish(ctx, events.UsuarioCriado, payload, key)
	}
	if err != nil {
		s.log.Error(ctx, "event publish error", map[string]string{"id": fmt.Sprint(u.ID), "err": err.Error()})
	}
}

// cacheGeneration reads the current list generation; a missing counter is generation 0.
// ok is false when Redis is off or failing, in which case the cache is bypassed.
func (s *usuarioService) cacheGeneration(ctx context.Context) (gen int64, ok bool) {
	if s.rdb == nil {
		return 0, false
	}
	gen, err := s.rdb.Get(ctx, global.CacheKeyUsuariosGen).Int64()
	switch {
	case err == nil:
		return gen, true
	case errors.Is(err, redis.Nil): // Nothing created since the counter expired/was never set.
		return 0, true
	default:
		s.log.Error(ctx, "cache generation GET error", map[string]string{"err": err.Error()})
		return 0, false
	}
}

// List returns every record, preferring the Redis copy and falling back to the DB.
// The generation is read before the DB so a refill never outlives a later create.
func (s *usuarioService) List(ctx context.Context) ([]models.Usuario, error) {
	gen, cached := s.cacheGeneration(ctx)
	key := listCacheKey(gen)

	if cached {
		val, err := s.rdb.Get(ctx, key).Result() // Attempt GET.
		switch {
		case err == nil:
			var items []models.Usuario
			if json.Unmarshal([]byte(val), &items) == nil {
				s.log.Info(ctx, "cache HIT", map[string]string{"key": key, "count": fmt.Sprint(len(items))})
				return items, nil
			}
			s.log.Warn(ctx, "cache unmarshal failed", map[string]string{"key": key}) // fall through to DB
		case errors.Is(err, redis.Nil):
			s.log.Info(ctx, "cache MISS", map[string]string{"key": key})
		default:
			s.log.Error(ctx, "cache GET error", map[string]string{"key": key, "err": err.Error()})
		}
	}

	items, err := s.repo.List(ctx) // Full table read.
	if err != nil {
		s.log.Error(ctx, "list db error", map[string]string{"err": err.Error()})
		return nil, err
	}

	// Store under the generation observed before the read.
	if cached {
		if b, err := json.Marshal(items); err == nil {
			if err := s.rdb.Set(ctx, key, b, global.UsuariosCacheTTL).Err(); err != nil {
				s.log.Error(ctx, "cache SET error", map[string]string{"key": key, "err": err.Error()})
			}
		}
	}
	return items, nil
}
