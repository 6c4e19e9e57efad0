package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Luasgl/P2AULA2/config"
	"github.com/Luasgl/P2AULA2/core"
	"github.com/Luasgl/P2AULA2/global"
	"github.com/Luasgl/P2AULA2/repositories"
	"github.com/Luasgl/P2AULA2/routes"
	"github.com/Luasgl/P2AULA2/services"
	"github.com/Luasgl/P2AULA2/utils/redislog"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, config.Load())
		},
	}
}

// serve wires infrastructure, services and routes, then blocks until ctx is done.
func serve(ctx context.Context, cfg *config.Config) error {
	log.Printf("[boot] %s %s starting in %s on :%s", cfg.AppName, global.AppVersion, cfg.Env, cfg.HTTPPort)

	// 1) infrastructure
	db := config.InitDB(cfg)
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	rdb := config.InitRedis(cfg) // nil when disabled
	if rdb != nil {
		defer rdb.Close()
	}
	pub := config.InitPublisher(cfg)
	defer pub.Close()

	// 2) Redis log list, mirrored to stdout
	rlog := redislog.New(rdb, cfg.RedisLogKey, 1000, 7*24*time.Hour,
		redislog.WithService(cfg.AppName), redislog.WithMirror())
	rlog.Info(ctx, "app boot", map[string]string{"env": cfg.Env, "port": cfg.HTTPPort, "db": cfg.DBDriver})

	// 3) dependency injection
	repo := repositories.NewUsuarioRepository(db)
	svc := services.NewUsuarioService(repo, rdb, rlog, pub, core.Pipeline{
		Domain:      cfg.EmailDomain,
		FoldAccents: cfg.EmailFoldAccents,
	})

	// 4) gin engine, no default middleware; trust no proxies
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	_ = r.SetTrustedProxies(nil)
	routes.Setup(r, svc)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		rlog.Info(ctx, "http server start", map[string]string{"port": cfg.HTTPPort})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		rlog.Error(ctx, "http server error", map[string]string{"err": err.Error()})
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	rlog.Info(shutdownCtx, "http server stop", nil)
	return srv.Shutdown(shutdownCtx)
}
