package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gynmultiverse/concierge/backend/internal/cache"
	"github.com/gynmultiverse/concierge/backend/internal/config"
	"github.com/gynmultiverse/concierge/backend/internal/handler"
	"github.com/gynmultiverse/concierge/backend/internal/model/knowledge"
	"github.com/gynmultiverse/concierge/backend/internal/service/ai"
	"github.com/gynmultiverse/concierge/backend/internal/service/intel"
	"github.com/gynmultiverse/concierge/backend/internal/service/persist"
	"github.com/gynmultiverse/concierge/backend/internal/service/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Durable transcript cache; a broken cache directory degrades to memory.
	var cacheStore cache.Store
	if fileStore, err := cache.NewFileStore(cfg.Cache.Dir); err != nil {
		log.Printf("warning: cache dir %q unusable (%v), falling back to in-memory cache", cfg.Cache.Dir, err)
		cacheStore = cache.NewMemoryStore()
	} else {
		cacheStore = fileStore
	}
	sessionCache := cache.New(cacheStore)

	// Remote gateway is optional: without one, every turn is answered by the
	// local intelligence tier.
	gateway, err := ai.NewGateway(ctx, cfg.AI)
	if err != nil {
		log.Printf("warning: failed to initialize AI gateway: %v", err)
		log.Println("continuing with local intelligence only")
		gateway = nil
	} else if gateway != nil {
		log.Printf("AI gateway initialized (%s)", gateway.Kind())
	} else {
		log.Println("no AI gateway configured, using local intelligence only")
	}

	responder := intel.New(
		intel.NewMemoryWellnessSource(),
		&intel.MemoryBusinessSource{},
	)
	router := ai.NewRouter(gateway, responder)

	// Remote persistence is best-effort; a failed auth only disables the
	// write-through and reconciliation paths.
	var recordStore persist.RecordStore
	if cfg.Records.Enabled() {
		pb := persist.NewPocketBaseStore(cfg.Records.URL, cfg.Records.AdminIdentity, cfg.Records.AdminPassword, cfg.Records.Collection)
		if err := pb.Authenticate(ctx); err != nil {
			log.Printf("warning: record store auth failed: %v", err)
			log.Println("continuing without remote persistence")
		} else {
			recordStore = pb
			log.Println("record store initialized successfully")
		}
	} else {
		log.Println("no record store configured, skipping remote persistence")
	}
	sync := persist.NewSync(recordStore, nil)

	kb := knowledge.NewMemoryStore(knowledge.Seed())
	sessions := session.NewManager(session.Deps{
		Cache:     sessionCache,
		Router:    router,
		Sync:      sync,
		Knowledge: kb,
	})

	startServer(ctx, cfg.Server, handler.NewRouter(sessions, kb))
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Concierge backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
