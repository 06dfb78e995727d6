// Package ui provides the web dashboard for asset operations data.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/assetops/internal/session"
	"github.com/leapstack-labs/assetops/internal/ui/features/common"
	sectionsFeature "github.com/leapstack-labs/assetops/internal/ui/features/sections"
	"github.com/leapstack-labs/assetops/internal/ui/notifier"
	"github.com/leapstack-labs/assetops/internal/ui/resources"
	"github.com/leapstack-labs/assetops/internal/ui/router"
)

// sweepInterval is how often idle sessions are looked for.
const sweepInterval = time.Minute

// Server is the main UI server.
type Server struct {
	store          *session.Store
	sessionStore   *sessions.CookieStore
	port           int
	dev            bool
	maxUploadBytes int64
	site           common.Site
	logger         *slog.Logger
	notifier       *notifier.Notifier
	reloader       *router.Reloader
}

// Config holds configuration for the UI server.
type Config struct {
	Port           int
	Dev            bool
	SessionSecret  string
	SessionTTL     time.Duration
	SecureCookie   bool
	MaxUploadBytes int64
	Site           common.Site
	Logger         *slog.Logger
}

// NewServer creates a new UI server instance. An empty SessionSecret gets a
// random key, so cookies do not survive a restart.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
	}

	sessionStore := sessions.NewCookieStore(secret)
	sessionStore.MaxAge(int(cfg.SessionTTL.Seconds()))
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	// Plain HTTP clients never send a Secure cookie back.
	sessionStore.Options.Secure = cfg.SecureCookie
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	notify := notifier.New()
	store := session.NewStore(cfg.SessionTTL,
		session.WithLogger(logger),
		session.WithEvictHook(func(id string) {
			logger.Debug("session expired", slog.String("session", id))
			notify.CloseSession(id)
		}),
	)

	s := &Server{
		store:          store,
		sessionStore:   sessionStore,
		port:           cfg.Port,
		dev:            cfg.Dev,
		maxUploadBytes: cfg.MaxUploadBytes,
		site:           cfg.Site,
		logger:         logger,
		notifier:       notify,
	}
	if cfg.Dev {
		s.reloader = router.NewReloader()
	}
	return s
}

// Handler builds the routed, middleware-wrapped HTTP handler.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.RequestLogger(&middleware.DefaultLogFormatter{
			Logger:  slog.NewLogLogger(s.logger.Handler(), slog.LevelDebug),
			NoColor: true,
		}),
		middleware.Recoverer,
		middleware.Compress(5),
	)

	deps := sectionsFeature.Deps{
		Store:          s.store,
		SessionStore:   s.sessionStore,
		Notifier:       s.notifier,
		Site:           s.site,
		MaxUploadBytes: s.maxUploadBytes,
		Logger:         s.logger,
		IsDev:          s.dev,
	}
	if err := router.SetupRoutes(r, deps, s.reloader); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting UI server", "addr", s.URL())

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Evict idle sessions
	eg.Go(func() error {
		return s.store.Run(egctx, sweepInterval)
	})

	// Reload pages when static assets change
	if s.dev && resources.Dir() != "" {
		eg.Go(func() error {
			return s.watchFiles(egctx, resources.Dir())
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// URL is the local address the server listens on.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

// IsDev returns true if running in development mode.
func (s *Server) IsDev() bool {
	return s.dev
}

// Store returns the server's table store.
func (s *Server) Store() *session.Store {
	return s.store
}

// watchFiles triggers a page reload when a file under dir is written.
func (s *Server) watchFiles(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, dir); err != nil {
		s.logger.Error("failed to watch static directory", "error", err)
		// Don't fail - continue without watching
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("static file changed, reloading pages", "file", name)
				s.reloader.Trigger()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
