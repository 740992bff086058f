package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/neboloop/socialshare/internal/handler"
	"github.com/neboloop/socialshare/internal/handler/admin"
	"github.com/neboloop/socialshare/internal/handler/license"
	"github.com/neboloop/socialshare/internal/handler/settings"
	"github.com/neboloop/socialshare/internal/handler/share"
	"github.com/neboloop/socialshare/internal/httputil"
	"github.com/neboloop/socialshare/internal/logging"
	"github.com/neboloop/socialshare/internal/middleware"
	"github.com/neboloop/socialshare/internal/svc"
)

// ServerOptions holds optional behavior for the server
type ServerOptions struct {
	Quiet bool // Suppress request logging and startup messages
}

// Run serves svcCtx on its configured address.
// It blocks until the context is cancelled or the listener fails.
func Run(ctx context.Context, svcCtx *svc.ServiceContext, opts ...ServerOptions) error {
	var o ServerOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	addr := svcCtx.Config.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	// Note: WriteTimeout covers the slowest handler, a license call bounded
	// by the store timeout.
	httpServer := &http.Server{
		Handler:           NewRouter(svcCtx, o),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      svcCtx.Config.LicenseTimeout() + 15*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if !o.Quiet {
		logging.Infof("Server ready at http://%s", ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	if !o.Quiet {
		logging.Info("Shutting down server gracefully...")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}

// NewRouter builds the full route tree.
func NewRouter(svcCtx *svc.ServiceContext, opts ...ServerOptions) http.Handler {
	var o ServerOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	r := chi.NewRouter()

	// Global middleware
	if !o.Quiet {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	// Health check at root
	r.Get("/health", handler.HealthCheckHandler(svcCtx))
	r.Get(handler.PopupScriptPath, handler.PopupScriptHandler(svcCtx))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(securityHeadersMiddleware())
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			httputil.NotFound(w, "")
		})

		// Public routes (no auth required)
		registerPublicRoutes(r, svcCtx)

		// Protected routes (JWT required)
		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTMiddleware(svcCtx.AccessSecret))
			registerProtectedRoutes(r, svcCtx)
		})
	})

	// Settings page
	r.Get("/admin/login", admin.LoginHandler(svcCtx))
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTMiddleware(svcCtx.AccessSecret))
		r.Get("/admin", admin.SettingsPageHandler(svcCtx))
		r.Post("/admin", admin.SaveSettingsPageHandler(svcCtx))
	})

	return r
}

// registerPublicRoutes registers routes that don't require authentication
func registerPublicRoutes(r chi.Router, svcCtx *svc.ServiceContext) {
	// Share routes, called by the host while rendering pages
	r.Post("/share/buttons", share.BuildButtonsHandler(svcCtx))
	r.Post("/share/render", share.RenderPlacementHandler(svcCtx))
	r.Post("/share/content", share.InjectContentHandler(svcCtx))
	r.Post("/share/footer", share.FooterHandler(svcCtx))
}

// registerProtectedRoutes registers routes that require JWT authentication
func registerProtectedRoutes(r chi.Router, svcCtx *svc.ServiceContext) {
	// Settings routes
	r.Get("/settings", settings.GetSettingsHandler(svcCtx))
	r.Put("/settings", settings.UpdateSettingsHandler(svcCtx))
	r.Delete("/settings", settings.ResetSettingsHandler(svcCtx))
	r.Get("/settings/schema", settings.GetSchemaHandler(svcCtx))

	// License routes
	r.Get("/license", license.GetLicenseHandler(svcCtx))
	r.Post("/license/activate", license.ActivateLicenseHandler(svcCtx))
	r.Post("/license/deactivate", license.DeactivateLicenseHandler(svcCtx))
	r.Post("/license/check", license.CheckLicenseHandler(svcCtx))

	// Update routes
	r.Get("/update/check", handler.UpdateCheckHandler(svcCtx))
}

// securityHeadersMiddleware sets the headers every API response carries
func securityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	}
}
