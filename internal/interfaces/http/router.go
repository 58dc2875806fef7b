package http

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ermis/jwt-rsa256-api/internal/application"
	"github.com/ermis/jwt-rsa256-api/internal/domain"
	"github.com/ermis/jwt-rsa256-api/internal/infrastructure/config"
	"github.com/ermis/jwt-rsa256-api/internal/infrastructure/jwt"
	"github.com/ermis/jwt-rsa256-api/internal/infrastructure/keystore"
	"github.com/ermis/jwt-rsa256-api/internal/interfaces/http/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Router struct {
	router *chi.Mux
}

func NewRouter(cfg *config.Config, logger *zap.Logger) *Router {
	keyStore := keystore.NewFileStore(cfg.PrivateKeyPath, cfg.PublicKeyPath, logger)
	keyService := application.NewKeyService(keyStore, logger)

	tokenDefaults := domain.DefaultTokenOptions()
	tokenDefaults.ExpiresIn = cfg.JWTDefaultExpiresIn
	tokenDefaults.Issuer = cfg.JWTDefaultIssuer
	tokenService := jwt.NewJWTService(keyStore, tokenDefaults, logger)

	// Initialize handlers
	keyHandler := handlers.NewKeyHandler(keyService, tokenService, cfg.DefaultKeySize, logger)
	tokenHandler := handlers.NewTokenHandler(tokenService, logger)

	// Create router with middleware
	router := createRouter()

	// Health check endpoints
	router.Group(func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})

		r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
			if err := checkKeyDir(cfg.PrivateKeyPath, cfg.PublicKeyPath); err != nil {
				logger.Error("Key directory health check failed", zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("Key directory unavailable"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Ready"))
		})

		r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Alive"))
		})
	})

	// Swagger UI configuration
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
		httpSwagger.DeepLinking(true),
	))

	// Serve Swagger JSON with CORS headers
	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "docs/swagger.json")
	})

	router.Route("/api", func(r chi.Router) {
		r.Route("/keys", func(r chi.Router) {
			r.Post("/generate", keyHandler.GenerateKeys)
			r.Get("/status", keyHandler.Status)
			r.Get("/public", keyHandler.PublicKey)
			r.Delete("/delete", keyHandler.DeleteKeys)
			r.Get("/jwks", keyHandler.JWKS)
		})

		r.Route("/jwt", func(r chi.Router) {
			r.Post("/create", tokenHandler.CreateToken)
			r.Post("/verify", tokenHandler.VerifyToken)
			r.Post("/decode", tokenHandler.DecodeToken)
			r.Post("/check-expiration", tokenHandler.CheckExpiration)
		})
	})

	return &Router{router: router}
}

func createRouter() *chi.Mux {
	router := chi.NewRouter()

	// Add middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Timeout(60 * time.Second))

	return router
}

// checkKeyDir reports whether the directories holding the key files exist,
// or can be created under an existing parent.
func checkKeyDir(paths ...string) error {
	for _, path := range paths {
		dir := filepath.Dir(path)
		info, err := os.Stat(dir)
		if os.IsNotExist(err) {
			info, err = os.Stat(filepath.Dir(dir))
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return &os.PathError{Op: "stat", Path: dir, Err: os.ErrInvalid}
		}
	}
	return nil
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
