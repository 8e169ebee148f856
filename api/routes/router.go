package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Viniciusgrn/forFunOrganizado/api/controllers"
	"github.com/Viniciusgrn/forFunOrganizado/api/middleware"
	authsvc "github.com/Viniciusgrn/forFunOrganizado/internal/auth"
	mediasvc "github.com/Viniciusgrn/forFunOrganizado/internal/media"
	productsvc "github.com/Viniciusgrn/forFunOrganizado/internal/products"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/auth/session"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/config"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/logger"
	"github.com/Viniciusgrn/forFunOrganizado/pkg/metrics"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	Sessions       session.AccessSessionChecker
	AuthService    authsvc.Service
	ProductService productsvc.Service
	MediaService   mediasvc.Service
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler

	// UploadsDir backs the public static file route.
	UploadsDir string

	// Readiness probes, keyed by dependency name.
	Pingers map[string]controllers.Pinger
}

// NewRouter mounts the public catalog surface and the admin-gated mutations.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(logg, deps.Pingers))
	})

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	if deps.UploadsDir != "" {
		fileServer := http.FileServer(http.Dir(deps.UploadsDir))
		r.Handle(cfg.Uploads.ServePrefix+"/*", http.StripPrefix(cfg.Uploads.ServePrefix+"/", fileServer))
	}

	r.Route("/api", func(r chi.Router) {
		// Public storefront surface.
		r.Get("/products", controllers.ListProducts(deps.ProductService, logg))
		r.Get("/featured", controllers.ListFeaturedProducts(deps.ProductService, logg))
		r.Post("/products/view/{id}", controllers.RecordView(deps.ProductService, logg))
		r.Post("/products/click/{id}", controllers.RecordClick(deps.ProductService, logg))
		r.Post("/login", controllers.Login(deps.AuthService, logg))

		// Admin mutations.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

			r.Post("/products", controllers.CreateProduct(deps.ProductService, cfg.Uploads, logg))
			r.Put("/products/{id}", controllers.UpdateProduct(deps.ProductService, logg))
			r.Put("/products/feature/{id}", controllers.FeatureProduct(deps.ProductService, logg))
			r.Delete("/products/{id}", controllers.DeleteProduct(deps.ProductService, logg))
			r.Put("/media/set-main/{mediaId}", controllers.SetMainMedia(deps.MediaService, logg))
			r.Post("/logout", controllers.Logout(deps.AuthService, logg))
		})
	})

	return r
}
