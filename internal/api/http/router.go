package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/mind-engage/gpa-form/internal/logging"
	"github.com/mind-engage/gpa-form/internal/view"
)

type RouterOptions struct {
	Logger      zerolog.Logger
	Sessions    Sessions
	Renderer    *view.Renderer
	EnableAPI   bool
	CORSOrigins []string
}

func NewRouter(o RouterOptions) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, logging.Requests(o.Logger), middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/", FormPageHandler(o.Sessions, o.Renderer))
	r.Post("/", SubmitFormHandler(o.Sessions))

	if o.EnableAPI {
		r.Route("/api", func(ar chi.Router) {
			ar.Use(cors.Handler(cors.Options{
				AllowedOrigins: o.CORSOrigins,
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Content-Type"},
				ExposedHeaders: []string{"Content-Length"},
				MaxAge:         300,
			}))
			MountAPI(ar)
		})
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	return r
}
