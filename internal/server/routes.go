package server

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/upark/upark-api/internal/constants"
	"github.com/upark/upark-api/internal/middleware"
	"github.com/upark/upark-api/internal/utils"
)

// RouteInfo describes one registered endpoint.
type RouteInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// SetupRoutes configures the middleware chain and every UPark endpoint.
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	r.Use(s.corsHandler())
	r.Use(middleware.RequestID())
	r.Use(chimiddleware.RealIP)
	if s.Config.Logging.RequestLog {
		r.Use(middleware.RequestLogger())
	}
	r.Use(middleware.Recovery())
	r.Use(middleware.SecurityHeaders())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.NotFound(w, "")
	})

	r.Get(constants.HealthPath, s.healthCheck)
	r.Get(constants.VersionPath, s.version)

	r.Route(constants.APIBasePath, func(r chi.Router) {
		r.Get("/health", apiHealth)
		r.Get("/routes", s.listRoutes)

		r.Post("/register", s.Handlers.AuthHandler.Register)
		r.Post("/login", s.Handlers.AuthHandler.Login)
		r.Post("/change-password", s.Handlers.AuthHandler.ChangePassword)

		r.Post("/request-reset", s.Handlers.PasswordResetHandler.RequestReset)
		r.With(chimiddleware.NoCache).
			Get(constants.ConfirmResetPath+"/{"+constants.ParamToken+"}", s.Handlers.PasswordResetHandler.ConfirmReset)

		r.With(chimiddleware.NoCache).Get("/users-table", s.Handlers.UserHandler.UsersTable)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.Handlers.UserHandler.ListUsers)
			r.Post("/", s.Handlers.UserHandler.CreateUser)
			r.Get("/{id}", s.Handlers.UserHandler.GetUser)
			r.Put("/{id}", s.Handlers.UserHandler.UpdateUser)
			r.Delete("/{id}", s.Handlers.UserHandler.DeleteUser)
		})

		r.Route("/parkings", func(r chi.Router) {
			r.Get("/", s.Handlers.ParkingHandler.ListParkings)
			r.Post("/", s.Handlers.ParkingHandler.CreateParking)
			r.Get("/{id}", s.Handlers.ParkingHandler.GetParking)
			r.Put("/{id}", s.Handlers.ParkingHandler.UpdateParking)
			r.Delete("/{id}", s.Handlers.ParkingHandler.DeleteParking)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", s.Handlers.ReviewHandler.ListReviews)
			r.Post("/", s.Handlers.ReviewHandler.CreateReview)
			r.Get("/{id}", s.Handlers.ReviewHandler.GetReview)
			r.Put("/{id}", s.Handlers.ReviewHandler.UpdateReview)
			r.Delete("/{id}", s.Handlers.ReviewHandler.DeleteReview)
		})
	})

	s.router = r
}

// corsHandler allows every configured origin. An empty list allows any origin.
func (s *Server) corsHandler() func(http.Handler) http.Handler {
	origins := s.Config.CORS.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", constants.HeaderAuthorization, constants.HeaderContentType, constants.HeaderXRequestID},
		ExposedHeaders:   []string{constants.HeaderXRequestID},
		AllowCredentials: s.Config.CORS.AllowCredentials,
		MaxAge:           300,
	})
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.Db.HealthCheck(r.Context()); err != nil {
		log.Error().Err(err).Msg("Health check failed")
		utils.Error(w, http.StatusServiceUnavailable, constants.CodeServiceUnavailable, constants.MsgServiceUnhealthy, nil)
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": s.Config.App.Version,
	})
}

func (s *Server) version(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{
		"version":     s.Config.App.Version,
		"environment": s.Config.App.Environment,
	})
}

// apiHealth is the liveness probe the mobile client polls. It does not touch the database.
func apiHealth(w http.ResponseWriter, r *http.Request) {
	utils.SendJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": constants.MsgServerRunning,
	})
}

// listRoutes reports every registered method and path, sorted by path.
func (s *Server) listRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := s.Routes()
	if err != nil {
		utils.InternalServerError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, routes)
}

// Routes walks the router and returns its endpoints.
func (s *Server) Routes() ([]RouteInfo, error) {
	routes := make([]RouteInfo, 0)

	err := chi.Walk(s.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		routes = append(routes, RouteInfo{Method: method, Path: route})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})

	return routes, nil
}
