package routes

import (
	"net/http"

	"commentsapi/app/controllers"
	"commentsapi/app/database"
	"commentsapi/app/metrics"
	"commentsapi/app/middleware"
	"commentsapi/app/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Options carries what the router needs besides the store.
type Options struct {
	// Secret verifies the HS256 tokens presented to /api.
	Secret []byte
	// Limiter throttles /api per caller. Nil disables limiting.
	Limiter *middleware.RateLimiter
	Log     logrus.FieldLogger
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(store *database.Store, opts Options) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(opts.Log))
	router.Use(middleware.Recoverer(opts.Log))
	router.Use(middleware.Metrics)

	postService := services.NewPostService(store.Posts)
	commentService := services.NewCommentService(store.Comments, store.Posts, opts.Log)

	postController := controllers.NewPostController(postService, opts.Log)
	commentController := controllers.NewCommentController(commentService, opts.Log)
	healthController := controllers.NewHealthController(store.Ping, opts.Log)

	// Operational endpoints, no auth
	router.HandleFunc("/healthz", healthController.Health).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	// API routes
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.Use(middleware.NewAuth(opts.Secret, opts.Log).Handler)
	if opts.Limiter != nil {
		api.Use(opts.Limiter.Handler)
	}

	// Posts API endpoints
	api.HandleFunc("/posts", postController.Create).Methods("POST")
	api.HandleFunc("/posts/{id}", postController.Show).Methods("GET")

	// Comments API endpoints
	api.HandleFunc("/comments", commentController.Create).Methods("POST")
	api.HandleFunc("/comments/{id}", commentController.Show).Methods("GET")
	api.HandleFunc("/comments/{id}", commentController.Update).Methods("PUT")

	return router
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"msg":"Not found"}` + "\n"))
}
