package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/zfit/zfit/internal/models"
	"github.com/zfit/zfit/internal/plan"
)

// Plans runs the plan pipeline.
type Plans interface {
	GenerateProgram(ctx context.Context, req models.ProgramRequest) []models.StructuredWorkout
	UpdateProgram(ctx context.Context, program []models.StructuredWorkout, changes string) []models.StructuredWorkout
	InsertProgram(ctx context.Context, program []models.StructuredWorkout) plan.InsertResult
}

// Insights analyzes exercise history.
type Insights interface {
	Generate(ctx context.Context, exercise string) string
	PastExerciseData(ctx context.Context, exercise string) ([]models.ExerciseSession, error)
}

// Users stores user documents.
type Users interface {
	Save(ctx context.Context, u models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Delete(ctx context.Context, email string) error
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	plans    Plans
	insights Insights
	users    Users
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured. An empty apiKey
// leaves the write endpoints open.
func New(plans Plans, insights Insights, users Users, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		plans:    plans,
		insights: insights,
		users:    users,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Plan endpoints used by the front end
	s.router.Post("/generateProgram", s.handleGenerateProgram)
	s.router.Post("/updateProgram", s.handleUpdateProgram)
	s.router.Get("/getInsights/{name}", s.handleGetInsights)
	s.router.Get("/exercises/{name}/history", s.handleExerciseHistory)

	// Writes (API key required when configured)
	s.router.Group(func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}
		r.Post("/insertProgram", s.handleInsertProgram)
		r.Post("/users", s.handleCreateUser)
		r.Get("/users/{email}", s.handleGetUser)
		r.Delete("/users/{email}", s.handleDeleteUser)
	})
}
