// Package devserver provides an in-memory reference implementation of the
// registration API. It backs local development and the client tests; it is
// not a durable store.
package devserver

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/net/context"

	"github.com/HairlessVillager/llama-index/internal/apperr"
	"github.com/HairlessVillager/llama-index/internal/platform"
	mw "github.com/HairlessVillager/llama-index/pkg/middleware"
)

const (
	GracefulShutdownTimeout = 10 * time.Second
)

type Server struct {
	Echo *echo.Echo

	mu         sync.Mutex
	projects   map[string]*platform.Project // keyed by project name
	pipelines  map[string]*platform.PipelineResource
	byName     map[string]string // projectID + "/" + pipeline name -> pipeline ID
	executions map[string]*platform.PipelineExecution
}

func NewServer() *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()

	s := &Server{
		Echo:       e,
		projects:   make(map[string]*platform.Project),
		pipelines:  make(map[string]*platform.PipelineResource),
		byName:     make(map[string]string),
		executions: make(map[string]*platform.PipelineExecution),
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.Echo.Use(mw.Logger())
	s.Echo.Use(middleware.Recover())
}

func (s *Server) setupRoutes() {
	api := s.Echo.Group("/api/v1")
	api.POST("/projects", s.createProject)
	api.PUT("/projects/:projectId/pipelines", s.upsertPipeline)
	api.POST("/pipelines/:pipelineId/executions", s.createExecution)
}

func (s *Server) createProject(c echo.Context) error {
	var req platform.ProjectCreate
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid project payload", err)
	}
	if req.Name == "" {
		return apperr.NewValidation("project name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.projects[req.Name]; ok {
		return c.JSON(http.StatusOK, existing)
	}

	project := &platform.Project{
		ID:   uuid.NewString(),
		Name: req.Name,
	}
	s.projects[req.Name] = project

	return c.JSON(http.StatusCreated, project)
}

func (s *Server) upsertPipeline(c echo.Context) error {
	projectID := c.Param("projectId")

	var req platform.PipelineCreate
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid pipeline payload", err)
	}
	if req.Name == "" {
		return apperr.NewValidation("pipeline name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.projectExists(projectID) {
		return echo.NewHTTPError(http.StatusNotFound, "project not found")
	}

	key := projectID + "/" + req.Name
	if id, ok := s.byName[key]; ok {
		// Upsert keyed by (project, name): the ID is stable across calls.
		pipeline := s.pipelines[id]
		return c.JSON(http.StatusOK, pipeline)
	}

	pipeline := &platform.PipelineResource{
		ID:        uuid.NewString(),
		Name:      req.Name,
		ProjectID: projectID,
	}
	s.pipelines[pipeline.ID] = pipeline
	s.byName[key] = pipeline.ID

	return c.JSON(http.StatusCreated, pipeline)
}

func (s *Server) createExecution(c echo.Context) error {
	pipelineID := c.Param("pipelineId")

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pipelines[pipelineID]; !ok {
		return echo.NewHTTPError(http.StatusNotFound, "pipeline not found")
	}

	execution := &platform.PipelineExecution{
		ID:         uuid.NewString(),
		PipelineID: pipelineID,
		Status:     "pending",
		CreatedAt:  time.Now().UTC(),
	}
	s.executions[execution.ID] = execution

	return c.JSON(http.StatusCreated, execution)
}

func (s *Server) projectExists(projectID string) bool {
	for _, p := range s.projects {
		if p.ID == projectID {
			return true
		}
	}
	return false
}

// PipelineCount reports the number of registered pipelines.
func (s *Server) PipelineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pipelines)
}

// Start serves until interrupted, then shuts down gracefully.
func (s *Server) Start(port string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		if err := s.Echo.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Echo.Logger.Fatal("shutting down the server")
		}
	}()

	<-ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := s.Echo.Shutdown(ctx); err != nil {
		s.Echo.Logger.Fatal(err)
		return err
	}
	return nil
}
