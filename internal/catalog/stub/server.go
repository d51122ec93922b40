// Package stub serves a catalog over the same HTTP surface as the remote
// recipe API. It backs the demo mode, the stub command and client tests.
package stub

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

// Request is one request seen by the server.
type Request struct {
	Method    string
	Path      string
	Query     string
	Body      []byte
	RequestID string
}

type fault struct {
	status int
	detail string
}

// Option configures the Server.
type Option func(*Server)

// WithCORS allows browser front-ends served from origins.
func WithCORS(origins []string) Option {
	return func(s *Server) { s.corsOrigins = origins }
}

// WithLatency delays every response by d, or until the request is cancelled.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// Server is a gin handler over a RecipeCatalog and an AffinityCatalog.
type Server struct {
	recipes  domain.RecipeCatalog
	affinity domain.AffinityCatalog
	log      *logger.Logger

	corsOrigins []string
	latency     time.Duration

	mu       sync.Mutex
	requests []Request
	faults   []fault

	engine *gin.Engine
}

// New builds the server and its routes.
func New(recipes domain.RecipeCatalog, affinity domain.AffinityCatalog, log *logger.Logger, opts ...Option) *Server {
	s := &Server{
		recipes:  recipes,
		affinity: affinity,
		log:      log,
	}
	for _, o := range opts {
		o(s)
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.logRequests())
	if len(s.corsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     s.corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(s.record(), s.injectFaults(), s.delay())

	rg := r.Group("/recipes")
	rg.GET("/searchList", s.listDishes)
	rg.POST("/dish", s.createDish)
	rg.PUT("/dish_edit/:dish_id", s.renameDish)
	rg.DELETE("/dish/:dish_id", s.deleteDish)
	rg.GET("/recipe_list/:dish_id", s.listRecipes)
	rg.GET("/recipe/:dish_id/:recipe_id", s.getRecipe)
	rg.POST("/recipe/:dish_id", s.createRecipe)
	rg.PUT("/recipe_edit/:recipe_id", s.updateRecipe)
	rg.DELETE("/recipe/:recipe_id", s.deleteRecipe)
	rg.GET("/recipe_url/:dish_id", s.importURL)
	rg.POST("/recipe_image/:dish_id", s.importImage)

	mg := r.Group("/match_checker")
	mg.GET("/ingredient_list", s.listIngredients)
	mg.GET("/get_ingredient/:id", s.getIngredient)

	s.engine = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	s.log.Info("stub catalog listening on %s", ln.Addr())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("stub: serve: %w", err)
	}
	return nil
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("stub: listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Requests returns a copy of every request recorded so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Reset forgets recorded requests and pending faults.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
	s.faults = nil
}

// FailNext makes the next request fail with the given status and detail.
// Calls queue up.
func (s *Server) FailNext(status int, detail string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = append(s.faults, fault{status: status, detail: detail})
}

// ── Middleware ───────────────────────────────────────────────────

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("stub: %s %s -> %d in %s [%s]", c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start).Round(time.Microsecond), c.GetHeader("X-Request-ID"))
	}
}

func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Query:     c.Request.URL.RawQuery,
			Body:      body,
			RequestID: c.GetHeader("X-Request-ID"),
		})
		s.mu.Unlock()
		c.Next()
	}
}

func (s *Server) injectFaults() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		var f *fault
		if len(s.faults) > 0 {
			f = &s.faults[0]
			s.faults = s.faults[1:]
		}
		s.mu.Unlock()

		if f != nil {
			c.AbortWithStatusJSON(f.status, gin.H{"detail": f.detail})
			return
		}
		c.Next()
	}
}

func (s *Server) delay() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.latency > 0 {
			select {
			case <-time.After(s.latency):
			case <-c.Request.Context().Done():
				c.AbortWithStatus(http.StatusServiceUnavailable)
				return
			}
		}
		c.Next()
	}
}

// ── Helpers ──────────────────────────────────────────────────────

// writeError maps catalog errors to the API's status codes and
// {"detail": ...} bodies.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrDishNotEmpty),
		errors.Is(err, domain.ErrUnsupportedImage),
		errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"detail": err.Error()})
}

// intParam reads a path parameter as an int, answering 422 when it is not one.
func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": fmt.Sprintf("%s must be an integer", name)})
		return 0, false
	}
	return v, true
}

type nameBody struct {
	Name string `json:"name"`
}
