package rest

import (
	"context"
	"hybrid-guard/domain"
	"hybrid-guard/errors"
	"hybrid-guard/runtime"
	"hybrid-guard/services"
	"log/slog"
	"net/http"
	"os"
	"time"

	stderrors "errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shirou/gopsutil/process"
)

// ModelSource is the slice of the model registry the HTTP boundary needs.
type ModelSource interface {
	Current() *runtime.ModelSnapshot
	Reload(ctx context.Context) (*runtime.ModelSnapshot, error)
}

type AnalyzeRequest struct {
	InputText string `json:"input_text" validate:"required"`
	InputType string `json:"input_type"`
}

type HealthResponse struct {
	Status       string  `json:"status"`
	ModelLoaded  bool    `json:"model_loaded"`
	ModelVersion string  `json:"model_version,omitempty"`
	Vocabulary   int     `json:"vocabulary,omitempty"`
	LoadedAt     string  `json:"loaded_at,omitempty"`
	RSSBytes     uint64  `json:"rss_bytes"`
	CPUPercent   float64 `json:"cpu_percent"`
	Uptime       string  `json:"uptime"`
}

type Server struct {
	router    *gin.Engine
	scorer    services.IScorerService
	models    ModelSource
	validate  *validator.Validate
	process   *process.Process
	log       *slog.Logger
	startedAt time.Time
}

func NewServer(scorer services.IScorerService, models ModelSource, log *slog.Logger) *Server {
	s := &Server{
		router:    gin.New(),
		scorer:    scorer,
		models:    models,
		validate:  validator.New(),
		log:       log,
		startedAt: time.Now(),
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		s.process = p
	} else {
		log.Warn("Process stats unavailable", "err", err)
	}

	s.router.Use(gin.Recovery(), requestLogger(log))
	s.router.POST("/analyze", s.Analyze)
	s.router.GET("/health", s.Health)
	s.router.POST("/admin/reload", s.Reload)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Analyze scores one sample. Bad input is a 400; scoring failures still answer
// 200 with the error carried inside the payload.
func (s *Server) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	kind, err := domain.ParseKind(req.InputType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := s.scorer.Score(c.Request.Context(), domain.Sample{Content: req.InputText, Kind: kind})
	c.JSON(http.StatusOK, result)
}

func (s *Server) Health(c *gin.Context) {
	resp := HealthResponse{Status: "degraded", Uptime: time.Since(s.startedAt).Round(time.Second).String()}
	if snapshot := s.models.Current(); snapshot != nil {
		resp.Status = "ok"
		resp.ModelLoaded = true
		resp.ModelVersion = snapshot.Version.String()
		resp.Vocabulary = snapshot.Vectorizer.Width()
		resp.LoadedAt = snapshot.LoadedAt.Format(time.RFC3339)
	}
	if s.process != nil {
		if mem, err := s.process.MemoryInfo(); err == nil {
			resp.RSSBytes = mem.RSS
		}
		if cpu, err := s.process.CPUPercent(); err == nil {
			resp.CPUPercent = cpu
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) Reload(c *gin.Context) {
	snapshot, err := s.models.Reload(c.Request.Context())
	if err != nil {
		s.log.Error("Model reload failed", "err", err)
		status := http.StatusInternalServerError
		if stderrors.Is(err, errors.ErrArtifactNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"model_version": snapshot.Version.String(),
		"vocabulary":    snapshot.Vectorizer.Width(),
	})
}

func validationMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if stderrors.As(err, &fieldErrors) {
		for _, fe := range fieldErrors {
			if fe.Field() == "InputText" {
				return errors.ErrEmptyInput.Error()
			}
		}
	}
	return err.Error()
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
