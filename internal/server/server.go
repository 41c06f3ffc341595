package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/agenthands/kgquiz/internal/core/common"
	"github.com/agenthands/kgquiz/internal/core/model"
	"github.com/agenthands/kgquiz/internal/observability"
)

const requestIDHeader = "X-Request-ID"

// QuestionGenerator is the part of core.QuizGenerator the HTTP layer uses.
type QuestionGenerator interface {
	Generate(ctx context.Context) (model.Question, error)
}

type Server struct {
	Generator QuestionGenerator
	Metrics   *observability.Metrics
	StaticDir string
	logger    *zap.Logger
}

func NewServer(gen QuestionGenerator, metrics *observability.Metrics, staticDir string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		Generator: gen,
		Metrics:   metrics,
		StaticDir: staticDir,
		logger:    logger.Named("http"),
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/api/random", s.Random)
	r.GET("/healthz", s.Health)
	if s.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Metrics.Registry(), promhttp.HandlerOpts{})))
	}
	if s.StaticDir != "" {
		files := http.FileServer(http.Dir(s.StaticDir))
		r.NoRoute(gin.WrapH(files))
	}

	return r
}

// Random answers with one question. num is validated but only one question
// per request is produced, so larger values still yield a single object.
func (s *Server) Random(c *gin.Context) {
	if numParam, ok := c.GetQuery("num"); ok {
		num, err := strconv.Atoi(numParam)
		if err != nil || num < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "num must be a positive integer"})
			return
		}
		if num > 1 {
			s.logger.Debug("only one question per request is produced",
				zap.String("request_id", c.GetString("request_id")),
				zap.Int("num", num))
		}
	}

	q, err := s.Generator.Generate(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "Failed to generate question"
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
		msg = "Question generation was cancelled"
	case errors.Is(err, common.ErrAttemptsExhausted):
		status = http.StatusServiceUnavailable
		msg = "Could not generate a question, try again later"
	}
	s.logger.Warn("question generation failed",
		zap.String("request_id", c.GetString("request_id")),
		zap.Int("status", status),
		zap.Error(err))
	c.JSON(status, gin.H{"error": msg})
}

// requestLogger tags each request with an id and logs it once it completes.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		s.logger.Info("request",
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)))
	}
}
