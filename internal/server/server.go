package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"trendforge/internal/interfaces"
	"trendforge/internal/logger"
	"trendforge/internal/snapshot"
	"trendforge/internal/store"
	"trendforge/internal/ta"
	"trendforge/internal/types"
)

// News is what the HTTP layer needs from the news service
type News interface {
	Related(ctx context.Context, name, ticker string) ([]types.SentimentResult, error)
	General(ctx context.Context) []types.SentimentResult
	Latest(ctx context.Context, name string) []types.SentimentResult
}

// ChartRenderer writes a PNG of the frame
type ChartRenderer func(f ta.Frame, label string, w io.Writer) error

type Deps struct {
	Market    interfaces.MarketData
	News      News
	Snapshots snapshot.Service
	Chart     ChartRenderer
	// Metrics is mounted at /metrics when set
	Metrics http.Handler
}

// Server exposes the snapshot pipelines over a JSON API
type Server struct {
	cfg    *store.Config
	deps   Deps
	params ta.Params
	engine *gin.Engine
	http   *http.Server
}

func New(cfg *store.Config, deps Deps) *Server {
	if !logger.IsDebugEnabled() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:  cfg,
		deps: deps,
		params: ta.Params{
			RSIPeriod:  cfg.Indicators.RSIPeriod,
			MACDFast:   cfg.Indicators.MACDFast,
			MACDSlow:   cfg.Indicators.MACDSlow,
			MACDSignal: cfg.Indicators.MACDSignal,
		},
		engine: gin.New(),
	}
	s.engine.Use(gin.Recovery(), requestLogger())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.getHealth)
	s.engine.GET("/price/:id", s.getPrice)
	s.engine.GET("/chart/:id", s.getChart)
	s.engine.GET("/chart/:id/indicators", s.getIndicators)
	s.engine.GET("/chart/:id/png", s.getChartPNG)
	s.engine.GET("/news", s.getGeneralNews)
	s.engine.GET("/news/:name", s.getNews)
	s.engine.GET("/snapshot/:ticker", s.getSnapshot)

	if s.deps.Metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(s.deps.Metrics))
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info(context.Background(), "Starting server", "addr", addr)

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := logger.StartOperation(c.Request.Context(), "http "+c.FullPath(),
			"method", c.Request.Method, "path", c.Request.URL.Path)
		c.Request = c.Request.WithContext(timer.GetContext())

		c.Next()

		status := c.Writer.Status()
		if status >= http.StatusInternalServerError {
			timer.EndWithError(fmt.Errorf("status %d", status))
			return
		}
		timer.End("status", status)
	}
}
