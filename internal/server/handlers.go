package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"trendforge/internal/logger"
	"trendforge/internal/snapshot"
	"trendforge/internal/ta"
)

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// getPrice answers {usd, cad}; an unavailable price is an empty object
func (s *Server) getPrice(c *gin.Context) {
	id := c.Param("id")
	q, err := s.deps.Market.SpotPrice(c.Request.Context(), id)
	if err != nil {
		logger.Warn(c.Request.Context(), "Price lookup failed", "id", id, "error", err)
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, q.Float64s())
}

// getChart answers [[timestamp-ms, price], ...]; unavailable history is an empty list
func (s *Server) getChart(c *gin.Context) {
	series, err := s.series(c)
	if err != nil {
		c.JSON(http.StatusOK, [][2]float64{})
		return
	}
	c.JSON(http.StatusOK, series.Pairs())
}

func (s *Server) getIndicators(c *gin.Context) {
	series, err := s.series(c)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": snapshot.MsgChartUnavailable})
		return
	}
	frame := ta.Compute(series, s.params)
	c.JSON(http.StatusOK, gin.H{
		"frame":   frame,
		"reading": ta.Interpret(frame),
	})
}

func (s *Server) getChartPNG(c *gin.Context) {
	if s.deps.Chart == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "chart rendering disabled"})
		return
	}
	series, err := s.series(c)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": snapshot.MsgChartUnavailable})
		return
	}

	frame := ta.Compute(series, s.params)
	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if err := s.deps.Chart(frame, strings.ToUpper(c.Param("id")), c.Writer); err != nil {
		logger.ErrorWithErr(c.Request.Context(), "Chart rendering failed", err, "id", c.Param("id"))
	}
}

func (s *Server) series(c *gin.Context) (ta.Series, error) {
	id := c.Param("id")
	raw, err := s.deps.Market.History(c.Request.Context(), id, s.cfg.Market.HistoryDays)
	if err != nil {
		logger.Warn(c.Request.Context(), "History lookup failed", "id", id, "error", err)
		return ta.Series{}, err
	}
	series := ta.BuildSeries(raw)
	if series.Empty() {
		return series, errors.New("empty history")
	}
	return series, nil
}

// getNews answers the first entries of every source for name. With ?ticker
// the headlines are matched against name and ticker and capped instead.
func (s *Server) getNews(c *gin.Context) {
	name := c.Param("name")
	ticker := strings.TrimSpace(c.Query("ticker"))
	if ticker == "" {
		c.JSON(http.StatusOK, s.deps.News.Latest(c.Request.Context(), name))
		return
	}

	items, err := s.deps.News.Related(c.Request.Context(), name, ticker)
	if err != nil {
		logger.Info(c.Request.Context(), "No related news", "name", name, "ticker", ticker, "error", err)
	}
	c.JSON(http.StatusOK, items)
}

func (s *Server) getGeneralNews(c *gin.Context) {
	c.JSON(http.StatusOK, s.deps.News.General(c.Request.Context()))
}

func (s *Server) getSnapshot(c *gin.Context) {
	report, err := s.deps.Snapshots.Snapshot(c.Request.Context(), c.Param("ticker"))
	if errors.Is(err, snapshot.ErrEmptyTicker) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
