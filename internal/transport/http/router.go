package apihttp

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"stockpilot/internal/analysis/chart"
	"stockpilot/internal/decision"
	"stockpilot/internal/market"
	"stockpilot/internal/store/gormstore"
)

// Analyzer runs one analysis request; implemented by the decision engine
// (wrapped with persistence in the app layer).
type Analyzer interface {
	Analyze(ctx context.Context, ticker string) (decision.Recommendation, error)
}

// Router exposes the analysis and recommendation-log endpoints.
type Router struct {
	Analyzer Analyzer
	Store    *gormstore.Store
	Market   market.Source
}

func (r *Router) Register(group *gin.RouterGroup) {
	group.POST("/analyze", r.handleAnalyze)
	if r.Store != nil {
		group.GET("/recommendations", r.handleRecommendations)
		group.GET("/recommendations/:trace_id", r.handleRecommendationByTrace)
	}
}

type analyzeRequest struct {
	Ticker string `json:"ticker" binding:"required"`
}

// handleAnalyze runs the pipeline synchronously. A failed analysis returns
// an explicit error payload, never a guessed recommendation.
func (r *Router) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticker is required"})
		return
	}
	rec, err := r.Analyzer.Analyze(c.Request.Context(), req.Ticker)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, market.ErrDataUnavailable):
			status = http.StatusNotFound
		case errors.Is(err, decision.ErrModelUnavailable):
			status = http.StatusBadGateway
		case errors.Is(err, decision.ErrAmbiguousDecision):
			status = http.StatusBadGateway
		case errors.Is(err, context.Canceled):
			status = http.StatusRequestTimeout
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (r *Router) handleRecommendations(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	recs, err := r.Store.ListRecent(c.Request.Context(), c.Query("ticker"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

func (r *Router) handleRecommendationByTrace(c *gin.Context) {
	rec, found, err := r.Store.GetByTraceID(c.Request.Context(), c.Param("trace_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "recommendation not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// handleChart renders the candlestick + volume page for a ticker.
func (r *Router) handleChart(c *gin.Context) {
	if r.Market == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "charts not enabled"})
		return
	}
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	candles, err := r.Market.DailyCandles(c.Request.Context(), ticker)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, market.ErrDataUnavailable) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := chart.RenderPricePage(c.Writer, ticker, candles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
