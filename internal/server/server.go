// Package server exposes the dashboard over HTTP: the snapshot, the table
// collections, the annotation overlay and the rendered chart page.
package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"deriverse-dashboard/internal/analytics"
	"deriverse-dashboard/internal/app"
	"deriverse-dashboard/internal/domain"
	"deriverse-dashboard/internal/ports"
	"deriverse-dashboard/internal/render"
	"deriverse-dashboard/internal/scope"
)

// Server wires the dashboard service and annotation store into a gin router.
type Server struct {
	service *app.DashboardService
	notes   ports.AnnotationStore
	logger  ports.Logger
	engine  *gin.Engine
}

// New builds the router. The annotation store may be nil, which disables the
// notes endpoints with 503 responses.
func New(service *app.DashboardService, notes ports.AnnotationStore, logger ports.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		service: service,
		notes:   notes,
		logger:  logger,
		engine:  gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.register()
	return s
}

func (s *Server) register() {
	api := s.engine.Group("/api")
	api.GET("/snapshot", s.handleSnapshot)
	api.GET("/trades", s.handleTrades)
	api.GET("/orders", s.handleOrders)
	api.GET("/transfers", s.handleTransfers)
	api.GET("/symbols", s.handleSymbols)
	api.GET("/notes", s.handleListNotes)
	api.PUT("/notes/:tradeID", s.handlePutNote)
	api.DELETE("/notes/:tradeID", s.handleDeleteNote)
	api.GET("/export/trades.csv", s.handleExportTrades)
	s.engine.GET("/chart", s.handleChartPage)
}

// Run starts the HTTP server on addr and blocks until it exits.
func (s *Server) Run(addr string) error {
	s.logger.Info(context.Background(), "dashboard server listening", map[string]interface{}{"addr": addr})
	return s.engine.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// snapshotRequest reads the shared scope query parameters.
func snapshotRequest(c *gin.Context) app.SnapshotRequest {
	req := app.SnapshotRequest{
		Symbol:     c.DefaultQuery("symbol", scope.SymbolAll),
		StartInput: c.Query("start"),
		EndInput:   c.Query("end"),
	}
	if status := strings.ToUpper(c.Query("status")); status != "" && status != "ALL" {
		req.TradeStatus = domain.TradeStatus(status)
	}
	if marketScope := strings.ToUpper(c.Query("scope")); marketScope != "" {
		req.MarketScope = domain.MarketScope(marketScope)
	}
	switch strings.ToUpper(c.Query("view")) {
	case string(analytics.GranularitySession):
		req.Granularity = analytics.GranularitySession
	case string(analytics.GranularityHour):
		req.Granularity = analytics.GranularityHour
	default:
		req.Granularity = analytics.GranularityDaily
	}
	return req
}

func (s *Server) handleSnapshot(c *gin.Context) {
	snapshot := s.service.Snapshot(c.Request.Context(), snapshotRequest(c))
	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) handleTrades(c *gin.Context) {
	trades := s.service.ScopedTrades(snapshotRequest(c))
	c.JSON(http.StatusOK, gin.H{"total": len(trades), "trades": trades})
}

func (s *Server) handleOrders(c *gin.Context) {
	f := scope.Filter{Symbol: c.DefaultQuery("symbol", scope.SymbolAll)}
	if status := strings.ToUpper(c.Query("status")); status != "" && status != "ALL" {
		f.OrderStatus = domain.OrderStatus(status)
	}
	orders := scope.Orders(s.service.Dataset().Orders, f)
	c.JSON(http.StatusOK, gin.H{"total": len(orders), "orders": orders})
}

func (s *Server) handleTransfers(c *gin.Context) {
	var f scope.Filter
	if status := strings.ToUpper(c.Query("status")); status != "" && status != "ALL" {
		f.TransferStatus = domain.TransferStatus(status)
	}
	transfers := scope.Transfers(s.service.Dataset().Transfers, f)
	c.JSON(http.StatusOK, gin.H{"total": len(transfers), "transfers": transfers})
}

func (s *Server) handleSymbols(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"symbols": s.service.Dataset().AvailableSymbols})
}

func (s *Server) handleListNotes(c *gin.Context) {
	if s.notes == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "annotation store not configured"})
		return
	}
	notes, err := s.notes.All(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

type notePayload struct {
	Note string `json:"note"`
}

func (s *Server) handlePutNote(c *gin.Context) {
	if s.notes == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "annotation store not configured"})
		return
	}
	tradeID := c.Param("tradeID")
	var payload notePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// An emptied note clears the override, mirroring the SPA's editor.
	trimmed := strings.TrimSpace(payload.Note)
	var err error
	if trimmed == "" {
		err = s.notes.Delete(c.Request.Context(), tradeID)
	} else {
		err = s.notes.Set(c.Request.Context(), tradeID, trimmed)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tradeID": tradeID, "note": trimmed})
}

func (s *Server) handleDeleteNote(c *gin.Context) {
	if s.notes == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "annotation store not configured"})
		return
	}
	tradeID := c.Param("tradeID")
	if err := s.notes.Delete(c.Request.Context(), tradeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleExportTrades(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="deriverse-trades.csv"`)
	if err := s.service.ExportTradesCSV(c.Request.Context(), c.Writer, snapshotRequest(c)); err != nil {
		s.logger.Error(c.Request.Context(), err, "trade export failed")
		c.Status(http.StatusInternalServerError)
	}
}

func (s *Server) handleChartPage(c *gin.Context) {
	snapshot := s.service.Snapshot(c.Request.Context(), snapshotRequest(c))
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := render.WriteHTML(c.Writer, snapshot.Chart, snapshot.PeriodLabel); err != nil {
		s.logger.Error(c.Request.Context(), err, "chart render failed")
		c.Status(http.StatusInternalServerError)
	}
}
