package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"CrossSentinel/internal/metrics"
	"CrossSentinel/internal/model"
	"CrossSentinel/internal/recorder"
)

// ScanSource exposes the scheduler state the HTTP surface reads.
type ScanSource interface {
	Last() *model.ScanResult
	TriggerScan() bool
}

// Server is the status and metrics HTTP endpoint of the daemon.
type Server struct {
	Addr    string
	Scans   ScanSource
	Metrics *metrics.Metrics
	Tickers model.TickerSet

	engine  *gin.Engine
	httpSrv *http.Server
	started time.Time
}

// New builds the gin engine and routes.
func New(addr string, scans ScanSource, m *metrics.Metrics, tickers model.TickerSet) *Server {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{
		Addr:    addr,
		Scans:   scans,
		Metrics: m,
		Tickers: tickers,
		engine:  gin.New(),
		started: time.Now(),
	}
	s.engine.Use(gin.Recovery())
	s.setupRoutes()
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", s.getHealth)
	s.engine.GET("/tickers", s.getTickers)
	s.engine.GET("/scans/latest", s.getLatestScan)
	s.engine.POST("/scans", s.postScan)
	if s.Metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(s.Metrics.Handler()))
	}
}

// Handler returns the routed engine, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("[INFO] status server listening on %s", s.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) getHealth(c *gin.Context) {
	resp := gin.H{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	}
	if last := s.Scans.Last(); last != nil {
		resp["last_scan"] = last.FinishedAt
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) getTickers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": len(s.Tickers), "tickers": s.Tickers})
}

func (s *Server) getLatestScan(c *gin.Context) {
	last := s.Scans.Last()
	if last == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no scan has run yet"})
		return
	}
	c.JSON(http.StatusOK, recorder.NewScanRecord(last))
}

func (s *Server) postScan(c *gin.Context) {
	if !s.Scans.TriggerScan() {
		c.JSON(http.StatusConflict, gin.H{"error": "scan already running"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "scan started"})
}
