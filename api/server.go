package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("api")

const shutdownTimeout = 5 * time.Second

// ArgsWebServer defines the web server arguments
type ArgsWebServer struct {
	ListenAddress  string
	MetricsHandler http.Handler
	StatusProvider StatusProvider
	Version        string
}

// server exposes the scrape and liveness endpoints. It only reads from the
// in-memory registry through the provided handler, so responses never wait on
// remote-store I/O.
type server struct {
	router         *gin.Engine
	httpServer     *http.Server
	metricsHandler http.Handler
	statusProvider StatusProvider
	listenAddr     string
	version        string
	wg             sync.WaitGroup
}

// NewServer initializes the Gin engine and mounts the exposition routes
func NewServer(args ArgsWebServer) (*server, error) {
	if args.MetricsHandler == nil {
		return nil, errNilMetricsHandler
	}
	if check.IfNil(args.StatusProvider) {
		return nil, errNilStatusProvider
	}
	if len(args.ListenAddress) == 0 {
		return nil, errEmptyListenAddress
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(gin.Recovery())

	s := &server{
		router:         router,
		metricsHandler: args.MetricsHandler,
		statusProvider: args.StatusProvider,
		listenAddr:     args.ListenAddress,
		version:        args.Version,
	}

	s.setupRoutes()
	return s, nil
}

func (s *server) setupRoutes() {
	s.router.GET("/metrics", gin.WrapH(s.metricsHandler))
	s.router.GET("/health", s.handleHealth)
}

// handleHealth reports process liveness plus the last applied blob per server.
// The status stays healthy as long as the process answers, independent of the
// last reconcile outcome.
func (s *server) handleHealth(c *gin.Context) {
	views := s.statusProvider.View()
	servers := make([]gin.H, 0, len(views))
	for _, view := range views {
		servers = append(servers, gin.H{
			"server_id":           view.ServerID,
			"last_blob":           view.LastBlobName,
			"last_update":         view.LastBlobTimestamp,
			"last_update_success": view.LastUpdateSuccess,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": s.version,
		"servers": servers,
	})
}

// Start listens and serves connections
func (s *server) Start() {
	s.httpServer = &http.Server{
		Addr:    s.listenAddr,
		Handler: s.router,
	}

	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		log.Error("failed to listen", "error", err)
		return
	}
	s.listenAddr = ln.Addr().String()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log.Info("starting HTTP server", "address", s.listenAddr)

		err := s.httpServer.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
		}
	}()
}

// Address returns the actual listen address
func (s *server) Address() string {
	return s.listenAddr
}

// Close gracefully stops the server
func (s *server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	s.wg.Wait()
	return nil
}
