package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/solvenote/solvenote/internal/cache"
	"github.com/solvenote/solvenote/internal/compress"
	"github.com/solvenote/solvenote/internal/config"
	"github.com/solvenote/solvenote/internal/jobs"
	"github.com/solvenote/solvenote/internal/service"
	"github.com/solvenote/solvenote/internal/store"
	"golang.org/x/sys/unix"
)

// Server represents the server
type Server struct {
	httpPort string
}

// NewServer creates a new server
func NewServer(httpPort string) *Server {
	return &Server{
		httpPort: httpPort,
	}
}

// Start starts the server
func (s *Server) Start() {
	if err := Start(s.httpPort); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// Start starts the http server
func Start(httpPort string) error {
	httpPort = ":" + httpPort

	cnf := config.LoadConfig()
	rdb := config.GetDb(cnf)

	rl, err := net.Listen("tcp", httpPort)
	if err != nil {
		return err
	}

	noteStore := store.NewGormStore(rdb)
	err = noteStore.Migrate()
	if err != nil {
		return err
	}

	var codec compress.Compress
	if cnf.Compression == "gzip" {
		codec = compress.NewGZip()
	} else {
		codec = compress.NewNop()
	}

	noteService := service.NewNoteService(codec, noteStore)
	progressService := service.NewProgressService(noteStore)
	statsService := service.NewStatsService(noteStore)

	var statsCache cache.StatsCache
	if cnf.RedisAddr != "" {
		statsCache = cache.NewRedisStatsCache(cnf.RedisAddr, cnf.StatsTTL)
	} else {
		statsCache = cache.NewNopStatsCache()
	}

	// keep the dashboard warm in the background
	executor := jobs.NewTaskExecutor([]jobs.CronJob{
		jobs.NewStatsRefreshTask(cnf.StatsCron, statsService, statsCache),
	})
	executor.Run()
	defer executor.Stop()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), RequestTimeMiddleware())

	handler := NewHandler(noteService, progressService, statsService, statsCache)
	handler.Register(router)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // All origins are allowed
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "PUT"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	restServer := &http.Server{
		Addr:    httpPort,
		Handler: c.Handler(router),
	}

	// make sure to wait for the server to stop before exiting
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.Info("starting rest server on: ", httpPort)
		if err := restServer.Serve(rl); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logrus.Errorf("error starting rest server: %v", err)
			}
		}
		logrus.Infof("rest server stopped")
	}()

	time.Sleep(1 * time.Second)
	logrus.Infof("Press Ctrl+C to stop the server")

	// listen for interrupt signal to gracefully shut down the server
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGTERM, unix.SIGINT, unix.SIGTSTP)
	<-sigs
	// clean Ctrl+C output
	fmt.Println()

	err = restServer.Shutdown(context.Background())
	if err != nil {
		logrus.Errorf("error stopping rest server: %v", err)
	}

	wg.Wait()

	return nil
}
