package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortuna/courtside/internal/api/rest"
	"github.com/fortuna/courtside/internal/api/websocket"
	"github.com/fortuna/courtside/internal/cache"
	"github.com/fortuna/courtside/internal/config"
	"github.com/fortuna/courtside/internal/espn"
	"github.com/fortuna/courtside/internal/publisher"
	"github.com/fortuna/courtside/internal/scheduler"
	"github.com/fortuna/courtside/internal/service"
)

const (
	serviceName    = "courtside"
	serviceVersion = "1.0.0"

	connectRetries  = 10
	connectDelay    = 2 * time.Second
	cachePruneAfter = 7 * 24 * time.Hour
)

func main() {
	log.Printf("Starting %s v%s - team dashboard service", serviceName, serviceVersion)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, err := cache.Open(ctx, cache.OpenOptions{
		Kind:       cfg.Cache.Backend,
		RedisURL:   cfg.Cache.RedisURL,
		DSN:        cfg.Cache.DSN,
		Retries:    connectRetries,
		RetryDelay: connectDelay,
		PruneAfter: cachePruneAfter,
	})
	if err != nil {
		log.Fatalf("Failed to open %s cache: %v", cfg.Cache.Backend, err)
	}
	defer backend.Close()
	if backend.Store == nil {
		log.Println("⚠️  Caching disabled")
	} else {
		log.Printf("✓ Using %s cache (ttl %v)", cfg.Cache.Backend, cfg.Cache.TTL)
	}

	client := espn.New(espn.Options{
		BaseURL:       cfg.ESPN.BaseURL,
		CommonBaseURL: cfg.ESPN.CommonBaseURL,
		SportPath:     cfg.ESPN.SportPath,
		Timeout:       cfg.ESPN.Timeout,
	})
	fetcher := service.NewFetcher(client, backend.Cache(cfg.Cache.TTL), cfg.ESPN.TeamID)
	dashboard := service.NewDashboard(fetcher, service.Options{
		TeamID:          cfg.ESPN.TeamID,
		BroadcastTeamID: cfg.ESPN.BroadcastTeamID,
	})

	// Live snapshots: poller -> websocket hub (+ redis stream)
	hub := websocket.NewHub()
	go hub.Run(ctx)

	poller := scheduler.NewLivePoller(dashboard, &scheduler.Config{
		LivePollInterval:  cfg.Live.PollInterval,
		EnableLivePolling: cfg.Live.EnablePolling,
	})
	poller.SetBroadcaster(hub)

	if cfg.Live.Stream {
		var pub *publisher.RedisStreamPublisher
		if backend.Redis != nil {
			pub = publisher.NewRedisStreamPublisher(backend.Redis, cfg.ESPN.TeamID)
		} else {
			pub, err = publisher.NewRedisPublisher(cfg.Cache.RedisURL, cfg.ESPN.TeamID)
			if err != nil {
				log.Fatalf("Failed to initialize Redis publisher: %v", err)
			}
			defer pub.Close()
		}
		poller.SetPublisher(pub)
		log.Printf("✓ Publishing live snapshots to %s", pub.LiveStream())
	}

	go poller.Start(ctx)

	// REST API server
	restServer := rest.NewServer(cfg.Server.RESTPort, dashboard, poller, cfg.Server.CORSOrigins)
	restServer.SetCacheHealth(backend.HealthCheck)
	go func() {
		log.Printf("Starting REST API server on port %s", cfg.Server.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	// WebSocket server
	wsServer := websocket.NewServer(hub, cfg.Server.CORSOrigins)
	go func() {
		log.Printf("Starting WebSocket server on port %s", cfg.Server.WSPort)
		if err := wsServer.Start(cfg.Server.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	log.Printf("✓ %s v%s started (team %s)", serviceName, serviceVersion, cfg.ESPN.TeamID)
	log.Printf("  REST API: http://0.0.0.0:%s/api/v1", cfg.Server.RESTPort)
	log.Printf("  WebSocket: ws://0.0.0.0:%s/ws/live", cfg.Server.WSPort)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Printf("Shutting down %s gracefully...", serviceName)

	poller.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}
