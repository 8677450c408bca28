package main

import (
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rahul09123/SS-Mini-Project/internal/core/services"
	"github.com/Rahul09123/SS-Mini-Project/internal/platform/config"
	"github.com/Rahul09123/SS-Mini-Project/internal/recordstore"
	"github.com/Rahul09123/SS-Mini-Project/internal/transport/httpapi"
	"github.com/Rahul09123/SS-Mini-Project/internal/transport/telnet"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Error("failed to create data dir", slog.String("error", err.Error()))
		os.Exit(1)
	}
	stores, err := recordstore.OpenAll(cfg.DataDir)
	if err != nil {
		logger.Error("failed to open record stores", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer stores.Close()
	logger.Info("record stores opened", slog.String("data_dir", cfg.DataDir))

	if err := services.SeedAdmin(stores.Users, logger); err != nil {
		logger.Error("failed to seed admin user", slog.String("error", err.Error()))
		os.Exit(1)
	}

	svcs := services.NewContainer(stores, cfg.MaxClients, logger)

	if cfg.StatusPort != "" {
		router := httpapi.NewRouter(stores, svcs.Sessions, cfg.IsProduction, logger)
		go func() {
			addr := ":" + cfg.StatusPort
			logger.Info("status endpoint listening", slog.String("addr", addr))
			if err := http.ListenAndServe(addr, router); err != nil {
				logger.Error("status endpoint stopped", slog.String("error", err.Error()))
			}
		}()
	}

	listener, err := net.Listen("tcp", ":"+cfg.Port)
	if err != nil {
		logger.Error("failed to listen", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("bank server listening",
		slog.String("port", cfg.Port),
		slog.Int("max_clients", cfg.MaxClients))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		logger.Info("shutting down")
		listener.Close()
	}()

	if err := telnet.NewServer(svcs, logger).Serve(listener); err != nil {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
