package main

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"threadb/pkg/api"
	"threadb/pkg/banner"
	"threadb/pkg/config"
	"threadb/pkg/logger"
	"threadb/pkg/store"
	"threadb/pkg/uploads"
)

func main() {
	// build metadata - set via ldflags during build/release
	var (
		version = "dev"
		commit  = "none"
	)
	_ = godotenv.Load(".env")
	flags := config.ParseFlags()

	cfg, envUsed, err := config.LoadEffective(flags.Config)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	// Flags explicitly set win over env/config.
	addr := cfg.Addr()
	if flags.Set["addr"] {
		addr = flags.Addr
	}
	dbPath := cfg.Server.DBPath
	if dbPath == "" || flags.Set["db"] {
		dbPath = flags.DB
	}

	// the original board expects its upload and thumb dirs to exist
	for _, dir := range []string{cfg.Board.UploadsDir, cfg.Board.ThumbsDir} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.Fatalf("failed to create directory %s: %v", dir, err)
			}
			logger.Info("created_directory", "path", dir)
		}
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}).ParseGlob(filepath.Join(cfg.Board.TemplatesDir, "*.html"))
	if err != nil {
		log.Fatalf("failed to parse templates: %v", err)
	}

	if err := store.Open(dbPath); err != nil {
		log.Fatalf("failed to open pebble at %s: %v", dbPath, err)
	}

	srcs := []string{"flags"}
	if envUsed {
		srcs = append(srcs, "env")
	}
	if _, err := config.Load(flags.Config); err == nil {
		srcs = append(srcs, "config")
	}
	verStr := version
	if commit != "none" {
		verStr = verStr + " (" + commit + ")"
	}
	banner.Print(addr, dbPath, strings.Join(srcs, ", "), verStr)

	imgStore := uploads.NewStore(cfg.Board.UploadsDir, cfg.MaxUploadBytes())

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.Board.StaticDir))))
	mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Board.UploadsDir))))
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", api.Handler(api.Options{
		Templates: tmpl,
		Uploads:   imgStore,
		PageSize:  cfg.PageSize(),
		RPS:       cfg.Limits.RPS,
		Burst:     cfg.Limits.Burst,
	}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigc
		logger.Info("signal_received", "signal", s.String(), "msg", "shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
		if err := store.Close(); err != nil {
			logger.Error("store_close_failed", "error", err)
		}
	}()

	cert := cfg.Server.TLS.CertFile
	key := cfg.Server.TLS.KeyFile
	var errServe error
	if cert != "" && key != "" {
		errServe = srv.ListenAndServeTLS(cert, key)
	} else {
		errServe = srv.ListenAndServe()
	}
	if errServe != nil && errServe != http.ErrServerClosed {
		log.Fatal(errServe)
	}
}
