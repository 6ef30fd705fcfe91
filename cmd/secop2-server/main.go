package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kingpin"

	"kastelo.dev/secop2"
	"kastelo.dev/secop2/web"
)

func main() {
	listen := kingpin.Flag("listen", "Listen address").Default(":5000").String()
	static := kingpin.Flag("static", "Directory with the query form").Default("static").String()
	expires := kingpin.Flag("expires", "Reject queries after this date (2006-01-02)").String()
	logDir := kingpin.Flag("log-dir", "Write a dated log file here instead of stderr").String()
	kingpin.Parse()

	log := slog.Default()
	if *logDir != "" {
		if err := os.MkdirAll(*logDir, 0o755); err != nil {
			kingpin.Fatalf("creating log dir: %v", err)
		}
		name := filepath.Join(*logDir, fmt.Sprintf("secop2_web_%s.log", time.Now().Format("20060102")))
		fd, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			kingpin.Fatalf("opening log file: %v", err)
		}
		log = slog.New(slog.NewTextHandler(fd, nil))
	}

	srv := &web.Server{
		Client:    secop2.NewClient(),
		Log:       log,
		StaticDir: *static,
	}
	if *expires != "" {
		t, err := time.Parse("2006-01-02", *expires)
		if err != nil {
			kingpin.Fatalf("bad --expires date: %v", err)
		}
		// Gate flips at the end of the given day.
		srv.Expires = t.AddDate(0, 0, 1)
	}

	log.Info("listening", "address", *listen)
	if err := http.ListenAndServe(*listen, srv.Handler()); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
