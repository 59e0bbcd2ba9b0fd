package main

import (
	"context"
	"flag"
	"log"
	"net/http/cgi"

	"git.unix.lgbt/diamondburned/hillchart/cmd/hillchart-http/handler"
	"git.unix.lgbt/diamondburned/hillchart/internal/config"
	"git.unix.lgbt/diamondburned/hillchart/internal/hilllog"
	"git.unix.lgbt/diamondburned/hillchart/internal/metrics"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "config", configPath, "yaml config path")
	flag.Parse()
}

func main() {
	cfg, err := config.Load(context.Background(), configPath)
	if err != nil {
		log.Fatalln("failed to load config:", err)
	}

	if cfg.DataPath == "" {
		log.Fatalln("missing data_path; set it in the config or HILLCHART_DATA_PATH.")
	}

	level, err := hilllog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalln("invalid log level:", err)
	}

	// Each CGI request is a new process, so metrics only cover one render.
	h := handler.New(cfg, hilllog.NewLogger(log.Default(), level), metrics.NewManager())

	if err := cgi.Serve(h); err != nil {
		log.Fatalln("failed to serve:", err)
	}
}
