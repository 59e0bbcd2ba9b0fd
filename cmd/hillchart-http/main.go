package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"

	"git.unix.lgbt/diamondburned/hillchart/cmd/hillchart-http/handler"
	"git.unix.lgbt/diamondburned/hillchart/internal/config"
	"git.unix.lgbt/diamondburned/hillchart/internal/hilllog"
	"git.unix.lgbt/diamondburned/hillchart/internal/metrics"
)

var configPath string

func init() {
	p := func(v ...interface{}) { fmt.Fprintln(flag.CommandLine.Output(), v...) }
	flag.Usage = func() {
		p("Usage:")
		p("  hillchart-http [-config <yaml path>] [http address]")
		p("")
		p("Flags:")
		flag.PrintDefaults()
		p("")
		p("Every config key can be overridden with HILLCHART_ environment variables,")
		p("e.g. HILLCHART_DATA_PATH or HILLCHART_SETTINGS__HILL__COLOUR.")
	}

	flag.StringVar(&configPath, "config", configPath, "yaml config path")
	flag.Parse()
}

func main() {
	cfg, err := config.Load(context.Background(), configPath)
	if err != nil {
		log.Fatalln("failed to load config:", err)
	}

	if listen := flag.Arg(0); listen != "" {
		cfg.Addr = listen
	}

	level, err := hilllog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalln("invalid log level:", err)
	}

	logger := hilllog.NewLogger(log.Default(), level)

	if cfg.DataPath == "" {
		logger.Warningf("no data_path configured, serving an empty chart")
	}

	logger.Infof("listening on %s", cfg.Addr)

	h := handler.New(cfg, logger, metrics.NewManager())

	if err := http.ListenAndServe(cfg.Addr, h); err != nil {
		log.Fatalln("failed to serve:", err)
	}
}
