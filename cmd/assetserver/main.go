package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/marziaf/birb-hunt/web"
)

func main() {
	addr := flag.String("addr", ":8000", "listen address")
	dir := flag.String("dir", "assets", "asset directory to serve")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if _, err := os.Stat(*dir); err != nil {
		logger.Error("asset directory unavailable", "dir", *dir, "err", err)
		os.Exit(1)
	}

	logger.Info("serving assets", "addr", *addr, "dir", *dir)
	if err := http.ListenAndServe(*addr, web.NewHandler(*dir, os.Stdout)); err != nil {
		logger.Error("asset server stopped", "err", err)
		os.Exit(1)
	}
}
