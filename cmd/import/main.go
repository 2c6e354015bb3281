// cmd/import/main.go
//
// Batch import CLI.
//
// Run life-cycle
// --------------
//
//  1. Load env vars, configuration, and the daily rotating logger.
//
//  2. Fetch records from the source given on the command line: an
//     http(s):// URL returning an enveloped payload, or a local JSON
//     file holding a bare array.
//
//  3. Feed every record through the pipeline inside one transaction.
//     Duplicates and malformed records are tallied, never fatal; only a
//     failed commit aborts the run, and then nothing is persisted.
//
//  4. Print the console summary and write import-report.json.
//
// Exit codes: 0 on a committed run, 1 on usage/load errors or a
// rolled-back transaction.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/yanizio/mobilepost/internal/config"
	"github.com/yanizio/mobilepost/internal/database"
	"github.com/yanizio/mobilepost/internal/importer"
	"github.com/yanizio/mobilepost/internal/logger"
	"github.com/yanizio/mobilepost/internal/post"
)

func init() { _ = godotenv.Load() }

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: import <url|file.json>")
		os.Exit(1)
	}
	source := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, "import", logger.InteractiveTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer logOut.Sync()

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		logOut.Fatalf("connect catalogue DB: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	//
	// ── 1.  Load records from the source ────────────────────────────────
	//
	logOut.Infow("loading records", "source", source)
	client := &http.Client{Timeout: 30 * time.Second}
	records, err := importer.Load(ctx, client, source)
	if err != nil {
		logOut.Fatalf("load records: %v", err)
	}
	logOut.Infof("%d record(s) loaded", len(records))

	//
	// ── 2.  Run the transactional pipeline ──────────────────────────────
	//
	pipe := importer.New(&post.Store{DB: db}, logOut)
	report, err := pipe.Run(ctx, records, source)
	if report != nil {
		fmt.Print(report.Summary())
		if werr := report.Write(cfg.Import.ReportPath); werr != nil {
			logOut.Errorw("write report", "path", cfg.Import.ReportPath, "err", werr)
		} else {
			logOut.Infow("report written", "path", cfg.Import.ReportPath)
		}
	}
	if err != nil {
		logOut.Fatalf("import: %v", err)
	}
}
