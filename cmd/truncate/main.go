// cmd/truncate/main.go
//
// Destructive maintenance CLI: empties the mobile_posts table.
//
// TRUNCATE is deliberate here rather than DELETE; it is faster and
// resets the auto-increment counter so a fresh import starts at id 1.
// Because the operation cannot be undone, the tool counts the records,
// asks for confirmation twice, and only then truncates.  Pass -yes to
// skip the prompts in scripted environments.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/yanizio/mobilepost/internal/config"
	"github.com/yanizio/mobilepost/internal/database"
	"github.com/yanizio/mobilepost/internal/logger"
	"github.com/yanizio/mobilepost/internal/post"
)

func init() { _ = godotenv.Load() }

// confirm prints the prompt and returns true for "yes" or "y".
func confirm(in *bufio.Reader, prompt string) bool {
	fmt.Print(prompt)
	line, err := in.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "yes", "y":
		return true
	}
	return false
}

func main() {
	assumeYes := flag.Bool("yes", false, "skip confirmation prompts")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, "truncate", false)
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer logOut.Sync()

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		logOut.Fatalf("connect catalogue DB: %v", err)
	}
	defer db.Close()

	store := &post.Store{DB: db}
	ctx := context.Background()

	fmt.Println("==========================================")
	fmt.Println("Mobile Post Catalogue - Database Truncation")
	fmt.Println("==========================================")
	fmt.Println()

	before, err := store.CountAll(ctx)
	if err != nil {
		logOut.Fatalf("count records: %v", err)
	}
	if before == 0 {
		fmt.Println("Database is already empty.  No records to delete.")
		return
	}

	fmt.Printf("WARNING: this will delete ALL %d records from the database!\n", before)
	fmt.Println("This action CANNOT be undone!")
	fmt.Println()

	if !*assumeYes {
		in := bufio.NewReader(os.Stdin)
		if !confirm(in, "Are you sure you want to proceed? (yes/no): ") {
			fmt.Println("\nTruncation cancelled.")
			return
		}
		if !confirm(in, "\nFinal confirmation - type \"yes\" to DELETE ALL RECORDS: ") {
			fmt.Println("\nTruncation cancelled.")
			return
		}
	}

	fmt.Println("\nTruncating mobile_posts table...")
	if err := store.Truncate(ctx); err != nil {
		logOut.Fatalf("truncate: %v", err)
	}

	after, err := store.CountAll(ctx)
	if err != nil {
		logOut.Fatalf("count records: %v", err)
	}

	fmt.Println("\n==========================================")
	fmt.Println("Truncation Summary")
	fmt.Println("==========================================")
	fmt.Printf("Records before:  %d\n", before)
	fmt.Printf("Records after:   %d\n", after)
	fmt.Printf("Records deleted: %d\n", before-after)
	fmt.Println("==========================================")

	logOut.Infow("table truncated", "deleted", before-after)
	if after != 0 {
		fmt.Println("Warning: some records may still remain in the database.")
		os.Exit(1)
	}
}
