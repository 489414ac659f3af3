package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"folio-gate/auth"
	"folio-gate/internal"
	"folio-gate/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "feedback: %v\n", err)
	}
	os.Exit(code)
}

// run either prints stored feedback as a table or mints an operator token.
func run() (int, error) {
	dbPath := flag.String("db", "", "Path to badger DB (defaults to BADGER_FILEPATH)")
	limit := flag.Int("limit", 0, "Maximum number of rows, newest first (0 = all)")
	mint := flag.String("mint-token", "", "Print an admin token for this subject and exit")
	flag.Parse()

	config, err := internal.Load()
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	if *mint != "" {
		tokens, err := auth.NewTokens(config.AdminJWTSecret, config.AuthTokenDuration, time.Now)
		if err != nil {
			return exitConfig, err
		}
		token, err := tokens.GenerateToken(*mint, []string{auth.RoleAdmin})
		if err != nil {
			return exitRuntime, err
		}
		fmt.Println(token)
		return exitOK, nil
	}

	path := lo.Ternary(*dbPath != "", *dbPath, config.BadgerFilepath)
	db, err := badger.Open(badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true))
	if err != nil {
		return exitRuntime, fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	var rowLimit *int
	if *limit > 0 {
		rowLimit = limit
	}
	feedback, err := repositories.NewFeedbackRepository(db, log, rowLimit).ListFeedback()
	if err != nil {
		return exitRuntime, err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Date", "Name", "Design", "Usability", "Content", "Suggestions"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, f := range feedback {
		table.Append([]string{
			f.Date.Local().Format(time.DateTime),
			f.Name,
			truncate(f.Design, 40),
			truncate(f.Usability, 40),
			truncate(f.Content, 40),
			truncate(f.AdditionalSuggestions, 40),
		})
	}
	table.Render()
	fmt.Printf("\n%d feedback entries\n", len(feedback))
	return exitOK, nil
}

func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
