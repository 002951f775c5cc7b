// Intake-cli is the operator's terminal companion to the intake bot:
// it lists tracked requests straight from the record store and lints
// config files.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/davidahmann/intake/internal/config"
	"github.com/davidahmann/intake/internal/request"
	"github.com/davidahmann/intake/internal/store"
	"github.com/davidahmann/intake/internal/track"
	"github.com/davidahmann/intake/pkg/types"
)

func main() {
	_ = godotenv.Load()
	exitFn(run(os.Args, os.Stdout, os.Stderr))
}

var exitFn = os.Exit

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	if len(args) < 2 {
		usage(stderr)
		return 2
	}

	switch args[1] {
	case "status":
		return handleStatus(args[2:], stdout, stderr)
	case "config":
		return handleConfig(args[2:], stdout, stderr)
	default:
		usage(stderr)
		return 2
	}
}

func handleStatus(args []string, stdout io.Writer, stderr io.Writer) int {
	fs := pflag.NewFlagSet("status", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", envOrDefault("INTAKE_CONFIG", "intake.yaml"), "path to the config file")
	categoryName := fs.String("category", "feature", "request category: feature | bd")
	all := fs.Bool("all", false, "include finished requests")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	category, ok := parseCategory(*categoryName)
	if !ok {
		fmt.Fprintf(stderr, "unknown category %q (use feature or bd)\n", *categoryName)
		return 2
	}

	cfg, err := config.Load(*configPath, os.Getenv)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	if cfg.Store.BaseURL == "" {
		fmt.Fprintln(stderr, "store.base_url is not configured")
		return 1
	}

	client := &store.Client{BaseURL: cfg.Store.BaseURL, Token: cfg.Store.Token}
	q := types.RecordQuery{PageSize: 10}
	hint := ""
	if !*all {
		q.StatusNot = category.Terminal()
		hint = fmt.Sprintf("(%s requests hidden; pass --all to include them)", category.Terminal())
	}

	records, err := client.Query(context.Background(), cfg.Collections.ByCategory()[category], q)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}

	fmt.Fprintln(stdout, track.RenderRecords(category.Label()+" requests", records, hint))
	return 0
}

func handleConfig(args []string, stdout io.Writer, stderr io.Writer) int {
	if len(args) == 0 || args[0] != "lint" {
		usage(stderr)
		return 2
	}
	fs := pflag.NewFlagSet("config lint", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "config lint requires <config_path>")
		return 2
	}

	cfg, err := config.Load(fs.Arg(0), os.Getenv)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 1
	}

	fmt.Fprintln(stdout, "ok")
	for category, collection := range cfg.Collections.ByCategory() {
		fmt.Fprintf(stdout, "%s -> %s\n", category, collection)
	}
	return 0
}

func parseCategory(name string) (request.Category, bool) {
	switch name {
	case "feature":
		return request.Feature, true
	case "bd", "business-development":
		return request.BizDev, true
	default:
		return "", false
	}
}

func envOrDefault(key string, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Intake CLI

Usage:
  intake status [--category feature|bd] [--all] [--config PATH]
  intake config lint <config_path>
`)
}
