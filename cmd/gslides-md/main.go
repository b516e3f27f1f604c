// Command gslides-md turns a Markdown document into a Google Slides
// presentation, one slide per top-level heading.
//
// Usage:
//
//	gslides-md [flags] deck.md
//
// Authentication uses the credentials file named by -credentials (or
// GSLIDES_CREDENTIALS_FILE), falling back to application default
// credentials.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/api/option"

	"github.com/smorand/gslides-go/auth"
	"github.com/smorand/gslides-go/client"
	"github.com/smorand/gslides-go/templater"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("gslides-md", flag.ContinueOnError)
	credentials := fs.String("credentials", os.Getenv("GSLIDES_CREDENTIALS_FILE"),
		"service account or authorized-user JSON file (default application default credentials)")
	title := fs.String("title", "", "presentation title (default derived from the file)")
	logLevel := fs.String("log-level", envOr("GSLIDES_LOG_LEVEL", "warn"),
		"log level: debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: gslides-md [flags] <markdown file>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected one markdown file argument, got %d", fs.NArg())
	}
	path := fs.Arg(0)

	level, err := parseLevel(*logLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	source, err := readSource(path, stdin)
	if err != nil {
		return err
	}
	if strings.TrimSpace(source) == "" {
		return fmt.Errorf("%s is empty", path)
	}

	ctx := context.Background()
	opts, err := authOptions(ctx, *credentials, logger)
	if err != nil {
		return err
	}

	c, err := client.New(ctx, client.Config{Logger: logger}, opts...)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	tpl := templater.New(c, templater.Config{Logger: logger})
	pres, err := tpl.CreateFromMarkdown(ctx, presentationTitle(*title, path), source)
	if err != nil {
		return fmt.Errorf("create presentation: %w", err)
	}

	fmt.Fprintln(stdout, pres.PresentationID)
	fmt.Fprintln(stdout, client.PresentationURL(pres.PresentationID))
	return nil
}

// authOptions resolves the client options for the chosen credentials: the
// named file when one is given, application default credentials otherwise.
func authOptions(ctx context.Context, credentialsFile string, logger *slog.Logger) ([]option.ClientOption, error) {
	if credentialsFile == "" {
		logger.Debug("using application default credentials")
		return nil, nil
	}
	creds, err := auth.CredentialsFromFile(ctx, credentialsFile)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded credentials", slog.String("file", credentialsFile))
	return []option.ClientOption{option.WithCredentials(creds)}, nil
}

// readSource reads the Markdown document; "-" means stdin.
func readSource(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// presentationTitle picks the deck title: the -title flag when set, the
// file's base name otherwise, and a fixed fallback for stdin.
func presentationTitle(flagTitle, path string) string {
	if flagTitle != "" {
		return flagTitle
	}
	if path == "-" {
		return "Markdown Presentation"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
