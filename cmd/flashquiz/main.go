package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pavelanni/flashquiz/internal/engine"
	"github.com/pavelanni/flashquiz/internal/handler"
	appI18n "github.com/pavelanni/flashquiz/internal/i18n"
	"github.com/pavelanni/flashquiz/internal/judge"
	"github.com/pavelanni/flashquiz/internal/model"
	"github.com/pavelanni/flashquiz/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "flashquiz",
		Short: "Flashcard study-testing engine with AI-assisted grading",
	}

	serve := serveCmd()
	root.AddCommand(serve, importCmd(), exportCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `flashquiz --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP quiz server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.String("db", "flashquiz.db", "SQLite database path")
	f.String("llm-url", "http://localhost:11434/v1", "OpenAI-compatible API base URL")
	f.String("llm-key", "ollama", "API key for the semantic judge")
	f.String("llm-model", "llama3.2", "Model name for the semantic judge")
	f.Bool("no-judge", false, "Disable the semantic judge (type-answer grading uses local matching only)")
	f.String("judge-variant", string(judge.VariantStandard), "Judge prompt variant (strict, standard, lenient)")
	f.StringP("lang", "l", "en", "Language for user-facing messages (en, ru)")
	f.Int("options", engine.DefaultOptionCount, "Multiple-choice options per question")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import card sets from JSON files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runImport,
	}
	f := cmd.Flags()
	f.String("db", "flashquiz.db", "SQLite database path")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all card sets as JSON",
		RunE:  runExport,
	}
	f := cmd.Flags()
	f.String("db", "flashquiz.db", "SQLite database path")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("FLASHQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("flashquiz")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/flashquiz")
	v.AddConfigPath("/etc/flashquiz")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	variant := strings.ToLower(strings.TrimSpace(v.GetString("judge-variant")))
	if !judge.IsValidVariant(variant) {
		slog.Warn("invalid judge-variant, using standard", "variant", variant)
		variant = string(judge.VariantStandard)
	}

	// Without a judge the engine grades type-answer questions with the
	// local heuristic only.
	var j engine.Judge
	if !v.GetBool("no-judge") {
		client := judge.New(
			v.GetString("llm-url"),
			v.GetString("llm-key"),
			v.GetString("llm-model"),
			judge.Variant(variant),
		)
		if err := client.Ping(context.Background()); err != nil {
			return fmt.Errorf("judge health check: %w", err)
		}
		slog.Info("judge endpoint OK", "url", v.GetString("llm-url"), "model", v.GetString("llm-model"), "variant", variant)
		j = client
	}

	cfg := model.AppConfig{
		Lang:         lang,
		JudgeVariant: variant,
		OptionCount:  v.GetInt("options"),
	}

	h := handler.New(db, engine.New(j), cfg)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appI18n.Middleware(lang))
	h.Routes(r)

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"db", v.GetString("db"),
		"lang", lang,
		"judge", j != nil,
		"judge_variant", variant,
	)
	return http.ListenAndServe(addr, r)
}

func runImport(cmd *cobra.Command, paths []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	return loadSets(db, paths)
}

func loadSets(db *store.Store, paths []string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		hash := sha256sum(data)
		storedHash, err := db.GetImportedFileHash(path)
		if err != nil {
			return fmt.Errorf("check import status for %s: %w", path, err)
		}

		if storedHash == hash {
			slog.Info("set file unchanged, skipping", "path", path)
			continue
		}
		if storedHash != "" {
			slog.Warn("set file changed since last import, skipping to avoid duplicate sets", "path", path)
			continue
		}

		var sets []model.SetImport
		if err := json.Unmarshal(data, &sets); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}

		for _, si := range sets {
			setID, err := db.CreateSet(model.CardSet{Name: si.Name, Description: si.Description})
			if err != nil {
				return fmt.Errorf("create set from %s: %w", path, err)
			}
			for i, ci := range si.Cards {
				_, err := db.AddCard(model.Card{
					SetID:    setID,
					Front:    ci.Front,
					Back:     ci.Back,
					Position: i + 1,
				})
				if err != nil {
					return fmt.Errorf("add card from %s: %w", path, err)
				}
			}
		}

		if err := db.SetImportedFileHash(path, hash); err != nil {
			return fmt.Errorf("record import for %s: %w", path, err)
		}
		slog.Info("imported card sets", "path", path, "count", len(sets))
	}

	return nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	db, err := store.New(v.GetString("db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	export, err := db.ExportAllSets()
	if err != nil {
		return fmt.Errorf("export sets: %w", err)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}

	outPath := v.GetString("output")
	var w io.Writer
	if outPath == "" || outPath == "-" {
		w = os.Stdout
	} else {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	// Ensure trailing newline.
	_, _ = fmt.Fprintln(w)

	return nil
}

func sha256sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
