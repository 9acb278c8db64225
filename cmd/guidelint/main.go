package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mullvad/guidelint/internal/api"
	"github.com/mullvad/guidelint/internal/ir"
	"github.com/mullvad/guidelint/internal/parser"
	"github.com/mullvad/guidelint/internal/reporting"
	"github.com/mullvad/guidelint/internal/rules"
	"github.com/mullvad/guidelint/internal/rulesdsl"
	"github.com/mullvad/guidelint/internal/security"
	"github.com/mullvad/guidelint/internal/shared"
	"github.com/mullvad/guidelint/internal/stats"
	"github.com/mullvad/guidelint/internal/storage"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "scan":
		scanCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	case "diff":
		diffCmd(os.Args[2:])
	case "rules":
		rulesCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	case "user":
		userCmd(os.Args[2:])
	case "version":
		fmt.Println("guidelint IR:", ir.Version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `guidelint – style-guide convention scanner

Usage:
  guidelint scan   --path <input-dir> [--out <reports-dir>] [--db ./guidelint.db] [--rules <pack.yaml>] [--severity LOW] [--config ./configs/guidelint.yaml]
  guidelint report --run <run-id>     [--out <reports-dir>] [--db ./guidelint.db] [--config ./configs/guidelint.yaml]
  guidelint diff   --base <run-id> --head <run-id> [--out <reports-dir>] [--db ./guidelint.db]
  guidelint rules  [--rules <pack.yaml>]
  guidelint serve  [--addr :8080] [--db ./guidelint.db] [--config ./configs/guidelint.yaml]
  guidelint user add --username <name> [--role viewer|admin]   (password via GUIDELINT_PASSWORD)
  guidelint version

Exit status of scan is 1 when any violation at or above the configured
severity threshold remains after waivers.
`)
}

func scanCmd(args []string) {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	inPath := fs.String("path", "", "Path to input directory (or single file)")
	outDir := fs.String("out", "", "Output directory for reports")
	dbPath := fs.String("db", "", "SQLite database path")
	packPath := fs.String("rules", "", "Extra YAML rule pack (optional)")
	severity := fs.String("severity", "", "Severity threshold LOW|MEDIUM|HIGH")
	noDB := fs.Bool("no-db", false, "Skip persisting the run")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging)

	// precedence: flags > config > defaults
	if *inPath == "" && len(cfg.Scan.Sources) > 0 {
		*inPath = cfg.Scan.Sources[0]
	}
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *severity == "" {
		*severity = cfg.Scan.SeverityThreshold
	}

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "scan: --path (or scan.sources in config) is required")
		os.Exit(2)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "scan: cannot create out dir:", err)
		os.Exit(1)
	}

	applySettings(cfg, *severity)
	rules.SetCorpusRoot(corpusRootFor(*inPath))

	packs := cfg.Scan.RulePacks
	if *packPath != "" {
		packs = append(packs, *packPath)
	}
	for _, p := range packs {
		n, err := rulesdsl.LoadAndRegister(p)
		if err != nil {
			slog.Error("rule pack error", "pack", p, "err", err)
			os.Exit(1)
		}
		slog.Info("rule pack loaded", "pack", p, "rules", n)
	}

	// Parse
	run, diags := parser.Parse(*inPath)
	if len(diags.Warnings) > 0 {
		slog.Warn("parse warnings", "warnings", diags.Warnings)
	}
	run.ID = fmt.Sprintf("run-%d", time.Now().Unix())
	run.StartedAt = time.Now().UTC()
	run.Context.SeverityThreshold = strings.ToUpper(*severity)
	run.Context.DisabledRules = cfg.Scan.DisabledRules
	run.Context.SubjectLimit = cfg.Commit.SubjectLimit
	run.Context.WrapColumn = cfg.Commit.WrapColumn

	stats.Annotate(&run)
	run.Violations = rules.Evaluate(&run)

	var db *storage.DB
	if !*noDB {
		var err error
		db, err = storage.OpenSQLite(*dbPath)
		if err != nil {
			slog.Error("db open error", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.CreateSchema(); err != nil {
			slog.Error("db schema error", "err", err)
			os.Exit(1)
		}
		if ws, err := db.ListWaivers(true); err == nil && len(ws) > 0 {
			kept, waived := rules.ApplyWaivers(run.Violations, ws)
			run.Violations = kept
			run.Context.WaivedCount = waived
		}
		if err := db.SaveRun(&run); err != nil {
			slog.Error("db save run error", "err", err)
			os.Exit(1)
		}
	}

	jsonPath, _ := reporting.WriteJSON(run.ID, *outDir, &run)
	htmlPath, _ := reporting.WriteHTML(run.ID, *outDir, &run)
	slog.Info("scan complete",
		"run", run.ID,
		"documents", len(run.Documents),
		"violations", len(run.Violations),
		"json", jsonPath,
		"html", htmlPath,
	)
	fmt.Printf("Scan OK\n  Run: %s\n  Documents: %d\n  Violations: %d\n  JSON: %s\n  HTML: %s\n",
		run.ID, len(run.Documents), len(run.Violations), jsonPath, htmlPath)

	for _, v := range run.Violations {
		fmt.Printf("%s:%d: [%s] %s %s\n", v.Path, v.Line, v.Severity, v.RuleID, v.Message)
	}
	if len(run.Violations) > 0 {
		os.Exit(1)
	}
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	runID := fs.String("run", "", "Run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *runID == "" {
		fmt.Fprintln(os.Stderr, "report: --run is required")
		os.Exit(2)
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	run, err := db.LoadRun(*runID)
	if err != nil {
		slog.Error("load run error", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		os.Exit(1)
	}
	jsonPath, _ := reporting.WriteJSON(run.ID, *outDir, &run)
	htmlPath, _ := reporting.WriteHTML(run.ID, *outDir, &run)
	fmt.Printf("Report OK\n  Run: %s\n  JSON: %s\n  HTML: %s\n", run.ID, jsonPath, htmlPath)
}

func diffCmd(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	base := fs.String("base", "", "Base run ID")
	head := fs.String("head", "", "Head run ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *base == "" || *head == "" {
		fmt.Fprintln(os.Stderr, "diff: --base and --head are required")
		os.Exit(2)
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	br, err := db.LoadRun(*base)
	if err != nil {
		slog.Error("load base run error", "err", err)
		os.Exit(1)
	}
	hr, err := db.LoadRun(*head)
	if err != nil {
		slog.Error("load head run error", "err", err)
		os.Exit(1)
	}
	path, _ := reporting.WriteDiffJSON(*base, *head, *outDir, &br, &hr)
	fmt.Printf("Diff OK\n  %s\n", path)
}

func rulesCmd(args []string) {
	fs := flag.NewFlagSet("rules", flag.ExitOnError)
	packPath := fs.String("rules", "", "Extra YAML rule pack (optional)")
	_ = fs.Parse(args)

	if *packPath != "" {
		if _, err := rulesdsl.LoadAndRegister(*packPath); err != nil {
			fmt.Fprintln(os.Stderr, "rules: pack error:", err)
			os.Exit(1)
		}
	}
	for _, r := range rules.List() {
		fmt.Printf("%-32s %-10s %s\n", r.ID, r.Kind, r.Summary)
	}
}

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", "", "Listen address")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging)

	if *addr == "" {
		*addr = cfg.Server.Addr
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}

	dur, err := time.ParseDuration(cfg.Server.SessionDuration)
	if err != nil || dur <= 0 {
		dur = 12 * time.Hour
	}
	srv := &api.Server{
		DB:              db,
		UserStore:       db,
		Logger:          logger,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		SessionDuration: dur,
	}
	slog.Info("serving", "addr", *addr, "db", filepath.Clean(*dbPath))
	if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}

func userCmd(args []string) {
	if len(args) < 1 || args[0] != "add" {
		fmt.Fprintln(os.Stderr, "user: only 'user add' is supported")
		os.Exit(2)
	}
	fs := flag.NewFlagSet("user add", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	username := fs.String("username", "", "Username")
	role := fs.String("role", "viewer", "Role: viewer|admin")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args[1:])

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging)

	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	pw := os.Getenv("GUIDELINT_PASSWORD")
	if *username == "" || pw == "" {
		fmt.Fprintln(os.Stderr, "user add: --username and GUIDELINT_PASSWORD are required")
		os.Exit(2)
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}

	hash, err := security.HashPassword(pw)
	if err != nil {
		slog.Error("hash error", "err", err)
		os.Exit(1)
	}
	id, err := db.CreateUser(*username, hash, *role)
	if err != nil {
		slog.Error("create user error", "err", err)
		os.Exit(1)
	}
	fmt.Printf("User OK\n  ID: %d\n  Username: %s\n  Role: %s\n", id, *username, *role)
}

// corpusRootFor anchors relative-link resolution. Document paths are
// relative to the scanned directory, so a single-file scan anchors at the
// file's parent directory.
func corpusRootFor(path string) string {
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		return filepath.Dir(path)
	}
	return path
}

func applySettings(cfg shared.Config, severity string) {
	disabled := map[string]bool{}
	for _, id := range cfg.Scan.DisabledRules {
		disabled[strings.ToUpper(strings.TrimSpace(id))] = true
	}
	rules.SetSettings(rules.Settings{
		SeverityThreshold: strings.ToUpper(severity),
		Disabled:          disabled,
		SubjectLimit:      cfg.Commit.SubjectLimit,
		WrapColumn:        cfg.Commit.WrapColumn,
	})
}
