package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mchmarny/linkscore/pkg/config"
	"github.com/mchmarny/linkscore/pkg/data"
	"github.com/mchmarny/linkscore/pkg/logging"
	urfave "github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	appName      = "linkscore"
	appConfigKey = "app-config"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	logLevel = new(slog.LevelVar)
)

const (
	debugFlagName     = "debug"
	configDirFlagName = "config"
	dbFlagName        = "db"
	formatFlagName    = "format"
)

// globalFlags returns the flags inherited by every subcommand.
func globalFlags() []urfave.Flag {
	return []urfave.Flag{
		&urfave.BoolFlag{
			Name:  debugFlagName,
			Usage: "Prints verbose logs (optional, default: false)",
		},
		&urfave.StringFlag{
			Name:    configDirFlagName,
			Usage:   fmt.Sprintf("Directory holding config.yaml (optional, default: $HOME/.%s)", appName),
			Sources: urfave.EnvVars("LINKSCORE_CONFIG"),
		},
		&urfave.StringFlag{
			Name:    dbFlagName,
			Usage:   "History database, sqlite file path or postgres:// URL (enables run history)",
			Sources: urfave.EnvVars("LINKSCORE_DB"),
		},
		&urfave.StringFlag{
			Name:  formatFlagName,
			Usage: fmt.Sprintf("Output format [%s] (optional, default from config: text)", strings.Join(config.Formats, ", ")),
		},
	}
}

// Execute creates and runs the CLI application.
func Execute() {
	initLogging(false)

	app := newApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	Dir    string
	Config *config.Config
	Format string
	Debug  bool
	DBPath string
	Store  *data.Store
}

func getConfig(cmd *urfave.Command) *appConfig {
	return cmd.Root().Metadata[appConfigKey].(*appConfig)
}

// openStore lazily opens the history store.
func (c *appConfig) openStore() (*data.Store, error) {
	if c.Store != nil {
		return c.Store, nil
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.Dir, data.DataFileName)
	}
	s, err := data.Open(c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	c.Store = s
	return s, nil
}

func newApp() *urfave.Command {
	return &urfave.Command{
		Name:                  appName,
		Version:               fmt.Sprintf("%s (%s - %s)", version, commit, date),
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Usage:                 "Score predicted link confidences (AUROC, AUPR, NDCG) and plot ROC and PR curves",
		Writer:                os.Stdout,
		ErrWriter:             os.Stderr,
		Metadata:              map[string]any{},
		Flags:                 append(scoreFlags(), globalFlags()...),
		Commands: []*urfave.Command{
			newHistoryCmd(),
			newAuthCmd(),
		},
		Before: func(ctx context.Context, cmd *urfave.Command) (context.Context, error) {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return ctx, err
			}
			cmd.Metadata[appConfigKey] = cfg
			return ctx, nil
		},
		After: func(ctx context.Context, cmd *urfave.Command) error {
			if cfg, ok := cmd.Metadata[appConfigKey].(*appConfig); ok && cfg.Store != nil {
				return cfg.Store.Close()
			}
			return nil
		},
		Action: cmdScore,
	}
}

func loadConfig(cmd *urfave.Command) (*appConfig, error) {
	debug := cmd.Bool(debugFlagName)
	if debug {
		initLogging(true)
	}

	dir := cmd.String(configDirFlagName)
	if dir == "" {
		var err error
		if dir, _, err = config.GetOrCreateHomeDir(appName); err != nil {
			return nil, fmt.Errorf("resolving config dir: %w", err)
		}
	}

	c, err := config.ReadOrCreate(dir)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if !debug {
		logLevel.Set(logging.ParseLogLevel(c.LogLevel))
	}

	format := c.Format
	if f := cmd.String(formatFlagName); f != "" {
		if format, err = config.NormalizeFormat(f); err != nil {
			return nil, err
		}
	}

	dbPath := cmd.String(dbFlagName)
	if dbPath == "" {
		dbPath = c.DB
	}

	slog.Debug("config loaded", "dir", dir, "format", format, "history", c.History || dbPath != "")

	return &appConfig{
		Dir:    dir,
		Config: c,
		Format: format,
		Debug:  debug,
		DBPath: dbPath,
	}, nil
}

func (c *appConfig) historyEnabled() bool {
	return c.Config.History || c.DBPath != ""
}

func initLogging(debug bool) {
	if debug {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
	slog.SetDefault(slog.New(logging.NewCLIHandler(os.Stderr, logLevel)))
}

func encode(w io.Writer, format string, v any) error {
	if format == config.FormatYAML {
		e := yaml.NewEncoder(w)
		defer e.Close()
		return e.Encode(v)
	}
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
