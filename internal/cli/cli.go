package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/storyline/pkg/buildinfo"
	"github.com/matzehuels/storyline/pkg/cache"
	"github.com/matzehuels/storyline/pkg/config"
	"github.com/matzehuels/storyline/pkg/dataset"
	"github.com/matzehuels/storyline/pkg/observability"
	"github.com/matzehuels/storyline/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "storyline"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Storyline lays out entities moving between groups over time",
		Long: `Storyline reads time-stamped events (entity, time, group) and draws one
line per entity. Entities in the same group at the same time share a band
and run side by side; lines cross between bands as entities regroup.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetPipelineHooks(observability.NewLogHooks(c.Logger))
			observability.SetCacheHooks(observability.NewLogHooks(c.Logger))
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "settings file (default: ./"+config.DefaultFile+" when present)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/storyline/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// basePath derives the base output path. An empty output strips the
// extension from input; an output ending in a known format extension has
// the extension stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	for _, formats := range pipeline.ValidFormats {
		if formats[ext] {
			return strings.TrimSuffix(output, filepath.Ext(output))
		}
	}
	return output
}

// =============================================================================
// Options Helpers
// =============================================================================

// loadOptions reads the settings file, applies the flags the user set and
// then each adjust func, and validates the result.
func (c *CLI) loadOptions(ctx context.Context, cmd *cobra.Command, f *chartFlags, adjust ...func(*pipeline.Options)) (pipeline.Options, error) {
	cfg, path, err := config.Resolve(c.configPath)
	if err != nil {
		return pipeline.Options{}, err
	}
	if path != "" {
		loggerFromContext(ctx).Debug("loaded settings", "path", path)
	}
	opts := cfg.Options()
	f.apply(cmd, &opts)
	for _, fn := range adjust {
		fn(&opts)
	}
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// loadRecords reads the event file at path.
func loadRecords(ctx context.Context, path string) ([]dataset.Record, error) {
	prog := newProgress(loggerFromContext(ctx))
	records, err := dataset.ReadFile(path)
	if err != nil {
		return nil, err
	}
	prog.done("Loaded " + pluralize(len(records), "record"))
	return records, nil
}

// parseList splits a comma-separated flag value, dropping empty items.
func parseList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
