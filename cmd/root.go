package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/marquee/catalog"
	"github.com/s0up4200/marquee/config"
	"github.com/s0up4200/marquee/library"
	"github.com/s0up4200/marquee/overseerr"
	"github.com/s0up4200/marquee/tmdb"
)

// skipConfig marks commands that run without loading the configuration
const skipConfig = "skip-config"

var (
	cfgFile    string
	cfg        *config.Config
	logger     = zerolog.Nop()
	tmdbClient *tmdb.Client

	appVersion   = "dev"
	appBuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Browse the TMDB movie catalog from the terminal",
	Long: `marquee lists what is now playing, upcoming, top rated and featured on
The Movie Database, shows movie details and keeps a list of favorites.
Radarr and Overseerr can be connected to mark owned and requested movies.

The API read access token is taken from the config file, MARQUEE_TMDB_TOKEN
or TMDB_TOKEN.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion records the build information shown by the version and update commands
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = version
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(detailCmd)
	rootCmd.AddCommand(favoriteCmd)
	rootCmd.AddCommand(requestCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// initializeApp loads the configuration and creates the TMDB client
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipConfig] == "true" {
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, os.Stderr)

	tmdbClient, err = tmdb.NewClient(cfg.TMDB.BaseURL, cfg.TMDB.Token, logger,
		tmdb.WithTimeout(cfg.TMDB.Timeout),
		tmdb.WithLanguage(cfg.TMDB.Language),
		tmdb.WithRateLimit(cfg.TMDB.RateLimit, cfg.TMDB.Burst),
	)
	if err != nil {
		return fmt.Errorf("failed to create TMDB client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// loadFavorites reads the favorites file from the configured location
func loadFavorites() (*catalog.Favorites, error) {
	favorites, err := catalog.LoadFavorites(cfg.Favorites.Path)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("path", cfg.Favorites.Path).Int("count", favorites.Len()).Msg("Loaded favorites")
	return favorites, nil
}

// loadLibrary indexes the Radarr library. It fails when Radarr is not enabled.
func loadLibrary(ctx context.Context) (*library.Index, error) {
	if !cfg.Radarr.Enabled {
		return nil, fmt.Errorf("radarr is not enabled in the configuration")
	}

	client, err := library.NewClient(cfg.Radarr.URL, cfg.Radarr.APIKey, cfg.TMDB.Timeout, logger)
	if err != nil {
		return nil, err
	}
	return client.Index(ctx)
}

// loadRequests fetches the Overseerr movie requests keyed by TMDB id
func loadRequests(ctx context.Context) (map[int]overseerr.MediaRequest, error) {
	client, err := newRequestClient()
	if err != nil {
		return nil, err
	}
	requests, err := client.MovieRequests(ctx)
	if err != nil {
		return nil, err
	}
	return overseerr.RequestedMovies(requests), nil
}
