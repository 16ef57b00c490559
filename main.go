package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"promptpick/pkg/catalog"
	"promptpick/pkg/category"
	"promptpick/pkg/config"
	"promptpick/pkg/dialect"
	"promptpick/pkg/engine"
	"promptpick/pkg/logging"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "promptpick",
	Short:         "Pick and assemble the instruction for a companion's next message",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load .env for secrets
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load .env: %w", err)
		}

		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.Logging.Level
		if cmd.Flags().Changed("log-level") {
			level = logLevel
		}
		logger, _, err = logging.Setup(level)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var resolveFlags struct {
	traits  string
	stage   string
	turns   []string
	tier    string
	adult   bool
	origin  string
	name    string
	age     int
	exclude []string
	user    string
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the instruction text for a character and conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := buildApp(ctx, cfg, true)
		if err != nil {
			return err
		}
		defer a.Close()

		exclude := resolveFlags.exclude
		if resolveFlags.user != "" {
			recent, err := a.history.Recent(ctx, resolveFlags.user)
			if err != nil {
				zap.S().Warnw("game history unavailable", "user", resolveFlags.user, "error", err)
			}
			exclude = append(exclude, recent...)
		}

		in := engine.Input{
			ArchetypeOrTraits:    resolveFlags.traits,
			RelationshipStage:    resolveFlags.stage,
			RecentTurns:          resolveFlags.turns,
			AdultAllowed:         resolveFlags.adult,
			Tier:                 category.ParseTier(resolveFlags.tier),
			ExcludeRecentGameIDs: exclude,
		}
		if resolveFlags.origin != "" || resolveFlags.name != "" || resolveFlags.age > 0 {
			in.Origin = &dialect.CharacterOrigin{
				Descriptor: resolveFlags.origin,
				Name:       resolveFlags.name,
				Age:        resolveFlags.age,
			}
		}

		res, ok, err := a.engine.ResolvePrompt(ctx, in)
		if err != nil {
			return err
		}
		if resolveFlags.user != "" && len(res.GameIDs) > 0 {
			if err := a.history.Add(ctx, resolveFlags.user, res.GameIDs); err != nil {
				zap.S().Warnw("failed to record game history", "user", resolveFlags.user, "error", err)
			}
		}
		out := cmd.OutOrStdout()
		if !ok {
			fmt.Fprintf(out, "no prompt for archetype=%s context=%s category=%s\n", res.Archetype, res.Context, res.Category)
			return nil
		}

		fmt.Fprintf(out, "# %s (%s / %s / %s)\n", res.RecordID, res.Archetype, res.Context, res.Category)
		if len(res.GameIDs) > 0 {
			fmt.Fprintf(out, "# games: %s\n", strings.Join(res.GameIDs, ","))
		}
		fmt.Fprintln(out, res.Text)
		return nil
	},
}

var classifyFlags struct {
	turns []string
	tier  string
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Print the move category for a conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer a.Close()

		cat := a.router.Classify(cmd.Context(), classifyFlags.turns, category.ParseTier(classifyFlags.tier))
		fmt.Fprintln(cmd.OutOrStdout(), cat)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed [catalog.yml]",
	Short: "Upload a YAML catalog into the SurrealDB prompt table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Catalog.Path
		if len(args) == 1 {
			path = args[0]
		}
		mem, err := catalog.LoadFile(path)
		if err != nil {
			return err
		}

		client, err := connectSurreal(cmd.Context())
		if err != nil {
			return err
		}
		defer client.Close(cmd.Context())

		if err := catalog.NewSurreal(client).Seed(cmd.Context(), mem.Records()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d prompts\n", mem.Len())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yml", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	f := resolveCmd.Flags()
	f.StringVar(&resolveFlags.traits, "traits", "", "Archetype name or free-text personality traits")
	f.StringVar(&resolveFlags.stage, "stage", "", "Relationship stage label")
	f.StringArrayVar(&resolveFlags.turns, "turn", nil, "Recent user message, oldest first (repeatable)")
	f.StringVar(&resolveFlags.tier, "tier", "free", "User tier (free, plus, ultra)")
	f.BoolVar(&resolveFlags.adult, "adult", false, "Allow adult-only prompts")
	f.StringVar(&resolveFlags.origin, "origin", "", "Where the character comes from")
	f.StringVar(&resolveFlags.name, "name", "", "Character name")
	f.IntVar(&resolveFlags.age, "age", 0, "Character age")
	f.StringSliceVar(&resolveFlags.exclude, "exclude", nil, "Recently suggested game IDs to skip")
	f.StringVar(&resolveFlags.user, "user", "", "User ID whose recent game suggestions are excluded and recorded")

	cf := classifyCmd.Flags()
	cf.StringArrayVar(&classifyFlags.turns, "turn", nil, "Recent user message, oldest first (repeatable)")
	cf.StringVar(&classifyFlags.tier, "tier", "free", "User tier (free, plus, ultra)")

	rootCmd.AddCommand(resolveCmd, classifyCmd, seedCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
