package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordhint/internal/game"
	"github.com/verte-zerg/wordhint/internal/model"
	"github.com/verte-zerg/wordhint/internal/report"
	"github.com/verte-zerg/wordhint/internal/stats"
	"github.com/verte-zerg/wordhint/internal/store"
)

var (
	gameEndSolved bool

	statsSince string
	statsLast  int
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Track a game across invocations",
	}

	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game (abandons the active one)",
		Args:  cobra.NoArgs,
		RunE:  runGameNewCmd,
	}
	guessCmd := &cobra.Command{
		Use:     "guess WORD FEEDBACK",
		Short:   "Record a guess and print the next recommendation",
		Example: "  wordhint game guess crane bbygb",
		Args:    cobra.ExactArgs(2),
		RunE:    runGameGuessCmd,
	}
	showCmd := &cobra.Command{
		Use:   "show [ID]",
		Short: "Show the active game, or a journaled one by id",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGameShowCmd,
	}
	endCmd := &cobra.Command{
		Use:   "end",
		Short: "Finish the active game",
		Args:  cobra.NoArgs,
		RunE:  runGameEndCmd,
	}
	endCmd.Flags().BoolVar(&gameEndSolved, "solved", false, "mark the game as solved")

	cmd.AddCommand(newCmd, guessCmd, showCmd, endCmd)
	return cmd
}

func runGameNewCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	words, err := loadDictionary(cfg)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	now := time.Now()
	if err := abandonActive(ctx, st, now); err != nil {
		return err
	}
	session, err := game.Start(ctx, st, cfg, now)
	if err != nil {
		return err
	}
	appLog.Info("started game", "id", session.Game().ID, "lang", cfg.Lang, "length", cfg.Length)
	return printSession(cmd.OutOrStdout(), cfg, session, words)
}

func runGameGuessCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	session, err := resumeOrStart(ctx, cmd, st, cfg)
	if err != nil {
		return err
	}
	cfg = gameConfig(cfg, session.Game())
	words, err := loadDictionary(cfg)
	if err != nil {
		return err
	}
	rec, err := session.Guess(ctx, args[0], args[1], time.Now())
	if err != nil {
		return err
	}
	appLog.Debug("recorded guess", "game", session.Game().ID, "guess", rec.Guess, "feedback", rec.FeedbackString())
	if rec.Solved() {
		appLog.Info("solved", "game", session.Game().ID, "guesses", len(session.Records()))
	}
	return printSession(cmd.OutOrStdout(), cfg, session, words)
}

func runGameShowCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	session, err := showSession(context.Background(), st, args)
	if err != nil {
		return err
	}
	cfg = gameConfig(cfg, session.Game())
	words, err := loadDictionary(cfg)
	if err != nil {
		return err
	}
	return printSession(cmd.OutOrStdout(), cfg, session, words)
}

func showSession(ctx context.Context, st *store.Store, args []string) (*game.Session, error) {
	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid game id %q", args[0])
		}
		return game.Load(ctx, st, id)
	}
	session, err := game.Resume(ctx, st)
	if errors.Is(err, store.ErrNoActiveGame) {
		return nil, fmt.Errorf("no active game (start one with: wordhint game new)")
	}
	return session, err
}

func runGameEndCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	ctx := context.Background()
	session, err := game.Resume(ctx, st)
	if err != nil {
		if errors.Is(err, store.ErrNoActiveGame) {
			return fmt.Errorf("no active game")
		}
		return err
	}
	if err := session.End(ctx, gameEndSolved, time.Now()); err != nil {
		return err
	}
	status := "abandoned"
	if gameEndSolved {
		status = "solved"
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Game %d %s after %d guesses.\n", session.Game().ID, status, len(session.Records()))
	return err
}

// resumeOrStart continues the active game, or starts one when none exists.
func resumeOrStart(ctx context.Context, cmd *cobra.Command, st *store.Store, cfg model.Config) (*game.Session, error) {
	session, err := game.Resume(ctx, st)
	if err == nil {
		if !session.Matches(cfg) && shapeFlagsChanged(cmd) {
			return nil, fmt.Errorf("active game %d uses lang=%s length=%d prefix=%q; run wordhint game new to switch",
				session.Game().ID, session.Game().Lang, session.Game().Length, session.Game().Prefix)
		}
		return session, nil
	}
	if !errors.Is(err, store.ErrNoActiveGame) {
		return nil, err
	}
	session, err = game.Start(ctx, st, cfg, time.Now())
	if err != nil {
		return nil, err
	}
	appLog.Info("started game", "id", session.Game().ID, "lang", cfg.Lang, "length", cfg.Length)
	return session, nil
}

func shapeFlagsChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"lang", "length", "prefix"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func abandonActive(ctx context.Context, st *store.Store, now time.Time) error {
	session, err := game.Resume(ctx, st)
	if errors.Is(err, store.ErrNoActiveGame) {
		return nil
	}
	if err != nil {
		return err
	}
	appLog.Info("abandoning game", "id", session.Game().ID, "guesses", len(session.Records()))
	return session.End(ctx, false, now)
}

// gameConfig applies the stored puzzle shape of g on top of cfg.
func gameConfig(cfg model.Config, g model.Game) model.Config {
	cfg.Lang = g.Lang
	cfg.Length = g.Length
	cfg.Prefix = g.Prefix
	if g.WordListPath != "" {
		cfg.WordListPath = g.WordListPath
	}
	return cfg
}

func printSession(w io.Writer, cfg model.Config, session *game.Session, words []string) error {
	g := session.Game()
	if cfg.Format == report.FormatText {
		status := "in progress"
		if g.Finished() {
			status = "finished"
			if g.Solved {
				status = "solved"
			}
		}
		header := fmt.Sprintf("Game %d (%s, %d letters", g.ID, g.Lang, g.Length)
		if g.Prefix != "" {
			header += fmt.Sprintf(", prefix %s", strings.ToUpper(g.Prefix))
		}
		header += "): " + status
		if _, err := fmt.Fprintln(w, header); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if g.Finished() {
			for _, rec := range session.Records() {
				if _, err := fmt.Fprintln(w, report.Tiles(rec, useColor(cfg))); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			}
			return nil
		}
	}
	resp, err := session.Next(words)
	if err != nil {
		return err
	}
	return report.Encode(w, resp, cfg.Format, report.Options{
		Show:    cfg.Show,
		Color:   useColor(cfg),
		History: session.Records(),
	})
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show solved-game statistics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N games")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	// Only an explicit --lang narrows stats; the config default would hide other games.
	lang := ""
	if cmd.Flags().Changed("lang") {
		lang = strings.ToLower(strings.TrimSpace(flagLang))
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	summary, err := stats.Load(context.Background(), st, model.StatsConfig{
		Lang:  lang,
		Since: sinceTime,
		Last:  statsLast,
	})
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	return stats.RenderSummary(cmd.OutOrStdout(), summary)
}
