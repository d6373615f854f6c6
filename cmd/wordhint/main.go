// Package main provides the CLI entrypoint for wordhint.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/wordhint/internal/config"
	"github.com/verte-zerg/wordhint/internal/logger"
	"github.com/verte-zerg/wordhint/internal/model"
	"github.com/verte-zerg/wordhint/internal/report"
	"github.com/verte-zerg/wordhint/internal/solver"
	"github.com/verte-zerg/wordhint/internal/store"
	"github.com/verte-zerg/wordhint/internal/tui"
	"github.com/verte-zerg/wordhint/internal/wordfreq"
	"github.com/verte-zerg/wordhint/internal/wordlist"
)

const (
	defaultLang       = "en"
	defaultLength     = 5
	defaultShow       = 30
	defaultFormat     = report.FormatText
	defaultLogLevel   = "info"
	defaultWordlistSz = 50000
)

var (
	flagLang     string
	flagLength   int
	flagPrefix   string
	flagWordlist string
	flagShow     int
	flagFormat   string
	flagLogLevel string

	nextGuesses []string

	wordsAll bool

	wordlistSize   int
	wordlistOnly   int
	wordlistForce  bool
	wordlistSource string

	appLog *log.Logger
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "wordhint",
		Short:             "Wordle next-guess assistant",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setupLogging,
		RunE:              runPlayCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagLang, "lang", defaultLang, "word list language code")
	flags.IntVar(&flagLength, "length", defaultLength, "puzzle word length")
	flags.StringVar(&flagPrefix, "prefix", "", "required word prefix")
	flags.StringVar(&flagWordlist, "wordlist", "", "word list path (default: downloaded list for --lang)")
	flags.IntVar(&flagShow, "show", defaultShow, "number of remaining candidates to print")
	flags.StringVar(&flagFormat, "format", defaultFormat, "output format: text, json or msgpack")
	flags.StringVar(&flagLogLevel, "log-level", defaultLogLevel, "log level: debug, info, warn, error")

	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(newWordlistCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// setupLogging applies the config file's log level before any command runs.
func setupLogging(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "log-level", &flagLogLevel, fileCfg.Log.Level)
	if err := logger.SetLevel(flagLogLevel); err != nil {
		return err
	}
	appLog = logger.New("wordhint")
	return nil
}

// resolveConfig merges the config file into flags the user did not set.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &flagLang, fileCfg.Solver.Lang)
	applyIntConfig(cmd, "length", &flagLength, fileCfg.Solver.Length)
	applyStringConfig(cmd, "prefix", &flagPrefix, fileCfg.Solver.Prefix)
	applyStringConfig(cmd, "wordlist", &flagWordlist, fileCfg.Solver.Wordlist)
	applyIntConfig(cmd, "show", &flagShow, fileCfg.Solver.Show)
	applyStringConfig(cmd, "format", &flagFormat, fileCfg.Solver.Format)

	cfg := model.Config{
		Lang:         strings.ToLower(strings.TrimSpace(flagLang)),
		Length:       flagLength,
		Prefix:       strings.ToLower(flagPrefix),
		WordListPath: flagWordlist,
		Show:         flagShow,
		Format:       strings.ToLower(flagFormat),
	}
	if cfg.WordListPath == "" {
		cfg.WordListPath = config.DefaultWordListPath(cfg.Lang)
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.Config) error {
	if cfg.Lang == "" {
		return fmt.Errorf("--lang must not be empty")
	}
	if cfg.Length <= 0 {
		return fmt.Errorf("--length must be > 0")
	}
	if len([]rune(cfg.Prefix)) > cfg.Length {
		return fmt.Errorf("--prefix must not be longer than --length")
	}
	if cfg.Show < 0 {
		return fmt.Errorf("--show must be >= 0")
	}
	if !report.ValidFormat(cfg.Format) {
		return fmt.Errorf("--format must be one of %s", strings.Join(report.Formats, ", "))
	}
	return nil
}

func loadDictionary(cfg model.Config) ([]string, error) {
	words, err := wordlist.LoadWords(cfg.WordListPath)
	if err != nil {
		return nil, wordListLoadError(cfg.Lang, cfg.WordListPath, err)
	}
	words = wordlist.Apply(words, wordlist.FilterForLang(cfg.Lang))
	appLog.Debug("loaded word list", "path", cfg.WordListPath, "words", len(words))
	return words, nil
}

func openStore() (*store.Store, error) {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		appLog.Error("failed to close db", "err", cerr)
	}
}

func useColor(cfg model.Config) bool {
	if cfg.Format != report.FormatText || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Recommend the next guess from a feedback history",
		Example: `  wordhint next
  wordhint next --guess crane=bbygb --guess moist=bgbyb`,
		Args: cobra.NoArgs,
		RunE: runNextCmd,
	}
	cmd.Flags().StringArrayVarP(&nextGuesses, "guess", "g", nil, "guess and feedback as WORD=FEEDBACK (g=correct, y=present, b=absent), repeatable in order")
	return cmd
}

func runNextCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	history := make([]solver.HistoryEntry, 0, len(nextGuesses))
	for _, raw := range nextGuesses {
		entry, err := parseGuessFlag(raw)
		if err != nil {
			return err
		}
		history = append(history, entry)
	}
	words, err := loadDictionary(cfg)
	if err != nil {
		return err
	}
	resp, err := solver.ComputeNextMove(words, solver.Query{Length: cfg.Length, Prefix: cfg.Prefix, History: history})
	if err != nil {
		return err
	}
	records, err := solver.ValidateHistory(history, cfg.Length)
	if err != nil {
		return err
	}
	return report.Encode(cmd.OutOrStdout(), resp, cfg.Format, report.Options{
		Show:    cfg.Show,
		Color:   useColor(cfg),
		History: records,
	})
}

func parseGuessFlag(raw string) (solver.HistoryEntry, error) {
	sep := strings.IndexAny(raw, "=:")
	if sep <= 0 || sep == len(raw)-1 {
		return solver.HistoryEntry{}, fmt.Errorf("invalid --guess %q (expected WORD=FEEDBACK)", raw)
	}
	return solver.HistoryEntry{
		Guess:    strings.TrimSpace(raw[:sep]),
		Feedback: strings.TrimSpace(raw[sep+1:]),
	}, nil
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Interactive solver (default command)",
		Args:  cobra.NoArgs,
		RunE:  runPlayCmd,
	}
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
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

	m, err := tui.NewModel(cfg, st, words, appLog, useColor(cfg))
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "List dictionary words matching --prefix and --length",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
	cmd.Flags().BoolVar(&wordsAll, "all", false, "ignore --length")
	return cmd
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	words, err := loadDictionary(cfg)
	if err != nil {
		return err
	}
	idx := wordlist.NewIndex(words)
	matches := idx.WithPrefix(cfg.Prefix)
	if !wordsAll {
		matches = wordlist.Apply(matches, wordlist.FilterLength(cfg.Length))
	}
	for _, word := range matches {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), word); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	appLog.Debug("listed words", "prefix", cfg.Prefix, "count", len(matches), "indexed", idx.Len())
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List downloaded word list languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	wordlistDir := config.DefaultWordListDir()
	entries, err := os.ReadDir(wordlistDir)
	if err != nil {
		if os.IsNotExist(err) {
			appLog.Warn("no word lists found, download with: wordhint wordlist --lang <code>")
			return fmt.Errorf("word list directory does not exist")
		}
		return fmt.Errorf("failed to read word list directory: %w", err)
	}
	langs := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".txt") || wordfreq.IsAttributionFile(name) {
			continue
		}
		langs = append(langs, strings.TrimSuffix(name, ".txt"))
	}
	if len(langs) == 0 {
		appLog.Warn("no word lists found, download with: wordhint wordlist --lang <code>")
		return fmt.Errorf("no word lists found")
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newWordlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wordlist",
		Short: "Download word lists from the wordfreq dataset",
		Args:  cobra.NoArgs,
		RunE:  runWordlistCmd,
	}
	cmd.Flags().StringVar(&wordlistSource, "type", "large", "wordfreq list type: large or small")
	cmd.Flags().IntVar(&wordlistSize, "size", defaultWordlistSz, "number of words")
	cmd.Flags().IntVar(&wordlistOnly, "only-length", 0, "keep only words of this length (0 keeps 2-20 letters)")
	cmd.Flags().BoolVar(&wordlistForce, "force", false, "overwrite existing files")
	return cmd
}

func runWordlistCmd(cmd *cobra.Command, _ []string) error {
	if wordlistSize <= 0 {
		return fmt.Errorf("--size must be greater than 0")
	}
	if wordlistOnly < 0 {
		return fmt.Errorf("--only-length must be >= 0")
	}
	if wordlistSource != "large" && wordlistSource != "small" {
		return fmt.Errorf("--type must be large or small")
	}

	appLog.Info("fetching wordfreq metadata")
	wheel, err := wordfreq.DownloadLatestWheel(context.Background(), config.DefaultWordfreqCacheDir())
	if err != nil {
		return fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	appLog.Info("wordfreq wheel ready", "file", wheel.Filename, "version", wheel.Version, "cached", wheel.Cached)

	langTypes, err := wordfreq.ListLanguageTypes(wheel.Path)
	if err != nil {
		return fmt.Errorf("failed to list languages: %w", err)
	}
	langs, allRequested, err := resolveWordlistLangs(requestedLang(cmd), wordfreq.LanguagesFromTypes(langTypes))
	if err != nil {
		return err
	}

	outDir := config.DefaultWordListDir()
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, langCode := range langs {
		outPath := filepath.Join(outDir, langCode+".txt")
		if !wordlistForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("word list already exists: %s (use --force to overwrite)", outPath)
			} else if !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to stat word list: %w", err)
			}
		}
		listType, ok := wordfreq.SelectType(langTypes[langCode], wordlistSource)
		if !ok {
			if allRequested {
				appLog.Warn("skipping language", "lang", langCode, "reason", "no "+wordlistSource+" list")
				continue
			}
			return fmt.Errorf("no %s word list available for %s", wordlistSource, langCode)
		}
		words, err := wordfreq.ExtractWordlist(wheel.Path, langCode, listType, wordfreq.Options{Limit: wordlistSize, Length: wordlistOnly})
		if err != nil {
			if allRequested {
				appLog.Warn("skipping language", "lang", langCode, "err", err)
				continue
			}
			return fmt.Errorf("failed to extract %s word list: %w", langCode, err)
		}
		if err := writeWordList(outPath, words); err != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		appLog.Info("wrote word list", "path", outPath, "type", listType, "words", len(words))
	}

	if err := wordfreq.WriteAttribution(wheel.Path, outDir); err != nil {
		return fmt.Errorf("failed to write attribution: %w", err)
	}
	return nil
}

// requestedLang returns --lang only when given explicitly, so "all" and lists work.
func requestedLang(cmd *cobra.Command) string {
	if cmd.Flags().Changed("lang") {
		return flagLang
	}
	return ""
}

func resolveWordlistLangs(lang string, available []string) ([]string, bool, error) {
	lang = strings.TrimSpace(strings.ToLower(lang))
	if lang == "" {
		return []string{defaultLang}, false, nil
	}
	if lang == "all" {
		return append([]string(nil), available...), true, nil
	}
	availableSet := make(map[string]struct{}, len(available))
	for _, a := range available {
		availableSet[a] = struct{}{}
	}
	var requested []string
	for _, part := range strings.Split(lang, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := availableSet[part]; !ok {
			return nil, false, fmt.Errorf("unknown language %q (available: %s)", part, strings.Join(available, ", "))
		}
		requested = append(requested, part)
	}
	if len(requested) == 0 {
		return nil, false, fmt.Errorf("--lang must not be empty")
	}
	return requested, false, nil
}

func writeWordList(path string, words []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create word list dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "wordlist-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp word list: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.WriteString(strings.Join(words, "\n") + "\n"); err != nil {
		return fmt.Errorf("failed to write word list: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close word list: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write word list: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordhint configuration
# Uncomment a value to enable it. CLI flags override config values.

[solver]
# lang = %q            # Word list language code
# length = %d            # Puzzle word length
# prefix = ""            # Required word prefix
# wordlist = ""          # Explicit word list path
# show = %d             # Remaining candidates to print
# format = %q        # Output format: text, json or msgpack

[log]
# level = %q          # debug, info, warn or error
`,
		defaultLang,
		defaultLength,
		defaultShow,
		defaultFormat,
		defaultLogLevel,
	)
}

func wordListLoadError(lang, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load word list: %v", err),
		fmt.Sprintf("expected word list at: %s", path),
		"Run: wordhint langs",
		fmt.Sprintf("Download: wordhint wordlist --lang %s", lang),
		"Or pass an existing list with --wordlist",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}
