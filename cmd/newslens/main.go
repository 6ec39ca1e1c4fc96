package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Hemanthkumar04/newslens/internal/config"
	"github.com/Hemanthkumar04/newslens/internal/debuglog"
	"github.com/Hemanthkumar04/newslens/internal/llm"
	"github.com/Hemanthkumar04/newslens/internal/newsapi"
	"github.com/Hemanthkumar04/newslens/internal/proxy"
	"github.com/Hemanthkumar04/newslens/internal/tui"
	"github.com/Hemanthkumar04/newslens/internal/validation"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	flagConfig   string
	flagAddr     string
	flagPageSize int
	flagJSON     bool
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "newslens",
		Short:         "Terminal news reader with AI summaries",
		Long:          "newslens fetches headlines for a topic, renders them as a card grid,\nand summarizes selected articles. Run without arguments for the TUI.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to configuration file")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the API proxy that keeps credentials server-side",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serve.Flags().StringVar(&flagAddr, "addr", "", "listen address (overrides proxy.addr)")

	search := &cobra.Command{
		Use:   "search <topic>",
		Short: "Fetch headlines once and print them",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}
	search.Flags().IntVar(&flagPageSize, "page-size", 0, "number of articles (overrides api.page_size)")
	search.Flags().BoolVar(&flagJSON, "json", false, "print raw article JSON")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration helpers",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	})

	version := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			tui.ShowBanner(Version)
		},
	}

	root.AddCommand(serve, search, configCmd, version)
	return root
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	// Logging must not take down the UI; a bad path just means no logs.
	if logPath, err := validation.SecureLogPath(cfg.Log.Path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	} else if err := debuglog.Setup(debuglog.ParseLogLevel(cfg.Log.Level), logPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer debuglog.Close()

	deps := tui.DefaultDeps(cfg)
	if deps.Related != nil {
		defer deps.Related.Close()
	}

	app := tui.NewApp(cfg, deps)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagAddr != "" {
		cfg.Proxy.Addr = flagAddr
	}

	// The terminal is not a UI surface here, so logs go to stderr.
	if err := debuglog.SetupStderr(debuglog.ParseLogLevel(cfg.Log.Level)); err != nil {
		return err
	}
	defer debuglog.Close()

	var summarizer llm.Summarizer
	if cfg.LLM.Key != "" {
		gemini, err := llm.NewGemini(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("setting up summarizer: %w", err)
		}
		defer gemini.Close()
		summarizer = gemini
	} else {
		debuglog.Warnf("serve: GEMINI_API_KEY not set, /api/summarize disabled")
	}

	srv := proxy.NewServer(cfg, summarizer)
	debuglog.Infof("serve: listening on %s", cfg.Proxy.Addr)
	return srv.Run()
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	pageSize := cfg.API.PageSize
	if flagPageSize > 0 {
		pageSize = flagPageSize
	}

	client := newsapi.NewClient(cfg)
	query := strings.Join(args, " ")
	// Preset names resolve to their configured query, matching the TUI
	// topic chips.
	if topic, ok := cfg.FindTopic(query); ok {
		query = topic.Query
	}
	articles, err := client.Search(cmd.Context(), query, pageSize)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(articles)
	}

	if len(articles) == 0 {
		fmt.Println("No articles found.")
		return nil
	}
	for i, a := range articles {
		source := a.Source.Name
		if source == "" {
			source = "unknown source"
		}
		fmt.Printf("%2d. %s\n", i+1, a.Title)
		fmt.Printf("    %s\n", source)
		fmt.Printf("    %s\n", a.URL)
	}
	return nil
}

func runConfigInit(*cobra.Command, []string) error {
	path, err := validation.SecureConfigPath(flagConfig)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}

	if err := config.GenerateDefaultConfig(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Printf("Wrote default configuration to %s\n", path)
	fmt.Println("Set NEWS_API_KEY (and optionally GEMINI_API_KEY) in the environment or a .env file.")
	return nil
}
