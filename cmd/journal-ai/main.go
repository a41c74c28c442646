package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/journal-ai/cli/config"
	"github.com/journal-ai/cli/internal/chunker"
	"github.com/journal-ai/cli/internal/convert"
	"github.com/journal-ai/cli/internal/db"
	"github.com/journal-ai/cli/internal/embeddings"
	"github.com/journal-ai/cli/internal/index"
	"github.com/journal-ai/cli/internal/journal"
	"github.com/journal-ai/cli/internal/logger"
	"github.com/journal-ai/cli/internal/ollama"
	"github.com/journal-ai/cli/internal/rag"
	"github.com/journal-ai/cli/internal/tui"
)

func main() {
	var (
		configPath string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:   "journal-ai",
		Short: "Ask questions about your journal with a local LLM",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetVerbose(verbose)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default ~/.journal-ai/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the config file and initialize the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(configPath)
		},
	}

	var force bool
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build the embedding index from journal files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(configPath, force)
		},
	}
	buildCmd.Flags().BoolVar(&force, "force", false, "Rebuild the index from scratch")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List indexed journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(configPath)
		},
	}

	queryCmd := &cobra.Command{
		Use:   "query [question]",
		Short: "Ask a single question about your journal",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(configPath, strings.Join(args, " "))
		},
	}

	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(configPath)
		},
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "List models available on the Ollama server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModels(configPath)
		},
	}

	var (
		dryRun    bool
		listOnly  bool
		overwrite bool
		onlyFile  string
	)
	convertCmd := &cobra.Command{
		Use:   "convert [journal-dir] [output-dir]",
		Short: "Convert org-journal files to org-roam-dailies format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args[0], args[1], onlyFile, dryRun, listOnly, overwrite)
		},
	}
	convertCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be converted without writing")
	convertCmd.Flags().BoolVar(&listOnly, "list", false, "List convertible journal files")
	convertCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing target files")
	convertCmd.Flags().StringVar(&onlyFile, "file", "", "Convert a single file only")

	rootCmd.AddCommand(initCmd, buildCmd, listCmd, queryCmd, chatCmd, modelsCmd, convertCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(configPath string) error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config file already exists at %s\n", path)
	} else {
		if err := config.Default().Save(path); err != nil {
			return err
		}
		fmt.Printf("Created config file at %s\n", path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	store, err := db.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Init(context.Background()); err != nil {
		return err
	}
	fmt.Println("Database initialized successfully")
	return nil
}

func runBuild(configPath string, force bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.Journal.Dir); err != nil {
		return fmt.Errorf("directory %s does not exist", cfg.Journal.Dir)
	}

	store, err := db.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	ck, err := chunker.New(cfg.Processing.ChunkWindow, cfg.Processing.ChunkOverlap)
	if err != nil {
		return err
	}

	collector := journal.NewCollector(cfg.Journal.Dir, cfg.Journal.Extensions, cfg.Journal.IncludePDF)
	embedder := embeddings.NewTextEmbedder(cfg.Ollama.BaseURL, cfg.Embeddings.Model, cfg.EmbeddingTimeout())

	builder := index.NewBuilder(collector, ck, embedder, store, os.Stdout)
	return builder.Build(context.Background(), force)
}

func runList(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := db.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		return err
	}

	entries, err := store.ListEntries(ctx)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No journal entries found. Run 'journal-ai build' first.")
		return nil
	}

	fmt.Printf("\nFound %d journal entries:\n", len(entries))
	for _, e := range entries {
		fmt.Printf("  %s: %s\n", e.Date, e.Filename)
	}
	return nil
}

func runQuery(configPath, question string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := db.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		return err
	}

	orc, _, err := newPipeline(ctx, cfg, store)
	if err != nil {
		return err
	}

	answer, err := orc.Answer(ctx, question)
	if err != nil {
		return err
	}

	fmt.Printf("\nQuestion: %s\n", question)
	fmt.Printf("\nAnswer:\n%s\n", answer)
	return nil
}

func runChat(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := db.Open(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Init(ctx); err != nil {
		return err
	}

	orc, model, err := newPipeline(ctx, cfg, store)
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.New(orc, model), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run chat: %w", err)
	}
	return nil
}

func runModels(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	client := ollama.NewClient(cfg.Ollama.BaseURL, cfg.GenerationTimeout())
	models, err := ollama.NewModelSelector(client).ListModels(context.Background())
	if err != nil {
		return err
	}

	if len(models) == 0 {
		fmt.Println("No models installed. Pull one with 'ollama pull llama3.2'.")
		return nil
	}

	fmt.Println("Available models:")
	for _, m := range models {
		fmt.Printf("  %-32s %s\n", m.Name, humanize.Bytes(uint64(m.Size)))
	}
	return nil
}

func runConvert(journalDir, roamDir, onlyFile string, dryRun, listOnly, overwrite bool) error {
	journalDir = config.ExpandHome(journalDir)
	roamDir = config.ExpandHome(roamDir)

	if _, err := os.Stat(journalDir); err != nil {
		return fmt.Errorf("journal directory %s does not exist", journalDir)
	}

	conv, err := convert.NewConverter(journalDir, roamDir, overwrite, os.Stdout)
	if err != nil {
		return err
	}

	if listOnly {
		files, err := conv.ListFiles()
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println("No convertible journal files found")
			return nil
		}
		fmt.Println("Journal files that can be converted:")
		for _, name := range files {
			date, err := convert.DateFromFilename(name)
			if err != nil {
				continue
			}
			fmt.Printf("  %s -> %s.org\n", name, date)
		}
		return nil
	}

	if onlyFile != "" {
		err := conv.ConvertFile(onlyFile, dryRun)
		if errors.Is(err, convert.ErrExists) {
			return nil
		}
		return err
	}

	stats, err := conv.ConvertAll(dryRun)
	if err != nil {
		return err
	}

	fmt.Println("\nConversion completed:")
	fmt.Printf("  Total files: %d\n", stats.Total)
	fmt.Printf("  Successful: %d\n", stats.Successful)
	fmt.Printf("  Failed: %d\n", stats.Failed)
	if stats.Skipped > 0 {
		fmt.Printf("  Skipped: %d\n", stats.Skipped)
	}

	if !dryRun && stats.Successful > 0 {
		fmt.Println("\nIMPORTANT: After conversion, you should:")
		fmt.Println("1. Run 'M-x org-roam-db-sync' in Emacs to update the org-roam database")
		fmt.Println("2. Verify the converted files look correct")
		fmt.Println("3. Consider backing up your original org-journal files")
	}
	return nil
}

// newPipeline assembles the query pipeline shared by query and chat.
func newPipeline(ctx context.Context, cfg *config.Config, store *db.Store) (*rag.Orchestrator, string, error) {
	client := ollama.NewClient(cfg.Ollama.BaseURL, cfg.GenerationTimeout())

	model, err := ollama.NewModelSelector(client).GetDefaultModel(ctx, cfg.Ollama.Model)
	if err != nil {
		return nil, "", fmt.Errorf("failed to select a model: %w", err)
	}
	logger.Debug("using generation model %s", model)

	embedder := embeddings.NewTextEmbedder(cfg.Ollama.BaseURL, cfg.Embeddings.Model, cfg.EmbeddingTimeout())
	orc := rag.NewOrchestrator(embedder, client, rag.NewEngine(store), store, model, cfg.Processing.TopK)
	return orc, model, nil
}
