package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"wikiparse/internal/builder"
	"wikiparse/internal/config"
	"wikiparse/internal/includes"
	"wikiparse/internal/logging"
	"wikiparse/internal/provider"
)

const version = "0.3.0"

type rootOptions struct {
	inputDir       string
	outputDir      string
	pagesDir       string
	watch          bool
	verbose        bool
	serve          bool
	port           int
	legacyIncludes bool
	noIncludes     bool
	clipboard      bool
	debugIncluder  bool
}

// Execute runs the root command with signal handling
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "wikiparse",
		Short: "Resolve includes in Wikidot pages and parse them into syntax trees",
		Long: `wikiparse reads Wikidot-style pages from a source folder, substitutes
[[include-messy page | var=value]] blocks with the pages they name, and
writes the resolved wikitext and its syntax tree to an output folder.

Configuration is read from wikiparse.yaml in the current directory.
Flags override it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(cmd.ErrOrStderr(), logging.Level(opts.verbose))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.inputDir, "in", "i", "", "source directory")
	flags.StringVarP(&opts.outputDir, "out", "o", "", "output directory for resolved pages")
	flags.StringVar(&opts.pagesDir, "pages", "", "directory included pages are read from (default: source directory)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "extra console messages")
	flags.BoolVar(&opts.legacyIncludes, "legacy-includes", false, "match [[include]] instead of [[include-messy]]")
	flags.BoolVar(&opts.noIncludes, "no-includes", false, "leave include blocks unresolved")
	flags.BoolVar(&opts.debugIncluder, "debug-includer", false, "replace includes with markers naming the page")

	local := cmd.Flags()
	local.BoolVarP(&opts.watch, "watch", "w", false, "keep watching the input directory")
	local.BoolVarP(&opts.serve, "serve", "s", false, "start web server and enable watch mode")
	local.IntVarP(&opts.port, "port", "p", 3000, "port for web server")
	local.BoolVar(&opts.clipboard, "clipboard", false, "copy the server URL instead of opening a browser")

	cmd.AddCommand(newTreeCmd(opts), newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wikiparse %s\n", version)
		},
	}
}

// loadProjectConfig reads the project configuration from the working
// directory and applies the flags that were set.
func loadProjectConfig(flags *pflag.FlagSet, opts *rootOptions) (config.Config, error) {
	projectDir, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("cannot get current working directory: %w", err)
	}

	cfg, err := config.LoadConfigFromFile(projectDir)
	if err != nil {
		return cfg, err
	}

	applyOptions(&cfg, opts, flags.Changed)
	return cfg, nil
}

// applyOptions copies explicitly set flags over cfg.
func applyOptions(cfg *config.Config, opts *rootOptions, changed func(name string) bool) {
	if opts.inputDir != "" {
		cfg.InputDir = opts.inputDir
	}
	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}
	if opts.pagesDir != "" {
		cfg.PagesDir = opts.pagesDir
	}
	if opts.watch {
		cfg.Watch = true
	}
	if opts.verbose {
		cfg.Verbose = true
	}
	if opts.serve {
		cfg.Serve = true
	}
	if changed("port") {
		cfg.Port = opts.port
	}
	if opts.legacyIncludes {
		cfg.Settings.UseIncludeCompatibility = true
	}
	if opts.noIncludes {
		cfg.Settings.EnablePageSyntax = false
	}

	// Serving implies watching
	if cfg.Serve {
		cfg.Watch = true
	}
}

// includerFor returns the includer selected by the flags, or the pages
// directory of cfg.
func includerFor(cfg config.Config, opts *rootOptions) includes.Includer {
	if opts.debugIncluder {
		return includes.DebugIncluder{}
	}
	return provider.ForConfig(cfg)
}

func runBuild(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadProjectConfig(cmd.Flags(), opts)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logging.Setup(cmd.ErrOrStderr(), logging.Level(cfg.Verbose))

	out := cmd.OutOrStdout()
	printBanner(out, cfg.Name)

	absInputDir := cfg.GetAbsoluteInputDir()
	if _, err := os.Stat(absInputDir); os.IsNotExist(err) {
		return fmt.Errorf("input directory %s does not exist", absInputDir)
	}

	b := builder.New(cfg, includerFor(cfg, opts))
	b.SetOutput(out)
	b.SetClipboardOnly(opts.clipboard)

	if err := b.Build(cmd.Context()); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	return nil
}

func printBanner(w io.Writer, project string) {
	green := color.New(color.FgGreen, color.Bold)
	dim := color.New(color.Faint)
	fmt.Fprintf(w, "%s %s", green.Sprint("wikiparse"), dim.Sprint(version))
	if project != "" {
		fmt.Fprintf(w, " %s", color.New(color.FgCyan).Sprint(project))
	}
	fmt.Fprintln(w)
}
