package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/nukilabs/jdeob"
	"github.com/nukilabs/jdeob/cfg"
	"github.com/nukilabs/jdeob/internal/cfgio"
	"github.com/nukilabs/jdeob/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version    = "0.0.1"
	logger     *zap.Logger
	verbose    bool
	configPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "jdeob",
		Short:   "Repair obfuscated exception ranges of JVM control flow graphs",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(verbose)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(dotCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger returns a development logger in verbose mode and an error-only
// JSON logger otherwise.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	conf := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
		Encoding:         "json",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}
	return conf.Build()
}

// runCmd creates the run command
func runCmd() *cobra.Command {
	var (
		format  string
		output  string
		verify  bool
		noDummy bool
		noSplit bool
	)

	cmd := &cobra.Command{
		Use:   "run [graph.yaml]",
		Short: "Deobfuscate the exception ranges of a graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.LoadConfig(configPath)
			if err != nil {
				logger.Error("Failed to load config", zap.Error(err))
				return err
			}

			// Override config with CLI flags
			if format != "" {
				conf.Format = format
			}
			if output != "" {
				conf.Output = output
			}
			if verify {
				conf.Verify = true
			}
			if noDummy {
				conf.DummyHandlers = false
			}
			if noSplit {
				conf.SplitMultipleEntry = false
			}
			if err := conf.Validate(); err != nil {
				return err
			}

			g, err := cfgio.Load(args[0])
			if err != nil {
				return err
			}

			d := jdeob.New(logger, conf.Options())
			res, err := d.Run(cmd.Context(), g)
			if err != nil {
				logger.Error("Deobfuscation failed", zap.String("graph", args[0]), zap.Error(err))
				return err
			}
			logger.Info("Deobfuscation finished",
				zap.String("graph", args[0]),
				zap.Int("passes", len(res.Passes)),
				zap.Bool("obfuscated", res.Obfuscated),
				zap.Int("blocks_before", res.BlocksBefore),
				zap.Int("blocks_after", res.BlocksAfter),
				zap.Int("ranges_before", res.RangesBefore),
				zap.Int("ranges_after", res.RangesAfter))
			if res.Unsplit {
				fmt.Fprintln(os.Stderr, "warning: multiple entry exception ranges remain")
			}

			return write(g, conf.Format, conf.Output, graphName(args[0]))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: yaml, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&verify, "verify", false, "Validate the graph after every pass")
	cmd.Flags().BoolVar(&noDummy, "no-dummy", false, "Do not insert dummy handler blocks")
	cmd.Flags().BoolVar(&noSplit, "no-split", false, "Do not split multiple entry ranges")

	return cmd
}

// checkCmd creates the check command
func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [graph.yaml]",
		Short: "Validate a graph and report obfuscated exception ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := cfgio.Load(args[0])
			if err != nil {
				return err
			}
			if err := g.Validate(); err != nil {
				return err
			}
			obfuscated := jdeob.HasObfuscatedExceptions(g)
			logger.Debug("Graph checked",
				zap.String("graph", args[0]),
				zap.Int("blocks", g.Len()),
				zap.Int("ranges", len(g.Ranges())),
				zap.Bool("obfuscated", obfuscated))

			fmt.Printf("%s: %d blocks, %d ranges", args[0], g.Len(), len(g.Ranges()))
			if obfuscated {
				fmt.Print(", obfuscated exception ranges")
			}
			fmt.Println()
			return nil
		},
	}
}

// dotCmd creates the dot command
func dotCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dot [graph.yaml]",
		Short: "Render a graph in Graphviz DOT format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := cfgio.Load(args[0])
			if err != nil {
				return err
			}
			return write(g, "dot", output, graphName(args[0]))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}

// write encodes the graph and writes it to the output file or stdout.
func write(g *cfg.Graph, format, output, name string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "dot":
		data, err = cfgio.MarshalDOT(g, name)
	default:
		data, err = cfgio.Encode(g)
	}
	if err != nil {
		return err
	}

	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(output, data, 0o644)
}

// graphName derives a DOT graph name from the input path.
func graphName(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name = strings.Map(func(r rune) rune {
		if r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return r
		}
		return '_'
	}, name)
	if name == "" || name[0] >= '0' && name[0] <= '9' {
		name = "g" + name
	}
	return name
}
