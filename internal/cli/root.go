// Package cli is the command line surface of streamcat.
package cli

import (
	"archive/zip"
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/adamluzsi/streams/adapters/archive"
	"github.com/adamluzsi/streams/adapters/lines"
	"github.com/adamluzsi/streams/internal/errorkit"
	"github.com/adamluzsi/streams/internal/logger"
	"github.com/adamluzsi/streams/iterators"
	"github.com/adamluzsi/streams/metrics"
)

// NewRootCommand reads its flags from the command line, environment variables prefixed with STREAMCAT,
// or streamcat.yaml (in that order).
func NewRootCommand() *cobra.Command {
	v := viper.New()
	var configFile string

	cmd := &cobra.Command{
		Use:   "streamcat [files...]",
		Short: "Print the lines of files through a lazy stream pipeline",
		Long: `Print the lines of files through a lazy stream pipeline.

The lines are read from the standard input when no file is given.
Zip and jar archives are read entry by entry.
The stages run in this order: grep, until, skip, limit, collate, repeat, number.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(v, configFile)
			if err != nil {
				return err
			}
			if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
				return ErrInvalidConfig.Wrap(err)
			}
			return run(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
		},
	}

	cmd.Flags().StringVar(&configFile, configFlag, "", "config file, defaults to streamcat.yaml in $HOME/.streamcat or the working directory")
	bindFlags(v, cmd.Flags())
	return cmd
}

func run(ctx context.Context, cfg Config, stdin io.Reader, stdout, stderr io.Writer, paths []string) (rErr error) {
	var (
		reg       *prometheus.Registry
		collector *metrics.Collector
	)
	if cfg.Metrics {
		reg = prometheus.NewRegistry()
		c, err := metrics.NewCollector(reg)
		if err != nil {
			return err
		}
		collector = c
	}

	src, err := open(stdin, paths)
	if err != nil {
		return err
	}
	s, err := Pipeline(cfg, src, collector)
	if err != nil {
		return err
	}
	ctx = logger.ContextWith(ctx, logger.Field("files", len(paths)), logger.Fields{
		grepFlag:    cfg.Grep,
		untilFlag:   cfg.Until,
		skipFlag:    cfg.Skip,
		limitFlag:   cfg.Limit,
		collateFlag: cfg.Collate,
		repeatFlag:  cfg.Repeat,
	})
	logger.Debug(ctx, "pipeline is ready")

	out := bufio.NewWriter(stdout)
	defer errorkit.Finish(&rErr, out.Flush)
	if err := s.ForEach(func(line string) error {
		if _, err := out.WriteString(line); err != nil {
			return err
		}
		return out.WriteByte('\n')
	}); err != nil {
		logger.Error(ctx, "streamcat failed", logger.ErrField(err))
		return err
	}
	if reg != nil {
		return metrics.WriteText(stderr, reg)
	}
	return nil
}

func open(stdin io.Reader, paths []string) (iterators.Iterator[string], error) {
	if len(paths) == 0 {
		// stdin is not ours to close
		return lines.New[string](struct{ io.Reader }{stdin}), nil
	}
	srcs := make([]iterators.Iterator[string], 0, len(paths))
	for _, path := range paths {
		src, err := openFile(path)
		if err != nil {
			for _, s := range srcs {
				_ = s.Close()
			}
			return nil, err
		}
		srcs = append(srcs, src)
	}
	return iterators.Concat(srcs[0], srcs[1:]...), nil
}

func openFile(path string) (iterators.Iterator[string], error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip", ".jar":
		return iterators.FlatMap[string](archive.Open(path), func(f *zip.File) iterators.Iterator[string] {
			return archive.Lines(f)
		}), nil
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		return lines.New[string](f), nil
	}
}
