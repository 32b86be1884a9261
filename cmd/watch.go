package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjrosen/textobjects/internal/doccache"
	"github.com/zjrosen/textobjects/internal/log"
	"github.com/zjrosen/textobjects/internal/presentation"
	"github.com/zjrosen/textobjects/internal/textobject"
	"github.com/zjrosen/textobjects/internal/watcher"
)

var (
	watchOpts resolveFlags
	watchDiff bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <text-object> <file>",
	Short: "Re-resolve a text object every time the file changes",
	Long: `Resolve a text object at each --pos, then keep watching the file and
print a fresh resolution after every save. With --diff, later runs print how
each selection changed instead. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := textobject.Lookup(textobject.ID(args[0]))
		if err != nil {
			return fmt.Errorf("%w (run 'textobjects list')", err)
		}
		return runWatch(cmd.Context(), cmd.OutOrStdout(), watchRun{
			def:      def,
			path:     args[1],
			flags:    watchOpts,
			diff:     watchDiff,
			cache:    doccache.New(cfg.Cache),
			opts:     cfg.Engine.Options(watchOpts.includeDelimiter),
			debounce: cfg.Watch.Debounce,
		})
	},
}

type watchRun struct {
	def      textobject.Definition
	path     string
	flags    resolveFlags
	diff     bool
	cache    *doccache.Cache
	opts     textobject.Options
	debounce time.Duration
}

// runWatch prints one resolution up front and one per settled change until
// ctx is done.
func runWatch(ctx context.Context, w io.Writer, run watchRun) error {
	abs, err := filepath.Abs(run.path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", run.path, err)
	}
	run.path = abs

	out := resultFormatter(w, run.flags)
	last, err := watchResolve(ctx, run)
	if err != nil {
		return err
	}
	if err := out.FormatResults(last, run.flags.format); err != nil {
		return err
	}

	fw, err := watcher.New(watcher.Config{Paths: []string{run.path}, Debounce: run.debounce})
	if err != nil {
		return err
	}
	changes, err := fw.Start()
	if err != nil {
		return err
	}
	defer func() { _ = fw.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-changes:
			log.Debug(log.CatWatcher, "document changed", "paths", paths)
			for _, p := range paths {
				run.cache.Invalidate(p)
			}
			results, err := watchResolve(ctx, run)
			if err != nil {
				// The file may be mid-rewrite; wait for the next event.
				log.ErrorErr(log.CatWatcher, "re-resolve failed", err)
				continue
			}
			if run.diff {
				err = out.FormatChanges(last, results)
			} else {
				err = out.FormatResults(results, run.flags.format)
			}
			if err != nil {
				return err
			}
			last = results
		}
	}
}

func watchResolve(ctx context.Context, run watchRun) ([]presentation.ResultDTO, error) {
	doc, _, err := run.cache.Load(ctx, run.path)
	if err != nil {
		return nil, err
	}
	positions, err := documentPositions(doc, run.flags.positions, run.flags.grapheme)
	if err != nil {
		return nil, err
	}
	return resolveResults(ctx, resolveRequest{
		def:       run.def,
		doc:       doc,
		positions: positions,
		opts:      run.opts,
	}), nil
}

func init() {
	addResolveFlags(watchCmd, &watchOpts)
	watchCmd.Flags().BoolVar(&watchDiff, "diff", false, "after the first run, print how each selection changed")
	rootCmd.AddCommand(watchCmd)
}
