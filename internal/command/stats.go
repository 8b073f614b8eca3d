package command

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/five82/lanes/internal/app"
	"github.com/five82/lanes/internal/loader"
	"github.com/five82/lanes/internal/viewport"
)

// maxParallelLoads bounds concurrent trace loads in stats.
const maxParallelLoads = 4

func NewStatsCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <trace>...",
		Short: "Print per-thread statistics for one or more traces",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			levels, _ := cmd.Flags().GetBool("levels")
			results, err := loadAll(cmd.Context(), loader.New(version), args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, res := range results {
				if i > 0 {
					fmt.Fprintln(out)
				}
				writeStats(out, res, levels)
			}
			return nil
		},
	}
	cmd.Flags().Bool("levels", false, "show the duration-level histogram per thread")
	return cmd
}

// loadAll loads every source concurrently and returns results in argument
// order. The first failure cancels the remaining loads.
func loadAll(ctx context.Context, l *loader.Loader, sources []string) ([]*loader.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([]*loader.Result, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)
	for i, src := range sources {
		g.Go(func() error {
			res, err := l.Load(ctx, app.ResolveSource(src))
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func writeStats(out io.Writer, res *loader.Result, levels bool) {
	store := res.Store
	b := store.Bounds()
	fmt.Fprintf(out, "%s (%s)\n", res.Source, res.Format)
	fmt.Fprintf(out, "  %s events, %s threads, span %s, loaded in %s\n",
		humanize.Comma(int64(store.EventCount())),
		humanize.Comma(int64(len(store.Threads()))),
		viewport.FormatDuration(b.Width()),
		res.Elapsed.Round(time.Millisecond))

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	header := "  THREAD\tEVENTS\tDEPTH"
	if levels {
		header += "\tLEVELS"
	}
	fmt.Fprintln(w, header)
	for _, th := range store.Threads() {
		line := fmt.Sprintf("  %s\t%s\t%d", th.Name, humanize.Comma(int64(len(th.Events))), th.MaxDepth)
		if levels {
			line += "\t" + levelHistogram(res, th.ID)
		}
		fmt.Fprintln(w, line)
	}
	_ = w.Flush()
}

// levelHistogram renders "L<n>:<count>" pairs for a thread's non-empty levels.
func levelHistogram(res *loader.Result, thread int64) string {
	if res.Index == nil {
		return "-"
	}
	var parts []string
	for _, lv := range res.Index.Levels(thread) {
		parts = append(parts, fmt.Sprintf("L%d:%d", lv.L, len(lv.Events)))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
