package command

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/five82/lanes/internal/app"
)

const AppName = "lanes"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           AppName + " [trace]",
		Short:         "lanes - terminal timeline viewer for trace files",
		Long:          "lanes opens a Chrome, JSON Lines or SQLite trace as a zoomable per-thread timeline.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			prefsPath, _ := cmd.Flags().GetString("prefs")
			noWatch, _ := cmd.Flags().GetBool("no-watch")

			var source string
			if len(args) > 0 {
				source = args[0]
			}
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: configPath,
				PrefsPath:  prefsPath,
				Source:     source,
				Version:    version,
				NoWatch:    noWatch,
			})
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.Flags().String("config", "", "path to config.toml (default ~/.config/lanes/config.toml)")
	cmd.Flags().String("prefs", "", "path to prefs.toml (default ~/.config/lanes/prefs.toml)")
	cmd.Flags().Bool("no-watch", false, "do not reload the trace when the file changes")

	cmd.AddCommand(NewStatsCmd(version))

	return cmd
}

// Execute runs the root command with ctx, usually cancelled on SIGINT.
func Execute(ctx context.Context) error {
	return NewRootCmd(Version).ExecuteContext(ctx)
}
