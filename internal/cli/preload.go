package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aiham/dymaxion/internal/paths"
	"github.com/aiham/dymaxion/internal/preload"
)

func newPreloadCmd(a *app) *cobra.Command {
	var assetsDir string
	cmd := &cobra.Command{
		Use:   "preload",
		Short: "Check that every image the game needs can be read",
		Long: "Read the tiles, backgrounds, menu buttons and logo for the configured\n" +
			"puzzles from the assets directory. Exits 1 when any image is missing.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir := a.cfg.AssetsDir
			if assetsDir != "" {
				var err error
				if dir, err = paths.ResolveAssetsDir(assetsDir, ""); err != nil {
					return sysError(err)
				}
			}
			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				return userError(fmt.Errorf("assets directory %s not found", dir))
			}

			loader := &preload.Loader{
				FS:      os.DirFS(dir),
				Workers: a.cfg.PreloadWorkers,
				Logger:  a.logger,
				Progress: func(loaded, failed, total int) {
					a.logger.Debug("preload progress", "loaded", loaded, "failed", failed, "total", total)
				},
			}

			report, err := loader.Load(cmd.Context(), preload.Manifest(a.cfg.Puzzles))
			if err != nil {
				return sysError(err)
			}

			if a.flags.jsonMode {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Loaded %d of %d images.", report.Loaded, report.Total)
				if !report.OK() {
					fmt.Fprintf(out, " %d images could not be loaded.", len(report.Failures))
				}
				fmt.Fprintln(out)
				for _, f := range report.Failures {
					fmt.Fprintf(out, "  %s (%s): %s\n", f.Asset.ID, f.Asset.Path, f.Err)
				}
			}
			if !report.OK() {
				return userError(errors.New("some images could not be loaded"))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&assetsDir, "assets", "", "assets directory containing img/ (default: config assets_dir or CWD)")
	return cmd
}
