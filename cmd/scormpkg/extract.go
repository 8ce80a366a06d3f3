package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrhapile/scorm-extractor/pkg/scorm"
	"github.com/mrhapile/scorm-extractor/pkg/store"
)

func newExtractCmd(a *app) *cobra.Command {
	var (
		outputDir  string
		packageID  string
		noProgress bool
	)

	cmd := &cobra.Command{
		Use:   "extract <package.zip>",
		Short: "Validate a SCORM package and store its files",
		Long: `Validates a SCORM zip package and, when accepted, writes its files to
<output-dir>/<id>/content together with package.json and manifest.json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read package: %w", err)
			}
			opts, err := a.extractOptions()
			if err != nil {
				return err
			}

			info, err := scorm.Extract(buf, opts...)
			if err != nil {
				return fmt.Errorf("package rejected: %w", err)
			}
			files, err := scorm.ExtractFiles(buf)
			if err != nil {
				return fmt.Errorf("failed to extract files: %w", err)
			}

			if outputDir == "" {
				outputDir = a.cfg.Storage.OutputDir
			}
			storeOpts := []store.Option{
				store.WithOutputDir(outputDir),
				store.WithPackageID(packageID),
				store.WithLogger(a.logger),
			}
			if !noProgress {
				bar := progressbar.NewOptions(len(files),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionSetDescription("writing files"),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish())
				defer bar.Finish()
				storeOpts = append(storeOpts, store.WithProgress(func(path string) {
					if err := bar.Add(1); err != nil {
						a.logger.Debug("Progress bar update failed", zap.Error(err))
					}
				}))
			}

			pkg, err := store.Save(info, files, storeOpts...)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Stored %q (SCORM %s) as %s\n", info.Title, info.Version, pkg.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "  directory:   %s\n", pkg.Dir)
			fmt.Fprintf(cmd.OutOrStdout(), "  entry point: %s\n", info.EntryPoint)
			fmt.Fprintf(cmd.OutOrStdout(), "  files:       %d (%s)\n", pkg.Manifest.TotalFiles, humanize.IBytes(uint64(pkg.SizeBytes)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output-dir", "d", "", "directory for stored packages (overrides config)")
	cmd.Flags().StringVar(&packageID, "id", "", "package id (defaults to a random UUID)")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")
	return cmd
}
