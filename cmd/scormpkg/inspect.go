package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"

	"github.com/mrhapile/scorm-extractor/pkg/scorm"
	"github.com/mrhapile/scorm-extractor/pkg/types"
)

// errExtractionFailed signals a failed result that was already printed.
var errExtractionFailed = errors.New("extraction failed")

func newInspectCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "inspect <package.zip>",
		Short: "Validate a SCORM package and print its description",
		Long: `Reads a SCORM zip package, validates its imsmanifest.xml and prints
the extraction result: version, title, entry point, SCOs and files.

Exits non-zero when the package is rejected.`,
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

			result := scorm.ExtractPackage(buf, opts...)
			if err := writeResult(cmd.OutOrStdout(), result, output); err != nil {
				return err
			}
			if !result.Success {
				return errExtractionFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return cmd
}

func writeResult(w io.Writer, result types.ExtractionResult, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(result, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(result)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = w.Write(data)
	return err
}
