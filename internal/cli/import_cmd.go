package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ashlinalex1/mindstride/internal/cli/formatter"
	"github.com/ashlinalex1/mindstride/internal/domain"
	"github.com/ashlinalex1/mindstride/internal/importer"
	"github.com/spf13/cobra"
)

const maxShownRowErrors = 10

func newImportCmd(app *App) *cobra.Command {
	var rowSeconds float64
	var dryRun bool
	var utc bool

	cmd := &cobra.Command{
		Use:   "import PATH...",
		Short: "Import desktop activity CSV files",
		Long: "Import reads daily desktop_activity_YYYY-MM-DD.csv files written by a tracker.\n" +
			"A directory argument imports every such file inside it. Each row counts for\n" +
			"--row-seconds unless the file has a \"Duration Seconds\" column.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := expandImportPaths(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.New("no desktop_activity_*.csv files found")
			}

			loc := time.Local
			if utc {
				loc = time.UTC
			}

			var records []domain.UsageRecord
			for _, path := range files {
				recs, err := readImportFile(path, loc, rowSeconds)
				if err != nil {
					var rowErrs rowErrors
					if errors.As(err, &rowErrs) {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s\n%s", formatter.Bold(path), formatter.FormatImportErrors(rowErrs, maxShownRowErrors))
						return fmt.Errorf("%s has invalid rows", path)
					}
					return err
				}
				records = append(records, recs...)
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "%d valid records in %d file(s), nothing stored\n", len(records), len(files))
				return nil
			}

			stop := func() {}
			if app.IsInteractive {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), fmt.Sprintf("Importing %d records", len(records)))
			}
			res, err := app.Tracking.Ingest(cmd.Context(), app.userID(), records)
			stop()
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatIngest(res))
			return nil
		},
	}

	cmd.Flags().Float64Var(&rowSeconds, "row-seconds", importer.DefaultRowSeconds, "Seconds of usage each row represents")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the files without storing anything")
	cmd.Flags().BoolVar(&utc, "utc", false, "Read timestamps as UTC instead of local time")

	return cmd
}

type rowErrors []error

func (e rowErrors) Error() string {
	return fmt.Sprintf("%d invalid rows", len(e))
}

func readImportFile(path string, loc *time.Location, rowSeconds float64) ([]domain.UsageRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := importer.ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if errs := importer.ValidateRows(rows); len(errs) > 0 {
		return nil, rowErrors(errs)
	}
	return importer.Convert(rows, loc, rowSeconds)
}

// expandImportPaths replaces directories by the daily CSV files they hold.
func expandImportPaths(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "desktop_activity_*.csv"))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		files = append(files, matches...)
	}
	return files, nil
}
