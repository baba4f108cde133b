package nutri

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/clydenvis-afk/nutriaitracker/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appContext) error {
			report, err := service.RunDoctor(a.store, a.clock.Location(), doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, f := range report.Fallbacks {
				fmt.Fprintf(out, "Unreadable document %s replaced by default: %s\n", f.Key, f.Reason)
			}
			fmt.Fprintf(out, "Duplicate weight dates: %d\n", report.DuplicateWeightDates)
			fmt.Fprintf(out, "Weight logs out of order: %t\n", report.UnsortedWeightLogs)
			fmt.Fprintf(out, "Meals with mismatched date: %d\n", report.MismatchedMeals)
			fmt.Fprintf(out, "Exercises with mismatched date: %d\n", report.MismatchedExercises)

			if doctorFix {
				fmt.Fprintf(out, "Removed duplicate weight logs: %d\n", report.FixedWeightLogs)
				purged, purgeErr := service.PurgeEstimateCache(a.db, a.clock.Now(), false)
				if purgeErr == nil {
					fmt.Fprintf(out, "Purged expired estimates: %d\n", purged)
				}
				// re-check so the exit status reflects the final state
				var recheckErr error
				report, recheckErr = service.RunDoctor(a.store, a.clock.Location(), false)
				if err := multierr.Combine(purgeErr, recheckErr); err != nil {
					return err
				}
			}
			// date mismatches follow timezone changes and are informational
			if len(report.Fallbacks) > 0 || report.DuplicateWeightDates > 0 || report.UnsortedWeightLogs {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Attempt safe auto-fixes")
}
