package nutri

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/clydenvis-afk/nutriaitracker/internal/service"
)

var (
	todayDate string
	todayJSON bool
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show calories, macros and records for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appContext) error {
			date, _, err := a.resolveDate(todayDate)
			if err != nil {
				return err
			}
			status := service.TodaySummary(a.store.Meals(), a.store.Exercises(), a.store.Profile(), date)
			if todayJSON {
				b, err := json.MarshalIndent(status, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", status.Date)
			fmt.Fprintf(out, "Target: %.0f kcal\n", status.TargetCalories)
			fmt.Fprintf(out, "Food: %.0f kcal\n", status.IntakeCalories)
			fmt.Fprintf(out, "Exercise: %.0f kcal\n", status.ExerciseCalories)
			fmt.Fprintf(out, "Net: %.0f kcal\n", status.NetCalories)
			if status.OverTarget {
				fmt.Fprintf(out, "Over target by: %.0f kcal\n", -status.RemainingCalories)
			} else {
				fmt.Fprintf(out, "Remaining: %.0f kcal\n", status.RemainingCalories)
			}
			fmt.Fprintf(out, "Macros: P %.1fg | C %.1fg | F %.1fg\n", status.ProteinG, status.CarbsG, status.FatG)

			if len(status.Meals) > 0 {
				fmt.Fprintln(out, "\nTIME\tMEAL\tPORTION\tKCAL")
				for _, m := range status.Meals {
					fmt.Fprintf(out, "%s\t%s\t%s\t%.0f\n", clockTime(m.Timestamp, a), m.Name, m.PortionDescription, m.Calories)
				}
			}
			if len(status.Exercises) > 0 {
				fmt.Fprintln(out, "\nTIME\tEXERCISE\tMINUTES\tBURNED")
				for _, e := range status.Exercises {
					fmt.Fprintf(out, "%s\t%s\t%.0f\t%.0f\n", clockTime(e.Timestamp, a), e.Name, e.DurationMinutes, e.CaloriesBurned)
				}
			}
			return nil
		})
	},
}

func clockTime(ms int64, a *appContext) string {
	return time.UnixMilli(ms).In(a.clock.Location()).Format("15:04")
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Day to show (YYYY-MM-DD, default today)")
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Print JSON")
}
