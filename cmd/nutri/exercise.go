package nutri

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clydenvis-afk/nutriaitracker/internal/service"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Log and list workouts",
}

var (
	exerciseSkip string
	exerciseYes  bool
)

var exerciseAnalyzeCmd = &cobra.Command{
	Use:     "analyze <description>",
	Short:   "Estimate calories burned for a workout description and save it after confirmation",
	Example: `  nutri exercise analyze "ran 5k in 30 minutes"`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		skip, err := parseIndexList(exerciseSkip)
		if err != nil {
			return err
		}
		return withApp(func(a *appContext) error {
			ctx, cancel := a.aiContext(cmd)
			defer cancel()

			estimates, err := service.PreviewExercises(ctx, a.estimator(), a.store, joinArgs(args))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(estimates) == 0 {
				fmt.Fprintln(out, "No exercises recognized")
				return nil
			}
			fmt.Fprintln(out, "#\tNAME\tMINUTES\tBURNED")
			for i, e := range estimates {
				fmt.Fprintf(out, "%d\t%s\t%.0f\t%.0f\n", i+1, e.Name, e.DurationMinutes, e.CaloriesBurned)
			}

			selected, err := service.SelectEstimates(estimates, skip)
			if err != nil {
				return err
			}
			if len(selected) == 0 {
				fmt.Fprintln(out, "Nothing to save")
				return nil
			}
			ok, err := confirmOrSkip(exerciseYes, fmt.Sprintf("Save %d exercise(s)?", len(selected)))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Nothing saved")
				return nil
			}
			items, err := service.ConfirmExercises(a.store, a.clock, selected)
			if err != nil {
				return err
			}
			burned := 0.0
			for _, it := range items {
				burned += it.CaloriesBurned
			}
			fmt.Fprintf(out, "Added %d exercise(s), %.0f kcal burned\n", len(items), burned)
			return nil
		})
	},
}

var exerciseListDate string

var exerciseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exercises for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appContext) error {
			date, _, err := a.resolveDate(exerciseListDate)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "TIME\tNAME\tMINUTES\tBURNED")
			for _, e := range service.ExercisesOn(a.store.Exercises(), date) {
				fmt.Fprintf(out, "%s\t%s\t%.0f\t%.0f\n", clockTime(e.Timestamp, a), e.Name, e.DurationMinutes, e.CaloriesBurned)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exerciseCmd)
	exerciseCmd.AddCommand(exerciseAnalyzeCmd, exerciseListCmd)

	exerciseAnalyzeCmd.Flags().StringVar(&exerciseSkip, "skip", "", "Item numbers to leave out (comma-separated)")
	exerciseAnalyzeCmd.Flags().BoolVar(&exerciseYes, "yes", false, "Save without asking")
	exerciseListCmd.Flags().StringVar(&exerciseListDate, "date", "", "Day to list (YYYY-MM-DD, default today)")
}
