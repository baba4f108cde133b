package nutri

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/clydenvis-afk/nutriaitracker/internal/model"
	"github.com/clydenvis-afk/nutriaitracker/internal/service"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log and list meals",
}

var (
	mealSkip string
	mealYes  bool
)

var mealAnalyzeCmd = &cobra.Command{
	Use:   "analyze <description>",
	Short: "Estimate nutrition for a meal description and save it after confirmation",
	Example: `  nutri meal analyze "2 cups rice and chicken adobo"
  nutri meal analyze "Starbucks grande latte, 1 croissant" --skip 2 --yes`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		skip, err := parseIndexList(mealSkip)
		if err != nil {
			return err
		}
		return withApp(func(a *appContext) error {
			ctx, cancel := a.aiContext(cmd)
			defer cancel()

			estimates, err := service.PreviewMeals(ctx, a.estimator(), joinArgs(args))
			if err != nil {
				return err
			}
			printFoodEstimates(cmd, estimates)

			selected, err := service.SelectEstimates(estimates, skip)
			if err != nil {
				return err
			}
			if len(selected) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to save")
				return nil
			}
			ok, err := confirmOrSkip(mealYes, fmt.Sprintf("Save %d item(s)?", len(selected)))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing saved")
				return nil
			}

			items, err := service.ConfirmMeals(a.store, a.clock, selected)
			if err != nil {
				return err
			}
			total := 0.0
			for _, it := range items {
				total += it.Calories
			}
			logrus.WithField("count", len(items)).Info("meals confirmed")
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d meal item(s), %.0f kcal\n", len(items), total)
			return nil
		})
	},
}

func printFoodEstimates(cmd *cobra.Command, items []model.FoodEstimate) {
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "No food items recognized")
		return
	}
	fmt.Fprintln(out, "#\tNAME\tPORTION\tKCAL\tPROTEIN\tCARBS\tFAT")
	for i, it := range items {
		fmt.Fprintf(out, "%d\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\n", i+1, it.Name, it.Description, it.Calories, it.Protein, it.Carbs, it.Fat)
	}
}

var mealListDate string

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meals for a day",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appContext) error {
			date, _, err := a.resolveDate(mealListDate)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "TIME\tNAME\tPORTION\tKCAL\tPROTEIN\tCARBS\tFAT")
			for _, m := range service.MealsOn(a.store.Meals(), date) {
				fmt.Fprintf(out, "%s\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\n", clockTime(m.Timestamp, a), m.Name, m.PortionDescription, m.Calories, m.Protein, m.Carbs, m.Fat)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealAnalyzeCmd, mealListCmd)

	mealAnalyzeCmd.Flags().StringVar(&mealSkip, "skip", "", "Item numbers to leave out (comma-separated)")
	mealAnalyzeCmd.Flags().BoolVar(&mealYes, "yes", false, "Save without asking")
	mealListCmd.Flags().StringVar(&mealListDate, "date", "", "Day to list (YYYY-MM-DD, default today)")
}
