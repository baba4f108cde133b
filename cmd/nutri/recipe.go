package nutri

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clydenvis-afk/nutriaitracker/internal/service"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Get AI recipe ideas",
}

var (
	recipeAdd int
	recipeYes bool
)

var recipeSuggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest three recipes based on your profile and recent meals",
	RunE: func(cmd *cobra.Command, args []string) error {
		if recipeAdd < 0 {
			return fmt.Errorf("--add must be >= 1")
		}
		return withApp(func(a *appContext) error {
			ctx, cancel := a.aiContext(cmd)
			defer cancel()

			recipes, err := service.SuggestRecipes(ctx, a.estimator(), a.store)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(recipes) == 0 {
				fmt.Fprintln(out, "No recipes suggested")
				return nil
			}
			for i, r := range recipes {
				fmt.Fprintf(out, "%d. %s (%.0f kcal | P %.1fg C %.1fg F %.1fg)\n", i+1, r.Name, r.Calories, r.Protein, r.Carbs, r.Fat)
				if r.Description != "" {
					fmt.Fprintf(out, "   %s\n", r.Description)
				}
				if len(r.Ingredients) > 0 {
					fmt.Fprintf(out, "   Ingredients: %s\n", strings.Join(r.Ingredients, ", "))
				}
			}

			if recipeAdd == 0 {
				return nil
			}
			if recipeAdd > len(recipes) {
				return fmt.Errorf("--add %d out of range (1-%d)", recipeAdd, len(recipes))
			}
			chosen := recipes[recipeAdd-1]
			ok, err := confirmOrSkip(recipeYes, fmt.Sprintf("Log %q as a meal?", chosen.Name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Nothing saved")
				return nil
			}
			item, err := service.AddRecipeMeal(a.store, a.clock, chosen)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Added %s (%s, %.0f kcal)\n", item.Name, item.PortionDescription, item.Calories)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(recipeCmd)
	recipeCmd.AddCommand(recipeSuggestCmd)

	recipeSuggestCmd.Flags().IntVar(&recipeAdd, "add", 0, "Log suggestion number n as a meal")
	recipeSuggestCmd.Flags().BoolVar(&recipeYes, "yes", false, "Save without asking")
}
