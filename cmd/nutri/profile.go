package nutri

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clydenvis-afk/nutriaitracker/internal/model"
	"github.com/clydenvis-afk/nutriaitracker/internal/service"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or edit your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appContext) error {
			printProfile(cmd, a.store.Profile())
			return nil
		})
	},
}

var (
	profileName   string
	profileAge    int
	profileHeight float64
	profileWeight float64
	profileTarget float64
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.ProfileInput{}
		if cmd.Flags().Changed("name") {
			in.Name = &profileName
		}
		if cmd.Flags().Changed("age") {
			in.Age = &profileAge
		}
		if cmd.Flags().Changed("height") {
			in.Height = &profileHeight
		}
		if cmd.Flags().Changed("weight") {
			in.Weight = &profileWeight
		}
		if cmd.Flags().Changed("target-calories") {
			in.TargetCalories = &profileTarget
		}
		if in == (service.ProfileInput{}) {
			return fmt.Errorf("set at least one flag")
		}
		return withApp(func(a *appContext) error {
			p, err := service.UpdateProfile(a.store, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Updated profile")
			printProfile(cmd, p)
			return nil
		})
	},
}

func printProfile(cmd *cobra.Command, p model.UserProfile) {
	out := cmd.OutOrStdout()
	report := service.BMIForProfile(p)
	fmt.Fprintf(out, "Name: %s\n", p.Name)
	fmt.Fprintf(out, "Age: %d\n", p.Age)
	fmt.Fprintf(out, "Height: %.1f cm\n", p.Height)
	fmt.Fprintf(out, "Weight: %.1f kg\n", p.CurrentWeight)
	fmt.Fprintf(out, "Target: %.0f kcal/day\n", p.TargetCalories)
	fmt.Fprintf(out, "BMI: %.1f (%s)\n", report.BMI, report.Category)
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileSetCmd)

	profileSetCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileSetCmd.Flags().IntVar(&profileAge, "age", 0, "Age in years")
	profileSetCmd.Flags().Float64Var(&profileHeight, "height", 0, "Height in cm")
	profileSetCmd.Flags().Float64Var(&profileWeight, "weight", 0, "Current weight in kg")
	profileSetCmd.Flags().Float64Var(&profileTarget, "target-calories", 0, "Daily calorie target")
}
