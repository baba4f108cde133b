package nutri

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clydenvis-afk/nutriaitracker/internal/service"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Track body weight",
}

var weightUnit string

var weightLogCmd = &cobra.Command{
	Use:   "log <weight>",
	Short: "Record today's weight (replaces an earlier entry for today)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
		if err != nil {
			return fmt.Errorf("invalid weight %q", args[0])
		}
		return withApp(func(a *appContext) error {
			entry, err := service.LogWeight(a.store, a.clock, service.WeightInput{Weight: value, Unit: weightUnit})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %.2f kg for %s\n", entry.Weight, entry.Date)
			return nil
		})
	},
}

var (
	weightListLimit int
	weightListUnit  string
)

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List weight history, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appContext) error {
			unit := weightListUnit
			if unit == "" {
				unit = "kg"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "DATE\tWEIGHT\tUNIT")
			for _, l := range service.WeightHistory(a.store.WeightLogs(), weightListLimit) {
				w, err := service.WeightFromKg(l.Weight, unit)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%.2f\t%s\n", l.Date, w, unit)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightLogCmd, weightListCmd)

	weightLogCmd.Flags().StringVar(&weightUnit, "unit", "kg", "Weight unit: kg or lb")
	weightListCmd.Flags().IntVar(&weightListLimit, "limit", 10, "Show the last n entries (0 for all)")
	weightListCmd.Flags().StringVar(&weightListUnit, "unit", "kg", "Display unit: kg or lb")
}
