package nutri

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/clydenvis-afk/nutriaitracker/internal/clock"
	"github.com/clydenvis-afk/nutriaitracker/internal/render"
	"github.com/clydenvis-afk/nutriaitracker/internal/service"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Trends, macros, BMI and consistency calendar",
}

var (
	statsRange string
	statsChart bool
	statsWidth int
)

var statsTrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Net calories per day for the last week or month",
	RunE: func(cmd *cobra.Command, args []string) error {
		window, err := service.ParseTrendWindow(statsRange)
		if err != nil {
			return err
		}
		return withApp(func(a *appContext) error {
			target := a.store.Profile().TargetCalories
			points := service.BuildTrend(a.store.Meals(), a.store.Exercises(), window, a.clock.Now())
			out := cmd.OutOrStdout()
			if statsChart {
				fmt.Fprintln(out, render.TrendChart(points, target, statsWidth))
				return nil
			}
			fmt.Fprintln(out, "DATE\tDAY\tINTAKE\tBURNED\tNET")
			for _, p := range points {
				fmt.Fprintf(out, "%s\t%s\t%.0f\t%.0f\t%.0f\n", p.Date, p.Label, p.Intake, p.Burned, p.Net)
			}
			return nil
		})
	},
}

var statsMacrosCmd = &cobra.Command{
	Use:   "macros",
	Short: "Protein, carbs and fat distribution for the last week or month",
	RunE: func(cmd *cobra.Command, args []string) error {
		window, err := service.ParseTrendWindow(statsRange)
		if err != nil {
			return err
		}
		return withApp(func(a *appContext) error {
			points := service.BuildTrend(a.store.Meals(), a.store.Exercises(), window, a.clock.Now())
			summary := service.SummarizeMacros(points)
			out := cmd.OutOrStdout()
			if !summary.HasData() {
				fmt.Fprintf(out, "Macros (%s): no data\n", window)
				return nil
			}
			p, c, f, _ := summary.Shares()
			fmt.Fprintf(out, "Macros (%s)\n", window)
			fmt.Fprintf(out, "Protein: %.1fg (%.0f%%)\n", summary.Protein, p)
			fmt.Fprintf(out, "Carbs: %.1fg (%.0f%%)\n", summary.Carbs, c)
			fmt.Fprintf(out, "Fat: %.1fg (%.0f%%)\n", summary.Fat, f)
			fmt.Fprintln(out, render.MacroBar(summary, 30))
			return nil
		})
	},
}

var statsBMICmd = &cobra.Command{
	Use:   "bmi",
	Short: "Body mass index from profile height and weight",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appContext) error {
			r := service.BMIForProfile(a.store.Profile())
			fmt.Fprintf(cmd.OutOrStdout(), "BMI: %.1f\nCategory: %s\n", r.BMI, r.Category)
			return nil
		})
	},
}

var statsMonth string

var statsCalendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Month calendar coloured by calorie consistency",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appContext) error {
			anyDay := a.clock.Now()
			if m := strings.TrimSpace(statsMonth); m != "" {
				t, err := time.ParseInLocation("2006-01", m, a.clock.Location())
				if err != nil {
					return fmt.Errorf("invalid --month %q (expected YYYY-MM)", m)
				}
				anyDay = t
			}
			cal := service.MonthCalendar(a.store.Meals(), a.store.Exercises(), a.store.Profile().TargetCalories, anyDay)
			fmt.Fprintln(cmd.OutOrStdout(), render.Calendar(cal, clock.Today(a.clock)))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsTrendCmd, statsMacrosCmd, statsBMICmd, statsCalendarCmd)

	statsTrendCmd.Flags().StringVar(&statsRange, "range", "week", "week or month")
	statsTrendCmd.Flags().BoolVar(&statsChart, "chart", false, "Draw a bar chart")
	statsTrendCmd.Flags().IntVar(&statsWidth, "width", 60, "Chart width in columns")
	statsMacrosCmd.Flags().StringVar(&statsRange, "range", "week", "week or month")
	statsCalendarCmd.Flags().StringVar(&statsMonth, "month", "", "Month to show (YYYY-MM, default current)")
}
