package nutri

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/clydenvis-afk/nutriaitracker/internal/service"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON backup of profile, meals, exercises and weight logs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *appContext) error {
			now := a.clock.Now()
			out := strings.TrimSpace(exportOut)
			if out == "" {
				out = service.BackupFileName(now)
			}
			info, err := service.WriteBackup(out, service.ExportBackup(a.store, now))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup written: %s\n", info.Path)
			fmt.Fprintf(cmd.OutOrStdout(), "Checksum (sha256): %s\n", info.Checksum)
			return nil
		})
	},
}

var (
	importIn  string
	importYes bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Restore a JSON backup, replacing the collections it contains",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		raw, err := service.ReadBackup(importIn)
		if err != nil {
			return err
		}
		ok, err := confirmOrSkip(importYes, "This will overwrite current data. Continue?")
		if err != nil {
			return err
		}
		if !ok {
			return service.ErrImportCancelled
		}
		return withApp(func(a *appContext) error {
			started := time.Now()
			summary, err := service.ImportBackup(a.store, raw)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{"replaced": summary.Replaced, "elapsed": time.Since(started)}).Info("backup imported")
			if len(summary.Replaced) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Backup contained no collections; nothing changed")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported: meals=%d exercises=%d weight_logs=%d profile=%t\n",
				summary.Meals, summary.Exercises, summary.WeightLogs, summary.Profile)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default nutritracker_backup_YYYY-MM-DD.json)")
	importCmd.Flags().StringVar(&importIn, "in", "", "Backup file to import")
	importCmd.Flags().BoolVar(&importYes, "yes", false, "Import without asking")
}
