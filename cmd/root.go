package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stockledger/internal/config"
	"stockledger/internal/export"
	"stockledger/internal/localstore"
)

var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the local snapshot to a backup or report file.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(".env")
		if err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("file")
		format, _ := cmd.Flags().GetString("format")

		snapshot, found, err := localstore.New(cfg.Local.SnapshotPath).Load()
		if err != nil {
			return fmt.Errorf("load local snapshot: %w", err)
		}
		if !found {
			return errors.New("no local snapshot to export")
		}

		out, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()

		switch format {
		case "json":
			return export.WriteBackup(out, snapshot)
		case "csv":
			return export.WriteCSVReport(out, snapshot.Items)
		default:
			return fmt.Errorf("unknown format %q, use json or csv", format)
		}
	},
}

var ImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the local snapshot with a backup file.",
	Long:  `Replaces the whole collection unconditionally. Requires --confirm.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(".env")
		if err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("file")
		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm {
			return errors.New("import replaces the whole collection; pass --confirm to proceed")
		}

		in, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open backup file: %w", err)
		}
		defer in.Close()

		snapshot, err := export.ReadBackup(in)
		if err != nil {
			return err
		}

		if err := localstore.New(cfg.Local.SnapshotPath).Save(snapshot); err != nil {
			return err
		}

		fmt.Printf("Imported %d items\n", len(snapshot.Items))
		return nil
	},
}

func Execute(ctx context.Context) {
	rootCmd := &cobra.Command{
		Use:   "stockledger",
		Short: "Inventory ledger and serial allocation service",
	}

	ExportCmd.Flags().String("file", "inventory-backup.json", "Output file path")
	ExportCmd.Flags().String("format", "json", "Output format: json or csv")
	ImportCmd.Flags().String("file", "inventory-backup.json", "Backup file path")
	ImportCmd.Flags().Bool("confirm", false, "Confirm the destructive replace")

	rootCmd.AddCommand(ExportCmd)
	rootCmd.AddCommand(ImportCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
