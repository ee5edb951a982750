package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/scango/internal/app"
)

func (c *CLI) newScanCmd() *cobra.Command {
	var opts app.ScanOptions
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Start a scan session",
		Long: `Start a scan session. Barcodes come from a keyboard-wedge scanner or a
camera decoder. On a terminal an interactive cart screen is shown; otherwise
each line of stdin is scanned and the final cart is printed at end of input.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Scan(cmd.Context(), opts)
		},
	}
	addCatalogFlags(cmd, &opts.Catalog)
	cmd.Flags().StringVarP(&opts.Mode, "mode", "m", "", "Input channel: wedge or camera")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "auto", "Output style: auto, tui or linear")
	cmd.Flags().DurationVar(&opts.Cooldown, "cooldown", 0, "Ignore repeats of the same barcode within this window")
	cmd.Flags().BoolVar(&opts.Bell, "bell", false, "Ring the terminal bell on scan feedback")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	cmd.Flags().BoolVar(&opts.JSONLogs, "json-logs", false, "Write logs as JSON")
	return cmd
}
