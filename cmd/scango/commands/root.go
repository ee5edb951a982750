// Package commands implements the CLI commands for scango.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/scango/internal/app"
	"go.trai.ch/scango/internal/build"
)

// CLI represents the command line interface for scango.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Scan(ctx context.Context, opts app.ScanOptions) error
	ServeCatalog(ctx context.Context, addr string, flags app.CatalogFlags) error
	Lookup(ctx context.Context, barcode string, flags app.CatalogFlags) error
	ImportCatalog(ctx context.Context, file, dsn string) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "scango",
		Short:         "Scan barcodes into a shopping cart",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newScanCmd())
	rootCmd.AddCommand(c.newCatalogCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the standard and error output for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func addCatalogFlags(cmd *cobra.Command, flags *app.CatalogFlags) {
	cmd.Flags().StringVar(&flags.URL, "catalog-url", "", "Base URL of a catalog service")
	cmd.Flags().StringVar(&flags.File, "catalog-file", "", "YAML product file")
	cmd.Flags().StringVar(&flags.DSN, "dsn", "", "Postgres connection string")
	cmd.MarkFlagsMutuallyExclusive("catalog-url", "catalog-file", "dsn")
}
