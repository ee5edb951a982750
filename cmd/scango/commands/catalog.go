package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/scango/internal/app"
)

func (c *CLI) newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Serve and query the product catalog",
	}
	cmd.AddCommand(c.newCatalogServeCmd())
	cmd.AddCommand(c.newCatalogLookupCmd())
	cmd.AddCommand(c.newCatalogImportCmd())
	return cmd
}

func (c *CLI) newCatalogServeCmd() *cobra.Command {
	var (
		flags app.CatalogFlags
		addr  string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.ServeCatalog(cmd.Context(), addr, flags)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on")
	cmd.Flags().StringVar(&flags.File, "catalog-file", "", "YAML product file")
	cmd.Flags().StringVar(&flags.DSN, "dsn", "", "Postgres connection string")
	cmd.MarkFlagsMutuallyExclusive("catalog-file", "dsn")
	return cmd
}

func (c *CLI) newCatalogLookupCmd() *cobra.Command {
	var flags app.CatalogFlags
	cmd := &cobra.Command{
		Use:   "lookup <barcode>",
		Short: "Look up a single barcode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Lookup(cmd.Context(), args[0], flags)
		},
	}
	addCatalogFlags(cmd, &flags)
	return cmd
}

func (c *CLI) newCatalogImportCmd() *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load a YAML product file into the Postgres catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.ImportCatalog(cmd.Context(), args[0], dsn)
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "Postgres connection string")
	return cmd
}
