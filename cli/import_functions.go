package cli

import (
	"fmt"
	"os"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"orcamentos/collections"
)

// NewImportFunctionsCommand upserts the functions of a TOML catalog file.
func NewImportFunctionsCommand(app core.App) *cobra.Command {
	return &cobra.Command{
		Use:   "import-functions <file.toml>",
		Short: "Create or update employee functions from a TOML catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read catalog: %w", err)
			}
			defs, err := collections.ParseFunctionCatalog(data)
			if err != nil {
				return err
			}

			collections.Setup(app)
			created, updated, err := collections.ImportFunctions(app, defs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d function(s) created, %d updated\n", created, updated)
			return nil
		},
	}
}
