package cmd

import (
	"fmt"

	"github.com/abdul-hamid-achik/wave/packages/core/collection"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [collection...]",
	Short: "Validate collection files without sending anything",
	Long: `Load and check collection files. With no arguments every collection in
the collection directory is checked.

Examples:
  wave validate
  wave validate users billing`,
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	inv, err := newInvocation(cmd)
	if err != nil {
		return err
	}
	loader := collection.NewLoader(inv.cfg.Dir)

	names := args
	if len(names) == 0 {
		names, err = loader.List()
		if err != nil {
			return err
		}
		if len(names) == 0 {
			return fmt.Errorf("no collections found in %s", loader.Dir())
		}
	}

	hasErrors := false
	for _, name := range names {
		coll, err := loader.Load(name)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error in %s: %v\n", name, err)
			hasErrors = true
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s (%d requests)\n", coll.Path, len(coll.Requests))
	}

	if hasErrors {
		return errValidationFailed
	}
	return nil
}
