package cmd

import (
	"fmt"
	"strconv"

	"github.com/abdul-hamid-achik/wave/packages/core/collection"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [collection]",
	Short: "List collections, or the requests in one collection",
	Long: `List the collections in the collection directory, or the requests defined
in one collection.

Examples:
  wave list
  wave list users`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	inv, err := newInvocation(cmd)
	if err != nil {
		return err
	}
	loader := collection.NewLoader(inv.cfg.Dir)

	if len(args) == 1 {
		coll, err := loader.Load(args[0])
		if err != nil {
			return err
		}
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header([]string{"Request", "Method", "URL"})
		for _, req := range coll.Requests {
			table.Append([]string{req.Name, req.Method, req.URL})
		}
		return table.Render()
	}

	names, err := loader.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No collections in %s\n", loader.Dir())
		return nil
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.Header([]string{"Collection", "Requests", "File"})
	for _, name := range names {
		coll, err := loader.Load(name)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error loading %s: %v\n", name, err)
			continue
		}
		table.Append([]string{coll.Name, strconv.Itoa(len(coll.Requests)), coll.Path})
	}
	return table.Render()
}
