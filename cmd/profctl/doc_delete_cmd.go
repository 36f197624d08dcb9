package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type docDeleteOpts struct {
	*rootOpts
	database   string
	collection string
}

func newDocDelete(parent *rootOpts) *docDeleteOpts {
	return &docDeleteOpts{rootOpts: parent}
}

func (opts *docDeleteOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Short:   "Delete a single document by its ID.",
		Example: makeExample("profctl delete -d profile -c projects 66b2f0a19c3b4e001f2a5c77"),
		RunE:    opts.RunE,
	}
	cmd.Flags().StringVarP(&opts.database, "database", "d", "", "Database holding the document")
	cmd.Flags().StringVarP(&opts.collection, "collection", "c", "", "Collection holding the document")
	return cmd
}

func (opts *docDeleteOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return newUsageError("expected a single document ID argument")
	}
	ref, err := refFromOpts(opts.database, opts.collection)
	if err != nil {
		return err
	}

	result, err := opts.API.DeleteDocument(context.Background(), ref, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", result.DeletedCount)
	return nil
}
