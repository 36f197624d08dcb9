package main

import (
	"context"

	"github.com/spf13/cobra"
)

type docGetOpts struct {
	*rootOpts
	database   string
	collection string
}

func newDocGet(parent *rootOpts) *docGetOpts {
	return &docGetOpts{rootOpts: parent}
}

func (opts *docGetOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "get <id>",
		Short:   "Fetch a single document by its ID.",
		Example: makeExample("profctl get -d profile -c projects 66b2f0a19c3b4e001f2a5c77"),
		RunE:    opts.RunE,
	}
	cmd.Flags().StringVarP(&opts.database, "database", "d", "", "Database to fetch from")
	cmd.Flags().StringVarP(&opts.collection, "collection", "c", "", "Collection to fetch from")
	return cmd
}

func (opts *docGetOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return newUsageError("expected a single document ID argument")
	}
	ref, err := refFromOpts(opts.database, opts.collection)
	if err != nil {
		return err
	}

	doc, err := opts.API.GetDocument(context.Background(), ref, args[0])
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), doc)
}
