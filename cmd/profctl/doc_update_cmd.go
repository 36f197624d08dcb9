package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pratyaywrites/profile-backend/pkg/api"
)

type docUpdateOpts struct {
	*rootOpts
	database   string
	collection string
}

func newDocUpdate(parent *rootOpts) *docUpdateOpts {
	return &docUpdateOpts{rootOpts: parent}
}

func (opts *docUpdateOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update <id> <fields>",
		Short:   "Set fields of an existing document. Fields are given as a JSON object.",
		Example: makeExample(`profctl update -d profile -c projects 66b2f0a19c3b4e001f2a5c77 '{"role": "maintainer"}'`),
		RunE:    opts.RunE,
	}
	cmd.Flags().StringVarP(&opts.database, "database", "d", "", "Database holding the document")
	cmd.Flags().StringVarP(&opts.collection, "collection", "c", "", "Collection holding the document")
	return cmd
}

func (opts *docUpdateOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		return newUsageError("expected a document ID and a JSON fields argument")
	}
	ref, err := refFromOpts(opts.database, opts.collection)
	if err != nil {
		return err
	}

	var fields api.Document
	if err := json.Unmarshal([]byte(args[1]), &fields); err != nil {
		return newUsageError("the fields must be a JSON object: " + err.Error())
	}

	result, err := opts.API.UpdateDocument(context.Background(), ref, args[0], fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "matched %d, modified %d\n", result.MatchedCount, result.ModifiedCount)
	return nil
}
