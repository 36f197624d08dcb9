package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/pratyaywrites/profile-backend/pkg/api"
)

type docListOpts struct {
	*rootOpts
	database   string
	collection string
	query      string
	limit      int64
}

func newDocList(parent *rootOpts) *docListOpts {
	return &docListOpts{rootOpts: parent}
}

func (opts *docListOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List documents in a collection.",
		Example: makeExample(`profctl list -d profile -c projects -q '{"role": "author"}' -n 20`),
		RunE:    opts.RunE,
	}
	cmd.Flags().StringVarP(&opts.database, "database", "d", "", "Database to list from")
	cmd.Flags().StringVarP(&opts.collection, "collection", "c", "", "Collection to list from")
	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "Filter documents with a JSON query object")
	cmd.Flags().Int64VarP(&opts.limit, "limit", "n", 0, "Limit the number of documents returned")
	return cmd
}

func (opts *docListOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return errorWantedNoArgs
	}
	ref, err := refFromOpts(opts.database, opts.collection)
	if err != nil {
		return err
	}

	query := api.Query{}
	if opts.query != "" {
		if err := json.Unmarshal([]byte(opts.query), &query); err != nil {
			return newUsageError("the query must be a JSON object: " + err.Error())
		}
	}

	docs, err := opts.API.ListDocuments(context.Background(), ref, query, opts.limit)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), docs)
}
