package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pratyaywrites/profile-backend/pkg/api"
)

type docCreateOpts struct {
	*rootOpts
	database   string
	collection string
}

func newDocCreate(parent *rootOpts) *docCreateOpts {
	return &docCreateOpts{rootOpts: parent}
}

func (opts *docCreateOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create <document>",
		Short:   "Insert a document, given as a JSON object.",
		Example: makeExample(`profctl create -d profile -c projects '{"name": "pratyay", "role": "author"}'`),
		RunE:    opts.RunE,
	}
	cmd.Flags().StringVarP(&opts.database, "database", "d", "", "Database to insert into")
	cmd.Flags().StringVarP(&opts.collection, "collection", "c", "", "Collection to insert into")
	return cmd
}

func (opts *docCreateOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return newUsageError("expected a single JSON document argument")
	}
	ref, err := refFromOpts(opts.database, opts.collection)
	if err != nil {
		return err
	}

	var doc api.Document
	if err := json.Unmarshal([]byte(args[0]), &doc); err != nil {
		return newUsageError("the document must be a JSON object: " + err.Error())
	}

	result, err := opts.API.CreateDocument(context.Background(), ref, doc)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.InsertedID)
	return nil
}

func refFromOpts(database, collection string) (api.CollectionRef, error) {
	if database == "" || collection == "" {
		return api.CollectionRef{}, newUsageError("please supply both --database and --collection")
	}
	return api.CollectionRef{Database: database, Collection: collection}, nil
}
