package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type blogListOpts struct {
	*rootOpts
	num int
}

func newBlogList(parent *rootOpts) *blogListOpts {
	return &blogListOpts{rootOpts: parent}
}

func (opts *blogListOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "blogs",
		Short:   "List recent blog posts from the configured publication.",
		Example: makeExample("profctl blogs -n 5"),
		RunE:    opts.RunE,
	}
	cmd.Flags().IntVarP(&opts.num, "num", "n", 10, "Number of posts to list")
	return cmd
}

func (opts *blogListOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return errorWantedNoArgs
	}

	posts, err := opts.API.ListBlogs(context.Background(), opts.num)
	if err != nil {
		return err
	}

	w := newTabwriter()
	fmt.Fprintf(w, "TITLE\tURL\n")
	for _, post := range posts {
		fmt.Fprintf(w, "%s\t%s\n", post.Title, post.URL)
	}
	w.Flush()
	return nil
}
