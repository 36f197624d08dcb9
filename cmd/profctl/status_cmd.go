package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type statusOpts struct {
	*rootOpts
}

func newStatus(parent *rootOpts) *statusOpts {
	return &statusOpts{rootOpts: parent}
}

func (opts *statusOpts) Command() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   "Check that the daemon is up, and report its version.",
		Example: makeExample("profctl status"),
		RunE:    opts.RunE,
	}
}

func (opts *statusOpts) RunE(cmd *cobra.Command, args []string) error {
	if len(args) != 0 {
		return errorWantedNoArgs
	}

	ctx := context.Background()

	if err := opts.API.Ping(ctx); err != nil {
		return err
	}
	version, err := opts.API.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok, daemon version %s\n", version)
	return nil
}
