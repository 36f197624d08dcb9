package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pratyaywrites/profile-backend/pkg/api"
	transport "github.com/pratyaywrites/profile-backend/pkg/http"
	"github.com/pratyaywrites/profile-backend/pkg/http/client"
)

const (
	EnvVariableURL      = "PROFILE_URL"
	EnvVariablePassword = "ADMIN_PASS"
)

type rootOpts struct {
	URL      string
	Password string
	API      api.Server
}

func newRoot() *rootOpts {
	return &rootOpts{}
}

var rootLongHelp = strings.TrimSpace(`
profctl operates the profile backend.

Workflow:
  profctl status                                          # Is the daemon up, and which version?
  profctl list -d profile -c projects                     # What documents are in a collection?
  profctl create -d profile -c projects '{"name": "x"}'   # Add a document (needs the admin password).
  profctl blogs                                           # What has the blog published lately?
`)

func (opts *rootOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "profctl",
		Long:              rootLongHelp,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.PersistentPreRunE,
	}
	cmd.PersistentFlags().StringVarP(&opts.URL, "url", "u", "http://localhost:3000",
		fmt.Sprintf("base URL of the profiled API server; you can also set the environment variable %s", EnvVariableURL))
	cmd.PersistentFlags().StringVarP(&opts.Password, "admin-password", "p", "",
		fmt.Sprintf("admin password for write operations; you can also set the environment variable %s", EnvVariablePassword))
	return cmd
}

func (opts *rootOpts) PersistentPreRunE(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed("url") {
		if url := os.Getenv(EnvVariableURL); url != "" {
			opts.URL = url
		}
	}
	if !cmd.Flags().Changed("admin-password") {
		if password := os.Getenv(EnvVariablePassword); password != "" {
			opts.Password = password
		}
	}

	opts.API = client.New(http.DefaultClient, transport.NewAPIRouter(), opts.URL, client.Token(opts.Password))
	return nil
}
