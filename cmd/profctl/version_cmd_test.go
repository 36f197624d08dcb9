package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand_InputFailure(t *testing.T) {
	buf := new(bytes.Buffer)
	cmd := newVersionCommand()
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"extra"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("Expecting error: command is not expecting extra arguments")
	}
}

func TestVersionCommand_Success(t *testing.T) {
	for _, e := range []string{
		"v1.0.0",
		"v2.0.0",
	} {
		t.Run(e, func(t *testing.T) {
			buf := new(bytes.Buffer)
			cmd := newVersionCommand()
			version = e
			cmd.SetOut(buf)
			cmd.SetArgs([]string{})
			if err := cmd.Execute(); err != nil {
				t.Fatalf("Expecting nil, got error (%s)", err.Error())
			}
			if g := strings.TrimRight(buf.String(), "\n"); e != g {
				t.Fatalf("Expected %s, got %s", e, g)
			}
		})
	}
}

func TestRefFromOpts(t *testing.T) {
	if _, err := refFromOpts("", "projects"); err == nil {
		t.Fatal("expected an error for a missing database")
	}
	if _, err := refFromOpts("profile", ""); err == nil {
		t.Fatal("expected an error for a missing collection")
	}
	ref, err := refFromOpts("profile", "projects")
	if err != nil {
		t.Fatal(err)
	}
	if ref.Database != "profile" || ref.Collection != "projects" {
		t.Fatalf("unexpected ref %v", ref)
	}
}
