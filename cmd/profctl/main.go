package main

import (
	"fmt"
	"os"
)

func main() {
	root := newRoot()
	rootCmd := root.Command()

	rootCmd.AddCommand(
		newVersionCommand(),
		newStatus(root).Command(),
		newDocCreate(root).Command(),
		newDocList(root).Command(),
		newDocGet(root).Command(),
		newDocUpdate(root).Command(),
		newDocDelete(root).Command(),
		newBlogList(root).Command(),
	)

	if cmd, err := rootCmd.ExecuteC(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		switch err.(type) {
		case usageError:
			cmd.Println("")
			cmd.Println(cmd.UsageString())
		}
		os.Exit(1)
	}
}
