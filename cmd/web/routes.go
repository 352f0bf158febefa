package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"institutonuevovallarta.mx/inva-web/internal/site"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the page route table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printRoutes(cmd.OutOrStdout())
			return nil
		},
	}
}

func printRoutes(w io.Writer) {
	for _, rt := range site.Routes {
		fmt.Fprintf(w, "%-12s %s\n", rt.Path, rt.Name)
	}
}
