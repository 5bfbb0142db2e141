package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cognicore/nameparser/pkg/nameparser/language"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the built-in languages and their table sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			head := color.New(color.FgWhite, color.Bold)

			head.Fprintf(out, "%-10s %11s %6s %8s %10s %8s %9s\n",
				"LANGUAGE", "SALUTATIONS", "TITLES", "PREFIXES", "EXTENSIONS", "SUFFIXES", "COMPANIES")
			for _, name := range language.BuiltinNames() {
				lang, err := language.Builtin(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-10s %11d %6d %8d %10d %8d %9d\n",
					name,
					len(lang.Salutations()),
					len(lang.Titles()),
					len(lang.LastnamePrefixes()),
					len(lang.Extensions()),
					len(lang.Suffixes()),
					len(lang.Companies()),
				)
			}
			return nil
		},
	}
}
