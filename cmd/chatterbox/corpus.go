package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

func newCorpusCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Manage stored training corpora",
	}

	cmd.AddCommand(
		newCorpusAddCmd(cfgPath),
		newCorpusListCmd(cfgPath),
		newCorpusRemoveCmd(cfgPath),
		newCorpusExportCmd(cfgPath),
	)

	return cmd
}

func newCorpusAddCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <file>",
		Short: "Store a text file as a named corpus",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			content, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}
			return a.store.Add(cmd.Context(), args[0], string(content))
		},
	}
}

func newCorpusListCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored corpora",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			infos, err := a.store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no corpora stored")
				return nil
			}
			for _, info := range infos {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %8d bytes  added %s\n",
					info.Name, info.Size, info.AddedAt.Format("2006-01-02"))
			}
			return nil
		},
	}
}

func newCorpusRemoveCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a stored corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			return a.store.Remove(cmd.Context(), args[0])
		},
	}
}

func newCorpusExportCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export <name> <file>",
		Short: "Write a stored corpus back out to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(*cfgPath)
			if err != nil {
				return err
			}
			defer a.Close()

			content, err := a.store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return atomic.WriteFile(args[1], strings.NewReader(content))
		},
	}
}
