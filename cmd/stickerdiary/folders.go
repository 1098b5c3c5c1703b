package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/stickerdiary/internal/card"
)

func newFoldersCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "folders",
		Short: "Manage catalog folders",
	}
	command.AddCommand(
		newFoldersListCommand(),
		newFoldersCreateCommand(),
		newFoldersUpdateCommand(),
		newFoldersDeleteCommand(),
	)
	return command
}

func newFoldersListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List folders",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, a *app, args []string) error {
			folders, err := a.cards.GetFolders(cmd.Context())
			if err != nil {
				return fmt.Errorf("a.cards.GetFolders() > %w", err)
			}
			printFolders(cmd.OutOrStdout(), folders)
			return nil
		}),
	}
}

func newFoldersCreateCommand() *cobra.Command {
	var color string
	command := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, a *app, args []string) error {
			folder, err := a.cards.CreateFolder(cmd.Context(), args[0], color)
			if err != nil {
				return fmt.Errorf("a.cards.CreateFolder(%s) > %w", args[0], err)
			}
			printFolders(cmd.OutOrStdout(), []card.Folder{*folder})
			return nil
		}),
	}
	command.Flags().StringVar(&color, "color", "", "Folder colour, for example #FFB6C1")
	return command
}

func newFoldersUpdateCommand() *cobra.Command {
	var name, color string
	command := &cobra.Command{
		Use:   "update <folder id>",
		Short: "Rename or recolour a folder",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, a *app, args []string) error {
			if name == "" && color == "" {
				return fmt.Errorf("either --name or --color is required")
			}
			folder, err := a.cards.UpdateFolder(cmd.Context(), args[0], name, color)
			if err != nil {
				return fmt.Errorf("a.cards.UpdateFolder(%s) > %w", args[0], err)
			}
			printFolders(cmd.OutOrStdout(), []card.Folder{*folder})
			return nil
		}),
	}
	flags := command.Flags()
	flags.StringVar(&name, "name", "", "New name")
	flags.StringVar(&color, "color", "", "New colour")
	return command
}

func newFoldersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <folder id>",
		Short: "Delete a folder. Its cards stay in the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.cards.DeleteFolder(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("a.cards.DeleteFolder(%s) > %w", args[0], err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		}),
	}
}
