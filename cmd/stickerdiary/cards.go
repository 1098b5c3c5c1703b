package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/stickerdiary/internal/card"
)

func newCardsCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "cards",
		Short: "Manage the webtoon and web novel catalog",
	}
	command.AddCommand(
		newCardsListCommand(),
		newCardsSearchCommand(),
		newCardsImportCommand(),
		newCardsExportCommand(),
		newCardsStatusCommand(),
		newCardsMoveCommand(),
		newCardsDeleteCommand(),
		newCardsStatsCommand(),
	)
	return command
}

// runWithApp opens the repositories before run and closes them after.
func runWithApp(run func(cmd *cobra.Command, a *app, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, a, args)
	}
}

func newCardsListCommand() *cobra.Command {
	var (
		status   StatusFlag
		platform string
		genre    string
		folderID string
	)
	command := &cobra.Command{
		Use:   "list",
		Short: "List catalog cards",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, a *app, args []string) error {
			cards, err := a.cards.Filter(cmd.Context(), card.Filter{
				Status:   card.Status(status),
				Platform: card.Platform(platform),
				Genre:    genre,
				FolderID: folderID,
			})
			if err != nil {
				return fmt.Errorf("a.cards.Filter() > %w", err)
			}
			printCards(cmd.OutOrStdout(), cards)
			return nil
		}),
	}
	flags := command.Flags()
	flags.Var(&status, "status", "Only cards with this status")
	flags.StringVar(&platform, "platform", "", "Only cards from this platform")
	flags.StringVar(&genre, "genre", "", "Only cards with this genre")
	flags.StringVar(&folderID, "folder", "", "Only cards in this folder")
	return command
}

func newCardsSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search titles, authors and descriptions",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, a *app, args []string) error {
			cards, err := a.cards.Search(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("a.cards.Search(%s) > %w", args[0], err)
			}
			printCards(cmd.OutOrStdout(), cards)
			return nil
		}),
	}
}

func newCardsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <catalog yaml>",
		Short: "Add the cards of a catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, a *app, args []string) error {
			catalog, err := card.LoadCatalogFile(args[0])
			if err != nil {
				return err
			}
			imported, err := card.Import(cmd.Context(), a.cards, catalog.Cards)
			if err != nil {
				return fmt.Errorf("card.Import() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d cards\n", imported)
			return nil
		}),
	}
}

func newCardsExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <catalog yaml>",
		Short: "Write the catalog to a file",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, a *app, args []string) error {
			cards, err := a.cards.GetAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("a.cards.GetAll() > %w", err)
			}
			if err := card.WriteCatalogFile(args[0], cards); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d cards to %s\n", len(cards), args[0])
			return nil
		}),
	}
}

func newCardsStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <card id> <status>",
		Short: "Change the reading status of a card",
		Args:  cobra.ExactArgs(2),
		RunE: runWithApp(func(cmd *cobra.Command, a *app, args []string) error {
			var status StatusFlag
			if err := status.Set(args[1]); err != nil {
				return err
			}
			c, err := a.cards.UpdateStatus(cmd.Context(), args[0], card.Status(status))
			if err != nil {
				return fmt.Errorf("a.cards.UpdateStatus(%s) > %w", args[0], err)
			}
			printCards(cmd.OutOrStdout(), []card.Card{*c})
			return nil
		}),
	}
}

func newCardsMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <card id> [folder id]",
		Short: "Move a card into a folder, or out of every folder without a folder id",
		Args:  cobra.RangeArgs(1, 2),
		RunE: runWithApp(func(cmd *cobra.Command, a *app, args []string) error {
			folderID := ""
			if len(args) == 2 {
				folderID = args[1]
			}
			c, err := a.cards.MoveToFolder(cmd.Context(), args[0], folderID)
			if err != nil {
				return fmt.Errorf("a.cards.MoveToFolder(%s) > %w", args[0], err)
			}
			printCards(cmd.OutOrStdout(), []card.Card{*c})
			return nil
		}),
	}
}

func newCardsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <card id>",
		Short: "Remove a card from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: runWithApp(func(cmd *cobra.Command, a *app, args []string) error {
			if err := a.cards.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("a.cards.Delete(%s) > %w", args[0], err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		}),
	}
}

func newCardsStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count cards per status",
		Args:  cobra.NoArgs,
		RunE: runWithApp(func(cmd *cobra.Command, a *app, args []string) error {
			stats, err := a.cards.Stats(cmd.Context())
			if err != nil {
				return fmt.Errorf("a.cards.Stats() > %w", err)
			}
			w := cmd.OutOrStdout()
			_, _ = bold.Fprintf(w, "total %d\n", stats.Total)
			for _, row := range []struct {
				status card.Status
				count  int
			}{
				{card.StatusWatching, stats.Watching},
				{card.StatusPlanToWatch, stats.PlanToWatch},
				{card.StatusCompleted, stats.Completed},
				{card.StatusOnHold, stats.OnHold},
			} {
				_, _ = statusColors[row.status].Fprintf(w, "%-12s %d\n", row.status, row.count)
			}
			return nil
		}),
	}
}
