package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/stickerdiary/internal/diary"
)

func newDiariesCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "diaries",
		Short: "Manage diaries",
	}
	command.AddCommand(
		newDiariesListCommand(),
		newDiariesCreateCommand(),
		newDiariesTrashCommand(),
		newDiariesRestoreCommand(),
		newDiariesDeleteCommand(),
		newDiariesEmptyTrashCommand(),
		newDiariesLikeCommand(),
		newDiariesShareCommand(),
	)
	return command
}

func newDiariesListCommand() *cobra.Command {
	var (
		trash    bool
		query    string
		from, to string
	)
	command := &cobra.Command{
		Use:   "list",
		Short: "List diaries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if trash && (query != "" || from != "" || to != "") {
				return fmt.Errorf("--trash cannot be combined with --query, --from or --to")
			}

			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			ownerID := a.cfg.Editor.OwnerID
			var diaries []diary.Diary
			switch {
			case trash:
				diaries, err = a.diaries.GetTrash(ctx, ownerID)
			case query != "":
				diaries, err = a.diaries.Search(ctx, ownerID, query)
			case from != "" || to != "":
				diaries, err = a.diaries.SearchByDateRange(ctx, ownerID, from, to)
			default:
				diaries, err = a.diaries.GetAll(ctx, ownerID)
			}
			if err != nil {
				return fmt.Errorf("failed to list diaries: %w", err)
			}
			printDiaries(cmd.OutOrStdout(), diaries)
			return nil
		},
	}
	flags := command.Flags()
	flags.BoolVar(&trash, "trash", false, "List diaries in the trash")
	flags.StringVarP(&query, "query", "q", "", "Search titles and memos")
	flags.StringVar(&from, "from", "", "Earliest date (YYYY-MM-DD)")
	flags.StringVar(&to, "to", "", "Latest date (YYYY-MM-DD)")
	return command
}

func newDiariesCreateCommand() *cobra.Command {
	var (
		title      string
		date       string
		memo       string
		background = BackgroundFlag(diary.BackgroundPlain)
	)
	command := &cobra.Command{
		Use:   "create",
		Short: "Create an empty diary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			d, err := a.diaries.Create(ctx, a.cfg.Editor.OwnerID, diary.Content{
				Title:      title,
				Date:       date,
				Memo:       memo,
				Background: diary.Background(background),
			})
			if err != nil {
				return fmt.Errorf("a.diaries.Create() > %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), d.ID)
			return nil
		},
	}
	flags := command.Flags()
	flags.StringVar(&title, "title", "", "Diary title")
	flags.StringVar(&date, "date", "", "Diary date (YYYY-MM-DD, default today)")
	flags.StringVar(&memo, "memo", "", "Memo")
	flags.Var(&background, "background", "Background. Options: "+joinBackgrounds())
	return command
}

// newDiaryActionCommand builds a command that runs action on a single diary id.
func newDiaryActionCommand(use, short string, action func(cmd *cobra.Command, a *app, id string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <diary id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			return action(cmd, a, args[0])
		},
	}
}

func newDiariesTrashCommand() *cobra.Command {
	return newDiaryActionCommand("trash", "Move a diary to the trash", func(cmd *cobra.Command, a *app, id string) error {
		if err := a.diaries.Delete(cmd.Context(), id); err != nil {
			return fmt.Errorf("a.diaries.Delete(%s) > %w", id, err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "moved %s to the trash\n", id)
		return nil
	})
}

func newDiariesRestoreCommand() *cobra.Command {
	return newDiaryActionCommand("restore", "Restore a diary from the trash", func(cmd *cobra.Command, a *app, id string) error {
		d, err := a.diaries.Restore(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("a.diaries.Restore(%s) > %w", id, err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", d.Title)
		return nil
	})
}

func newDiariesDeleteCommand() *cobra.Command {
	return newDiaryActionCommand("delete", "Delete a diary in the trash permanently", func(cmd *cobra.Command, a *app, id string) error {
		if err := a.diaries.PermanentDelete(cmd.Context(), id); err != nil {
			return fmt.Errorf("a.diaries.PermanentDelete(%s) > %w", id, err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
		return nil
	})
}

func newDiariesEmptyTrashCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "empty-trash",
		Short: "Delete every diary in the trash permanently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.diaries.EmptyTrash(ctx, a.cfg.Editor.OwnerID); err != nil {
				return fmt.Errorf("a.diaries.EmptyTrash() > %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "emptied the trash")
			return nil
		},
	}
}

func newDiariesLikeCommand() *cobra.Command {
	return newDiaryActionCommand("like", "Like a diary", func(cmd *cobra.Command, a *app, id string) error {
		d, err := a.diaries.ToggleLike(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("a.diaries.ToggleLike(%s) > %w", id, err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s has %d likes\n", d.Title, d.Likes)
		return nil
	})
}

func newDiariesShareCommand() *cobra.Command {
	var private bool
	command := newDiaryActionCommand("share", "Publish a diary and print its share link", func(cmd *cobra.Command, a *app, id string) error {
		d, err := a.diaries.SetPublic(cmd.Context(), id, !private)
		if err != nil {
			return fmt.Errorf("a.diaries.SetPublic(%s) > %w", id, err)
		}
		if !d.IsPublic {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is private\n", d.Title)
			return nil
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), diary.ShareURL(a.cfg.Share.BaseURL, d.ID))
		return nil
	})
	command.Flags().BoolVar(&private, "private", false, "Stop sharing the diary")
	return command
}
