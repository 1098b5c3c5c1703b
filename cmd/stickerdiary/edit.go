package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/stickerdiary/internal/editor"
	"github.com/at-ishikawa/stickerdiary/internal/tui"
)

const editorLogFile = "stickerdiary.log"

func newEditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [diary id]",
		Short: "Open the canvas editor for a stored diary, or a new one without an id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			// The terminal belongs to the editor until it quits, so logs go to a file.
			logger, closeLog, err := newFileLogger(filepath.Join(a.cfg.Outputs.Directory, editorLogFile), debug)
			if err != nil {
				return err
			}
			defer closeLog()

			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			engine, err := newEditorEngine(ctx, a, id, editor.WithLogger(logger))
			if err != nil {
				return err
			}
			defer engine.Close()

			if err := tui.Run(ctx, engine,
				tui.WithShareBaseURL(a.cfg.Share.BaseURL),
				tui.WithLogger(logger),
			); err != nil {
				return err
			}
			if err := saveOnExit(ctx, engine); err != nil {
				return err
			}
			if engine.ID() != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), engine.ID())
			}
			return nil
		},
	}
}

// newEditorEngine opens the diary id, or starts a new diary when id is empty.
func newEditorEngine(ctx context.Context, a *app, id string, opts ...editor.Option) (*editor.Engine, error) {
	editorConfig := a.cfg.Editor
	opts = append([]editor.Option{
		editor.WithCatalog(a.cards),
		editor.WithOwner(editorConfig.OwnerID),
		editor.WithAuthor(editorConfig.Author),
		editor.WithAutosaveDelay(time.Duration(editorConfig.AutosaveSeconds) * time.Second),
		editor.WithSnap(editorConfig.Snap),
		editor.WithGuides(editorConfig.Guides),
	}, opts...)

	if id == "" {
		return editor.New(a.diaries, opts...), nil
	}
	engine, err := editor.Open(ctx, a.diaries, id, opts...)
	if err != nil {
		return nil, fmt.Errorf("editor.Open(%s) > %w", id, err)
	}
	return engine, nil
}

// saveOnExit stores edits the autosave has not written yet.
func saveOnExit(ctx context.Context, engine *editor.Engine) error {
	status, _ := engine.Status()
	if status != editor.StatusUnsaved && status != editor.StatusError {
		return nil
	}
	if err := engine.Save(ctx, true); err != nil {
		return fmt.Errorf("engine.Save() > %w", err)
	}
	return nil
}

func newFileLogger(path string, debugMode bool) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("os.OpenFile(%s) > %w", path, err)
	}
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = file.Close() }, nil
}
