package editor

import (
	"context"
	"fmt"
)

// Save writes the document to the repository. The first save of a new document creates it and
// adopts the returned id; later saves update it.
//
// A failed save sets the status to StatusError and, unless silent, alerts the user.
// Edits made while a save is in flight leave the status StatusUnsaved once it finishes.
func (e *Engine) Save(ctx context.Context, silent bool) error {
	e.mu.Lock()
	e.saveSeq++
	seq := e.saveSeq
	e.setStatus(StatusSaving)
	e.mu.Unlock()

	// Serializes repository writes so that a document is created only once.
	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	e.mu.Lock()
	id := e.id
	content := e.contentLocked()
	revision := e.revision
	ownerID := e.opts.ownerID
	e.mu.Unlock()

	var err error
	var savedID string
	if id == "" {
		d, createErr := e.repo.Create(ctx, ownerID, content)
		if createErr != nil {
			err = fmt.Errorf("repo.Create() > %w", createErr)
		} else if d != nil {
			savedID = d.ID
		}
	} else {
		if _, updateErr := e.repo.Update(ctx, id, content); updateErr != nil {
			err = fmt.Errorf("repo.Update(%s) > %w", id, updateErr)
		}
	}

	e.mu.Lock()
	if err == nil {
		if savedID != "" && e.id == "" {
			e.id = savedID
		}
		e.lastSaved = e.opts.clock()
	}
	if seq == e.saveSeq {
		switch {
		case err != nil:
			e.setStatus(StatusError)
		case revision != e.revision:
			e.setStatus(StatusUnsaved)
			if e.autosaveTimer == nil {
				e.armAutosave()
			}
		default:
			e.setStatus(StatusSaved)
		}
	}
	logger := e.opts.logger
	notifier := e.opts.notifier
	diaryID := e.id
	e.mu.Unlock()

	if err != nil {
		logger.Error("failed to save the diary", "diaryID", diaryID, "error", err)
		if !silent {
			notifier.Alert(fmt.Sprintf("failed to save the diary: %v", err))
		}
		return err
	}
	logger.Debug("saved the diary", "diaryID", diaryID, "silent", silent)
	return nil
}

// armAutosave schedules a silent save after the autosave delay, replacing a pending one.
func (e *Engine) armAutosave() {
	e.stopAutosave()
	if e.closed || e.opts.autosaveDelay <= 0 {
		return
	}
	e.autosaveGen++
	gen := e.autosaveGen
	e.autosaveTimer = e.opts.scheduler.AfterFunc(e.opts.autosaveDelay, func() {
		e.fireAutosave(gen)
	})
}

func (e *Engine) stopAutosave() {
	if e.autosaveTimer == nil {
		return
	}
	e.autosaveTimer.Stop()
	e.autosaveTimer = nil
}

func (e *Engine) fireAutosave(gen uint64) {
	e.mu.Lock()
	if e.closed || gen != e.autosaveGen || e.status != StatusUnsaved {
		e.mu.Unlock()
		return
	}
	e.autosaveTimer = nil
	logger := e.opts.logger
	e.mu.Unlock()

	if err := e.Save(context.Background(), true); err != nil {
		logger.Warn("autosave failed", "error", err)
	}
}
