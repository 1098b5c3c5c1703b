package editor

import (
	"slices"

	"github.com/at-ishikawa/stickerdiary/internal/diary"
)

// history keeps snapshots of the sticker set for undo and redo.
//
// Each snapshot is the sticker set as it was before an edit. The state after the latest edit is
// not stored until an undo needs it, which is tracked by pending.
type history struct {
	snapshots [][]diary.Sticker
	cursor    int
	pending   bool
}

func newHistory() *history {
	return &history{cursor: -1}
}

// record is called before an edit with the sticker set the edit starts from.
// Entries after the cursor are dropped.
func (h *history) record(current []diary.Sticker) {
	if !h.pending && h.cursor >= 0 {
		// The live state is the restored snapshots[cursor] already.
		h.snapshots = h.snapshots[:h.cursor+1]
	} else {
		h.snapshots = append(h.snapshots[:h.cursor+1], slices.Clone(current))
		h.cursor = len(h.snapshots) - 1
	}
	h.pending = true
}

// undo returns the sticker set to restore. Before the first snapshot it returns an empty set.
func (h *history) undo(live []diary.Sticker) ([]diary.Sticker, bool) {
	if h.cursor < 0 {
		return nil, false
	}
	if h.pending {
		h.snapshots = append(h.snapshots[:h.cursor+1], slices.Clone(live))
		h.cursor = len(h.snapshots) - 1
		h.pending = false
	}
	if h.cursor == 0 {
		h.cursor = -1
		return []diary.Sticker{}, true
	}
	h.cursor--
	return slices.Clone(h.snapshots[h.cursor]), true
}

func (h *history) redo() ([]diary.Sticker, bool) {
	if h.pending || h.cursor >= len(h.snapshots)-1 {
		return nil, false
	}
	h.cursor++
	return slices.Clone(h.snapshots[h.cursor]), true
}

func (h *history) canUndo() bool {
	return h.cursor >= 0
}

func (h *history) canRedo() bool {
	return !h.pending && h.cursor < len(h.snapshots)-1
}

func (h *history) len() int {
	return len(h.snapshots)
}
