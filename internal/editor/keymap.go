package editor

import (
	"context"
	"strings"
)

// Key is a key press with its modifiers. Code is a lower-case key name such as "z", "up" or "esc".
type Key struct {
	Code  string
	Ctrl  bool
	Shift bool
	Alt   bool
	Meta  bool
}

// ParseKey parses key names in the form "ctrl+shift+z". A lone "+" is the plus key.
func ParseKey(s string) Key {
	var key Key
	if s == "+" {
		return Key{Code: "+"}
	}
	parts := strings.Split(s, "+")
	for i, part := range parts {
		name := strings.ToLower(part)
		if i == len(parts)-1 {
			key.Code = normalizeKeyCode(name, part)
			break
		}
		switch name {
		case "ctrl", "control":
			key.Ctrl = true
		case "shift":
			key.Shift = true
		case "alt", "option":
			key.Alt = true
		case "meta", "cmd", "super":
			key.Meta = true
		}
	}
	// Upper-case letters imply shift.
	if len(key.Code) == 1 && key.Code[0] >= 'A' && key.Code[0] <= 'Z' {
		key.Shift = true
		key.Code = strings.ToLower(key.Code)
	}
	return key
}

func normalizeKeyCode(name, raw string) string {
	switch name {
	case "escape":
		return "esc"
	case "del":
		return "delete"
	case "arrowup":
		return "up"
	case "arrowdown":
		return "down"
	case "arrowleft":
		return "left"
	case "arrowright":
		return "right"
	}
	if len(raw) == 1 {
		return raw
	}
	return name
}

func (k Key) command() bool {
	return k.Ctrl || k.Meta
}

func (k Key) String() string {
	var b strings.Builder
	if k.Ctrl {
		b.WriteString("ctrl+")
	}
	if k.Alt {
		b.WriteString("alt+")
	}
	if k.Meta {
		b.WriteString("meta+")
	}
	if k.Shift {
		b.WriteString("shift+")
	}
	b.WriteString(k.Code)
	return b.String()
}

// HandleKey runs the editor shortcut bound to key and reports whether one was bound.
// While a text field has focus, only command shortcuts and esc are handled.
func (e *Engine) HandleKey(ctx context.Context, key Key, textFocused bool) bool {
	if key.command() {
		switch {
		case key.Code == "s":
			// A failed save is already reported through the status and the notifier.
			_ = e.Save(ctx, false)
			return true
		case key.Code == "z" && !key.Shift:
			e.Undo()
			return true
		case key.Code == "y", key.Code == "z" && key.Shift:
			e.Redo()
			return true
		}
		return false
	}

	if key.Code == "esc" {
		e.ClearSelection()
		return true
	}
	if textFocused || key.Alt {
		return false
	}

	step := 1.0
	if key.Shift {
		step = 10
	}
	switch key.Code {
	case "delete", "backspace":
		e.DeleteSelectedSticker()
	case "up":
		e.MoveSelectedSticker(0, -step)
	case "down":
		e.MoveSelectedSticker(0, step)
	case "left":
		e.MoveSelectedSticker(-step, 0)
	case "right":
		e.MoveSelectedSticker(step, 0)
	case "[":
		e.ChangeZIndex(-1)
	case "]":
		e.ChangeZIndex(1)
	default:
		return false
	}
	return true
}
