package input

import (
	"strconv"
	"strings"
)

// Code is a raw device code using KeyboardEvent.code names and Mouse<button> for mouse buttons
type Code string

// Codes referenced by the default table and the terminal bridge
const (
	CodeKeyW       Code = "KeyW"
	CodeKeyA       Code = "KeyA"
	CodeKeyS       Code = "KeyS"
	CodeKeyD       Code = "KeyD"
	CodeArrowUp    Code = "ArrowUp"
	CodeArrowDown  Code = "ArrowDown"
	CodeArrowLeft  Code = "ArrowLeft"
	CodeArrowRight Code = "ArrowRight"
	CodeShiftLeft  Code = "ShiftLeft"
	CodeShiftRight Code = "ShiftRight"
	CodeSpace      Code = "Space"
	CodeEnter      Code = "Enter"
	CodeTab        Code = "Tab"
	CodeMouse0     Code = "Mouse0"
	CodeMouse1     Code = "Mouse1"
	CodeMouse2     Code = "Mouse2"
)

// MouseCode returns the code of mouse button n (0 = primary)
func MouseCode(button int) Code {
	return Code("Mouse" + strconv.Itoa(button))
}

// KeyCode returns the code of a letter or digit key, or "" for other runes
func KeyCode(r rune) Code {
	switch {
	case r >= 'a' && r <= 'z':
		return Code("Key" + string(r-'a'+'A'))
	case r >= 'A' && r <= 'Z':
		return Code("Key" + string(r))
	case r >= '0' && r <= '9':
		return Code("Digit" + string(r))
	case r == ' ':
		return CodeSpace
	}
	return ""
}

// Label renders a code for hints and conflict messages
func Label(c Code) string {
	s := string(c)
	switch {
	case s == "":
		return "---"
	case strings.HasPrefix(s, "Key"):
		return s[3:]
	case strings.HasPrefix(s, "Digit"):
		return s[5:]
	case strings.HasPrefix(s, "Arrow"):
		return s[5:]
	case c == CodeMouse0:
		return "Left Click"
	case c == CodeMouse1:
		return "Middle Click"
	case c == CodeMouse2:
		return "Right Click"
	case strings.Contains(s, "Shift"):
		return "Shift"
	case strings.Contains(s, "Control"):
		return "Ctrl"
	case strings.Contains(s, "Alt"):
		return "Alt"
	}
	return s
}
