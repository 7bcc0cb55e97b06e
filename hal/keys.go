package hal

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var namedKeys = map[string]KeyEvent{
	"up":       {Code: KeyUp, Press: true},
	"down":     {Code: KeyDown, Press: true},
	"left":     {Code: KeyLeft, Press: true},
	"right":    {Code: KeyRight, Press: true},
	"enter":    {Code: KeyEnter, Press: true},
	"esc":      {Code: KeyEscape, Press: true},
	"escape":   {Code: KeyEscape, Press: true},
	"quit":     {Code: KeyEscape, Press: true},
	"zoom-in":  {Press: true, Rune: 'z'},
	"zoom-out": {Press: true, Rune: 'x'},
	"iter+":    {Press: true, Rune: '+'},
	"iter-":    {Press: true, Rune: '-'},
}

// ParseKey turns a key name such as "up", "zoom-in" or "z" into a press event.
// Any single character is accepted as a text key.
func ParseKey(name string) (KeyEvent, error) {
	if ev, ok := namedKeys[strings.ToLower(name)]; ok {
		return ev, nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		if r != utf8.RuneError {
			return KeyEvent{Press: true, Rune: r}, nil
		}
	}
	return KeyEvent{}, fmt.Errorf("unknown key %q", name)
}

// KeyNames lists the names ParseKey understands besides single characters.
func KeyNames() []string {
	return []string{"up", "down", "left", "right", "zoom-in", "zoom-out", "iter+", "iter-", "enter", "quit"}
}
