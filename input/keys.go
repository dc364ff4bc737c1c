package input

import "strings"

// Key codes follow GLFW numbering so they can be passed straight to
// window.Window.IsKeyPressed.
const (
	KeySpace        = 32
	Key0            = 48
	Key9            = 57
	KeyA            = 65
	KeyD            = 68
	KeyS            = 83
	KeyW            = 87
	KeyX            = 88
	KeyZ            = 90
	KeyEscape       = 256
	KeyEnter        = 257
	KeyTab          = 258
	KeyRight        = 262
	KeyLeft         = 263
	KeyDown         = 264
	KeyUp           = 265
	KeyPageUp       = 266
	KeyPageDown     = 267
	KeyLeftShift    = 340
	KeyLeftControl  = 341
	KeyRightShift   = 344
	KeyRightControl = 345
)

// Mouse buttons, GLFW numbering.
const (
	MouseLeft   = 0
	MouseRight  = 1
	MouseMiddle = 2
)

var keyNames = map[string]int{
	"SPACE": KeySpace, "ESCAPE": KeyEscape, "ENTER": KeyEnter, "TAB": KeyTab,
	"RIGHT": KeyRight, "LEFT": KeyLeft, "DOWN": KeyDown, "UP": KeyUp,
	"PAGEUP": KeyPageUp, "PAGEDOWN": KeyPageDown,
	"LSHIFT": KeyLeftShift, "RSHIFT": KeyRightShift,
	"LCTRL": KeyLeftControl, "RCTRL": KeyRightControl,
}

var keyCodes = map[int]string{}

func init() {
	for c := 'A'; c <= 'Z'; c++ {
		keyNames[string(c)] = KeyA + int(c-'A')
	}
	for c := '0'; c <= '9'; c++ {
		keyNames[string(c)] = Key0 + int(c-'0')
	}
	for name, code := range keyNames {
		keyCodes[code] = name
	}
}

// KeyByName resolves a case-insensitive key name such as "w", "Space" or
// "Escape" to its key code.
func KeyByName(name string) (int, bool) {
	key, ok := keyNames[strings.ToUpper(strings.TrimSpace(name))]
	return key, ok
}

// KeyName is the inverse of KeyByName; names are upper case.
func KeyName(code int) (string, bool) {
	name, ok := keyCodes[code]
	return name, ok
}
