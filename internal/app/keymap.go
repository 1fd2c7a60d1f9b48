package app

// Key binding constants used in handleKey.
const (
	KeyQuit         = "esc"
	KeyCtrlC        = "ctrl+c"
	KeyTab          = "tab"
	KeyShiftTab     = "shift+tab"
	KeyEnter        = "enter"
	KeyBackspace    = "backspace"
	KeyCtrlU        = "ctrl+u"
	KeyReload       = "ctrl+r"
	KeyClearHistory = "ctrl+x"
)
