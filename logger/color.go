package logger

// Styles understood by github.com/mgutz/ansi.
const (
	StyleError   = "red"
	StyleWarn    = "red+h"
	StyleHeading = "green"
	StyleInfo    = "cyan"
	StyleDebug   = "white"
	StyleAdded   = "green"
	StyleRemoved = "red"
)
