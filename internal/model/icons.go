package model

// Status glyphs used by the printer and the ui view.
// Using simple single-width characters for consistent terminal rendering
const (
	IconOK        = "✓" // Operation applied
	IconSkipped   = "·" // Nothing to do
	IconWarning   = "!" // Applied, but something degraded
	IconError     = "✗" // Failed
	IconDuplicate = "≈" // Same normalized key as an earlier entry
	IconSelected  = "›" // Cursor in the ui list
)
