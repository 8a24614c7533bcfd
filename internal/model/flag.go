package model

// EnabledFlag is the tri-state plugin flag stored in kwinrc.
type EnabledFlag int

const (
	EnabledUnset EnabledFlag = iota // Key or section absent
	EnabledFalse
	EnabledTrue
)

// FlagOf converts a boolean into a set flag.
func FlagOf(enabled bool) EnabledFlag {
	if enabled {
		return EnabledTrue
	}
	return EnabledFalse
}

func (f EnabledFlag) String() string {
	switch f {
	case EnabledTrue:
		return "true"
	case EnabledFalse:
		return "false"
	default:
		return "(unset)"
	}
}

// Version is the focusctl release.
const Version = "0.3.0"
