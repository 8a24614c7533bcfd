package model

// SessionType is the display protocol of a graphical session.
type SessionType string

const (
	SessionX11     SessionType = "x11"
	SessionWayland SessionType = "wayland"
)

// IsGraphical reports whether t is one of the two supported display protocols.
func (t SessionType) IsGraphical() bool {
	return t == SessionX11 || t == SessionWayland
}

// Environment variable names carried by a SessionEnvironment.
const (
	EnvRuntimeDir     = "XDG_RUNTIME_DIR"
	EnvBusAddress     = "DBUS_SESSION_BUS_ADDRESS"
	EnvSessionType    = "XDG_SESSION_TYPE"
	EnvDisplay        = "DISPLAY"
	EnvWaylandDisplay = "WAYLAND_DISPLAY"
	EnvXAuthority     = "XAUTHORITY"
)

// SessionEnvironment holds what a child process needs to reach a running
// desktop session. Empty fields are unknown and never exported.
type SessionEnvironment struct {
	RuntimeDir     string      `json:"runtime_dir,omitempty"`
	BusAddress     string      `json:"bus_address,omitempty"`
	Display        string      `json:"display,omitempty"`
	WaylandDisplay string      `json:"wayland_display,omitempty"`
	XAuthority     string      `json:"xauthority,omitempty"`
	Type           SessionType `json:"session_type,omitempty"`
}

// IsZero reports whether nothing at all is known about the session.
func (s SessionEnvironment) IsZero() bool {
	return s == SessionEnvironment{}
}

// Environ returns the known fields as KEY=value pairs, in a fixed order.
func (s SessionEnvironment) Environ() []string {
	var env []string
	add := func(key, value string) {
		if value != "" {
			env = append(env, key+"="+value)
		}
	}
	add(EnvRuntimeDir, s.RuntimeDir)
	add(EnvBusAddress, s.BusAddress)
	add(EnvSessionType, string(s.Type))
	add(EnvDisplay, s.Display)
	add(EnvWaylandDisplay, s.WaylandDisplay)
	add(EnvXAuthority, s.XAuthority)
	return env
}
