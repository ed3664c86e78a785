package monitor

// DeviceNotFoundError indicates no usable hardware device could be located.
// Monitor-local and non-fatal: the affected monitor is disabled for the
// session and siblings keep running.
type DeviceNotFoundError struct {
	Kind Kind
	Dir  string // Class directory that was scanned, if any
}

func (e *DeviceNotFoundError) Error() string {
	if e.Dir != "" {
		return "no " + e.Kind.String() + " device found under " + e.Dir
	}
	return "no " + e.Kind.String() + " device found"
}

// ServiceUnavailableError indicates a required system service (PulseAudio,
// UPower) is absent or unreachable. Non-fatal; the monitor is disabled.
type ServiceUnavailableError struct {
	Service string
	Cause   error
}

func (e *ServiceUnavailableError) Error() string {
	if e.Cause != nil {
		return e.Service + " unavailable: " + e.Cause.Error()
	}
	return e.Service + " unavailable"
}

func (e *ServiceUnavailableError) Unwrap() error {
	return e.Cause
}
