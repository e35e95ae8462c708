package studio

// Platform strings reported by the server's hardware detection.
const (
	PlatformGPUReady      = "GPU_READY"
	PlatformDriverMissing = "GPU_DRIVER_MISSING"
	PlatformCPUOnly       = "CPU_ONLY"
)

// Capability is the tri-state hardware classification.
type Capability int

const (
	// CapabilityUnknown means the status was never fetched (transport error
	// at startup). The gate fails closed for premium.
	CapabilityUnknown Capability = iota
	// CapabilityReady means the pro engine can run.
	CapabilityReady
	// CapabilityDriverMissing means a GPU is present but unusable; the user
	// can remediate by installing drivers.
	CapabilityDriverMissing
	// CapabilityNone means no capable hardware was found.
	CapabilityNone
)

// String returns the string representation of the capability.
func (c Capability) String() string {
	switch c {
	case CapabilityReady:
		return "ready"
	case CapabilityDriverMissing:
		return "driver-missing"
	case CapabilityNone:
		return "none"
	default:
		return "unknown"
	}
}

// HardwareStatus is the server's hardware verdict, fetched once at startup
// and read-only for the rest of the session.
type HardwareStatus struct {
	Platform  string
	CanRunPro bool
	Message   string
	// Known is set once a fetch has succeeded. The zero value denies premium.
	Known bool
}

// Classify maps the raw status onto the tri-state capability.
func (s HardwareStatus) Classify() Capability {
	switch {
	case !s.Known:
		return CapabilityUnknown
	case s.CanRunPro:
		return CapabilityReady
	case s.Platform == PlatformDriverMissing:
		return CapabilityDriverMissing
	default:
		return CapabilityNone
	}
}

// TrySelectMode returns the requested mode unchanged when it is permitted, or
// the denial reason when premium is requested without the capability:
// ErrDriverMissing when a GPU is present but drivers are not, ErrNoGPU
// otherwise. Standard mode is always permitted. No retries are performed; the
// user must re-trigger after remediation.
func TrySelectMode(requested Mode, status HardwareStatus) (Mode, error) {
	if requested != ModePremium {
		return ModeStandard, nil
	}
	switch status.Classify() {
	case CapabilityReady:
		return ModePremium, nil
	case CapabilityDriverMissing:
		return "", ErrDriverMissing
	default:
		return "", ErrNoGPU
	}
}
