package studio

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		status HardwareStatus
		want   Capability
	}{
		{"never fetched", HardwareStatus{}, CapabilityUnknown},
		{"gpu ready", HardwareStatus{Platform: PlatformGPUReady, CanRunPro: true, Known: true}, CapabilityReady},
		{"driver missing", HardwareStatus{Platform: PlatformDriverMissing, Known: true}, CapabilityDriverMissing},
		{"cpu only", HardwareStatus{Platform: PlatformCPUOnly, Known: true}, CapabilityNone},
		{"unrecognized platform", HardwareStatus{Platform: "WEIRD", Known: true}, CapabilityNone},
		// can_run_pro is authoritative even with an odd platform string.
		{"pro flag wins", HardwareStatus{Platform: "WEIRD", CanRunPro: true, Known: true}, CapabilityReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Classify(); got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrySelectMode(t *testing.T) {
	ready := HardwareStatus{Platform: PlatformGPUReady, CanRunPro: true, Known: true}
	noDrivers := HardwareStatus{Platform: PlatformDriverMissing, Known: true}
	cpuOnly := HardwareStatus{Platform: PlatformCPUOnly, Known: true}

	tests := []struct {
		name      string
		requested Mode
		status    HardwareStatus
		wantMode  Mode
		wantErr   error
	}{
		{"standard always allowed", ModeStandard, cpuOnly, ModeStandard, nil},
		{"standard without status", ModeStandard, HardwareStatus{}, ModeStandard, nil},
		{"premium on ready gpu", ModePremium, ready, ModePremium, nil},
		{"premium without drivers", ModePremium, noDrivers, "", ErrDriverMissing},
		{"premium on cpu", ModePremium, cpuOnly, "", ErrNoGPU},
		// Fails closed: an unknown status denies premium.
		{"premium without status", ModePremium, HardwareStatus{}, "", ErrNoGPU},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, err := TrySelectMode(tt.requested, tt.status)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("TrySelectMode() error = %v, want %v", err, tt.wantErr)
			}
			if mode != tt.wantMode {
				t.Errorf("TrySelectMode() mode = %q, want %q", mode, tt.wantMode)
			}
		})
	}
}
