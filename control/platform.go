// control/platform.go
// Author: momentics <momentics@gmail.com>
//
// Platform debug probes: CPU count and the hardware features behind the
// lock-free atomic backend.

package control

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// RegisterPlatformProbes sets platform-specific debug probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.arch", func() any {
		return runtime.GOARCH
	})
	dp.RegisterProbe("platform.cacheline", func() any {
		return int(unsafe.Sizeof(cpu.CacheLinePad{}))
	})
	dp.RegisterProbe("platform.wide_cas", func() any {
		return WideCAS()
	})
}

// WideCAS reports whether the CPU offers the double-width or LSE atomic
// instructions that keep contended CAS loops cheap.
func WideCAS() bool {
	switch runtime.GOARCH {
	case "amd64", "386":
		return cpu.X86.HasCX16
	case "arm64":
		return cpu.ARM64.HasATOMICS
	}
	return false
}
