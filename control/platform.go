// control/platform.go
// Author: momentics <momentics@gmail.com>
//
// Platform debug probes: CPU topology visible to ring producer and consumers.

package control

import (
	"runtime"

	"github.com/momentics/hioload-bcast/internal/concurrency"
)

// RegisterPlatformProbes sets platform debug probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.gomaxprocs", func() any {
		return runtime.GOMAXPROCS(0)
	})
	dp.RegisterProbe("platform.allowed_cpus", func() any {
		return concurrency.AllowedCPUs()
	})
}
