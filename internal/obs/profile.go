package obs

import (
	pyroscope "github.com/grafana/pyroscope-go"
)

// StartProfiler starts continuous profiling against a pyroscope server.
// The caller stops the returned profiler on shutdown.
func StartProfiler(serverAddr, appName string) (*pyroscope.Profiler, error) {
	return pyroscope.Start(pyroscope.Config{
		ApplicationName: appName,
		ServerAddress:   serverAddr,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
		},
	})
}
