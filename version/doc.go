// Package version reports the wirekit build version. It feeds the default
// User-Agent header and the telemetry resource.
//
//	go build -ldflags "-X github.com/kbukum/wirekit/version.Version=1.2.0"
package version
