// Package component defines the lifecycle contract shared by the request
// manager and the mock registry, plus a registry that starts and stops
// components in order.
package component
