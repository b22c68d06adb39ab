// Package logger provides structured logging for wirekit using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&cfg, "orders-client").WithComponent("network")
//	log.Debug("request completed", logger.Fields(logger.FieldStatus, 200))
package logger
