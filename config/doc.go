// Package config loads wirekit settings from a YAML file, a .env file and
// the environment.
//
//	var cfg network.Config
//	err := config.Load("billing", &cfg, config.WithEnvPrefix("BILLING"))
//
// Values are layered: the YAML file first, then variables from the .env
// file, then the process environment. An environment variable such as
// BILLING_TELEMETRY_SAMPLE_RATE is bound to every nested key it could name
// (telemetry.sample_rate, telemetry.sample.rate, ...). After unmarshalling,
// Load calls ApplyDefaults and Validate when cfg implements them.
package config
