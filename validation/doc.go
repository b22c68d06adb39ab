// Package validation checks configuration structs.
//
// Struct tags are validated with go-playground/validator:
//
//	type Config struct {
//		Transport string `mapstructure:"transport" validate:"required,oneof=http resty mock"`
//	}
//	err := validation.Validate(cfg)
//
// Rules that span fields are collected with a Validator:
//
//	v := validation.New()
//	v.Check(cfg.Timeout > 0, "timeout", "must be positive")
//	err := v.Err()
package validation
