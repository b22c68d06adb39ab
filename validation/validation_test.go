package validation

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type inner struct {
	Endpoint string `mapstructure:"endpoint" validate:"required,hostname_port"`
}

type sample struct {
	Name      string        `mapstructure:"name" validate:"required"`
	Transport string        `mapstructure:"transport" validate:"oneof=http resty mock"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Rate      float64       `yaml:"rate" validate:"gte=0,lte=1"`
	MaxBody   int           `validate:"max=10"`
	Telemetry inner         `mapstructure:"telemetry"`
}

func TestValidate(t *testing.T) {
	valid := sample{Name: "a", Transport: "http", Telemetry: inner{Endpoint: "localhost:4318"}}
	if err := Validate(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		mut   func(*sample)
		field string
		msg   string
	}{
		{"required", func(s *sample) { s.Name = "" }, "name", "is required"},
		{"oneof", func(s *sample) { s.Transport = "grpc" }, "transport", "must be one of: http resty mock"},
		{"gte", func(s *sample) { s.Timeout = -time.Second }, "timeout", "must be greater than or equal to 0"},
		{"yaml tag", func(s *sample) { s.Rate = 2 }, "rate", "must be less than or equal to 1"},
		{"untagged", func(s *sample) { s.MaxBody = 11 }, "max_body", "must be at most 10"},
		{"nested", func(s *sample) { s.Telemetry.Endpoint = "nope" }, "telemetry.endpoint", "must be host:port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mut(&s)
			err := Validate(s)
			var ve *Error
			if !errors.As(err, &ve) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if !ve.Has(tt.field) {
				t.Fatalf("expected field %q in %v", tt.field, ve.Fields)
			}
			for _, f := range ve.Fields {
				if f.Field == tt.field && f.Message != tt.msg {
					t.Errorf("expected %q, got %q", tt.msg, f.Message)
				}
			}
		})
	}
}

func TestValidator(t *testing.T) {
	v := New().
		Check(true, "a", "never").
		Check(false, "b", "must be set").
		Merge(nil).
		Merge(&Error{Fields: []FieldError{{Field: "c", Message: "bad"}}}).
		Merge(errors.New("plain"))

	err := v.Err()
	var ve *Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if len(ve.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %v", ve.Fields)
	}
	if !strings.Contains(err.Error(), "b: must be set") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if New().Err() != nil {
		t.Error("expected nil error from empty validator")
	}
}
