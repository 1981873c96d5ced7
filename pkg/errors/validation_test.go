package errors

import (
	"strings"
	"testing"
)

func TestValidateCoordinate(t *testing.T) {
	tests := []struct {
		name     string
		group    string
		artifact string
		version  string
		wantErr  bool
	}{
		{"valid", "org.apache.kafka", "kafka-clients", "3.7.0.redhat-00001", false},
		{"valid snapshot", "io.strimzi", "api", "0.40.0-SNAPSHOT", false},

		{"empty group", "", "a", "1.0", true},
		{"empty artifact", "g", "", "1.0", true},
		{"empty version", "g", "a", "", true},
		{"separator", "g:x", "a", "1.0", true},
		{"whitespace", "g", "a b", "1.0", true},
		{"control char", "g", "a", "1.0\x01", true},
		{"too long", strings.Repeat("g", 300), "a", "1.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinate(tt.group, tt.artifact, tt.version)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinate(%q, %q, %q) error = %v, wantErr %v",
					tt.group, tt.artifact, tt.version, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidCoordinate) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidCoordinate)
			}
		})
	}
}

func TestValidateSegment(t *testing.T) {
	if err := ValidateSegment("classifier", ""); err != nil {
		t.Errorf("empty optional segment: %v", err)
	}
	if err := ValidateSegment("classifier", "tests"); err != nil {
		t.Errorf("valid segment: %v", err)
	}
	if err := ValidateSegment("scope", "com pile"); err == nil {
		t.Error("expected error for whitespace")
	}
}

func TestValidateModuleName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"core", false},
		{"modules/api", false},
		{"../sibling", false},

		{"", true},
		{"/abs/path", true},
		{"win\\path", true},
		{"nul\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateModuleName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateModuleName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
