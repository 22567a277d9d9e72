package errors

import (
	"strings"
	"testing"
)

func TestValidateLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "Berlin", false},
		{"valid autogenerated", "City 12", false},
		{"valid with dash", "Frankfurt-Oder", false},
		{"valid with umlaut", "Köln", false},
		{"valid with dot", "St. Gallen", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 65), true},
		{"null byte", "foo\x00bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"carriage return", "foo\rbar", true},
		{"tab", "foo\tbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateOutputBase(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid relative", "output/tour", false},
		{"valid absolute", "/tmp/tour", false},
		{"valid with extension", "tour.svg", false},

		{"empty", "", true},
		{"too long", strings.Repeat("x", 501), true},
		{"null byte", "out\x00put", true},
		{"newline", "out\nput", true},
		{"trailing slash", "output/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputBase(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputBase(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
