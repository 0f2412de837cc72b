package jsonutil

import (
	"encoding/json"
	"testing"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
		wantErr  bool
	}{
		{"plain number", `0.85`, 0.85, false},
		{"integer", `1`, 1, false},
		{"quoted number", `"0.9"`, 0.9, false},
		{"quoted with spaces", `" 0.5 "`, 0.5, false},
		{"null", `null`, 0, false},
		{"non-numeric string", `"high"`, 0, true},
		{"object", `{}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			err := json.Unmarshal([]byte(tt.input), &n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && n.Float64() != tt.expected {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.input, n.Float64(), tt.expected)
			}
		})
	}
}

func TestStringValue(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"string", `"Sarah"`, "Sarah"},
		{"null", `null`, ""},
		{"empty", ``, ""},
		{"integer", `42`, "42"},
		{"float", `4.5`, "4.5"},
		{"boolean", `true`, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StringValue(json.RawMessage(tt.input)); got != tt.expected {
				t.Errorf("StringValue(%s) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
