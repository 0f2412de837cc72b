package jsonutil

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Number is a float64 that tolerates the ways LLMs render numbers: a JSON
// number, a quoted number ("0.9"), or null/empty (zero).
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Number(f)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return fmt.Errorf("cannot parse %q as number: %w", str, err)
		}
		*n = Number(f)
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into Number", s)
}

// Float64 returns the plain float value.
func (n Number) Float64() float64 {
	return float64(n)
}

// StringValue converts a json.RawMessage to a string, handling cases where
// LLMs return numbers or booleans instead of strings. Returns empty string
// for null/empty.
func StringValue(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var strVal string
	if err := json.Unmarshal(raw, &strVal); err == nil {
		return strVal
	}

	var numVal float64
	if err := json.Unmarshal(raw, &numVal); err == nil {
		if numVal == float64(int64(numVal)) {
			return fmt.Sprintf("%d", int64(numVal))
		}
		return fmt.Sprintf("%g", numVal)
	}

	var boolVal bool
	if err := json.Unmarshal(raw, &boolVal); err == nil {
		return fmt.Sprintf("%t", boolVal)
	}

	return string(raw)
}
