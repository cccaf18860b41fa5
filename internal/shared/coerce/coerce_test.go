package coerce

import (
	"encoding/json"
	"testing"
)

// TestFloat verifies conversion from the value shapes a decoded JSON body can contain.
func TestFloat(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   float64
		wantOk bool
	}{
		{name: "json number", in: float64(12.5), want: 12.5, wantOk: true},
		{name: "numeric string", in: "12.5", want: 12.5, wantOk: true},
		{name: "padded string", in: " 3.14 ", want: 3.14, wantOk: true},
		{name: "int", in: 7, want: 7, wantOk: true},
		{name: "json.Number", in: json.Number("2.5"), want: 2.5, wantOk: true},
		{name: "garbage string", in: "not-a-number", want: 0, wantOk: false},
		{name: "nil", in: nil, want: 0, wantOk: false},
		{name: "nested object", in: map[string]any{"x": 1}, want: 0, wantOk: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Float(tt.in)
			if ok != tt.wantOk || got != tt.want {
				t.Errorf("Float(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

// TestInt verifies integer coercion including float truncation.
func TestInt(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   int64
		wantOk bool
	}{
		{name: "json number", in: float64(3), want: 3, wantOk: true},
		{name: "float truncates", in: float64(3.9), want: 3, wantOk: true},
		{name: "integer string", in: "42", want: 42, wantOk: true},
		{name: "float string truncates", in: "42.7", want: 42, wantOk: true},
		{name: "garbage string", in: "x", want: 0, wantOk: false},
		{name: "nil", in: nil, want: 0, wantOk: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Int(tt.in)
			if ok != tt.wantOk || got != tt.want {
				t.Errorf("Int(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

// TestFallbacks verifies the *Or helpers substitute defaults on failure.
func TestFallbacks(t *testing.T) {
	if got := FloatOr("bad", 0); got != 0 {
		t.Errorf("FloatOr fallback = %v, want 0", got)
	}
	if got := FloatOr("1.5", 0); got != 1.5 {
		t.Errorf("FloatOr = %v, want 1.5", got)
	}
	if got := IntOr(nil, 0); got != 0 {
		t.Errorf("IntOr fallback = %v, want 0", got)
	}
	if got := IntOr(float64(9), 0); got != 9 {
		t.Errorf("IntOr = %v, want 9", got)
	}
}
