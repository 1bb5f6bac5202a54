package coerce

import (
	"encoding/json"
	"math"
	"testing"
)

func TestInt64(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    int64
		wantErr bool
	}{
		{name: "int", input: 42, want: 42},
		{name: "int64", input: int64(-7), want: -7},
		{name: "uint8", input: uint8(255), want: 255},
		{name: "integral float64", input: float64(100), want: 100},
		{name: "json number decode", input: float64(211), want: 211},
		{name: "numeric string", input: "100", want: 100},
		{name: "signed numeric string", input: "-12", want: -12},
		{name: "padded numeric string", input: "  33 ", want: 33},
		{name: "json.Number", input: json.Number("88"), want: 88},
		{name: "fractional float", input: 1.5, wantErr: true},
		{name: "NaN", input: math.NaN(), wantErr: true},
		{name: "infinite", input: math.Inf(1), wantErr: true},
		{name: "fractional json.Number", input: json.Number("1.5"), wantErr: true},
		{name: "non-numeric string", input: "abc", wantErr: true},
		{name: "hex string", input: "0x10", wantErr: true},
		{name: "nil", input: nil, wantErr: true},
		{name: "bool", input: true, wantErr: true},
		{name: "slice", input: []int{1}, wantErr: true},
		{name: "uint64 overflow", input: uint64(math.MaxUint64), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Int64(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Int64(%v) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Int64(%v) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Int64(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
