package numscan_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironleaf-games/kvtext/internal/numscan"
)

func TestScanBasicForms(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		wantVal  float64
		wantN    int
		wantOK   bool
	}{
		{"integer", "42", 42, 2, true},
		{"negative", "-7", -7, 2, true},
		{"fraction", "3.5", 3.5, 3, true},
		{"exponent", "1e3", 1000, 3, true},
		{"negative exponent", "2.5e-2", 0.025, 6, true},
		{"trailing text stops at number", "12abc", 12, 2, true},
		{"leading plus rejected by default", "+1", 0, 0, false},
		{"leading dot fraction", ".5", 0.5, 2, true},
		{"leading zero with digit rejected", "01", 0, 0, false},
		{"infinity rejected by default", "Infinity", 0, 0, false},
		{"empty input", "", 0, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, n, ok := numscan.Scan([]byte(tc.input), 0, false)
			require.Equal(t, tc.wantOK, ok)
			if ok {
				require.Equal(t, tc.wantVal, v)
				require.Equal(t, tc.wantN, n)
			}
		})
	}
}

func TestScanAllowInvalid(t *testing.T) {
	v, n, ok := numscan.Scan([]byte("+5"), 0, true)
	require.True(t, ok)
	require.Equal(t, float64(5), v)
	require.Equal(t, 2, n)

	_, _, ok = numscan.Scan([]byte("Infinity"), 0, true)
	require.True(t, ok)

	_, _, ok = numscan.Scan([]byte("NaN"), 0, true)
	require.True(t, ok)

	v, n, ok = numscan.Scan([]byte("0x1F"), 0, true)
	require.True(t, ok)
	require.Equal(t, float64(31), v)
	require.Equal(t, 4, n)
}

func TestScanAtOffset(t *testing.T) {
	v, n, ok := numscan.Scan([]byte("key:42"), 4, false)
	require.True(t, ok)
	require.Equal(t, float64(42), v)
	require.Equal(t, 2, n)
}
