package color

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func assertColorInDelta(t *testing.T, want, got Color) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, tol, "red")
	assert.InDelta(t, want.G, got.G, tol, "green")
	assert.InDelta(t, want.B, got.B, tol, "blue")
}

func TestHSLPrimaries(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l float64
		want    Color
	}{
		{"red", 0, 1, 0.5, RGB(1, 0, 0)},
		{"green", 1.0 / 3.0, 1, 0.5, RGB(0, 1, 0)},
		{"blue", 2.0 / 3.0, 1, 0.5, RGB(0, 0, 1)},
		{"yellow", 1.0 / 6.0, 1, 0.5, RGB(1, 1, 0)},
		{"cyan", 0.5, 1, 0.5, RGB(0, 1, 1)},
		{"magenta", 5.0 / 6.0, 1, 0.5, RGB(1, 0, 1)},
		{"black", 0.3, 1, 0, RGB(0, 0, 0)},
		{"white", 0.7, 1, 1, RGB(1, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertColorInDelta(t, tt.want, HSL(tt.h, tt.s, tt.l))
		})
	}
}

func TestHSLZeroSaturationIgnoresHue(t *testing.T) {
	for _, h := range []float64{-1.5, -0.25, 0, 0.1, 0.5, 0.99, 1, 3.7} {
		for _, l := range []float64{0, 0.25, 0.5, 0.9, 1} {
			want := Gray(l)
			assertColorInDelta(t, want, HSL(h, 0, l))
			assertColorInDelta(t, want, HSL(h+1, 0, l))
		}
	}
}

func TestHSLHueWraps(t *testing.T) {
	for _, h := range []float64{0.05, 0.2, 0.45, 0.6, 0.8, 0.95} {
		want := HSL(h, 0.8, 0.4)
		assertColorInDelta(t, want, HSL(h+1, 0.8, 0.4))
		assertColorInDelta(t, want, HSL(h+3, 0.8, 0.4))
		assertColorInDelta(t, want, HSL(h-1, 0.8, 0.4))
	}
}

func TestHexChannelsInRange(t *testing.T) {
	const steps = 20
	for i := 0; i <= steps; i++ {
		for j := 0; j <= steps; j++ {
			for k := 0; k <= steps; k++ {
				h := float64(i) / steps
				s := float64(j) / steps
				l := float64(k) / steps

				hex := HSL(h, s, l).Hex()
				require.Len(t, hex, 7, "hsl(%g, %g, %g) = %s", h, s, l, hex)
				for _, part := range []string{hex[1:3], hex[3:5], hex[5:7]} {
					v, err := strconv.ParseUint(part, 16, 8)
					require.NoError(t, err, "hsl(%g, %g, %g) = %s", h, s, l, hex)
					assert.LessOrEqual(t, v, uint64(255))
				}
			}
		}
	}
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#000000", Black.Hex())
	assert.Equal(t, "#ffffff", White.Hex())
	assert.Equal(t, "#7f0000", DarkRed.Hex())
	assert.Equal(t, "#cc4c7f", RGB(0.8, 0.3, 0.5).Hex())
	assert.Equal(t, "#e5e5e5", Gray(0.9).Hex())
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#ff0000", want: Red},
		{in: "#fff", want: White},
		{in: "LightBlue", want: LightBlue},
		{in: " brown ", want: Brown},
		{in: "#12345", wantErr: true},
		{in: "#gg0000", wantErr: true},
		{in: "chartreuse", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidColor)
				return
			}
			require.NoError(t, err)
			assertColorInDelta(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "rgb[1, 0.5, 0.5]", LightRed.String())
}
