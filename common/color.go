package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned by ParseColor for input that is neither a hex triplet nor a known color name.
var ErrInvalidColor = errors.New("invalid color")

// HexColor converts a packed 0xRRGGBB value into a linear [0, 1] RGB vector.
//
// Parameters:
//   - hex: the packed color value, upper byte ignored
//
// Returns:
//   - mgl32.Vec3: the red, green and blue channels scaled to [0, 1]
func HexColor(hex uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((hex>>16)&0xFF) / 255,
		float32((hex>>8)&0xFF) / 255,
		float32(hex&0xFF) / 255,
	}
}

// ParseColor parses a color given as "#RRGGBB", "0xRRGGBB", "RRGGBB" or a CSS color name
// such as "white" or "midnightblue".
//
// Parameters:
//   - s: the color string, case-insensitive
//
// Returns:
//   - mgl32.Vec3: the parsed color with channels in [0, 1]
//   - error: ErrInvalidColor wrapped with the offending input
func ParseColor(s string) (mgl32.Vec3, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "" {
		return mgl32.Vec3{}, fmt.Errorf("%w: empty string", ErrInvalidColor)
	}

	if named, ok := colornames.Map[raw]; ok {
		return mgl32.Vec3{
			float32(named.R) / 255,
			float32(named.G) / 255,
			float32(named.B) / 255,
		}, nil
	}

	hex := strings.TrimPrefix(strings.TrimPrefix(raw, "#"), "0x")
	if len(hex) != 6 {
		return mgl32.Vec3{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return mgl32.Vec3{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return HexColor(uint32(v)), nil
}

// ToWGPUColor converts an RGB vector and alpha into a wgpu.Color for render pass clears.
func ToWGPUColor(rgb mgl32.Vec3, alpha float64) wgpu.Color {
	return wgpu.Color{R: float64(rgb.X()), G: float64(rgb.Y()), B: float64(rgb.Z()), A: alpha}
}
