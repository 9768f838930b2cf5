package led

import "fmt"

// RGB is a single indicator color. The zero value is off.
type RGB struct {
	R, G, B uint8
}

// Well-known indicator colors.
var (
	Off     = RGB{0, 0, 0}
	Red     = RGB{255, 0, 0}
	Green   = RGB{0, 255, 0}
	Blue    = RGB{0, 0, 255}
	Yellow  = RGB{255, 255, 0}
	Magenta = RGB{255, 0, 255}
	Cyan    = RGB{0, 255, 255}
	White   = RGB{255, 255, 255}
)

// IsOff reports whether the color renders as dark.
func (c RGB) IsOff() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// String returns the color as a #rrggbb hex string.
func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
