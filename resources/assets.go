package resources

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"

	"fyne.io/fyne/v2"
)

// Tray glyphs are drawn at runtime: a filled circle whose color tracks
// the timer state.
const iconSize = 64

var (
	trackingColor = color.RGBA{R: 0, G: 180, B: 0, A: 255}
	idleColor     = color.RGBA{R: 180, G: 180, B: 180, A: 255}
	mutedColor    = color.RGBA{R: 230, G: 170, B: 0, A: 255}
)

var iconCache sync.Map

// TrackingIcon is the green glyph shown while active time accumulates.
func TrackingIcon() fyne.Resource {
	return circleResource("tracking", trackingColor)
}

// IdleIcon is the gray glyph shown while accumulation is frozen.
func IdleIcon() fyne.Resource {
	return circleResource("idle", idleColor)
}

// MutedIcon is the amber glyph shown while reminders are muted.
func MutedIcon() fyne.Resource {
	return circleResource("muted", mutedColor)
}

func circleResource(name string, tint color.RGBA) fyne.Resource {
	if cached, ok := iconCache.Load(name); ok {
		return cached.(fyne.Resource)
	}

	resource := fyne.NewStaticResource(fmt.Sprintf("icon-%s.png", name), renderCircle(tint))
	iconCache.Store(name, resource)
	return resource
}

// renderCircle draws a filled circle with a softened edge on a
// transparent background.
func renderCircle(tint color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	center := float64(iconSize) / 2
	outer := float64(iconSize)/2 - 2
	inner := outer - 2.5

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			dist := math.Sqrt(dx*dx + dy*dy)
			switch {
			case dist <= inner:
				img.SetRGBA(x, y, tint)
			case dist <= outer:
				edge := tint
				edge.A = uint8(255 * (outer - dist) / (outer - inner))
				img.SetRGBA(x, y, edge)
			}
		}
	}

	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
