package transform2

import (
	"encoding/json"
	"fmt"
	"image"
	"log"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxTexel is the largest coordinate a TextureRegion can hold.
const maxTexel = math.MaxUint16

// TextureRegion describes a sub-rectangle of a sprite sheet image.
// The zero value means "the whole image".
type TextureRegion struct {
	X, Y          uint16 // top-left corner within the sheet
	Width, Height uint16
}

// IsZero reports whether r selects the whole image.
func (r TextureRegion) IsZero() bool {
	return r.Width == 0 || r.Height == 0
}

func (r TextureRegion) rect() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.Width), int(r.Y)+int(r.Height))
}

// Atlas is a sprite sheet: one image and an ordered list of regions.
// Sprite-sheet nodes select a region by index.
type Atlas struct {
	Image   *ebiten.Image
	Regions []TextureRegion
	names   map[string]int
}

// NewGridAtlas slices img into a cols×rows grid of tileW×tileH cells,
// indexed row-major from the top-left.
// Panics if a cell falls outside the 0..65535 texel range.
func NewGridAtlas(img *ebiten.Image, tileW, tileH, cols, rows int) *Atlas {
	if tileW < 0 || tileH < 0 || cols < 0 || rows < 0 {
		panic("transform2: negative atlas grid size")
	}
	if cols*tileW > maxTexel || rows*tileH > maxTexel {
		panic("transform2: atlas grid exceeds 65535 texels")
	}
	a := &Atlas{Image: img, Regions: make([]TextureRegion, 0, cols*rows)}
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			a.Regions = append(a.Regions, TextureRegion{
				X:      uint16(x * tileW),
				Y:      uint16(y * tileH),
				Width:  uint16(tileW),
				Height: uint16(tileH),
			})
		}
	}
	return a
}

// Len returns the number of regions.
func (a *Atlas) Len() int {
	return len(a.Regions)
}

// Region returns the region at index i. Out-of-range indices return the
// zero region (whole image) and log a warning in debug mode.
func (a *Atlas) Region(i int) TextureRegion {
	if i < 0 || i >= len(a.Regions) {
		if globalDebug {
			log.Printf("transform2: atlas index %d out of range [0, %d)", i, len(a.Regions))
		}
		return TextureRegion{}
	}
	return a.Regions[i]
}

// Index returns the index of the named region, or -1.
func (a *Atlas) Index(name string) int {
	if i, ok := a.names[name]; ok {
		return i
	}
	return -1
}

// --- JSON loading ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame jsonRect `json:"frame"`
}

// LoadAtlas parses TexturePacker hash-format JSON ({"frames": {name: {...}}})
// for a single sheet image. Regions are indexed in name order.
func LoadAtlas(jsonData []byte, img *ebiten.Image) (*Atlas, error) {
	var doc struct {
		Frames map[string]jsonFrame `json:"frames"`
	}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("transform2: failed to parse atlas JSON: %w", err)
	}
	if doc.Frames == nil {
		return nil, fmt.Errorf("transform2: atlas JSON has no \"frames\" key")
	}

	names := make([]string, 0, len(doc.Frames))
	for name := range doc.Frames {
		names = append(names, name)
	}
	sort.Strings(names)

	a := &Atlas{
		Image:   img,
		Regions: make([]TextureRegion, 0, len(names)),
		names:   make(map[string]int, len(names)),
	}
	for i, name := range names {
		f := doc.Frames[name].Frame
		if f.W < 0 || f.H < 0 || f.X < 0 || f.Y < 0 {
			return nil, fmt.Errorf("transform2: atlas frame %q has negative geometry", name)
		}
		if f.X+f.W > maxTexel || f.Y+f.H > maxTexel {
			return nil, fmt.Errorf("transform2: atlas frame %q exceeds %d texels", name, maxTexel)
		}
		a.Regions = append(a.Regions, TextureRegion{
			X:      uint16(f.X),
			Y:      uint16(f.Y),
			Width:  uint16(f.W),
			Height: uint16(f.H),
		})
		a.names[name] = i
	}
	return a, nil
}
