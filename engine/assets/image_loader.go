package assets

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"path"
)

// LoadPNG decodes an embedded icon into tightly packed RGBA8 pixels
// (stride == 4*width, top-left origin).
func LoadPNG(name string) (*image.RGBA, error) {
	p := path.Join("icons", name)
	f, err := files.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", p, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode png %q: %w", p, err)
	}
	return imageToRGBA(img), nil
}

func imageToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Stride == m.Rect.Dx()*4 && m.Rect.Min == (image.Point{}) {
		return m
	}
	dst := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
