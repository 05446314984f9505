package assets

import (
	"image"
	"strings"
	"testing"
)

func TestLoadShaderIsTerminated(t *testing.T) {
	for _, name := range []string{"renderer2d.vert", "renderer2d.frag"} {
		src, err := LoadShader(name)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(src, "#version 330 core") || !strings.HasSuffix(src, "\x00") {
			t.Errorf("%s: unexpected source framing", name)
		}
	}
	if _, err := LoadShader("missing.frag"); err == nil {
		t.Error("missing shader loaded")
	}
}

func TestLoadPNG(t *testing.T) {
	img, err := LoadPNG("inspector.png")
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 32, 32) || img.Stride != 32*4 {
		t.Errorf("bounds %v stride %d", img.Bounds(), img.Stride)
	}
	if a := img.RGBAAt(0, 0).A; a != 0 {
		t.Errorf("corner alpha = %d, want transparent", a)
	}
	if a := img.RGBAAt(16, 16).A; a != 255 {
		t.Errorf("center alpha = %d, want opaque", a)
	}
}
