package assets

import (
	"embed"
	"fmt"
	"path"
)

//go:embed shaders icons
var files embed.FS

// LoadShader reads an embedded GLSL file into a null-terminated string for OpenGL.
func LoadShader(name string) (string, error) {
	b, err := files.ReadFile(path.Join("shaders", name))
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	// Ensure null termination for gl.Str
	if len(b) == 0 || b[len(b)-1] != 0 {
		b = append(b, 0)
	}
	return string(b), nil
}
