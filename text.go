package parade

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// LoadTTFFace parses TrueType data and returns a face at the given size.
func LoadTTFFace(ttfData []byte, size float64) (*text.GoTextFace, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("parade: failed to parse TTF data: %w", err)
	}
	return &text.GoTextFace{Source: source, Size: size}, nil
}

// DefaultFaces returns the title and label faces in Go Regular.
func DefaultFaces(titleSize, labelSize float64) (title, label *text.GoTextFace, err error) {
	title, err = LoadTTFFace(goregular.TTF, titleSize)
	if err != nil {
		return nil, nil, err
	}
	// Faces share one parsed source.
	label = &text.GoTextFace{Source: title.Source, Size: labelSize}
	return title, label, nil
}
