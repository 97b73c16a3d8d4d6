package vein

import "fmt"

// PaddedGrid is a square row-major grid with a border that is not part of the logical result.
type PaddedGrid struct {
	Data               []ARGB
	Size               int
	TopLeftPadding     int
	BottomRightPadding int
}

// NewPaddedGrid wraps data of size*size cells with symmetric padding.
func NewPaddedGrid(data []ARGB, size, padding int) (PaddedGrid, error) {
	if size <= 0 || len(data) != size*size {
		return PaddedGrid{}, fmt.Errorf("%w: padded grid needs %d cells, got %d", ErrInvalidRequest, size*size, len(data))
	}
	if padding < 0 || 2*padding >= size {
		return PaddedGrid{}, fmt.Errorf("%w: padding %d leaves no interior in a grid of size %d", ErrInvalidRequest, padding, size)
	}
	return PaddedGrid{Data: data, Size: size, TopLeftPadding: padding, BottomRightPadding: padding}, nil
}

// InnerSize is the side length of the unpadded region.
func (p PaddedGrid) InnerSize() int {
	return p.Size - p.TopLeftPadding - p.BottomRightPadding
}

// Unpadded reads the cell at logical coordinates (x, z), where (0, 0) is the first cell
// inside the padding.
func (p PaddedGrid) Unpadded(x, z int) ARGB {
	return p.Data[(z+p.TopLeftPadding)*p.Size+x+p.TopLeftPadding]
}

// Crop copies the unpadded region into a new InnerSize*InnerSize grid.
func (p PaddedGrid) Crop() []ARGB {
	inner := p.InnerSize()
	out := make([]ARGB, inner*inner)
	for z := 0; z < inner; z++ {
		for x := 0; x < inner; x++ {
			out[z*inner+x] = p.Unpadded(x, z)
		}
	}
	return out
}
