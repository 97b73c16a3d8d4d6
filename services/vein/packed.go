package vein

import "math"

// ARGB is a packed 4-channel value: A in bits 24-31, R 16-23, G 8-15, B 0-7.
type ARGB uint32

// NewARGB packs four channel bytes.
func NewARGB(a, r, g, b uint8) ARGB {
	return ARGB(a)<<24 | ARGB(r)<<16 | ARGB(g)<<8 | ARGB(b)
}

func (v ARGB) A() uint8 { return uint8(v >> 24) }
func (v ARGB) R() uint8 { return uint8(v >> 16) }
func (v ARGB) G() uint8 { return uint8(v >> 8) }
func (v ARGB) B() uint8 { return uint8(v) }

// Channel returns the byte of the given channel.
func (v ARGB) Channel(c Channel) uint8 {
	switch c {
	case ChannelA:
		return v.A()
	case ChannelR:
		return v.R()
	case ChannelG:
		return v.G()
	default:
		return v.B()
	}
}

// Channels returns the bytes in A, R, G, B order.
func (v ARGB) Channels() [4]uint8 {
	return [4]uint8{v.A(), v.R(), v.G(), v.B()}
}

// Inverse is the bitwise complement of all four channel bytes.
func (v ARGB) Inverse() ARGB {
	return ^v
}

// InverseChannels subtracts every channel from 255. It always equals Inverse.
func (v ARGB) InverseChannels() ARGB {
	return NewARGB(255-v.A(), 255-v.R(), 255-v.G(), 255-v.B())
}

// packUnit maps a [0,1] value to a byte with round-to-nearest, clamping out-of-range input.
func packUnit(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// packUnits packs channel values given in A, R, G, B order.
func packUnits(values [4]float64) ARGB {
	return NewARGB(packUnit(values[ChannelA]), packUnit(values[ChannelR]), packUnit(values[ChannelG]), packUnit(values[ChannelB]))
}
