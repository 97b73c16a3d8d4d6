package vein

import "fmt"

// Channel identifies one of the four packed channels.
type Channel int

const (
	ChannelA Channel = iota
	ChannelR
	ChannelG
	ChannelB
)

// channelOrder is the fixed evaluation and packing order.
var channelOrder = [4]Channel{ChannelA, ChannelR, ChannelG, ChannelB}

func (c Channel) String() string {
	switch c {
	case ChannelA:
		return "A"
	case ChannelR:
		return "R"
	case ChannelG:
		return "G"
	case ChannelB:
		return "B"
	default:
		return fmt.Sprintf("Channel(%d)", int(c))
	}
}

// Flags selects per-request sampling behaviour.
//
//	bit 0   ridge R
//	bit 1   ridge G
//	bit 2   ridge B
//	bit 3   ridge A
//	bit 4   invert
//	bits 5+ gating channel: 0 none, 1 A, 2 R, 3 G, 4 B
type Flags uint32

const (
	FlagRidgeR Flags = 1 << 0
	FlagRidgeG Flags = 1 << 1
	FlagRidgeB Flags = 1 << 2
	FlagRidgeA Flags = 1 << 3
	FlagInvert Flags = 1 << 4

	gatingShift = 5
	maxGating   = 4
)

// DefaultLayerFlags gates on R, ridges R and inverts. Used by GenerateLayer.
const DefaultLayerFlags Flags = 0b1010001

var ridgeFlag = [4]Flags{
	ChannelA: FlagRidgeA,
	ChannelR: FlagRidgeR,
	ChannelG: FlagRidgeG,
	ChannelB: FlagRidgeB,
}

// RidgeFlag returns the ridge bit for a channel.
func RidgeFlag(c Channel) Flags {
	return ridgeFlag[c]
}

// GateOn returns the gating bits selecting c as the cull channel.
func GateOn(c Channel) Flags {
	return Flags(c+1) << gatingShift
}

// Gating returns the designated cull channel, if any.
// Values outside 1..4 mean no gating.
func (f Flags) Gating() (Channel, bool) {
	v := f >> gatingShift
	if v < 1 || v > maxGating {
		return 0, false
	}
	return Channel(v - 1), true
}

// Ridged reports whether the ridge transform is enabled for c.
func (f Flags) Ridged(c Channel) bool {
	return f&ridgeFlag[c] != 0
}

// Inverted reports whether the output is inverted.
func (f Flags) Inverted() bool {
	return f&FlagInvert != 0
}

// Validate rejects gating values beyond the four channels.
func (f Flags) Validate() error {
	if v := f >> gatingShift; v > maxGating {
		return fmt.Errorf("%w: gating channel %d out of range 0..%d", ErrInvalidRequest, v, maxGating)
	}
	return nil
}
