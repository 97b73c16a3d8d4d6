package vein

// BoxBlur smooths a packed grid channel by channel with a clamped sliding window.
// Each output channel is the integer mean of the in-bounds cells within Radius.
type BoxBlur struct {
	Radius int
}

// Apply runs the horizontal pass then the vertical pass in place.
func (b BoxBlur) Apply(data []ARGB, width, height int) {
	b.BlurHorizontal(data, width, height)
	b.BlurVertical(data, width, height)
}

// BlurHorizontal blurs every row in place.
func (b BoxBlur) BlurHorizontal(data []ARGB, width, height int) {
	if b.Radius <= 0 {
		return
	}
	line := make([]ARGB, width)
	for z := 0; z < height; z++ {
		blurLine(data, z*width, 1, width, b.Radius, line)
	}
}

// BlurVertical blurs every column in place.
func (b BoxBlur) BlurVertical(data []ARGB, width, height int) {
	if b.Radius <= 0 {
		return
	}
	line := make([]ARGB, height)
	for x := 0; x < width; x++ {
		blurLine(data, x, width, height, b.Radius, line)
	}
}

// blurLine blurs the n cells data[start], data[start+stride], ... using buf as scratch.
func blurLine(data []ARGB, start, stride, n, radius int, buf []ARGB) {
	var sum [4]int
	hits := 0

	for i := -radius; i < n; i++ {
		if old := i - radius - 1; old >= 0 {
			c := data[start+old*stride].Channels()
			for k := range sum {
				sum[k] -= int(c[k])
			}
			hits--
		}
		if next := i + radius; next < n {
			c := data[start+next*stride].Channels()
			for k := range sum {
				sum[k] += int(c[k])
			}
			hits++
		}
		if i >= 0 {
			buf[i] = NewARGB(uint8(sum[0]/hits), uint8(sum[1]/hits), uint8(sum[2]/hits), uint8(sum[3]/hits))
		}
	}

	for i := 0; i < n; i++ {
		data[start+i*stride] = buf[i]
	}
}
