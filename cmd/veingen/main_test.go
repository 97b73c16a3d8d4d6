package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VoidMesh/orevein/services/vein"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		raw     string
		want    vein.Flags
		wantErr bool
	}{
		{raw: "81", want: vein.DefaultLayerFlags},
		{raw: "0b1010001", want: vein.DefaultLayerFlags},
		{raw: "0x10", want: vein.FlagInvert},
		{raw: "0", want: 0},
		{raw: "0b111100000", wantErr: true},
		{raw: "lots", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseFlags(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseChannels(t *testing.T) {
	all, err := parseChannels("all")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	g, err := parseChannels("g")
	require.NoError(t, err)
	assert.Equal(t, []vein.Channel{vein.ChannelG}, g)

	_, err = parseChannels("x")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	cells := []vein.ARGB{vein.NewARGB(1, 2, 3, 4), 0xFFFFFFFF, vein.NewARGB(9, 8, 7, 6), 0}

	out := render(cells, 2, []vein.Channel{vein.ChannelR}, vein.DefaultLayerFlags, "table", 42, 0, 0)
	assert.Contains(t, out, "seed=42")
	assert.Contains(t, out, "culled 1/4")
	assert.Contains(t, out, "gating channel")

	out = render(cells, 2, []vein.Channel{vein.ChannelB}, 0, "heatmap", 1, 3, 4)
	assert.Contains(t, out, "Channel B")
	assert.Contains(t, out, "culled 1/4")
	assert.NotContains(t, out, "gating channel")
}
