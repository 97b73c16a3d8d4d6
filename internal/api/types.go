package api

import "github.com/VoidMesh/orevein/services/vein"

// ErrorResponse is the JSON envelope for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TileResponse carries one generated grid. Cells are packed ARGB values, row-major.
type TileResponse struct {
	OriginX int      `json:"origin_x"`
	OriginZ int      `json:"origin_z"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Flags   uint32   `json:"flags"`
	Cells   []uint32 `json:"cells"`
}

func newTileResponse(originX, originZ, width, height int, flags vein.Flags, cells []vein.ARGB) TileResponse {
	packed := make([]uint32, len(cells))
	for i, c := range cells {
		packed[i] = uint32(c)
	}
	return TileResponse{
		OriginX: originX,
		OriginZ: originZ,
		Width:   width,
		Height:  height,
		Flags:   uint32(flags),
		Cells:   packed,
	}
}

// BatchTile is one entry of a batch request.
type BatchTile struct {
	X          int       `json:"x"`
	Z          int       `json:"z"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Flags      *uint32   `json:"flags,omitempty"`
	Thresholds []float64 `json:"thresholds,omitempty"`
}

// BatchRequest is the body of POST /api/v1/tiles/batch.
type BatchRequest struct {
	Tiles []BatchTile `json:"tiles"`
}

// BatchResponse lists generated tiles in request order.
type BatchResponse struct {
	Tiles []TileResponse `json:"tiles"`
}
