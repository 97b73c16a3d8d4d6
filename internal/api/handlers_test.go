package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/VoidMesh/orevein/internal/testutil"
	mockapi "github.com/VoidMesh/orevein/internal/testmocks/api"
	"github.com/VoidMesh/orevein/services/vein"
)

func newTestServer(t *testing.T) (*mockapi.MockTileGenerator, http.Handler) {
	t.Helper()
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	t.Cleanup(cleanup)

	ctrl := gomock.NewController(t)
	gen := mockapi.NewMockTileGenerator(ctrl)
	return gen, SetupRoutes(NewHandler(gen, 2, 128))
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHandler_HealthCheck(t *testing.T) {
	_, h := newTestServer(t)

	rec := doRequest(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]interface{}](t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "orevein", body["service"])
}

func TestHandler_GetTile(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setupMocks func(gen *mockapi.MockTileGenerator)
		wantStatus int
		validate   func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "explicit parameters",
			target: "/api/v1/tiles/3/-4?width=2&height=2&flags=0",
			setupMocks: func(gen *mockapi.MockTileGenerator) {
				gen.EXPECT().
					Generate(3, -4, 2, 2, vein.Flags(0), gomock.Nil()).
					Return([]vein.ARGB{1, 2, 3, 0xFFFFFFFF}, nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				tile := decode[TileResponse](t, rec)
				assert.Equal(t, 3, tile.OriginX)
				assert.Equal(t, -4, tile.OriginZ)
				assert.Equal(t, 2, tile.Width)
				assert.Equal(t, 2, tile.Height)
				assert.Equal(t, uint32(0), tile.Flags)
				assert.Equal(t, []uint32{1, 2, 3, 0xFFFFFFFF}, tile.Cells)
			},
		},
		{
			name:   "defaults",
			target: "/api/v1/tiles/0/0",
			setupMocks: func(gen *mockapi.MockTileGenerator) {
				gen.EXPECT().
					Generate(0, 0, 64, 64, vein.DefaultLayerFlags, gomock.Nil()).
					Return(make([]vein.ARGB, 64*64), nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				tile := decode[TileResponse](t, rec)
				assert.Equal(t, uint32(vein.DefaultLayerFlags), tile.Flags)
				assert.Len(t, tile.Cells, 64*64)
			},
		},
		{
			name:   "hex flags and thresholds",
			target: "/api/v1/tiles/1/1?width=1&height=1&flags=0x51&thresholds=0.1,%200.2",
			setupMocks: func(gen *mockapi.MockTileGenerator) {
				gen.EXPECT().
					Generate(1, 1, 1, 1, vein.Flags(0x51), []float64{0.1, 0.2}).
					Return([]vein.ARGB{7}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "generator rejects request",
			target: "/api/v1/tiles/0/0?width=4&height=4&thresholds=0.1",
			setupMocks: func(gen *mockapi.MockTileGenerator) {
				gen.EXPECT().
					Generate(0, 0, 4, 4, vein.DefaultLayerFlags, []float64{0.1}).
					Return(nil, fmt.Errorf("%w: thresholds length 1 does not match octave count 4", vein.ErrInvalidRequest))
			},
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decode[ErrorResponse](t, rec)
				assert.Equal(t, http.StatusBadRequest, resp.Code)
				assert.Contains(t, resp.Message, "octave count")
			},
		},
		{
			name:   "internal failure hides details",
			target: "/api/v1/tiles/0/0?width=4&height=4",
			setupMocks: func(gen *mockapi.MockTileGenerator) {
				gen.EXPECT().
					Generate(0, 0, 4, 4, vein.DefaultLayerFlags, gomock.Nil()).
					Return(nil, errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				resp := decode[ErrorResponse](t, rec)
				assert.Equal(t, "Internal server error", resp.Error)
				assert.NotContains(t, rec.Body.String(), "boom")
			},
		},
		{name: "invalid x", target: "/api/v1/tiles/abc/0", wantStatus: http.StatusBadRequest},
		{name: "invalid z", target: "/api/v1/tiles/0/1.5", wantStatus: http.StatusBadRequest},
		{name: "zero width", target: "/api/v1/tiles/0/0?width=0", wantStatus: http.StatusBadRequest},
		{name: "width above limit", target: "/api/v1/tiles/0/0?width=129", wantStatus: http.StatusBadRequest},
		{name: "non numeric height", target: "/api/v1/tiles/0/0?height=tall", wantStatus: http.StatusBadRequest},
		{name: "malformed flags", target: "/api/v1/tiles/0/0?flags=nope", wantStatus: http.StatusBadRequest},
		{name: "gating out of range", target: "/api/v1/tiles/0/0?flags=0b111100000", wantStatus: http.StatusBadRequest},
		{name: "malformed thresholds", target: "/api/v1/tiles/0/0?thresholds=0.1,x", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, h := newTestServer(t)
			if tt.setupMocks != nil {
				tt.setupMocks(gen)
			}

			rec := doRequest(t, h, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.validate != nil {
				tt.validate(t, rec)
			}
		})
	}
}

func TestHandler_GetDiffusedTile(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setupMocks func(gen *mockapi.MockTileGenerator)
		wantStatus int
		wantSize   int
	}{
		{
			name:   "explicit options",
			target: "/api/v1/tiles/1/2/diffuse?small=8&large=32&flags=0&diffusion=3&blur=0&tries=5&padding=1",
			setupMocks: func(gen *mockapi.MockTileGenerator) {
				gen.EXPECT().
					GenerateDiffuse(1, 2, vein.DiffuseOptions{
						SmallSize:       8,
						LargeSize:       32,
						Flags:           0,
						DiffusionRadius: 3,
						BlurRadius:      0,
						MaxTries:        5,
						Padding:         1,
					}).
					Return(make([]vein.ARGB, 32*32), nil)
			},
			wantStatus: http.StatusOK,
			wantSize:   32,
		},
		{
			name:   "defaults",
			target: "/api/v1/tiles/-16/16/diffuse",
			setupMocks: func(gen *mockapi.MockTileGenerator) {
				opts := vein.DefaultDiffuseOptions(16, 64, 4, 1)
				opts.Flags = vein.DefaultLayerFlags
				gen.EXPECT().GenerateDiffuse(-16, 16, opts).Return(make([]vein.ARGB, 64*64), nil)
			},
			wantStatus: http.StatusOK,
			wantSize:   64,
		},
		{
			name:   "small defaults to large when large is smaller",
			target: "/api/v1/tiles/0/0/diffuse?large=8",
			setupMocks: func(gen *mockapi.MockTileGenerator) {
				opts := vein.DefaultDiffuseOptions(8, 8, 4, 1)
				opts.Flags = vein.DefaultLayerFlags
				gen.EXPECT().GenerateDiffuse(0, 0, opts).Return(make([]vein.ARGB, 64), nil)
			},
			wantStatus: http.StatusOK,
			wantSize:   8,
		},
		{
			name:   "independent axes",
			target: "/api/v1/tiles/0/0/diffuse?large=16&small=4&independent=true",
			setupMocks: func(gen *mockapi.MockTileGenerator) {
				opts := vein.DefaultDiffuseOptions(4, 16, 4, 1)
				opts.Flags = vein.DefaultLayerFlags
				opts.IndependentAxes = true
				gen.EXPECT().GenerateDiffuse(0, 0, opts).Return(make([]vein.ARGB, 16*16), nil)
			},
			wantStatus: http.StatusOK,
			wantSize:   16,
		},
		{
			name:   "tries at limit",
			target: "/api/v1/tiles/0/0/diffuse?large=16&small=4&tries=64",
			setupMocks: func(gen *mockapi.MockTileGenerator) {
				opts := vein.DefaultDiffuseOptions(4, 16, 4, 1)
				opts.Flags = vein.DefaultLayerFlags
				opts.MaxTries = 64
				gen.EXPECT().GenerateDiffuse(0, 0, opts).Return(make([]vein.ARGB, 16*16), nil)
			},
			wantStatus: http.StatusOK,
			wantSize:   16,
		},
		{name: "malformed independent", target: "/api/v1/tiles/0/0/diffuse?independent=maybe", wantStatus: http.StatusBadRequest},
		{name: "small above large", target: "/api/v1/tiles/0/0/diffuse?small=64&large=32", wantStatus: http.StatusBadRequest},
		{name: "zero diffusion radius", target: "/api/v1/tiles/0/0/diffuse?diffusion=0", wantStatus: http.StatusBadRequest},
		{name: "negative blur", target: "/api/v1/tiles/0/0/diffuse?blur=-1", wantStatus: http.StatusBadRequest},
		{name: "non numeric tries", target: "/api/v1/tiles/0/0/diffuse?tries=many", wantStatus: http.StatusBadRequest},
		{name: "tries above limit", target: "/api/v1/tiles/0/0/diffuse?tries=1000000000", wantStatus: http.StatusBadRequest},
		{name: "diffusion radius beyond large size", target: "/api/v1/tiles/0/0/diffuse?large=32&diffusion=33", wantStatus: http.StatusBadRequest},
		{name: "blur radius beyond large size", target: "/api/v1/tiles/0/0/diffuse?large=32&blur=33", wantStatus: http.StatusBadRequest},
		{name: "padding above tile limit", target: "/api/v1/tiles/0/0/diffuse?padding=129", wantStatus: http.StatusBadRequest},
		{name: "padding beyond canvas limit", target: "/api/v1/tiles/0/0/diffuse?small=1&large=128&padding=10", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, h := newTestServer(t)
			if tt.setupMocks != nil {
				tt.setupMocks(gen)
			}

			rec := doRequest(t, h, http.MethodGet, tt.target, "")
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus == http.StatusOK {
				tile := decode[TileResponse](t, rec)
				assert.Equal(t, tt.wantSize, tile.Width)
				assert.Equal(t, tt.wantSize, tile.Height)
				assert.Len(t, tile.Cells, tt.wantSize*tt.wantSize)
			}
		})
	}
}

func TestHandler_PostTileBatch(t *testing.T) {
	gen, h := newTestServer(t)

	gen.EXPECT().
		Generate(0, 0, 2, 1, vein.DefaultLayerFlags, gomock.Nil()).
		Return([]vein.ARGB{10, 11}, nil)
	gen.EXPECT().
		Generate(2, 0, 2, 1, vein.Flags(1), []float64{0, 0, 0, 0}).
		Return([]vein.ARGB{20, 21}, nil)

	body := `{"tiles":[
		{"x":0,"z":0,"width":2,"height":1},
		{"x":2,"z":0,"width":2,"height":1,"flags":1,"thresholds":[0,0,0,0]}
	]}`
	rec := doRequest(t, h, http.MethodPost, "/api/v1/tiles/batch", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[BatchResponse](t, rec)
	require.Len(t, resp.Tiles, 2)
	assert.Equal(t, []uint32{10, 11}, resp.Tiles[0].Cells)
	assert.Equal(t, uint32(vein.DefaultLayerFlags), resp.Tiles[0].Flags)
	assert.Equal(t, []uint32{20, 21}, resp.Tiles[1].Cells)
	assert.Equal(t, 2, resp.Tiles[1].OriginX)
}

func TestHandler_PostTileBatch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMocks func(gen *mockapi.MockTileGenerator)
		wantStatus int
	}{
		{name: "malformed body", body: `{"tiles":`, wantStatus: http.StatusBadRequest},
		{name: "no tiles", body: `{"tiles":[]}`, wantStatus: http.StatusBadRequest},
		{name: "tile too large", body: `{"tiles":[{"width":4096,"height":1}]}`, wantStatus: http.StatusBadRequest},
		{name: "tile without size", body: `{"tiles":[{"x":1}]}`, wantStatus: http.StatusBadRequest},
		{
			name: "generator rejects tile",
			body: `{"tiles":[{"width":1,"height":1,"flags":480}]}`,
			setupMocks: func(gen *mockapi.MockTileGenerator) {
				gen.EXPECT().
					Generate(0, 0, 1, 1, vein.Flags(480), gomock.Nil()).
					Return(nil, fmt.Errorf("%w: gating channel 15 out of range 0..4", vein.ErrInvalidRequest))
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, h := newTestServer(t)
			if tt.setupMocks != nil {
				tt.setupMocks(gen)
			}

			rec := doRequest(t, h, http.MethodPost, "/api/v1/tiles/batch", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			resp := decode[ErrorResponse](t, rec)
			assert.Equal(t, tt.wantStatus, resp.Code)
		})
	}
}

func TestHandler_PostTileBatch_TooManyTiles(t *testing.T) {
	_, h := newTestServer(t)

	tiles := make([]string, maxBatchTiles+1)
	for i := range tiles {
		tiles[i] = `{"width":1,"height":1}`
	}
	rec := doRequest(t, h, http.MethodPost, "/api/v1/tiles/batch", `{"tiles":[`+strings.Join(tiles, ",")+`]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_WithRealGenerator(t *testing.T) {
	cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
	defer cleanup()

	gen, err := vein.NewGenerator(vein.DefaultConfig(42), nil)
	require.NoError(t, err)
	h := SetupRoutes(NewHandler(gen, 2, 0))

	rec := doRequest(t, h, http.MethodGet, "/api/v1/tiles/0/0?width=4&height=4&flags=0", "")
	require.Equal(t, http.StatusOK, rec.Code)

	want, err := gen.Generate(0, 0, 4, 4, 0, nil)
	require.NoError(t, err)

	tile := decode[TileResponse](t, rec)
	require.Len(t, tile.Cells, 16)
	for i, v := range want {
		assert.Equal(t, uint32(v), tile.Cells[i])
	}
}
