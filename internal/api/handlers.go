package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/VoidMesh/orevein/internal/logging"
	"github.com/VoidMesh/orevein/services/vein"
)

const (
	defaultTileSize    = 64
	defaultSmallSize   = 16
	defaultDiffusion   = 4
	defaultBlur        = 1
	defaultMaxTileSize = 512
	maxBatchTiles      = 64
	// maxDiffuseTries bounds per-cell retries; a fully culled canvas runs every one of them.
	maxDiffuseTries    = 64
)

type Handler struct {
	generator   vein.TileGenerator
	workers     int
	maxTileSize int
	logger      *log.Logger
}

// NewHandler serves tiles from generator. workers bounds batch concurrency; maxTileSize caps
// any requested side length (a non-positive value uses the default).
func NewHandler(generator vein.TileGenerator, workers, maxTileSize int) *Handler {
	if maxTileSize <= 0 {
		maxTileSize = defaultMaxTileSize
	}
	return &Handler{
		generator:   generator,
		workers:     workers,
		maxTileSize: maxTileSize,
		logger:      logging.WithComponent("api"),
	}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "orevein",
		"version":   "1.0.0",
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response)
}

// GetTile handles GET /api/v1/tiles/{x}/{z}?width=&height=&flags=&thresholds=
func (h *Handler) GetTile(w http.ResponseWriter, r *http.Request) {
	originX, originZ, ok := h.parseOrigin(w, r)
	if !ok {
		return
	}

	width, err := h.querySize(r, "width", defaultTileSize)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid width", err)
		return
	}
	height, err := h.querySize(r, "height", defaultTileSize)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid height", err)
		return
	}
	flags, err := queryFlags(r, vein.DefaultLayerFlags)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid flags", err)
		return
	}
	thresholds, err := queryThresholds(r)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid thresholds", err)
		return
	}

	start := time.Now()
	cells, err := h.generator.Generate(originX, originZ, width, height, flags, thresholds)
	if err != nil {
		h.renderGenerateError(w, r, "failed to generate tile", err)
		return
	}
	logging.WithTile(originX, originZ).Debug("Generated tile", "width", width, "height", height, "duration", time.Since(start))

	render.Status(r, http.StatusOK)
	render.JSON(w, r, newTileResponse(originX, originZ, width, height, flags, cells))
}

// GetDiffusedTile handles
// GET /api/v1/tiles/{x}/{z}/diffuse?small=&large=&flags=&diffusion=&blur=&tries=&padding=&independent=
func (h *Handler) GetDiffusedTile(w http.ResponseWriter, r *http.Request) {
	originX, originZ, ok := h.parseOrigin(w, r)
	if !ok {
		return
	}

	large, err := h.querySize(r, "large", defaultTileSize)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid large size", err)
		return
	}
	small, err := h.querySize(r, "small", min(defaultSmallSize, large))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid small size", err)
		return
	}
	flags, err := queryFlags(r, vein.DefaultLayerFlags)
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid flags", err)
		return
	}

	opts := vein.DefaultDiffuseOptions(small, large, defaultDiffusion, defaultBlur)
	opts.Flags = flags
	for _, p := range []struct {
		name  string
		dst   *int
		limit int
	}{
		{"diffusion", &opts.DiffusionRadius, large},
		{"blur", &opts.BlurRadius, large},
		{"tries", &opts.MaxTries, maxDiffuseTries},
		{"padding", &opts.Padding, h.maxTileSize},
	} {
		if *p.dst, err = queryInt(r, p.name, *p.dst); err != nil {
			h.renderError(w, r, http.StatusBadRequest, "invalid "+p.name, err)
			return
		}
		if *p.dst > p.limit {
			h.renderError(w, r, http.StatusBadRequest, "invalid "+p.name,
				fmt.Errorf("%s must be at most %d, got %d", p.name, p.limit, *p.dst))
			return
		}
	}
	if raw := r.URL.Query().Get("independent"); raw != "" {
		if opts.IndependentAxes, err = strconv.ParseBool(raw); err != nil {
			h.renderError(w, r, http.StatusBadRequest, "invalid independent", err)
			return
		}
	}
	if err := opts.Validate(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid diffuse options", err)
		return
	}
	if opts.PaddedSize() > 2*h.maxTileSize {
		h.renderError(w, r, http.StatusBadRequest, "padding too large",
			fmt.Errorf("padded canvas %d exceeds %d", opts.PaddedSize(), 2*h.maxTileSize))
		return
	}

	start := time.Now()
	cells, err := h.generator.GenerateDiffuse(originX, originZ, opts)
	if err != nil {
		h.renderGenerateError(w, r, "failed to generate diffused tile", err)
		return
	}
	logging.WithTile(originX, originZ).Debug("Generated diffused tile", "small", small, "large", large, "duration", time.Since(start))

	render.Status(r, http.StatusOK)
	render.JSON(w, r, newTileResponse(originX, originZ, large, large, flags, cells))
}

// PostTileBatch handles POST /api/v1/tiles/batch.
func (h *Handler) PostTileBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if len(req.Tiles) == 0 {
		h.renderError(w, r, http.StatusBadRequest, "tiles must not be empty", nil)
		return
	}
	if len(req.Tiles) > maxBatchTiles {
		h.renderError(w, r, http.StatusBadRequest, fmt.Sprintf("at most %d tiles per batch", maxBatchTiles), nil)
		return
	}

	requests := make([]vein.TileRequest, len(req.Tiles))
	for i, t := range req.Tiles {
		if t.Width <= 0 || t.Height <= 0 || t.Width > h.maxTileSize || t.Height > h.maxTileSize {
			h.renderError(w, r, http.StatusBadRequest, fmt.Sprintf("tile %d: size must be within 1..%d", i, h.maxTileSize), nil)
			return
		}
		flags := vein.DefaultLayerFlags
		if t.Flags != nil {
			flags = vein.Flags(*t.Flags)
		}
		requests[i] = vein.TileRequest{
			OriginX:    t.X,
			OriginZ:    t.Z,
			Width:      t.Width,
			Height:     t.Height,
			Flags:      flags,
			Thresholds: t.Thresholds,
		}
	}

	start := time.Now()
	grids, err := vein.GenerateTiles(r.Context(), h.generator, requests, h.workers)
	if err != nil {
		h.renderGenerateError(w, r, "failed to generate tiles", err)
		return
	}
	logging.WithDuration("tile_batch", time.Since(start)).Debug("Generated tile batch", "tiles", len(grids), "workers", h.workers)

	resp := BatchResponse{Tiles: make([]TileResponse, len(grids))}
	for i, grid := range grids {
		tr := requests[i]
		resp.Tiles[i] = newTileResponse(tr.OriginX, tr.OriginZ, tr.Width, tr.Height, tr.Flags, grid)
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *Handler) parseOrigin(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	originX, err := strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid x coordinate", err)
		return 0, 0, false
	}
	originZ, err := strconv.Atoi(chi.URLParam(r, "z"))
	if err != nil {
		h.renderError(w, r, http.StatusBadRequest, "invalid z coordinate", err)
		return 0, 0, false
	}
	return originX, originZ, true
}

func (h *Handler) querySize(r *http.Request, name string, defaultValue int) (int, error) {
	v, err := queryInt(r, name, defaultValue)
	if err != nil {
		return 0, err
	}
	if v <= 0 || v > h.maxTileSize {
		return 0, fmt.Errorf("%s must be within 1..%d, got %d", name, h.maxTileSize, v)
	}
	return v, nil
}

func queryInt(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(raw)
}

// queryFlags accepts decimal, 0x or 0b notation.
func queryFlags(r *http.Request, defaultValue vein.Flags) (vein.Flags, error) {
	raw := r.URL.Query().Get("flags")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseUint(raw, 0, 32)
	if err != nil {
		return 0, err
	}
	flags := vein.Flags(v)
	return flags, flags.Validate()
}

// queryThresholds parses a comma-separated list; absent means the configured table.
func queryThresholds(r *http.Request) ([]float64, error) {
	raw := r.URL.Query().Get("thresholds")
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// renderGenerateError maps generator errors: rejected requests are the client's fault.
func (h *Handler) renderGenerateError(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case errors.Is(err, vein.ErrInvalidRequest):
		h.renderError(w, r, http.StatusBadRequest, message, err)
	case r.Context().Err() != nil && errors.Is(err, r.Context().Err()):
		h.renderError(w, r, http.StatusServiceUnavailable, "request cancelled", err)
	default:
		h.renderError(w, r, http.StatusInternalServerError, message, err)
	}
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	errorResponse := ErrorResponse{
		Error:   message,
		Code:    status,
		Message: message,
	}

	if err != nil {
		h.logger.Error("API error", "error", err, "message", message, "status", status)
		if status >= 500 {
			errorResponse.Error = "Internal server error"
		} else {
			errorResponse.Message = err.Error()
		}
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse)
}
