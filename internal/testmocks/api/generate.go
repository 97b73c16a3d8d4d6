// Package mockapi provides mock implementations of the tile API's dependencies for testing
package mockapi

//go:generate go tool mockgen -destination=mock_tile_generator.go -package=mockapi github.com/VoidMesh/orevein/services/vein TileGenerator
