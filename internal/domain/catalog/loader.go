package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/radar/internal/domain"
	"github.com/kailas-cloud/radar/internal/domain/geo"
)

// fileItem is the on-disk item shape (flat latitude/longitude, both optional).
type fileItem struct {
	ID          int      `json:"id" yaml:"id"`
	AssetName   string   `json:"assetName" yaml:"asset_name"`
	NameTH      string   `json:"nameTH" yaml:"name_th"`
	NameEN      string   `json:"nameEN" yaml:"name_en"`
	NameSci     string   `json:"nameSci" yaml:"name_sci"`
	Type        string   `json:"type" yaml:"type"`
	Description string   `json:"description" yaml:"description"`
	Meaning     string   `json:"meaning" yaml:"meaning"`
	Latitude    *float64 `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
}

func (f fileItem) toItem() Item {
	it := Item{
		ID:          f.ID,
		AssetName:   f.AssetName,
		NameTH:      f.NameTH,
		NameEN:      f.NameEN,
		NameSci:     f.NameSci,
		Type:        f.Type,
		Description: f.Description,
		Meaning:     f.Meaning,
	}
	if f.Latitude != nil && f.Longitude != nil {
		it.Location = &geo.Coordinate{Lat: *f.Latitude, Lon: *f.Longitude}
	}
	return it
}

// Parse decodes a catalog document. format is "json" or "yaml".
func Parse(data []byte, format string) (Catalog, error) {
	var raw []fileItem
	switch format {
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return Catalog{}, fmt.Errorf("%w: decode json: %w", domain.ErrInvalidCatalog, err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Catalog{}, fmt.Errorf("%w: decode yaml: %w", domain.ErrInvalidCatalog, err)
		}
	default:
		return Catalog{}, fmt.Errorf("%w: unsupported format %q", domain.ErrInvalidCatalog, format)
	}

	items := make([]Item, len(raw))
	for i, r := range raw {
		items[i] = r.toItem()
	}
	return New(items)
}

// Load reads a catalog file; the format follows the file extension.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}

	format := "json"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}

	c, err := Parse(data, format)
	if err != nil {
		return Catalog{}, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return c, nil
}

// LoadOrDefault loads the catalog at path and falls back to the built-in
// catalog when path is empty or the file cannot be used.
func LoadOrDefault(path string, logger *zap.Logger) Catalog {
	if path == "" {
		return Default()
	}
	c, err := Load(path)
	if err != nil {
		logger.Warn("Falling back to built-in catalog", zap.String("path", path), zap.Error(err))
		return Default()
	}
	return c
}
