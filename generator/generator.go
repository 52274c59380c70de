package generator

import (
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"iconforge/common"
	"iconforge/config"
)

// Generator produces icon and preview assets from source images.
type Generator struct {
	cfg *config.Config
}

// Result records the outcome of one asset's generation.
type Result struct {
	Name    string
	Skipped bool
	Err     error
}

// New creates a new generator
func New(cfg *config.Config) *Generator {
	return &Generator{cfg: cfg}
}

// DeriveFromLogo loads the configured logo once and generates every
// declared asset from it, one goroutine per asset over the shared
// read-only source. Per-asset failures are collected in the results and
// never abort sibling assets. The returned error is non-nil only when the
// logo itself cannot be loaded, which is fatal for the whole run.
func (g *Generator) DeriveFromLogo() ([]Result, error) {
	logoPath := filepath.Join(g.cfg.Source.Dir, g.cfg.Source.Logo)
	src, err := common.LoadImage(logoPath)
	if err != nil {
		return nil, err
	}

	specs := DeriveAssets(g.cfg)
	results := make([]Result, len(specs))

	var wg sync.WaitGroup
	for i, spec := range specs {
		wg.Add(1)
		go func(i int, spec AssetSpec) {
			defer wg.Done()
			skipped, err := g.generateAsset(src, spec)
			results[i] = Result{Name: spec.Name, Skipped: skipped, Err: err}
		}(i, spec)
	}
	wg.Wait()

	return results, nil
}

// generateAsset runs one asset through normalize, resize, encode, write.
func (g *Generator) generateAsset(src image.Image, spec AssetSpec) (bool, error) {
	if spec.PreserveAlpha && !spec.Format.SupportsAlpha() {
		return false, fmt.Errorf("%w: %s cannot hold an alpha channel", common.ErrUnsupportedFormat, spec.Format)
	}

	var out image.Image = common.Normalize(src, spec.PreserveAlpha)
	if spec.Width != 0 || spec.Height != 0 {
		resized, err := common.Resize(out, spec.Width, spec.Height)
		if err != nil {
			return false, err
		}
		out = resized
	}

	path := filepath.Join(g.cfg.Source.Dir, spec.Name)
	return common.WriteImage(out, path, spec.Format, common.EncodeOptions{
		JPEGQuality: g.cfg.Derive.JPEGQuality,
		WebPQuality: g.cfg.Derive.WebPQuality,
		IcoSizes:    spec.IcoSizes,
	}, spec.Overwrite)
}
