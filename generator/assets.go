package generator

import (
	"fmt"

	"iconforge/common"
	"iconforge/config"
)

// AssetSpec declares one derived output: name, container format, target
// size, alpha handling, and overwrite policy. A zero width and height
// means "keep the source size".
type AssetSpec struct {
	Name          string
	Format        common.Format
	Width         int
	Height        int
	PreserveAlpha bool
	Overwrite     common.OverwritePolicy
	IcoSizes      []int
}

// DeriveAssets builds the declared asset table for logo-derived
// generation from the configuration.
func DeriveAssets(cfg *config.Config) []AssetSpec {
	policy := policyFromString(cfg.Derive.Overwrite)

	var specs []AssetSpec
	for _, size := range cfg.Derive.FaviconSizes {
		specs = append(specs, AssetSpec{
			Name:          fmt.Sprintf("favicon-%dx%d.png", size, size),
			Format:        common.PNG,
			Width:         size,
			Height:        size,
			PreserveAlpha: true,
			Overwrite:     policy,
		})
	}

	specs = append(specs, AssetSpec{
		Name:          "apple-touch-icon.png",
		Format:        common.PNG,
		Width:         cfg.Derive.AppleTouchSize,
		Height:        cfg.Derive.AppleTouchSize,
		PreserveAlpha: true,
		Overwrite:     policy,
	})

	specs = append(specs, AssetSpec{
		Name:          "favicon.ico",
		Format:        common.ICO,
		PreserveAlpha: true,
		Overwrite:     policy,
		IcoSizes:      cfg.Derive.IcoSizes,
	})

	if cfg.Derive.Previews {
		specs = append(specs,
			AssetSpec{Name: "preview.png", Format: common.PNG, PreserveAlpha: true, Overwrite: policy},
			AssetSpec{Name: "preview.jpg", Format: common.JPEG, PreserveAlpha: false, Overwrite: policy},
			AssetSpec{Name: "preview.webp", Format: common.WEBP, PreserveAlpha: true, Overwrite: policy},
		)
	}

	if cfg.Derive.Icns {
		specs = append(specs, AssetSpec{
			Name:          "app-icon.icns",
			Format:        common.ICNS,
			PreserveAlpha: true,
			Overwrite:     policy,
		})
	}

	return specs
}

func policyFromString(s string) common.OverwritePolicy {
	// Config validation only admits "skip" and "always".
	if s == "always" {
		return common.AlwaysOverwrite
	}
	return common.SkipIfExists
}
