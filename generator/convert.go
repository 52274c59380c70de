package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"iconforge/common"
)

// ConvertDirectory converts every file with the configured source
// extension in the source directory to a single-frame .ico with the same
// base name. Files are processed independently; one file's failure does
// not stop the rest. The returned error is non-nil only when the
// directory itself cannot be read.
func (g *Generator) ConvertDirectory() ([]Result, error) {
	dir := g.cfg.Source.Dir
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read directory %s: %v", common.ErrIOFailure, dir, err)
	}

	ext := strings.ToLower(g.cfg.Convert.Extension)
	policy := policyFromString(g.cfg.Convert.Overwrite)

	var results []Result
	for _, entry := range entries {
		if entry.IsDir() || strings.ToLower(filepath.Ext(entry.Name())) != ext {
			continue
		}
		base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		outName := base + ".ico"

		skipped, err := g.convertOne(
			filepath.Join(dir, entry.Name()),
			filepath.Join(dir, outName),
			policy,
		)
		results = append(results, Result{Name: outName, Skipped: skipped, Err: err})
	}

	return results, nil
}

// convertOne converts a single source image to a single-frame .ico.
func (g *Generator) convertOne(srcPath, dstPath string, policy common.OverwritePolicy) (bool, error) {
	// Check before decoding so a skip costs no work.
	if policy == common.SkipIfExists {
		if _, err := os.Stat(dstPath); err == nil {
			return true, nil
		}
	}

	img, err := common.LoadImage(srcPath)
	if err != nil {
		return false, err
	}

	size := g.cfg.Convert.IcoSize
	return common.WriteImage(common.Normalize(img, true), dstPath, common.ICO,
		common.EncodeOptions{IcoSizes: []int{size}}, policy)
}
