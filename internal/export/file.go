package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/hazard-nrml-export/internal/domain"
)

// ExportFile reads a bundle from bundlePath and writes the NRML document
// next to it (or under outputDir when non-empty), swapping the extension
// for .xml. The sink file is closed on every path; on error a partial file
// may remain, and the path of the written document is returned for logging.
func (e *Exporter) ExportFile(bundlePath, outputDir string) (string, error) {
	data, err := os.ReadFile(bundlePath)
	if err != nil {
		return "", fmt.Errorf("read bundle: %w", err)
	}

	bundle, err := domain.DecodeBundle(data)
	if err != nil {
		return "", err
	}

	outPath := outputPath(bundlePath, outputDir)
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}

	exportErr := e.Export(bundle, f)
	if closeErr := f.Close(); exportErr == nil && closeErr != nil {
		exportErr = fmt.Errorf("close output file: %w", closeErr)
	}
	return outPath, exportErr
}

func outputPath(bundlePath, outputDir string) string {
	base := filepath.Base(bundlePath)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	base += ".xml"

	if outputDir == "" {
		return filepath.Join(filepath.Dir(bundlePath), base)
	}
	return filepath.Join(outputDir, base)
}
