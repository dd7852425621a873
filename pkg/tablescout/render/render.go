// Package render converts an extracted table workbook to a PNG image
// by driving LibreOffice and poppler as external tools.
package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Renderer drives the xlsx -> PDF -> PNG conversion pipeline.
type Renderer struct {
	// SofficePath is the LibreOffice binary.
	SofficePath string
	// PdftoppmPath is the poppler pdftoppm binary.
	PdftoppmPath string
	// DPI is the raster resolution of the PNG.
	DPI int
	// Timeout bounds each external tool invocation.
	Timeout time.Duration
}

// New returns a renderer with the standard tool names on PATH, 150 DPI
// output, and a 30 second per-tool timeout.
func New() *Renderer {
	return &Renderer{
		SofficePath:  "soffice",
		PdftoppmPath: "pdftoppm",
		DPI:          150,
		Timeout:      30 * time.Second,
	}
}

// ToolError reports a failed external tool invocation.
type ToolError struct {
	// Tool is the binary that failed.
	Tool string
	// Stderr is the captured tool diagnostics.
	Stderr string
	// Err is the underlying execution error.
	Err error
}

func (e *ToolError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", e.Tool, e.Err, strings.TrimSpace(e.Stderr))
	}
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// Render converts the workbook at xlsxPath to a single PNG image. The
// intermediate PDF and the PNG live in a private temp directory that
// is removed before returning.
func (r *Renderer) Render(ctx context.Context, xlsxPath string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "tablescout-render-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := r.run(ctx, r.SofficePath, "--headless", "--convert-to", "pdf", "--outdir", dir, xlsxPath); err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(filepath.Base(xlsxPath), filepath.Ext(xlsxPath))
	pdfPath := filepath.Join(dir, base+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return nil, &ToolError{Tool: r.SofficePath, Err: fmt.Errorf("no PDF produced: %w", err)}
	}

	pngBase := filepath.Join(dir, "table")
	if err := r.run(ctx, r.PdftoppmPath, "-png", "-r", strconv.Itoa(r.DPI), "-singlefile", pdfPath, pngBase); err != nil {
		return nil, err
	}
	png, err := os.ReadFile(pngBase + ".png")
	if err != nil {
		return nil, &ToolError{Tool: r.PdftoppmPath, Err: fmt.Errorf("no PNG produced: %w", err)}
	}
	return png, nil
}

func (r *Renderer) run(ctx context.Context, tool string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &ToolError{Tool: tool, Stderr: stderr.String(), Err: err}
	}
	return nil
}
