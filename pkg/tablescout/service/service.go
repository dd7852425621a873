// Package service implements the JSON request/response framing of the
// table capture pipeline: one request object in, one response object
// out, with the temp-file lifecycle owned here and the boundary
// inference core kept free of any I/O.
package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/arborcap/tablescout/pkg/tablescout"
	"github.com/arborcap/tablescout/pkg/tablescout/extract"
	"github.com/arborcap/tablescout/pkg/tablescout/grid"
	"github.com/arborcap/tablescout/pkg/tablescout/models"
	"go.uber.org/zap"
)

// Request is a single table capture request.
type Request struct {
	// ExcelBase64 is the source workbook, base64-encoded.
	ExcelBase64 string `json:"excelBase64"`
	// TableName is the header text that names the wanted table.
	TableName string `json:"tableName"`
	// SheetHint optionally names the sheet the table likely lives on.
	// The hinted sheet is tried first; a miss falls back to searching
	// every sheet.
	SheetHint string `json:"sheetHint,omitempty"`
}

// Response carries the rendered table image or an error message.
type Response struct {
	// Success reports whether a table was located and rendered.
	Success bool `json:"success"`
	// Image is the PNG of the table, base64-encoded.
	Image string `json:"image,omitempty"`
	// Error is the failure description when Success is false.
	Error string `json:"error,omitempty"`
	// Method identifies the capture strategy.
	Method string `json:"method,omitempty"`
	// SourceSheet is the sheet the table was found on.
	SourceSheet string `json:"sourceSheet,omitempty"`
	// ExtractedRange is the inferred region in A1 notation.
	ExtractedRange string `json:"extractedRange,omitempty"`
}

// ImageRenderer renders an extracted workbook file to PNG bytes.
type ImageRenderer interface {
	Render(ctx context.Context, xlsxPath string) ([]byte, error)
}

// Handler processes capture requests end to end: decode, locate,
// extract, render.
type Handler struct {
	// Opts configures table location.
	Opts tablescout.Options
	// Renderer converts the extracted workbook to an image.
	Renderer ImageRenderer
	// Logger receives progress diagnostics; responses never carry them.
	Logger *zap.Logger
}

// NewHandler builds a handler around the given renderer. A nil logger
// disables diagnostics.
func NewHandler(r ImageRenderer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Renderer: r, Logger: logger}
}

// Serve reads one JSON request from in and writes one JSON response to
// out. Malformed input still yields a well-formed error response.
func (h *Handler) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	var req Request
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return json.NewEncoder(out).Encode(Response{
			Success: false,
			Error:   fmt.Sprintf("decode request: %v", err),
		})
	}
	return json.NewEncoder(out).Encode(h.Handle(ctx, req))
}

// Handle processes one capture request.
func (h *Handler) Handle(ctx context.Context, req Request) Response {
	raw, err := base64.StdEncoding.DecodeString(req.ExcelBase64)
	if err != nil {
		return failure("decode excelBase64: %v", err)
	}
	doc, err := grid.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return failure("open workbook: %v", err)
	}
	defer doc.Close()

	res, err := h.locateTable(doc, req)
	if errors.Is(err, tablescout.ErrTableNotFound) {
		h.Logger.Info("table not found",
			zap.String("table", req.TableName),
			zap.Strings("sheets", doc.SheetNames()))
		return failure("table %q not found; available sheets: %v", req.TableName, doc.SheetNames())
	}
	if err != nil {
		return failure("locate table: %v", err)
	}
	h.Logger.Info("table located",
		zap.String("table", req.TableName),
		zap.String("sheet", res.SheetName),
		zap.String("range", res.Region.Range()))

	wb, err := extract.CopyRegion(doc, res.Region)
	if err != nil {
		return failure("extract region: %v", err)
	}
	defer wb.Close()

	dir, err := os.MkdirTemp("", "tablescout-")
	if err != nil {
		return failure("temp dir: %v", err)
	}
	defer os.RemoveAll(dir)
	xlsxPath := filepath.Join(dir, "table.xlsx")
	if err := wb.SaveAs(xlsxPath); err != nil {
		return failure("save extracted workbook: %v", err)
	}

	png, err := h.Renderer.Render(ctx, xlsxPath)
	if err != nil {
		h.Logger.Error("render failed", zap.Error(err))
		return failure("render: %v", err)
	}

	return Response{
		Success:        true,
		Image:          base64.StdEncoding.EncodeToString(png),
		Method:         "region-extraction",
		SourceSheet:    res.SheetName,
		ExtractedRange: res.Region.Range(),
	}
}

// locateTable tries the hinted sheet first, then falls back to the
// all-sheets search.
func (h *Handler) locateTable(doc *grid.Document, req Request) (*models.Result, error) {
	if req.SheetHint != "" {
		res, err := tablescout.FindOnSheet(doc, req.SheetHint, req.TableName, h.Opts)
		if err == nil {
			return res, nil
		}
		h.Logger.Info("sheet hint missed",
			zap.String("hint", req.SheetHint),
			zap.String("table", req.TableName))
	}
	return tablescout.FindInDocument(doc, req.TableName, h.Opts)
}

func failure(format string, args ...any) Response {
	return Response{Success: false, Error: fmt.Sprintf(format, args...)}
}
