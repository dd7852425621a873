// Package main provides the CLI entry point for tablescout.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/arborcap/tablescout/pkg/tablescout"
	"github.com/arborcap/tablescout/pkg/tablescout/extract"
	"github.com/arborcap/tablescout/pkg/tablescout/grid"
	"github.com/arborcap/tablescout/pkg/tablescout/render"
	"github.com/arborcap/tablescout/pkg/tablescout/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	outputPath string
	pretty     bool
	xlsxOut    string
	pngOut     string
	dpi        int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tablescout",
		Short: "Locate named tables in Excel workbooks",
		Long: `tablescout finds a table by its header text in an unstructured
spreadsheet, infers its exact rectangular extent, and can extract or
render just that region.`,
	}

	findCmd := &cobra.Command{
		Use:   "find [input.xlsx] [header text]",
		Short: "Locate a table and print its region as JSON",
		Args:  cobra.ExactArgs(2),
		RunE:  runFind,
	}
	findCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	findCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	extractCmd := &cobra.Command{
		Use:   "extract [input.xlsx] [header text]",
		Short: "Extract the located table into a new workbook and/or PNG",
		Args:  cobra.ExactArgs(2),
		RunE:  runExtract,
	}
	extractCmd.Flags().StringVar(&xlsxOut, "xlsx-out", "", "Path for the extracted single-table workbook")
	extractCmd.Flags().StringVar(&pngOut, "png-out", "", "Path for the rendered PNG (requires soffice and pdftoppm)")
	extractCmd.Flags().IntVar(&dpi, "dpi", 150, "Raster resolution for PNG output")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Process one JSON capture request from stdin, respond on stdout",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	rootCmd.AddCommand(findCmd, extractCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runFind(cmd *cobra.Command, args []string) error {
	inputPath, header := args[0], args[1]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	res, err := tablescout.Find(inputPath, header, tablescout.DefaultOptions())
	if err != nil {
		return err
	}

	var jsonData []byte
	if pretty {
		jsonData, err = json.MarshalIndent(res, "", "  ")
	} else {
		jsonData, err = json.Marshal(res)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		return os.WriteFile(outputPath, jsonData, 0644)
	}
	fmt.Println(string(jsonData))
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath, header := args[0], args[1]
	if xlsxOut == "" && pngOut == "" {
		return errors.New("nothing to do: pass --xlsx-out and/or --png-out")
	}

	doc, err := grid.Open(inputPath)
	if err != nil {
		return err
	}
	defer doc.Close()

	res, err := tablescout.FindInDocument(doc, header, tablescout.DefaultOptions())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "found %q on sheet %q at %s\n", header, res.SheetName, res.Region.Range())

	wb, err := extract.CopyRegion(doc, res.Region)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	defer wb.Close()

	path := xlsxOut
	if path == "" {
		tmp, err := os.CreateTemp("", "tablescout-*.xlsx")
		if err != nil {
			return err
		}
		tmp.Close()
		path = tmp.Name()
		defer os.Remove(path)
	}
	if err := wb.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	if pngOut != "" {
		r := render.New()
		r.DPI = dpi
		png, err := r.Render(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("rendering failed: %w", err)
		}
		if err := os.WriteFile(pngOut, png, 0644); err != nil {
			return fmt.Errorf("failed to write PNG: %w", err)
		}
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	defer logger.Sync()

	h := service.NewHandler(render.New(), logger)
	return h.Serve(cmd.Context(), os.Stdin, os.Stdout)
}
