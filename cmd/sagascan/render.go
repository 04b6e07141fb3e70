package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"sagascan/internal/catalog"
	"sagascan/internal/registry"
	"sagascan/internal/report"
	"sagascan/internal/resolve"
)

// emitJSON writes v as indented JSON.
func emitJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// detectionTable lists resolved detections, one row per book. The same shape
// is used for analysis results and for dry-run commit plans.
func detectionTable(detections []resolve.Detection) string {
	tw := newTable([]string{"Title", "Author", "Series", "Vol", "Confidence"}, 4, 5)
	for _, det := range detections {
		tw.AppendRow(table.Row{
			det.Book.Title,
			det.Book.Author,
			det.SeriesName,
			volumeCell(det.VolumeNumber),
			formatConfidence(det.Confidence),
		})
	}
	return tw.Render()
}

// bookTable lists catalog books with their saga assignment.
func bookTable(books []catalog.Book) string {
	tw := newTable([]string{"Title", "Author", "Category", "Saga", "Vol", "Status"}, 5)
	for _, book := range books {
		tw.AppendRow(table.Row{
			book.Title,
			book.Author,
			book.Category,
			book.Saga,
			volumeCell(book.VolumeNumber),
			book.Status,
		})
	}
	return tw.Render()
}

// registryTable lists series definitions in registry order.
func registryTable(series []registry.Series) string {
	tw := newTable([]string{"Series", "Authors", "Category", "Volumes", "Status"}, 4)
	for _, s := range series {
		tw.AppendRow(table.Row{
			s.Name,
			strings.Join(s.Authors, ", "),
			string(s.Category),
			s.VolumeCount,
			string(s.Status),
		})
	}
	return tw.Render()
}

// seriesProgressTable shows per-saga reading progress from a collection
// summary. The published column stays empty for sagas the registry does not
// know.
func seriesProgressTable(series []report.SeriesSummary) string {
	tw := newTable([]string{"Series", "Owned", "Published", "Completed", "Reading", "To read", "Done"}, 2, 3, 4, 5, 6, 7)
	for _, s := range series {
		tw.AppendRow(table.Row{
			s.Name,
			s.Owned,
			volumeCell(s.VolumeCount),
			s.Completed,
			s.Reading,
			s.ToRead,
			fmt.Sprintf("%.0f%%", s.CompletionPercent),
		})
	}
	return tw.Render()
}

func volumeCell(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}

// newTable builds a writer with the shared look. rightAligned holds
// one-based column numbers; every other column stays left aligned.
func newTable(headers []string, rightAligned ...int) table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	configs := make([]table.ColumnConfig, 0, len(rightAligned))
	for _, number := range rightAligned {
		configs = append(configs, table.ColumnConfig{
			Number:      number,
			Align:       text.AlignRight,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)
	return tw
}
