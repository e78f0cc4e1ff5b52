package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/grantHarris/chatlog-model-tuner/internal/aggregator"
	"github.com/grantHarris/chatlog-model-tuner/internal/types"
)

const (
	messagesSheet = "Messages"
	summarySheet  = "Summary"
)

var messageHeader = []interface{}{
	"Thread", "Date/Time", "Author", "Message", "Sentiment", "Question", "Top Label", "Top Score",
}

// ExportWorkbook writes annotated threads and their summary to an XLSX
// workbook with a Messages sheet and a Summary sheet.
func ExportWorkbook(path string, threads [][]types.AnnotatedMessage, ins aggregator.Insight) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", messagesSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("style: %w", err)
	}

	if err := f.SetSheetRow(messagesSheet, "A1", &messageHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	_ = f.SetCellStyle(messagesSheet, "A1", "H1", bold)
	_ = f.SetColWidth(messagesSheet, "D", "D", 60)

	row := 2
	for ti, th := range threads {
		for _, m := range th {
			label, score := aggregator.TopLabel(m.Classification)
			cell, _ := excelize.CoordinatesToCellName(1, row)
			values := []interface{}{
				ti + 1, m.DateTime, m.Author, m.Text, string(m.Sentiment), string(m.Question), label, score,
			}
			if err := f.SetSheetRow(messagesSheet, cell, &values); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
			row++
		}
	}

	if err := writeSummary(f, ins, bold); err != nil {
		return err
	}

	// excelize writes in place; stage through a temp file like WriteJSON
	tmp := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+".tmp.xlsx")
	if err := f.SaveAs(tmp); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save workbook: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, ins aggregator.Insight, bold int) error {
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Threads", ins.Threads},
		{"Messages", ins.Messages},
		{"Questions", ins.Questions},
		{"Dominant label", ins.DominantLabel},
		{"Dominant label mean score", ins.DominantLabelScore},
	}
	for _, s := range sortedKeys(ins.SentimentCounts) {
		rows = append(rows, []interface{}{"Sentiment: " + s, ins.SentimentCounts[s]})
	}
	for _, a := range sortedKeys(ins.ByAuthor) {
		rows = append(rows, []interface{}{"Author: " + a, ins.ByAuthor[a]})
	}

	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	_ = f.SetCellStyle(summarySheet, "A1", "B1", bold)
	_ = f.SetColWidth(summarySheet, "A", "A", 30)
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
