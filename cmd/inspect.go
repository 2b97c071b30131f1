package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"

	"github.com/pders01/factorlab/internal/dataset"
	"github.com/pders01/factorlab/internal/models"
)

var (
	inspectJSON bool
	inspectToon bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <csv>",
	Short: "Show statistics for a built dataset",
	Long: `Display statistics about a dataset built with factorlab build:
  - Total rows and topics
  - Rows by group, datatype, topic and speaker
  - Rows with surplus annotation fields

The file is looked up in the output folder first, then as a path.

Examples:
  factorlab inspect study.csv
  factorlab inspect study.csv --json
  factorlab inspect Results/study.csv --toon`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Output as JSON")
	inspectCmd.Flags().BoolVar(&inspectToon, "toon", false, "Output in LLM-friendly toon format")
}

type datasetStats struct {
	File         string      `json:"file"`
	TotalRows    int         `json:"total_rows"`
	TotalTopics  int         `json:"total_topics"`
	OverflowRows int         `json:"overflow_rows"`
	ByGroup      []countStat `json:"by_group"`
	ByDatatype   []countStat `json:"by_datatype"`
	ByTopic      []countStat `json:"by_topic"`
	ByName       []countStat `json:"by_name"`
}

type countStat struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected one dataset file")
	}
	s := newSession()

	dir := s.ws.OutputDir
	if !s.ws.Exists(dir, args[0]) {
		dir = ""
	}
	ds, err := dataset.Load(s.ws, dir, args[0])
	if err != nil {
		return err
	}

	stats := collectStats(s.ws.Path(dir, args[0]), ds)
	return printStats(s.console.Out, stats)
}

func collectStats(file string, ds models.Dataset) *datasetStats {
	byGroup := make(map[string]int)
	byDatatype := make(map[string]int)
	byTopic := make(map[string]int)
	byName := make(map[string]int)

	stats := &datasetStats{File: file, TotalRows: len(ds)}
	for _, row := range ds {
		byGroup[row.Group]++
		byDatatype[string(row.Datatype)]++
		byTopic[row.Topic]++
		byName[row.Name()]++
		if row.Overflow() {
			stats.OverflowRows++
		}
	}

	stats.TotalTopics = len(byTopic)
	stats.ByGroup = sortedCounts(byGroup)
	stats.ByDatatype = sortedCounts(byDatatype)
	stats.ByTopic = sortedCounts(byTopic)
	stats.ByName = sortedCounts(byName)
	return stats
}

// sortedCounts orders by count, highest first, then by value
func sortedCounts(m map[string]int) []countStat {
	counts := make([]countStat, 0, len(m))
	for v, c := range m {
		counts = append(counts, countStat{Value: v, Count: c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Value < counts[j].Value
	})
	return counts
}

func printStats(w io.Writer, stats *datasetStats) error {
	if inspectJSON {
		output, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(w, string(output))
		return nil
	}

	if inspectToon {
		output, err := gotoon.Encode(stats)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Fprintln(w, output)
		return nil
	}

	fmt.Fprintln(w, "Dataset Statistics")
	fmt.Fprintln(w, "━━━━━━━━━━━━━━━━━━")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "File:          %s\n", stats.File)
	fmt.Fprintf(w, "Total Rows:    %d\n", stats.TotalRows)
	fmt.Fprintf(w, "Total Topics:  %d\n", stats.TotalTopics)
	if stats.OverflowRows > 0 {
		fmt.Fprintf(w, "Overflow Rows: %d\n", stats.OverflowRows)
	}
	fmt.Fprintln(w)

	sections := []struct {
		title  string
		counts []countStat
		limit  int
	}{
		{"By Group:", stats.ByGroup, 0},
		{"By Datatype:", stats.ByDatatype, 0},
		{"Top Topics:", stats.ByTopic, 10},
		{"Top Speakers:", stats.ByName, 10},
	}
	for _, sec := range sections {
		printCounts(w, sec.title, sec.counts, stats.TotalRows, sec.limit)
	}

	return nil
}

func printCounts(w io.Writer, title string, counts []countStat, total, limit int) {
	if len(counts) == 0 {
		return
	}
	if limit == 0 || limit > len(counts) {
		limit = len(counts)
	}

	fmt.Fprintln(w, title)
	for _, c := range counts[:limit] {
		value := c.Value
		if value == "" {
			value = "(none)"
		}
		percentage := float64(c.Count) / float64(total) * 100
		bar := strings.Repeat("█", min(c.Count*20/total, 20))
		fmt.Fprintf(w, "  %-20s %4d  (%5.1f%%)  %s\n", value, c.Count, percentage, bar)
	}
	fmt.Fprintln(w)
}

