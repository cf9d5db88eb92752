package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/lasr"
	"github.com/kailas-cloud/lasr/internal/domain/search/match"
)

var validOutputFormats = []string{"json", "text"}

type queryFlags struct {
	file   string
	keys   []string
	limit  int
	output string
}

func newQueryCmd() *cobra.Command {
	var f queryFlags
	cmd := &cobra.Command{
		Use:   "query QUERY",
		Short: "Search the records of a JSON or YAML file",
		Long: `Search the records of a JSON or YAML file. The file must hold a list of records.
Use --file - to read JSON from stdin.`,
		Example: `  lasr query --file people.json --keys name,skills.name,skills.level "9000 sitting"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, &f, strings.Join(args, " "))
		},
	}
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "records file (.json, .yaml, .yml or - for stdin)")
	cmd.Flags().StringSliceVarP(&f.keys, "keys", "k", nil, "dotted field paths to search")
	cmd.Flags().IntVarP(&f.limit, "limit", "n", lasr.DefaultLimit, "maximum number of results")
	cmd.Flags().StringVarP(&f.output, "output", "o", "text", "output format: json or text")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runQuery(cmd *cobra.Command, f *queryFlags, query string) error {
	if !slices.Contains(validOutputFormats, f.output) {
		return fmt.Errorf("invalid output format: %s (valid: %v)", f.output, validOutputFormats)
	}

	items, err := readItems(cmd.InOrStdin(), f.file)
	if err != nil {
		return err
	}

	// 0 would mean the default limit to the SDK; on the command line it means none.
	limit := f.limit
	if limit == 0 {
		limit = -1
	}

	results, err := lasr.SearchContext(cmd.Context(), lasr.Options{
		Items: items,
		Query: query,
		Keys:  f.keys,
		Limit: limit,
	})
	if err != nil {
		return err
	}

	if f.output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"results": results})
	}
	return printText(cmd.OutOrStdout(), results)
}

func readItems(stdin io.Reader, file string) ([]any, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(filepath.Clean(file))
	}
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	var items []any
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &items)
	default:
		err = json.Unmarshal(data, &items)
	}
	if err != nil {
		return nil, fmt.Errorf("parse records %s: %w", file, err)
	}
	if items == nil {
		items = []any{}
	}
	return items, nil
}

func printText(w io.Writer, results []lasr.Result) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, "no matches")
		return err
	}
	for i, r := range results {
		item, err := json.Marshal(r.Item)
		if err != nil {
			item = []byte(fmt.Sprint(r.Item))
		}
		if _, err := fmt.Fprintf(w, "%d. %.4f  %s\n", i+1, r.Score, item); err != nil {
			return err
		}
		for _, m := range r.Matches {
			if _, err := fmt.Fprintf(w, "   %s: %s (%.4f)\n", m.Key, highlightMatch(m), m.Score); err != nil {
				return err
			}
		}
	}
	return nil
}

// highlightMatch marks the matched regions of m.Value. Regions index the
// lower-cased value; when lower-casing changes the character count (e.g. "İ")
// the lower-cased form is shown so the brackets stay on the matched text.
func highlightMatch(m lasr.Match) string {
	text := m.Value
	if norm := match.Normalize(text); utf8.RuneCountInString(norm) != utf8.RuneCountInString(text) {
		text = norm
	}
	return highlight(text, m.Indices)
}

// highlight wraps each region of s in brackets. Regions are character offsets.
func highlight(s string, regions []lasr.Region) string {
	runes := []rune(s)
	var sb strings.Builder
	pos := 0
	for _, r := range regions {
		if r.Start < pos || r.End > len(runes) {
			continue
		}
		sb.WriteString(string(runes[pos:r.Start]))
		sb.WriteByte('[')
		sb.WriteString(string(runes[r.Start:r.End]))
		sb.WriteByte(']')
		pos = r.End
	}
	sb.WriteString(string(runes[pos:]))
	return sb.String()
}

