// cmd/client/cmd/output.go
package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"stockroom/internal/domain/resource"
)

// effectiveFormat resolves a per-command format flag against the global
// --json switch, which always wins.
func effectiveFormat(format string) string {
	if jsonOutput {
		return "json"
	}
	return format
}

func parseRecordID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid record id %q", arg)
	}
	return id, nil
}

// parseFields builds the request fields from a --data JSON object and
// repeated --field flags, with flags winning on overlap.
func parseFields(data string, fieldFlags []string) (resource.Fields, error) {
	fields := resource.Fields{}

	if data != "" {
		if err := json.Unmarshal([]byte(data), &fields); err != nil {
			return nil, fmt.Errorf("invalid --data JSON: %w", err)
		}
	}

	for _, kv := range fieldFlags {
		key, raw, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --field %q, expected key=value", kv)
		}
		fields[key] = parseFieldValue(raw)
	}

	return fields, nil
}

// parseFieldValue turns a flag value into the typed field it reads as:
// numbers, booleans and null keep their JSON type, everything else is a
// string.
func parseFieldValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printRecordsSimple(records []resource.Record) error {
	if len(records) == 0 {
		fmt.Println("No records found")
		return nil
	}

	fmt.Printf("Found %d records\n\n", len(records))

	for i, rec := range records {
		fmt.Printf("%d. %s\n", i+1, color.CyanString("id %d", rec.ID))
		for _, name := range sortedFieldNames(rec.Fields) {
			fmt.Printf("   %s: %s\n", name, formatFieldValue(rec.Fields[name]))
		}
		fmt.Println()
	}

	return nil
}

func printRecordsTable(records []resource.Record) error {
	if len(records) == 0 {
		fmt.Println("No records found")
		return nil
	}

	cols := fieldColumns(records)
	header := append([]string{"ID"}, cols...)
	separator := make([]string, len(header))
	for i := range separator {
		separator[i] = "---"
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t")+"\t")
	fmt.Fprintln(w, strings.Join(separator, "\t")+"\t")

	for _, rec := range records {
		row := []string{strconv.FormatInt(rec.ID, 10)}
		for _, col := range cols {
			row = append(row, truncate(formatFieldValue(rec.Fields[col]), 30))
		}
		fmt.Fprintln(w, strings.Join(row, "\t")+"\t")
	}

	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nTotal records: %d\n", len(records))
	return nil
}

func printRecordsCSV(records []resource.Record) error {
	cols := fieldColumns(records)

	w := csv.NewWriter(os.Stdout)
	if err := w.Write(append([]string{"id"}, cols...)); err != nil {
		return err
	}

	for _, rec := range records {
		row := []string{strconv.FormatInt(rec.ID, 10)}
		for _, col := range cols {
			row = append(row, formatFieldValue(rec.Fields[col]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func printRecordHuman(rec resource.Record) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%d\n", rec.ID)
	for _, name := range sortedFieldNames(rec.Fields) {
		fmt.Fprintf(w, "%s\t%s\n", name, formatFieldValue(rec.Fields[name]))
	}
	return w.Flush()
}

// fieldColumns is the sorted union of field names across the listing, so
// records with uneven shapes still line up.
func fieldColumns(records []resource.Record) []string {
	seen := make(map[string]bool)
	var cols []string
	for _, rec := range records {
		for name := range rec.Fields {
			if !seen[name] {
				seen[name] = true
				cols = append(cols, name)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

func sortedFieldNames(fields resource.Fields) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func formatFieldValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case map[string]any, []any:
		if b, err := json.Marshal(t); err == nil {
			return string(b)
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
