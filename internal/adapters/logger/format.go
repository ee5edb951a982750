package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// maxChainDepth guards against cyclic error chains.
const maxChainDepth = 100

// errorEntry is one level of an error chain.
type errorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks a zerr chain. A plain error ends the walk and is
// rendered with its full text. zerr levels without a message only carry
// metadata, which is attached to the next level that has one.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	var carried map[string]any

	for depth := 0; err != nil && depth < maxChainDepth; depth++ {
		z, ok := err.(*zerr.Error) //nolint:errorlint // only the head of the chain matters here
		if !ok {
			entries = append(entries, errorEntry{Message: err.Error(), Metadata: carried})
			return entries
		}

		meta := z.Metadata()
		if z.Message() == "" {
			if carried == nil {
				carried = map[string]any{}
			}
			maps.Copy(carried, meta)
			err = errors.Unwrap(err)
			continue
		}

		if carried != nil {
			maps.Copy(meta, carried)
			carried = nil
		}
		entries = append(entries, errorEntry{Message: z.Message(), Metadata: meta})
		err = errors.Unwrap(err)
	}

	return entries
}

// formatErrorEntries renders entries as:
//
//	Error: outer
//	       key: value
//
//	  Caused by:
//	    → inner
func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		first, indent := "Error: ", "       "
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			first, indent = "    → ", "      "
		}

		lines = append(lines, first+msgLines[0])
		for _, l := range msgLines[1:] {
			lines = append(lines, indent+l)
		}
		for _, k := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, entry.Metadata[k]))
		}
	}

	return strings.Join(lines, "\n")
}
