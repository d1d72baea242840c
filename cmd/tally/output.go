package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/amp-labs/amp-ranked/prioritymap"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var ErrUnknownFormat = errors.New("unknown output format")

type entry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// render writes items, most frequent first, in the given format. YAML output
// is a plain mapping in rank order, which merge reads back.
func render(w io.Writer, format string, items []prioritymap.Item[string, int]) error {
	switch format {
	case formatText:
		return renderText(w, items)
	case formatJSON:
		return renderJSON(w, items)
	case formatYAML:
		return renderYAML(w, items)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func renderText(w io.Writer, items []prioritymap.Item[string, int]) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) //nolint:mnd

	for _, it := range items {
		if _, err := fmt.Fprintf(tw, "%d\t%s\n", it.Value, it.Key); err != nil {
			return err
		}
	}

	return tw.Flush()
}

func renderJSON(w io.Writer, items []prioritymap.Item[string, int]) error {
	entries := make([]entry, 0, len(items))
	for _, it := range items {
		entries = append(entries, entry{Key: it.Key, Count: it.Value})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(entries)
}

func renderYAML(w io.Writer, items []prioritymap.Item[string, int]) error {
	// A yaml.Node keeps the rank order that a Go map would lose.
	doc := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, it := range items {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: it.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(it.Value)},
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2) //nolint:mnd

	if err := enc.Encode(doc); err != nil {
		return err
	}

	return enc.Close()
}
