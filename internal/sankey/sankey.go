// Package sankey builds flow diagram data (nodes and weighted links) from
// an extracted long-format CSV: one root node per stream, category_1 nodes
// at level 1, category_2 nodes at level 2. Only the data is produced here;
// rendering is a separate presentation concern.
package sankey

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Node is one labelled stage in the flow diagram.
type Node struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Level int    `json:"level"`
}

// Link is one weighted edge, keyed by province and year so the front end
// can filter.
type Link struct {
	Source   int    `json:"source"`
	Target   int    `json:"target"`
	Value    int    `json:"value"`
	Province string `json:"province_territory"`
	Year     string `json:"year"`
}

// Flow is the complete diagram payload.
type Flow struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Observation is one detail data point read from an extracted CSV.
type Observation struct {
	Province  string
	Category1 string
	Category2 string
	Total     bool
	Year      string
	Value     int
}

// ReadExtracted loads an extracted CSV produced by the extractor. The
// category_2 column is optional; deeper levels are ignored.
func ReadExtracted(path string) ([]Observation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	cols := map[string]int{}
	for i, name := range rows[0] {
		cols[name] = i
	}
	for _, required := range []string{"province_territory", "category_1", "total_flag", "year", "value"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q in %s", required, path)
		}
	}
	cat2, hasCat2 := cols["category_2"]

	var obs []Observation
	for _, row := range rows[1:] {
		value, err := strconv.Atoi(strings.ReplaceAll(row[cols["value"]], ",", ""))
		if err != nil {
			value = 0
		}
		total, _ := strconv.ParseBool(row[cols["total_flag"]])
		o := Observation{
			Province:  strings.TrimSpace(row[cols["province_territory"]]),
			Category1: strings.TrimSpace(row[cols["category_1"]]),
			Total:     total,
			Year:      strings.TrimSpace(row[cols["year"]]),
			Value:     value,
		}
		if hasCat2 {
			o.Category2 = strings.TrimSpace(row[cat2])
		}
		obs = append(obs, o)
	}
	return obs, nil
}

// Build assembles the flow data for one stream: subtotal rows and zero
// values are dropped, "not stated" provinces collapse their category_1 to
// one canonical node, links are grouped by (province, year) and validated
// against the per-category and overall totals.
func Build(obs []Observation, stream string) (*Flow, error) {
	var kept []Observation
	for _, o := range obs {
		if o.Total || o.Value == 0 {
			continue
		}
		if strings.Contains(strings.ToLower(o.Province), "not stated") {
			o.Category1 = "Not stated"
		}
		kept = append(kept, o)
	}

	root := strings.ToUpper(stream)
	level1 := distinct(kept, func(o Observation) string { return o.Category1 })
	level2 := distinct(kept, func(o Observation) string { return o.Category2 })

	nodes := []Node{{ID: 0, Label: root, Level: 0}}
	ids := map[string]int{root: 0}
	for _, label := range level1 {
		if _, dup := ids[label]; dup {
			return nil, fmt.Errorf("duplicate node label %q", label)
		}
		ids[label] = len(nodes)
		nodes = append(nodes, Node{ID: len(nodes), Label: label, Level: 1})
	}
	for _, label := range level2 {
		if _, dup := ids[label]; dup {
			return nil, fmt.Errorf("duplicate node label %q", label)
		}
		ids[label] = len(nodes)
		nodes = append(nodes, Node{ID: len(nodes), Label: label, Level: 2})
	}

	links := groupLinks(kept, func(o Observation) (Link, bool) {
		if o.Category1 == "" {
			return Link{}, false
		}
		return Link{Source: 0, Target: ids[o.Category1], Province: o.Province, Year: o.Year}, true
	})
	links = append(links, groupLinks(kept, func(o Observation) (Link, bool) {
		if o.Category1 == "" || o.Category2 == "" {
			return Link{}, false
		}
		return Link{Source: ids[o.Category1], Target: ids[o.Category2], Province: o.Province, Year: o.Year}, true
	})...)

	sort.Slice(links, func(i, j int) bool {
		a, b := links[i], links[j]
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Province != b.Province {
			return a.Province < b.Province
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		return a.Target < b.Target
	})

	flow := &Flow{Nodes: nodes, Links: links}
	if err := validate(kept, flow, ids); err != nil {
		return nil, err
	}
	return flow, nil
}

// validate cross-checks the link sums against the source data: each level-1
// node's inflow, each level-2 node's inflow and the overall total must
// reproduce the CSV aggregates.
func validate(obs []Observation, flow *Flow, ids map[string]int) error {
	wantL1 := map[int]int{}
	wantL2 := map[int]int{}
	total := 0
	for _, o := range obs {
		total += o.Value
		if o.Category1 != "" {
			wantL1[ids[o.Category1]] += o.Value
		}
		if o.Category2 != "" {
			wantL2[ids[o.Category2]] += o.Value
		}
	}

	gotL1 := map[int]int{}
	gotL2 := map[int]int{}
	rootFlow := 0
	for _, l := range flow.Links {
		if l.Source == 0 {
			gotL1[l.Target] += l.Value
			rootFlow += l.Value
		} else {
			gotL2[l.Target] += l.Value
		}
	}

	for id, want := range wantL1 {
		if gotL1[id] != want {
			return fmt.Errorf("level 1 total mismatch for node %d: csv=%d links=%d", id, want, gotL1[id])
		}
	}
	for id, want := range wantL2 {
		if gotL2[id] != want {
			return fmt.Errorf("level 2 total mismatch for node %d: csv=%d links=%d", id, want, gotL2[id])
		}
	}
	if rootFlow != total {
		return fmt.Errorf("overall total mismatch: csv=%d links=%d", total, rootFlow)
	}
	return nil
}

// groupLinks sums observation values into links keyed by
// (source, target, province, year).
func groupLinks(obs []Observation, project func(Observation) (Link, bool)) []Link {
	type key struct {
		source, target int
		province, year string
	}
	sums := map[key]int{}
	for _, o := range obs {
		l, ok := project(o)
		if !ok {
			continue
		}
		sums[key{l.Source, l.Target, l.Province, l.Year}] += o.Value
	}

	links := make([]Link, 0, len(sums))
	for k, v := range sums {
		links = append(links, Link{Source: k.source, Target: k.target, Value: v, Province: k.province, Year: k.year})
	}
	return links
}

func distinct(obs []Observation, project func(Observation) string) []string {
	seen := map[string]struct{}{}
	for _, o := range obs {
		if s := project(o); s != "" {
			seen[s] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// WriteJSON serializes the flow payload.
func WriteJSON(path string, flow *Flow) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(flow, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
