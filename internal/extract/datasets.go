package extract

import (
	"fmt"
	"sort"
	"strings"
)

// Dataset identifies one ODP source report family.
type Dataset string

const (
	// DatasetIMP is International Mobility Program work permit holders by
	// province and program.
	DatasetIMP Dataset = "imp"
	// DatasetTFW is Temporary Foreign Worker Program work permit holders by
	// province and program.
	DatasetTFW Dataset = "tfw"
	// DatasetHC is Humanitarian & Compassionate work permit holders by
	// country of citizenship.
	DatasetHC Dataset = "hc"
	// DatasetPR is permanent residents by province and immigration category.
	DatasetPR Dataset = "pr"
	// DatasetAsylum is asylum claimants by claim office type and province.
	DatasetAsylum Dataset = "asylum"
	// DatasetStudy is study permit holders by province and study level.
	DatasetStudy Dataset = "study"
)

// Spec carries the per-dataset defaults: which sheets to try, how the
// hierarchy levels are named in the output, and how strict the header scan
// should be.
type Spec struct {
	// SheetCandidates are tried in order when no sheet is given; an empty
	// list means auto-detect.
	SheetCandidates []string
	// LevelBase names the hierarchy levels in output order. Detected depths
	// beyond the list get generic category_N names.
	LevelBase []string
	// MinPeriods guards against title rows that happen to contain one year.
	MinPeriods int
}

// LevelNames returns the output column names for a detected depth.
func (s Spec) LevelNames(depth int) []string {
	names := make([]string, 0, depth)
	for i := 0; i < depth; i++ {
		if i < len(s.LevelBase) {
			names = append(names, s.LevelBase[i])
			continue
		}
		names = append(names, fmt.Sprintf("category_%d", i))
	}
	return names
}

var provinceLevels = []string{"province_territory", "category_1", "category_2", "category_3"}

var datasets = map[Dataset]Spec{
	DatasetIMP: {
		LevelBase:  provinceLevels,
		MinPeriods: 5,
	},
	DatasetTFW: {
		LevelBase:  provinceLevels,
		MinPeriods: 5,
	},
	DatasetHC: {
		SheetCandidates: []string{"TR - HC CITZ"},
		LevelBase:       []string{"country_citizenship"},
		MinPeriods:      1,
	},
	DatasetPR: {
		LevelBase:  provinceLevels,
		MinPeriods: 5,
	},
	DatasetAsylum: {
		LevelBase:  []string{"claim_office_type", "province_territory"},
		MinPeriods: 1,
	},
	DatasetStudy: {
		LevelBase:  []string{"province_territory", "study_level"},
		MinPeriods: 1,
	},
}

// ParseDataset maps a CLI name to a Dataset.
func ParseDataset(s string) (Dataset, error) {
	d := Dataset(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := datasets[d]; !ok {
		return "", fmt.Errorf("unknown dataset %q (known: %s)", s, strings.Join(DatasetNames(), ", "))
	}
	return d, nil
}

// DatasetNames lists the known dataset names, sorted.
func DatasetNames() []string {
	names := make([]string, 0, len(datasets))
	for d := range datasets {
		names = append(names, string(d))
	}
	sort.Strings(names)
	return names
}
