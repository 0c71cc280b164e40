package normalize

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed fieldmap.yaml
var fieldmapYAML []byte

// fieldMap resolves raw form labels to canonical lead field names.
type fieldMap struct {
	byLabel map[string]string
}

func loadFieldMap() (*fieldMap, error) {
	var doc struct {
		Fields map[string][]string `yaml:"fields"`
	}
	if err := yaml.Unmarshal(fieldmapYAML, &doc); err != nil {
		return nil, err
	}

	fm := &fieldMap{byLabel: make(map[string]string)}
	for canonical, labels := range doc.Fields {
		for _, label := range labels {
			fm.byLabel[label] = canonical
		}
	}
	return fm, nil
}

// resolve maps a raw form label to its canonical field name. Unmapped labels
// are slugified so nothing in the submission is dropped.
func (fm *fieldMap) resolve(label string) (canonical string, mapped bool) {
	if key, ok := fm.byLabel[label]; ok {
		return key, true
	}
	trimmed := strings.TrimSpace(label)
	if key, ok := fm.byLabel[trimmed]; ok {
		return key, true
	}
	return slugify(trimmed), false
}

func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "_")
}
