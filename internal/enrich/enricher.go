// Package enrich augments mapped fields with vendor reference data.
package enrich

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/feichai0017/document-intake/internal/models"
)

// Enricher looks up the extracted company name in a static reference table.
// The table is read-only after construction and safe for concurrent use.
type Enricher struct {
	vendors map[string]map[string]any
}

var defaultVendors = map[string]map[string]any{
	"myOnsite Healthcare LLC": {
		"vendor_id": "VEND-001",
		"domain":    "healthcare",
	},
}

// NewEnricher builds an enricher with the built-in vendor table.
func NewEnricher() *Enricher {
	return &Enricher{vendors: defaultVendors}
}

// NewEnricherFromFile loads the vendor table from a YAML file mapping company
// names to extra fields.
func NewEnricherFromFile(path string) (*Enricher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vendor table: %w", err)
	}

	vendors := make(map[string]map[string]any)
	if err := yaml.Unmarshal(data, &vendors); err != nil {
		return nil, fmt.Errorf("failed to parse vendor table: %w", err)
	}

	return &Enricher{vendors: vendors}, nil
}

// Enrich merges the vendor record for fields["company_name"] into fields,
// overwriting colliding keys. Lookup is by exact string match only; a miss
// leaves the map unchanged.
func (e *Enricher) Enrich(fields models.FieldMap) models.FieldMap {
	name, _ := fields["company_name"].(string)
	record, ok := e.vendors[name]
	if !ok {
		return fields
	}

	for k, v := range record {
		fields[k] = v
	}
	return fields
}
