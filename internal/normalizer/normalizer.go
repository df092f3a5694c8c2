// Package normalizer rewrites a vendor SARIF export into a strictly conformant SARIF 2.1.0 document.
package normalizer

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/sarifclean/internal/tree"
	"github.com/scan-io-git/sarifclean/pkg/shared/errors"
)

const (
	// Version is the SARIF version every output document declares.
	Version = "2.1.0"
	// DefaultSchemaURI is the SARIF 2.1.0 schema location accepted by code scanning services.
	DefaultSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
)

// Options configures a Normalizer. Zero values select the defaults.
type Options struct {
	Denylist  []string
	SchemaURI string
	Logger    hclog.Logger
}

// Normalizer applies the rewrite rules. It holds no per-document state and can be reused.
type Normalizer struct {
	denylist  *Denylist
	schemaURI string
	logger    hclog.Logger
}

// Stats counts what a single Normalize call changed.
type Stats struct {
	StrippedKeys     int
	DroppedNulls     int
	CoercedEnums     int
	CoercedStrings   int
	DroppedFields    int
	DroppedLocations int
	DroppedNodes     int
	DedupedTags      int
}

// Changes returns the total number of rewrites.
func (s Stats) Changes() int {
	return s.StrippedKeys + s.DroppedNulls + s.CoercedEnums + s.CoercedStrings + s.DroppedFields +
		s.DroppedLocations + s.DroppedNodes + s.DedupedTags
}

// New creates a Normalizer from opts.
func New(opts Options) *Normalizer {
	keys := opts.Denylist
	if keys == nil {
		keys = DefaultDenylist()
	}
	schemaURI := opts.SchemaURI
	if schemaURI == "" {
		schemaURI = DefaultSchemaURI
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Normalizer{
		denylist:  NewDenylist(keys...),
		schemaURI: schemaURI,
		logger:    logger,
	}
}

// Denylist returns the effective denylist.
func (n *Normalizer) Denylist() *Denylist {
	return n.denylist
}

// Normalize rewrites doc in place and returns its root mapping.
// Callers must not rely on doc being unchanged afterwards.
func (n *Normalizer) Normalize(doc any) (*tree.Object, Stats, error) {
	root, ok := tree.AsObject(doc)
	if !ok {
		return nil, Stats{}, errors.NewInputShapeError("top-level value is %s, expected an object", describe(doc))
	}

	runs, present := root.Get("runs")
	if !present {
		return nil, Stats{}, errors.NewInputShapeError("missing required %q member", "runs")
	}
	if _, ok := tree.AsArray(runs); !ok {
		return nil, Stats{}, errors.NewInputShapeError("%q is %s, expected an array", "runs", describe(runs))
	}

	p := &pass{denylist: n.denylist, logger: n.logger}
	p.object(root, roleRoot, "")
	n.pin(root)

	n.logger.Debug("document normalized",
		"stripped_keys", p.stats.StrippedKeys,
		"coerced_enums", p.stats.CoercedEnums,
		"coerced_strings", p.stats.CoercedStrings,
		"dropped_fields", p.stats.DroppedFields,
		"dropped_locations", p.stats.DroppedLocations,
	)
	return root, p.stats, nil
}

// pin overwrites version and $schema and moves them to the front of the root.
func (n *Normalizer) pin(root *tree.Object) {
	root.Set("version", Version)
	root.Set("$schema", n.schemaURI)
	_ = root.MoveToFront("version")
	_ = root.MoveToFront("$schema")
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	}
	if tree.IsNumber(v) {
		return "a number"
	}
	if _, ok := tree.AsObject(v); ok {
		return "an object"
	}
	return fmt.Sprintf("%T", v)
}
