package normalizer

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/scan-io-git/sarifclean/internal/tree"
)

// identifierKeys names the member an element of a sequence with the given role cannot exist without.
var identifierKeys = map[role]string{
	roleResult:              "ruleId",
	roleReportingDescriptor: "id",
}

func hasString(obj *tree.Object, key string) bool {
	s, ok := tree.String(obj.Value(key))
	return ok && s != ""
}

// scalarText renders a string, number or boolean the way it should appear as a string value.
func scalarText(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return string(s), true
	case bool:
		return strconv.FormatBool(s), true
	}
	if tree.IsNumber(v) {
		return fmt.Sprint(v), true
	}
	return "", false
}

// requireString keeps key only as a non-empty string. Numbers are rewritten as their text.
func (p *pass) requireString(obj *tree.Object, key, path string) {
	v, ok := obj.Get(key)
	if !ok {
		return
	}
	if s, isString := v.(string); isString {
		if s == "" {
			p.drop(obj, key, path, "empty string")
		}
		return
	}
	if !tree.IsNumber(v) {
		p.drop(obj, key, path, "not a string")
		return
	}
	text, _ := scalarText(v)
	obj.Set(key, text)
	p.stats.CoercedStrings++
	p.logger.Trace("converted number to string", "path", joinPath(path, key), "value", text)
}

// fixFingerprints turns a fingerprint map into a map of non-empty strings.
func (p *pass) fixFingerprints(obj *tree.Object, key, path string) {
	v, ok := obj.Get(key)
	if !ok {
		return
	}
	fingerprints, ok := tree.AsObject(v)
	if !ok {
		p.drop(obj, key, path, "not an object")
		return
	}

	mapPath := joinPath(path, key)
	for _, name := range tree.Keys(fingerprints) {
		val := fingerprints.Value(name)
		text, ok := scalarText(val)
		if !ok || text == "" {
			p.drop(fingerprints, name, mapPath, "empty or not a scalar")
			continue
		}
		if _, isString := val.(string); !isString {
			fingerprints.Set(name, text)
			p.stats.CoercedStrings++
		}
	}
}

// requireGUID drops key unless it holds a GUID in the 8-4-4-4-12 form SARIF requires.
func (p *pass) requireGUID(obj *tree.Object, key, path string) {
	v, ok := obj.Get(key)
	if !ok {
		return
	}
	if s, isString := v.(string); !isString || !validGUID(s) {
		p.drop(obj, key, path, "not a GUID")
	}
}

func validGUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	return id.Variant() == uuid.RFC4122 && id.Version() >= 1 && id.Version() <= 5
}
