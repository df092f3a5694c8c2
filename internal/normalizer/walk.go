package normalizer

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/sarifclean/internal/tree"
)

// pass holds the state of one Normalize call.
type pass struct {
	denylist *Denylist
	logger   hclog.Logger
	stats    Stats
}

func (p *pass) walk(v any, r role, path string) any {
	switch node := v.(type) {
	case *tree.Object:
		if node != nil {
			p.object(node, r, path)
		}
		return node
	case []any:
		return p.array(node, r, path)
	default:
		return v
	}
}

func (p *pass) object(obj *tree.Object, r role, path string) {
	for _, key := range tree.Keys(obj) {
		val := obj.Value(key)
		memberPath := joinPath(path, key)

		if val == nil {
			obj.Delete(key)
			p.stats.DroppedNulls++
			p.logger.Trace("dropped null member", "path", memberPath)
			continue
		}

		if key == tagsKey && r == rolePropertyBag {
			if tags, ok := tree.AsArray(val); ok {
				val = p.dropNullItems(tags, memberPath)
				obj.Set(key, val)
			}
		}

		if p.denylist.strips(r, key, val) {
			obj.Delete(key)
			p.stats.StrippedKeys++
			p.logger.Trace("stripped non-standard member", "path", memberPath)
			continue
		}

		if key == tagsKey && r == rolePropertyBag && isStringArray(val) {
			if tags, changed := uniqueStrings(val.([]any)); changed {
				obj.Set(key, tags)
				p.stats.DedupedTags++
			}
			continue
		}

		obj.Set(key, p.walk(val, memberRole(r, key), memberPath))
	}

	p.fix(obj, r, path)
}

func (p *pass) array(arr []any, r role, path string) []any {
	out := make([]any, 0, len(arr))
	for i, item := range arr {
		itemPath := fmt.Sprintf("%s[%d]", path, i)

		if item == nil {
			p.stats.DroppedNulls++
			p.logger.Trace("dropped null element", "path", itemPath)
			continue
		}

		item = p.walk(item, r, itemPath)

		switch r {
		case roleRun, roleResult, roleLocation, roleReportingDescriptor:
			obj, ok := tree.AsObject(item)
			if !ok {
				p.stats.DroppedNodes++
				p.logger.Debug("dropped element that is not an object", "path", itemPath)
				continue
			}
			if r == roleLocation && !hasArtifactURI(obj) {
				p.stats.DroppedLocations++
				p.logger.Debug("dropped location without artifact uri", "path", itemPath)
				continue
			}
			if key, required := identifierKeys[r]; required && !hasString(obj, key) {
				p.stats.DroppedNodes++
				p.logger.Debug("dropped element without identifier", "path", itemPath, "missing", key)
				continue
			}
		}

		out = append(out, item)
	}
	return out
}

// fix applies the rules of role r after the members of obj were normalized.
func (p *pass) fix(obj *tree.Object, r role, path string) {
	switch r {
	case roleRun:
		p.coerceEnum(obj, ColumnKindEnum, path)
	case roleResult:
		p.coerceEnum(obj, LevelEnum, path)
		p.coerceEnum(obj, KindEnum, path)
		p.coerceEnum(obj, BaselineStateEnum, path)
		p.requireInt(obj, "occurrenceCount", 1, path)
		p.requireInt(obj, "ruleIndex", -1, path)
		p.requireString(obj, "ruleId", path)
		p.fixFingerprints(obj, "fingerprints", path)
		p.fixFingerprints(obj, "partialFingerprints", path)
		p.requireGUID(obj, "guid", path)
		p.requireGUID(obj, "correlationGuid", path)
	case roleReportingDescriptor:
		p.requireString(obj, "id", path)
	case roleReportingConfiguration:
		p.coerceEnum(obj, LevelEnum, path)
		p.requireNumber(obj, "rank", -1, 100, path)
	case roleNotification:
		p.coerceEnum(obj, LevelEnum, path)
	case roleLocation:
		p.requireInt(obj, "id", -1, path)
	case rolePhysicalLocation:
		p.fixPhysicalLocation(obj, path)
	case roleArtifactLocation:
		p.fixArtifactLocation(obj, path)
	case roleRegion:
		p.fixRegion(obj, path)
	}
}

func (p *pass) coerceEnum(obj *tree.Object, enum Enum, path string) {
	v, ok := obj.Get(enum.Field)
	if !ok {
		return
	}

	canonical, keep := enum.Coerce(v)
	if !keep {
		p.drop(obj, enum.Field, path, "invalid enumeration value")
		return
	}
	if current, isString := v.(string); !isString || current != canonical {
		obj.Set(enum.Field, canonical)
		p.stats.CoercedEnums++
		p.logger.Trace("coerced enumeration value", "path", joinPath(path, enum.Field), "value", canonical)
	}
}

// requireInt drops key unless it holds an integer of at least lowest.
func (p *pass) requireInt(obj *tree.Object, key string, lowest int64, path string) {
	v, ok := obj.Get(key)
	if !ok {
		return
	}
	i, ok := tree.Int(v)
	if !ok || i < lowest {
		p.drop(obj, key, path, "invalid integer value")
		return
	}
	if canonical := tree.IntNumber(i); v != canonical {
		obj.Set(key, canonical)
	}
}

// requireNumber drops key unless it holds a number within [lo, hi].
func (p *pass) requireNumber(obj *tree.Object, key string, lo, hi float64, path string) {
	v, ok := obj.Get(key)
	if !ok {
		return
	}
	f, ok := tree.Float(v)
	if !ok || f < lo || f > hi {
		p.drop(obj, key, path, "invalid number value")
	}
}

func (p *pass) dropNullItems(arr []any, path string) []any {
	out := make([]any, 0, len(arr))
	for i, item := range arr {
		if item == nil {
			p.stats.DroppedNulls++
			p.logger.Trace("dropped null element", "path", fmt.Sprintf("%s[%d]", path, i))
			continue
		}
		out = append(out, item)
	}
	return out
}

func (p *pass) drop(obj *tree.Object, key, path, reason string) {
	obj.Delete(key)
	p.stats.DroppedFields++
	p.logger.Debug("dropped field", "path", joinPath(path, key), "reason", reason)
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
