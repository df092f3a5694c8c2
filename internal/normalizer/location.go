package normalizer

import (
	"github.com/scan-io-git/sarifclean/internal/tree"
)

// regionBounds lists the integer members of a region and their schema minimum.
var regionBounds = []struct {
	key    string
	lowest int64
}{
	{"startLine", 1},
	{"startColumn", 1},
	{"endLine", 1},
	{"endColumn", 1},
	{"charOffset", -1},
	{"charLength", 0},
	{"byteOffset", -1},
	{"byteLength", 0},
}

// hasArtifactURI reports whether loc.physicalLocation.artifactLocation.uri is a non-empty string.
func hasArtifactURI(loc *tree.Object) bool {
	physical, ok := tree.AsObject(loc.Value("physicalLocation"))
	if !ok {
		return false
	}
	artifact, ok := tree.AsObject(physical.Value("artifactLocation"))
	if !ok {
		return false
	}
	uri, ok := tree.String(artifact.Value("uri"))
	return ok && uri != ""
}

func (p *pass) fixPhysicalLocation(obj *tree.Object, path string) {
	for _, key := range []string{"artifactLocation", "region", "contextRegion"} {
		v, present := obj.Get(key)
		if !present {
			continue
		}
		member, ok := tree.AsObject(v)
		if !ok {
			p.drop(obj, key, path, "not an object")
			continue
		}
		if member.Len() == 0 {
			p.drop(obj, key, path, "empty object")
		}
	}
}

func (p *pass) fixArtifactLocation(obj *tree.Object, path string) {
	if v, present := obj.Get("uri"); present {
		if _, ok := tree.String(v); !ok {
			p.drop(obj, "uri", path, "not a string")
		}
	}
	if v, present := obj.Get("uriBaseId"); present {
		if s, ok := tree.String(v); !ok || s == "" {
			p.drop(obj, "uriBaseId", path, "empty or not a string")
		}
	}
	p.requireInt(obj, "index", -1, path)
}

func (p *pass) fixRegion(obj *tree.Object, path string) {
	for _, bound := range regionBounds {
		p.requireInt(obj, bound.key, bound.lowest, path)
	}
}
