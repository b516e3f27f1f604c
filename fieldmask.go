package gslides

import (
	"sort"
	"strings"
)

// FieldPaths returns the sorted dot-separated paths of every field present in
// an encoded properties object. Update requests must mask exactly the fields
// they carry; the remote rejects masks that name absent fields and silently
// ignores fields missing from the mask.
//
// Nulls are not present fields and contribute no path. Non-empty nested
// objects recurse; scalars, arrays and empty objects are leaves.
func FieldPaths(encoded map[string]any) []string {
	var paths []string
	collectFieldPaths("", encoded, &paths)
	sort.Strings(paths)
	return paths
}

// FieldMask renders FieldPaths as the comma-joined form used on the wire.
func FieldMask(encoded map[string]any) string {
	return strings.Join(FieldPaths(encoded), ",")
}

func collectFieldPaths(prefix string, m map[string]any, out *[]string) {
	for k, v := range m {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		switch child := v.(type) {
		case nil:
		case map[string]any:
			if len(child) == 0 {
				*out = append(*out, path)
				continue
			}
			collectFieldPaths(path, child, out)
		default:
			*out = append(*out, path)
		}
	}
}

// stripPropertyState removes propertyState keys from an encoded properties
// object before it is used in an update payload. The field is server-computed
// and the remote rejects masks that include it.
func stripPropertyState(m map[string]any) {
	delete(m, "propertyState")
	for _, v := range m {
		switch child := v.(type) {
		case map[string]any:
			stripPropertyState(child)
		case []any:
			for _, item := range child {
				if cm, ok := item.(map[string]any); ok {
					stripPropertyState(cm)
				}
			}
		}
	}
}
