// Package snapshot produces deterministic, equality-preserving content
// representations of configuration values. Snapshots are what the
// fingerprinting layer feeds into the cache-key hash; two logically equal
// values must always yield byte-identical snapshots.
package snapshot

import (
	"fmt"
	"math"
	"sort"

	"morph/internal/hashing"
)

// Snapshot is an opaque content representation. Its only capability is
// appending its canonical bytes to a hash accumulator.
type Snapshot interface {
	AppendTo(h *hashing.Hasher)
}

// Snapshotter turns a live value into a Snapshot.
type Snapshotter interface {
	Snapshot(value any) (Snapshot, error)
}

// Snapshottable lets parameter values supply their own canonical form.
type Snapshottable interface {
	SnapshotValue() (Snapshot, error)
}

/*──────── default implementation ───────*/

// Values walks plain config-style values: nil, bool, string, integers,
// floats, slices and string-keyed maps, nested arbitrarily.
type Values struct{}

func NewValues() *Values { return &Values{} }

const (
	tagNull   = "null"
	tagBool   = "bool"
	tagString = "string"
	tagInt    = "int"
	tagFloat  = "float"
	tagList   = "list"
	tagMap    = "map"
)

func (v *Values) Snapshot(value any) (Snapshot, error) {
	switch val := value.(type) {
	case nil:
		return scalar{tag: tagNull}, nil
	case Snapshottable:
		return val.SnapshotValue()
	case bool:
		if val {
			return scalar{tag: tagBool, str: "true"}, nil
		}
		return scalar{tag: tagBool, str: "false"}, nil
	case string:
		return scalar{tag: tagString, str: val}, nil
	case int:
		return scalar{tag: tagInt, num: int64(val)}, nil
	case int32:
		return scalar{tag: tagInt, num: int64(val)}, nil
	case int64:
		return scalar{tag: tagInt, num: val}, nil
	case uint32:
		return scalar{tag: tagInt, num: int64(val)}, nil
	case float32:
		return scalar{tag: tagFloat, num: int64(math.Float64bits(float64(val)))}, nil
	case float64:
		return scalar{tag: tagFloat, num: int64(math.Float64bits(val))}, nil
	case []string:
		elems := make([]any, len(val))
		for i, e := range val {
			elems[i] = e
		}
		return v.snapshotList(elems)
	case []any:
		return v.snapshotList(val)
	case map[string]string:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[k] = e
		}
		return v.snapshotMap(m)
	case map[string]any:
		return v.snapshotMap(val)
	default:
		return nil, fmt.Errorf("snapshot: unsupported value type %T", value)
	}
}

func (v *Values) snapshotList(elems []any) (Snapshot, error) {
	out := composite{tag: tagList}
	for i, e := range elems {
		s, err := v.Snapshot(e)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out.elems = append(out.elems, s)
	}
	return out, nil
}

func (v *Values) snapshotMap(m map[string]any) (Snapshot, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := composite{tag: tagMap}
	for _, k := range keys {
		s, err := v.Snapshot(m[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		out.elems = append(out.elems, scalar{tag: tagString, str: k}, s)
	}
	return out, nil
}

type scalar struct {
	tag string
	str string
	num int64
}

func (s scalar) AppendTo(h *hashing.Hasher) {
	h.PutString(s.tag)
	h.PutString(s.str)
	h.PutInt(s.num)
}

type composite struct {
	tag   string
	elems []Snapshot
}

func (c composite) AppendTo(h *hashing.Hasher) {
	h.PutString(c.tag)
	h.PutInt(int64(len(c.elems)))
	for _, e := range c.elems {
		e.AppendTo(h)
	}
}
