package keys

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/OneOfOne/xxhash"
)

// Key is a 128-bit cache key.
type Key [16]byte

func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// Derive fingerprints a primary text plus an optional context mapping.
// Context keys are sorted before serialization so insertion order never
// changes the digest. Names and values are length-prefixed so delimiter
// characters inside values cannot collide with the pair framing.
func Derive(primary string, context map[string]any) Key {
	data := []byte(primary)
	if len(context) > 0 {
		names := make([]string, 0, len(context))
		for name := range context {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			val := valueString(context[name])
			data = fmt.Appendf(data, "%d:%s=%d:%s;", len(name), name, len(val), val)
		}
	}
	return twox128(data)
}

func valueString(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}

func twox128(data []byte) Key {
	h1 := xxhash.NewS64(0)
	h1.Write(data)
	h2 := xxhash.NewS64(1)
	h2.Write(data)
	var out Key
	binary.LittleEndian.PutUint64(out[0:], h1.Sum64())
	binary.LittleEndian.PutUint64(out[8:], h2.Sum64())
	return out
}
