package importer

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// envelopeKeys are the object keys that may wrap the item array.
var envelopeKeys = []string{"waters", "data", "items"}

func parseJSON(text string) (Batch, error) {
	b := Batch{Format: FormatJSON}

	if !gjson.Valid(text) {
		return b, fmt.Errorf("%w: json: invalid document", ErrParse)
	}

	for _, item := range items(gjson.Parse(text)) {
		if !item.IsObject() {
			b.Rejected++
			continue
		}
		b.collect(func(key string) string {
			return scalar(item.Get(key))
		})
	}
	return b, nil
}

// items unwraps a bare array or an envelope object. Anything else holds no
// items.
func items(root gjson.Result) []gjson.Result {
	if root.IsArray() {
		return root.Array()
	}
	if root.IsObject() {
		for _, k := range envelopeKeys {
			if v := root.Get(k); v.IsArray() {
				return v.Array()
			}
		}
	}
	return nil
}

// scalar renders a JSON scalar as text. Null, objects and arrays yield "".
func scalar(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number:
		return v.Raw
	case gjson.True:
		return "true"
	case gjson.False:
		return "false"
	default:
		return ""
	}
}
