package api

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// fieldSource maps one stored field to the request keys that may supply it,
// in application order: keys later in the list win when several are present.
type fieldSource struct {
	target string
	keys   []string
}

// Item updates accept both a friendly request shape and the canonical stored
// shape; the canonical key is applied last, so it wins when both appear.
var itemFieldSources = []fieldSource{
	{target: "itemName", keys: []string{"name", "itemName"}},
	{target: "itemCategory", keys: []string{"category", "itemCategory"}},
	{target: "itemPrice", keys: []string{"price", "itemPrice"}},
	{target: "status", keys: []string{"status"}},
}

// User updates take the stored field names directly. The password is not
// listed here: it needs hashing and is handled separately.
var userFieldSources = []fieldSource{
	{target: "username", keys: []string{"username"}},
	{target: "email", keys: []string{"email"}},
	{target: "firstname", keys: []string{"firstname"}},
	{target: "lastname", keys: []string{"lastname"}},
	{target: "status", keys: []string{"status"}},
}

// resolveFields builds a field-scoped update document from a request body.
// Fields absent from the body are left out entirely, so the resulting $set
// can never null out a field the caller did not mention. An empty result
// means the body carried no recognized fields.
func resolveFields(body map[string]any, sources []fieldSource) bson.M {
	fields := bson.M{}
	for _, src := range sources {
		for _, key := range src.keys {
			if v, ok := body[key]; ok && v != nil {
				fields[src.target] = coerceString(v)
			}
		}
	}
	return fields
}

// coerceString renders a JSON value as a trimmed string. Numbers keep their
// literal form (decodeJSON parses them as json.Number).
func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
