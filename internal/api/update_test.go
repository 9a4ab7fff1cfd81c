package api

import (
	"encoding/json"
	"strings"
	"testing"
)

// parseBody decodes a JSON object the way the handlers do, with numbers
// preserved as json.Number.
func parseBody(t *testing.T, raw string) map[string]any {
	t.Helper()
	var body map[string]any
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		t.Fatalf("decoding body %q: %v", raw, err)
	}
	return body
}

func TestResolveItemFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{
			"friendly shape",
			`{"name":"Lamp","category":"Lighting","price":"25"}`,
			map[string]string{"itemName": "Lamp", "itemCategory": "Lighting", "itemPrice": "25"},
		},
		{
			"canonical shape",
			`{"itemName":"Lamp","itemPrice":"25"}`,
			map[string]string{"itemName": "Lamp", "itemPrice": "25"},
		},
		{
			"canonical wins over friendly",
			`{"name":"Old","itemName":"New","price":"1","itemPrice":"2"}`,
			map[string]string{"itemName": "New", "itemPrice": "2"},
		},
		{
			"single field leaves the rest out",
			`{"price":99}`,
			map[string]string{"itemPrice": "99"},
		},
		{
			"numeric price keeps its literal form",
			`{"price":10.50}`,
			map[string]string{"itemPrice": "10.50"},
		},
		{
			"values are trimmed",
			`{"itemName":"  Lamp  "}`,
			map[string]string{"itemName": "Lamp"},
		},
		{
			"null values are ignored",
			`{"itemName":null,"status":"ACTIVE"}`,
			map[string]string{"status": "ACTIVE"},
		},
		{
			"unrecognized keys are ignored",
			`{"color":"red","weight":3}`,
			map[string]string{},
		},
		{"empty body", `{}`, map[string]string{}},
	}

	for _, tt := range tests {
		fields := resolveFields(parseBody(t, tt.raw), itemFieldSources)
		if len(fields) != len(tt.want) {
			t.Errorf("%s: got %d fields (%v), want %d", tt.name, len(fields), fields, len(tt.want))
			continue
		}
		for k, v := range tt.want {
			if got, ok := fields[k].(string); !ok || got != v {
				t.Errorf("%s: fields[%q] = %v, want %q", tt.name, k, fields[k], v)
			}
		}
	}
}

func TestResolveUserFields(t *testing.T) {
	body := parseBody(t, `{"username":"bob","email":"b@c.com","firstname":"Bob","password":"secret"}`)
	fields := resolveFields(body, userFieldSources)

	if fields["username"] != "bob" || fields["email"] != "b@c.com" || fields["firstname"] != "Bob" {
		t.Errorf("unexpected fields: %v", fields)
	}
	// The password needs hashing and is resolved separately by the handler.
	if _, ok := fields["password"]; ok {
		t.Error("password must not pass through field resolution")
	}
}

func TestCoerceString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"plain", "plain"},
		{"  padded  ", "padded"},
		{json.Number("42"), "42"},
		{json.Number("10.50"), "10.50"},
		{nil, ""},
		{true, "true"},
	}

	for _, tt := range tests {
		if got := coerceString(tt.in); got != tt.want {
			t.Errorf("coerceString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
