package fields_test

import (
	"testing"

	"github.com/goliatone/go-jssgen/pkg/fields"
	"github.com/goliatone/go-jssgen/pkg/registry"
)

func mustDecode(t *testing.T, raw string) fields.Value {
	t.Helper()
	obj, err := fields.DecodeObject(`{"sample":` + raw + `}`)
	if err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	value, ok := obj.Get("sample")
	if !ok {
		t.Fatalf("sample member missing")
	}
	return value
}

func TestClassifyPrecedence(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want registry.Kind
	}{
		{name: "array wins over everything", raw: `[{"value":"x"}]`, want: registry.KindItems},
		{name: "empty array", raw: `[]`, want: registry.KindItems},
		{name: "wrapped string", raw: `{"value":"Hi"}`, want: registry.KindText},
		{name: "wrapped empty string", raw: `{"value":""}`, want: registry.KindText},
		{name: "link by href", raw: `{"value":{"href":"/x"}}`, want: registry.KindLink},
		{name: "link by text", raw: `{"value":{"text":"Go"}}`, want: registry.KindLink},
		{name: "link beats image", raw: `{"value":{"src":"/a.png","text":"caption"}}`, want: registry.KindLink},
		{name: "image by src", raw: `{"value":{"src":"/a.png"}}`, want: registry.KindImage},
		{name: "image by alt", raw: `{"value":{"alt":"A"}}`, want: registry.KindImage},
		{name: "other object", raw: `{"value":{"html":"<b>x</b>"}}`, want: registry.KindRichText},
		{name: "wrapped array", raw: `{"value":["a"]}`, want: registry.KindRichText},
		{name: "wrapped number", raw: `{"value":42}`, want: registry.KindText},
		{name: "wrapped null", raw: `{"value":null}`, want: registry.KindText},
		{name: "object without value", raw: `{"src":"/a.png"}`, want: registry.KindText},
		{name: "bare string", raw: `"plain"`, want: registry.KindText},
		{name: "bare bool", raw: `true`, want: registry.KindText},
		{name: "null", raw: `null`, want: registry.KindText},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := fields.Classify(mustDecode(t, tc.raw)); got != tc.want {
				t.Fatalf("Classify(%s) = %s, want %s", tc.raw, got, tc.want)
			}
		})
	}
}

func TestDecodeObjectRejectsNonObjects(t *testing.T) {
	for _, raw := range []string{`[]`, `"x"`, `42`, `{"a":1`, `{"a":1}{"b":2}`} {
		if _, err := fields.DecodeObject(raw); err == nil {
			t.Fatalf("expected error for %s", raw)
		}
	}
}
