package fields_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-jssgen/pkg/fields"
	"github.com/goliatone/go-jssgen/pkg/registry"
)

func TestParseSimple(t *testing.T) {
	got := fields.Parse("a:Text,b:Image")
	want := []fields.Descriptor{
		{Key: "a", RawType: "Text", SemanticType: registry.TypeText, RenderPrimitive: registry.PrimitiveText},
		{Key: "b", RawType: "Image", SemanticType: registry.TypeImage, RenderPrimitive: registry.PrimitiveImage},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("descriptors mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSimplePermissive(t *testing.T) {
	got := fields.Parse(" title : rich text , , cta, :Link, body:, x:Frobnicate:extra ")
	want := []fields.Descriptor{
		{Key: "title", RawType: "rich text", SemanticType: registry.TypeRichText, RenderPrimitive: registry.PrimitiveRichText},
		{Key: "cta", RawType: "any", SemanticType: registry.TypeAny},
		{Key: "", RawType: "Link", SemanticType: registry.TypeLink, RenderPrimitive: registry.PrimitiveLink},
		{Key: "body", RawType: "any", SemanticType: registry.TypeAny},
		{Key: "x", RawType: "Frobnicate", SemanticType: registry.TypeAny},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("descriptors mismatch (-want +got):\n%s", diff)
	}
}

func TestParseUnknownTypeHasNoPrimitive(t *testing.T) {
	got := fields.Parse("x:Frobnicate")
	if len(got) != 1 {
		t.Fatalf("expected one descriptor, got %d", len(got))
	}
	if got[0].Renderable() {
		t.Fatalf("unknown type resolved to primitive %q", got[0].RenderPrimitive)
	}
	if got[0].RawType != "Frobnicate" {
		t.Fatalf("raw type not preserved: %q", got[0].RawType)
	}
}

func TestParseEmptyInput(t *testing.T) {
	if got := fields.Parse("   "); len(got) != 0 {
		t.Fatalf("expected no descriptors, got %#v", got)
	}
	if got := fields.Parse("{}"); len(got) != 0 {
		t.Fatalf("expected no descriptors for empty object, got %#v", got)
	}
}

func TestParseStructural(t *testing.T) {
	input := `{
		"title": {"value": "Hi"},
		"cta": {"value": {"href": "/x", "text": "Go"}},
		"hero": {"value": {"src": "/a.png", "alt": "A"}},
		"body": {"value": {"html": "<p>x</p>"}},
		"count": 3,
		"empty": {"value": null},
		"slides": []
	}`

	got := fields.Parse(input)
	want := []fields.Descriptor{
		{Key: "title", RawType: "Text", SemanticType: registry.TypeText, RenderPrimitive: registry.PrimitiveText},
		{Key: "cta", RawType: "Link", SemanticType: registry.TypeLink, RenderPrimitive: registry.PrimitiveLink},
		{Key: "hero", RawType: "Image", SemanticType: registry.TypeImage, RenderPrimitive: registry.PrimitiveImage},
		{Key: "body", RawType: "RichText", SemanticType: registry.TypeRichText, RenderPrimitive: registry.PrimitiveRichText},
		{Key: "count", RawType: "Text", SemanticType: registry.TypeText, RenderPrimitive: registry.PrimitiveText},
		{Key: "empty", RawType: "Text", SemanticType: registry.TypeText, RenderPrimitive: registry.PrimitiveText},
		{Key: "slides", RawType: "Items", SemanticType: registry.TypeItems},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("descriptors mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStructuralItems(t *testing.T) {
	got := fields.Parse(`{"items":[{"fields":{"label":{"value":"A"},"photo":{"value":{"src":"/p.png"}}}},{"fields":{"ignored":{"value":"B"}}}]}`)
	want := []fields.Descriptor{
		{
			Key:          "items",
			RawType:      "Items",
			SemanticType: registry.TypeItems,
			ItemStructure: []fields.ItemField{
				{Key: "label", RawType: "Text", SemanticType: registry.TypeText, RenderPrimitive: registry.PrimitiveText},
				{Key: "photo", RawType: "Image", SemanticType: registry.TypeImage, RenderPrimitive: registry.PrimitiveImage},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("descriptors mismatch (-want +got):\n%s", diff)
	}
	if !got[0].HasItems() {
		t.Fatalf("expected item structure to be reported")
	}
}

func TestParseStructuralUnrecognizedItems(t *testing.T) {
	cases := []string{
		`{"items":[1,2]}`,
		`{"items":[{"id":"x"}]}`,
		`{"items":[{"fields":"nope"}]}`,
		`{"items":[{"fields":{}}]}`,
	}
	for _, input := range cases {
		got := fields.Parse(input)
		if len(got) != 1 || got[0].RawType != "Items" {
			t.Fatalf("%s: unexpected descriptors %#v", input, got)
		}
		if got[0].ItemStructure != nil {
			t.Fatalf("%s: expected no item structure, got %#v", input, got[0].ItemStructure)
		}
	}
}

func TestParseStructuralKeepsSourceOrder(t *testing.T) {
	got := fields.Parse(`{"zeta":{"value":"z"},"alpha":{"value":"a"},"mid":{"value":"m"}}`)
	keys := make([]string, 0, len(got))
	for _, desc := range got {
		keys = append(keys, desc.Key)
	}
	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, keys); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStructuralDuplicateKeysOverwriteInPlace(t *testing.T) {
	got := fields.Parse(`{"a":{"value":"x"},"b":{"value":"y"},"a":{"value":{"href":"/"}}}`)
	want := []fields.Descriptor{
		{Key: "a", RawType: "Link", SemanticType: registry.TypeLink, RenderPrimitive: registry.PrimitiveLink},
		{Key: "b", RawType: "Text", SemanticType: registry.TypeText, RenderPrimitive: registry.PrimitiveText},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("descriptors mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMalformedJSONFallsBackToSimple(t *testing.T) {
	got := fields.Parse(`{"title":Text, image:Image`)
	want := []fields.Descriptor{
		{Key: `{"title"`, RawType: "Text", SemanticType: registry.TypeText, RenderPrimitive: registry.PrimitiveText},
		{Key: "image", RawType: "Image", SemanticType: registry.TypeImage, RenderPrimitive: registry.PrimitiveImage},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("descriptors mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTrailingDataFallsBack(t *testing.T) {
	got := fields.Parse(`{"a":{"value":"x"}} trailing`)
	if len(got) != 1 || got[0].Key != `{"a"` {
		t.Fatalf("expected simple-mode fallback, got %#v", got)
	}
}

func TestParseInvalidUTF8FallsBack(t *testing.T) {
	got := fields.Parse("{\"a\xff\":{\"value\":\"x\"}}")
	if len(got) != 1 || got[0].Key != "{\"a\xff\"" {
		t.Fatalf("expected simple-mode fallback, got %#v", got)
	}
}

func TestParseIsPure(t *testing.T) {
	input := `{"items":[{"fields":{"label":{"value":"A"}}}],"title":{"value":"T"}}`
	first := fields.Parse(input)
	second := fields.Parse(input)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("parse is not deterministic (-first +second):\n%s", diff)
	}
}

func TestParserWithCustomRegistry(t *testing.T) {
	reg := registry.New(registry.Entry{
		Keyword:    "date",
		Resolution: registry.Resolution{SemanticType: "DateField", RenderPrimitive: "DateField"},
	})
	parser := fields.NewParser(fields.WithRegistry(reg))

	got := parser.Parse("when:Date,title:Text")
	if got[0].SemanticType != "DateField" {
		t.Fatalf("custom type not resolved: %#v", got[0])
	}
	if got[1].Renderable() {
		t.Fatalf("text should be unknown to the custom registry: %#v", got[1])
	}
}
