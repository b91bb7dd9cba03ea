package mediatype_test

import (
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/adamwoolhether/rester/client/mediatype"
	"github.com/google/go-cmp/cmp"
)

type widget struct {
	Name  string `json:"name" xml:"name" form:"name"`
	Count int    `json:"count" xml:"count" form:"count"`
}

// stub is a MediaType distinguishable by tag.
type stub struct {
	contentType string
	tag         string
}

func (s stub) ContentType() string                { return s.contentType }
func (s stub) Marshal(any) ([]byte, error)        { return []byte(s.tag), nil }
func (s stub) Unmarshal(data []byte, v any) error { return nil }

func TestRegistry_Defaults(t *testing.T) {
	r := mediatype.NewRegistry(mediatype.Defaults()...)

	exp := []string{
		mediatype.ContentTypeXML,
		mediatype.ContentTypeJSON,
		mediatype.ContentTypeForm,
	}
	if diff := cmp.Diff(exp, r.ContentTypes()); diff != "" {
		t.Errorf("unexpected registration order (-want +got):\n%s", diff)
	}

	for _, ct := range exp {
		m, err := r.Resolve(ct)
		if err != nil {
			t.Errorf("resolving %s: %v", ct, err)
			continue
		}
		if m.ContentType() != ct {
			t.Errorf("exp %s, got %s", ct, m.ContentType())
		}
	}
}

func TestRegistry_Explicit(t *testing.T) {
	r := mediatype.NewRegistry(mediatype.JSON{})

	if _, err := r.Resolve(mediatype.ContentTypeJSON); err != nil {
		t.Fatalf("expected json to resolve, got: %v", err)
	}

	_, err := r.Resolve(mediatype.ContentTypeXML)
	if !errors.Is(err, mediatype.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}

	var nfErr *mediatype.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if nfErr.ContentType != mediatype.ContentTypeXML {
		t.Errorf("exp content type %q, got %q", mediatype.ContentTypeXML, nfErr.ContentType)
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := mediatype.NewRegistry(
		stub{contentType: "text/plain", tag: "first"},
		mediatype.JSON{},
	)
	r.Register(stub{contentType: "TEXT/PLAIN ", tag: "second"})

	if r.Len() != 2 {
		t.Fatalf("exp 2 registered types, got %d", r.Len())
	}

	if diff := cmp.Diff([]string{"text/plain", mediatype.ContentTypeJSON}, r.ContentTypes()); diff != "" {
		t.Errorf("replacement should keep position (-want +got):\n%s", diff)
	}

	m, err := r.Resolve("text/plain")
	if err != nil {
		t.Fatalf("resolving: %v", err)
	}

	b, _ := m.Marshal(nil)
	if string(b) != "second" {
		t.Errorf("exp last registration to win, got %q", b)
	}
}

func TestRegistry_ExactMatchOnly(t *testing.T) {
	r := mediatype.NewRegistry(mediatype.Defaults()...)

	testCases := map[string]struct {
		contentType string
		found       bool
	}{
		"exact":           {contentType: "application/json", found: true},
		"upperCase":       {contentType: "Application/JSON", found: true},
		"withParams":      {contentType: "application/json; charset=utf-8", found: false},
		"wildcard":        {contentType: "application/*", found: false},
		"structuredJSON":  {contentType: "application/hal+json", found: false},
		"emptyIdentifier": {contentType: "", found: false},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := r.Resolve(tc.contentType)
			if tc.found && err != nil {
				t.Errorf("exp found, got: %v", err)
			}
			if !tc.found && !errors.Is(err, mediatype.ErrNotFound) {
				t.Errorf("exp ErrNotFound, got: %v", err)
			}
		})
	}
}

func TestRegistry_RegisterNil(t *testing.T) {
	r := mediatype.NewRegistry()
	r.Register(nil)

	if r.Len() != 0 {
		t.Errorf("exp empty registry, got %d", r.Len())
	}
}

func TestCodecs_RoundTrip(t *testing.T) {
	in := widget{Name: "sprocket", Count: 3}

	for _, m := range mediatype.Defaults() {
		t.Run(m.ContentType(), func(t *testing.T) {
			b, err := m.Marshal(in)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}

			var out widget
			if err := m.Unmarshal(b, &out); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}

			if diff := cmp.Diff(in, out); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestForm_Values(t *testing.T) {
	vals := url.Values{"q": {"rest client"}, "page": {"2"}}

	b, err := mediatype.Form{}.Marshal(vals)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "page=2&q=rest+client" {
		t.Errorf("unexpected encoding: %s", b)
	}

	var out url.Values
	if err := (mediatype.Form{}).Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(vals, out); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestJSON_UseNumber(t *testing.T) {
	var raw map[string]any
	if err := (mediatype.JSON{UseNumber: true}).Unmarshal([]byte(`{"id":12345678901234567}`), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	n, ok := raw["id"].(json.Number)
	if !ok {
		t.Fatalf("expected json.Number, got %T", raw["id"])
	}
	if n.String() != "12345678901234567" {
		t.Errorf("expected 12345678901234567, got %s", n.String())
	}
}
