package source

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		arg      string
		kind     Kind
		location string
	}{
		{"profiles/orders.yaml", KindFile, "profiles/orders.yaml"},
		{"./profiles/../orders.json", KindFile, "orders.json"},
		{"https://example.com/orders.json", KindURL, "https://example.com/orders.json"},
		{"http://localhost:8080/p.yaml", KindURL, "http://localhost:8080/p.yaml"},
	}
	for _, tc := range cases {
		t.Run(tc.arg, func(t *testing.T) {
			src, err := Parse(tc.arg)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if src.Kind() != tc.kind {
				t.Fatalf("expected %s, got %s", tc.kind, src.Kind())
			}
			if src.Location() != tc.location {
				t.Fatalf("expected %q, got %q", tc.location, src.Location())
			}
		})
	}

	if _, err := Parse(""); err == nil {
		t.Fatalf("expected empty location to fail")
	}
}

func TestFromURL(t *testing.T) {
	if _, err := FromURL(""); err == nil {
		t.Fatalf("expected empty url to fail")
	}
	if _, err := FromURL("not a url"); err == nil {
		t.Fatalf("expected relative reference to fail")
	}
}

func TestDocument(t *testing.T) {
	raw := []byte("fields: []")
	doc, err := NewDocument(FromFile("p.yaml"), raw)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}
	raw[0] = 'X'
	if string(doc.Raw()) != "fields: []" {
		t.Fatalf("document must copy its payload")
	}
	doc.Raw()[0] = 'Y'
	if string(doc.Raw()) != "fields: []" {
		t.Fatalf("Raw must return a copy")
	}

	if _, err := NewDocument(nil, raw); err == nil {
		t.Fatalf("expected nil source to fail")
	}
	if _, err := NewDocument(FromFile("p.yaml"), nil); err == nil {
		t.Fatalf("expected empty payload to fail")
	}
	if (Document{}).Location() != "" {
		t.Fatalf("zero document must have an empty location")
	}
}

func TestLoaderOptions(t *testing.T) {
	opts := NewLoaderOptions(nil, WithHTTPFallback(3*time.Second))
	if !opts.AllowHTTPFallback || opts.RequestTimeout != 3*time.Second {
		t.Fatalf("unexpected options %+v", opts)
	}
}
