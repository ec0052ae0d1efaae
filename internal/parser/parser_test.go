package parser

import (
	"reflect"
	"testing"
)

func TestParseFull(t *testing.T) {
	data := []byte(`---
title: Emotet Loader
tags:
  - 🦠Malware_Sample
  - 🦠Malware_Sample
  -
Primary Categories:
  - "[[Red Team]]"
---
# Heading

See [[Red Team]] and [[Phishing|the campaign]].
`)
	res := Parse(data)

	if res.Title != "Emotet Loader" {
		t.Fatalf("title = %q, want %q", res.Title, "Emotet Loader")
	}
	if want := []string{"🦠Malware_Sample"}; !reflect.DeepEqual(res.Tags, want) {
		t.Fatalf("tags = %v, want %v", res.Tags, want)
	}
	if want := []string{"Red Team", "Phishing"}; !reflect.DeepEqual(res.Links, want) {
		t.Fatalf("links = %v, want %v", res.Links, want)
	}
	if res.Frontmatter == nil {
		t.Fatal("frontmatter not parsed")
	}
}

func TestParseNoFrontmatter(t *testing.T) {
	res := Parse([]byte("# Just a heading\n\nbody text\n"))
	if res.Frontmatter != nil {
		t.Fatalf("frontmatter = %v, want nil", res.Frontmatter)
	}
	if res.Title != "Just a heading" {
		t.Fatalf("title = %q, want heading", res.Title)
	}
}

func TestParseMalformedFrontmatter(t *testing.T) {
	data := []byte("---\n: : not yaml [\n---\nbody\n")
	res := Parse(data)
	if res.Frontmatter != nil {
		t.Fatalf("frontmatter = %v, want nil on malformed yaml", res.Frontmatter)
	}
	if res.Body != string(data) {
		t.Fatalf("body should fall back to the whole content, got %q", res.Body)
	}
}

func TestParseUnterminatedFrontmatter(t *testing.T) {
	data := []byte("---\ntitle: open\n")
	res := Parse(data)
	if res.Frontmatter != nil {
		t.Fatal("unterminated frontmatter should not parse")
	}
}

func TestTags(t *testing.T) {
	fm := map[string]any{"tags": []any{"a", "", "a", 7, " b "}}
	if want := []string{"a", "b"}; !reflect.DeepEqual(Tags(fm), want) {
		t.Fatalf("Tags = %v, want %v", Tags(fm), want)
	}
	if Tags(nil) != nil {
		t.Fatal("Tags(nil) should be nil")
	}
	if Tags(map[string]any{"tags": "not a list"}) != nil {
		t.Fatal("scalar tags field should yield nil")
	}
}

func TestTitleFallsBackToHeading(t *testing.T) {
	data := []byte("---\ntags: []\n---\nintro\n\n# Found It\n")
	if got := Parse(data).Title; got != "Found It" {
		t.Fatalf("title = %q, want %q", got, "Found It")
	}
}
