package articleschema

import (
	"encoding/json"
	"testing"
)

func TestValidateArticlePayload_Valid(t *testing.T) {
	payload := json.RawMessage(`{
		"title":"What Is a Residential Proxy?",
		"meta_description":"Learn how residential proxies route traffic through real ISP-assigned IP addresses, when to use them, and how they compare to datacenter alternatives.",
		"article":"## Overview\n\nA residential proxy routes your traffic through a real home IP address.",
		"word_count":1450,
		"suggested_internal_links":["datacenter-proxy","rotating-proxy"]
	}`)

	article, err := ValidateArticlePayload(payload)
	if err != nil {
		t.Fatalf("expected payload to be valid, got error: %v", err)
	}

	if article.Title != "What Is a Residential Proxy?" {
		t.Fatalf("unexpected title %q", article.Title)
	}
	if article.WordCount != 1450 {
		t.Fatalf("expected word_count=1450, got %d", article.WordCount)
	}
	if len(article.InternalLinks) != 2 {
		t.Fatalf("expected 2 internal links, got %d", len(article.InternalLinks))
	}
}

func TestValidateArticlePayload_MissingRequired(t *testing.T) {
	payload := json.RawMessage(`{
		"title":"Missing body",
		"meta_description":"An article payload without the article field."
	}`)

	if _, err := ValidateArticlePayload(payload); err == nil {
		t.Fatalf("expected validation to fail for missing article field")
	}
}

func TestValidateArticlePayload_WhitespaceTitle(t *testing.T) {
	payload := json.RawMessage(`{
		"title":"   ",
		"meta_description":"Valid description.",
		"article":"## Body"
	}`)

	if _, err := ValidateArticlePayload(payload); err == nil {
		t.Fatalf("expected validation to fail for whitespace title")
	}
}

func TestValidateArticlePayload_UnknownField(t *testing.T) {
	payload := json.RawMessage(`{
		"title":"Extra field",
		"meta_description":"Valid description.",
		"article":"## Body",
		"keywords":["unexpected"]
	}`)

	if _, err := ValidateArticlePayload(payload); err == nil {
		t.Fatalf("expected validation to fail for unknown field")
	}
}

func TestValidateArticlePayload_TrailingContent(t *testing.T) {
	payload := json.RawMessage(`{"title":"a","meta_description":"b","article":"c"} trailing`)

	if _, err := ValidateArticlePayload(payload); err == nil {
		t.Fatalf("expected validation to fail for trailing content")
	}
}

func TestValidateArticlePayload_Empty(t *testing.T) {
	if _, err := ValidateArticlePayload(json.RawMessage("  ")); err == nil {
		t.Fatalf("expected validation to fail for empty payload")
	}
}

func TestValidateArticlePayload_EmptyInternalLink(t *testing.T) {
	payload := json.RawMessage(`{
		"title":"Links",
		"meta_description":"Valid description.",
		"article":"## Body",
		"suggested_internal_links":["good-slug",""]
	}`)

	if _, err := ValidateArticlePayload(payload); err == nil {
		t.Fatalf("expected validation to fail for empty internal link")
	}
}
