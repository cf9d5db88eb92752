package request

import (
	"strings"
	"testing"
)

func TestNew_Normalizes(t *testing.T) {
	req := New("  The   FIREMAN\tsits ", []string{"name", "skills.name"}, 5)
	if req.Query() != "  The   FIREMAN\tsits " {
		t.Errorf("Query() = %q", req.Query())
	}
	if req.Normalized() != "  the   fireman\tsits " {
		t.Errorf("Normalized() = %q", req.Normalized())
	}
	want := []string{"the", "fireman", "sits"}
	if len(req.Tokens()) != len(want) {
		t.Fatalf("Tokens() = %v, want %v", req.Tokens(), want)
	}
	for i, tok := range req.Tokens() {
		if tok != want[i] {
			t.Errorf("Tokens()[%d] = %q, want %q", i, tok, want[i])
		}
	}
	if len(req.Keys()) != 2 || req.Keys()[1].String() != "skills.name" {
		t.Errorf("Keys() = %v", req.Keys())
	}
	if req.Limit() != 5 {
		t.Errorf("Limit() = %d, want 5", req.Limit())
	}
}

func TestNew_EmptyQuery(t *testing.T) {
	req := New("", []string{"name"}, DefaultLimit)
	if req.Normalized() != "" || len(req.Tokens()) != 0 {
		t.Errorf("empty query produced %q / %v", req.Normalized(), req.Tokens())
	}
}

func TestNew_AcceptsAnyKeys(t *testing.T) {
	req := New("q", []string{"name", "", "a..b"}, 1)
	if len(req.Keys()) != 3 {
		t.Fatalf("Keys() = %v, want all three kept", req.Keys())
	}
	if req.Keys()[1].String() != "" {
		t.Errorf("Keys()[1] = %q", req.Keys()[1].String())
	}
	nilReq := New("q", nil, 1)
	if got := nilReq.Keys(); len(got) != 0 {
		t.Errorf("nil keys produced %v", got)
	}
}

func TestNew_LongQuery(t *testing.T) {
	q := strings.Repeat("a", 10000)
	req := New(q, []string{"name"}, 1)
	if req.Normalized() != q || len(req.Tokens()) != 1 {
		t.Errorf("long query not kept intact")
	}
}
