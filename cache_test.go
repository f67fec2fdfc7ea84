package patternlib

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goodtwin/go-patternlib/internal/annotation"
)

func TestParseCache(t *testing.T) {
	t.Parallel()

	blocks := []annotation.Block{{
		File:    "a.css",
		Section: annotation.Section{Path: "forms", ID: "button"},
	}}

	t.Run("hit on same content", func(t *testing.T) {
		t.Parallel()

		c := NewParseCache(0)
		c.Put("a.css", []byte("body{}"), blocks)

		got, ok := c.Get("a.css", []byte("body{}"))
		if !ok {
			t.Fatal("Get() miss, want hit")
		}
		if diff := cmp.Diff(blocks, got); diff != "" {
			t.Errorf("Get() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("miss on changed content", func(t *testing.T) {
		t.Parallel()

		c := NewParseCache(0)
		c.Put("a.css", []byte("body{}"), blocks)

		if _, ok := c.Get("a.css", []byte("body{color:red}")); ok {
			t.Error("Get() hit after content change")
		}
	})

	t.Run("forget", func(t *testing.T) {
		t.Parallel()

		c := NewParseCache(0)
		c.Put("a.css", []byte("x"), blocks)
		c.Forget("a.css")

		if c.Len() != 0 {
			t.Errorf("Len() = %d, want 0", c.Len())
		}
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()

		c := NewParseCache(2)
		c.Put("a.css", []byte("a"), nil)
		c.Put("b.css", []byte("b"), nil)
		c.Get("a.css", []byte("a"))
		c.Put("c.css", []byte("c"), nil)

		if _, ok := c.Get("b.css", []byte("b")); ok {
			t.Error("b.css should have been evicted")
		}
		if _, ok := c.Get("a.css", []byte("a")); !ok {
			t.Error("a.css should still be cached")
		}
	})

	t.Run("returned blocks are copies", func(t *testing.T) {
		t.Parallel()

		c := NewParseCache(0)
		c.Put("a.css", []byte("x"), blocks)

		got, _ := c.Get("a.css", []byte("x"))
		got[0].File = "mutated.css"

		again, _ := c.Get("a.css", []byte("x"))
		if again[0].File != "a.css" {
			t.Errorf("cached block mutated: File = %q", again[0].File)
		}
	})

	t.Run("nil cache is inert", func(t *testing.T) {
		t.Parallel()

		var c *ParseCache
		c.Put("a.css", []byte("x"), blocks)
		c.Forget("a.css")
		if _, ok := c.Get("a.css", []byte("x")); ok {
			t.Error("nil cache should never hit")
		}
		if c.Len() != 0 {
			t.Errorf("Len() = %d, want 0", c.Len())
		}
	})
}
