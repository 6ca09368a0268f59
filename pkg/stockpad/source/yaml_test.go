package source

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSeedListForm(t *testing.T) {
	path := writeSeed(t, `
- sym: aapl
  sentiment: Bullish
  comments: core holding
- sym: TSLA
`)
	items, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %d, want 2", len(items))
	}
	if items[0].Ticker != "AAPL" {
		t.Errorf("ticker = %q, want AAPL", items[0].Ticker)
	}
	if items[0].User["sentiment"] != "Bullish" || items[0].User["comments"] != "core holding" {
		t.Errorf("user = %v", items[0].User)
	}
	if len(items[1].User) != 0 {
		t.Errorf("bare item carries user fields: %v", items[1].User)
	}
}

func TestLoadSeedMapForm(t *testing.T) {
	path := writeSeed(t, `
watchlist:
  - sym: msft
    target_buy: "380"
`)
	items, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if len(items) != 1 || items[0].Ticker != "MSFT" || items[0].User["target_buy"] != "380" {
		t.Fatalf("items = %+v", items)
	}
}

func TestLoadSeedRejectsBadEntries(t *testing.T) {
	if _, err := LoadSeed(writeSeed(t, "- comments: no sym here\n")); err == nil {
		t.Error("missing sym accepted")
	}
	if _, err := LoadSeed(writeSeed(t, "- sym: A\n  sentiment: Moonbound\n")); err == nil {
		t.Error("invalid sentiment accepted")
	}
}
