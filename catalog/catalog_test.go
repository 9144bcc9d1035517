package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
}

func TestBiomeThemesExist(t *testing.T) {
	cfg := Default()
	for _, b := range cfg.Biomes {
		if len(b.Themes) == 0 {
			t.Errorf("biome %q has no compatible themes", b.Name)
		}
		for _, name := range b.Themes {
			if _, ok := cfg.Theme(name); !ok {
				t.Errorf("biome %q references unknown theme %q", b.Name, name)
			}
		}
	}
}

func TestZoneForDepth(t *testing.T) {
	policy := Default().Policy
	cases := []struct {
		depth int
		want  string
	}{
		{0, "safe"},
		{1, "safe"},
		{2, "challenge"},
		{3, "challenge"},
		{4, "puzzle"},
		{6, "ambush"},
		{8, "elite"},
		{100, "elite"},
	}
	for _, c := range cases {
		if got := policy.ZoneForDepth(c.depth); got != c.want {
			t.Errorf("ZoneForDepth(%d) = %q, want %q", c.depth, got, c.want)
		}
	}
}

func TestZoneLookupFallback(t *testing.T) {
	policy := Default().Policy
	z := policy.Zone("no_such_zone")
	if z.Density != 1.0 || z.Strength != 1.0 {
		t.Errorf("unknown zone should be neutral, got density=%v strength=%v", z.Density, z.Strength)
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte("scaling:\n  base_width: 80\n  base_height: 50\nretries: 5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scaling.BaseWidth != 80 || cfg.Scaling.BaseHeight != 50 {
		t.Errorf("scaling override not applied: %dx%d", cfg.Scaling.BaseWidth, cfg.Scaling.BaseHeight)
	}
	if cfg.Retries != 5 {
		t.Errorf("retries = %d, want 5", cfg.Retries)
	}
	// Untouched sections keep their defaults.
	if len(cfg.Biomes) == 0 || len(cfg.Enemies) == 0 {
		t.Error("defaults lost during layering")
	}
}

func TestLoadRejectsBrokenCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte("scaling:\n  base_width: 4\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for 4-wide map")
	}
}

func TestValidateRejectsEmptyEnemyTable(t *testing.T) {
	cfg := Default()
	cfg.Enemies = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty enemy table passed validation")
	}
}

func TestValidateRejectsUnnamedBoss(t *testing.T) {
	cfg := Default()
	cfg.BossEnemy = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing boss enemy passed validation")
	}
}

func TestValidateRejectsZeroWeightEnemy(t *testing.T) {
	cfg := Default()
	cfg.Enemies[0].Weight = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero-weight enemy passed validation")
	}
}

func TestLoadRejectsEmptyEnemyOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("enemies: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("override emptying the enemy table passed Load")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
