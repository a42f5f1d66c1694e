package config

import "testing"

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.MatchDepthLimit != DefaultMatchDepthLimit {
		t.Fatalf("depth limit = %d, want %d", cfg.MatchDepthLimit, DefaultMatchDepthLimit)
	}
	if len(cfg.GuardAllowList) != len(DefaultGuardAllowList) {
		t.Fatalf("allow list = %v", cfg.GuardAllowList)
	}
	if cfg.MaxErrors != 0 {
		t.Fatalf("max errors should default to unlimited, got %d", cfg.MaxErrors)
	}
}

func TestParseOverrides(t *testing.T) {
	cfg, err := Parse([]byte("match_depth_limit: 5\nmax_errors: 10\nguard_allow_list: [not]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MatchDepthLimit != 5 {
		t.Fatalf("depth limit = %d", cfg.MatchDepthLimit)
	}
	if cfg.MaxErrors != 10 {
		t.Fatalf("max errors = %d", cfg.MaxErrors)
	}
	if len(cfg.GuardAllowList) != 1 || cfg.GuardAllowList[0] != "not" {
		t.Fatalf("allow list = %v", cfg.GuardAllowList)
	}
}

func TestParseBackfillsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("max_errors: 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MatchDepthLimit != DefaultMatchDepthLimit {
		t.Fatalf("depth limit not backfilled: %d", cfg.MatchDepthLimit)
	}
	if len(cfg.GuardAllowList) == 0 {
		t.Fatal("allow list not backfilled")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("{not yaml")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestGuardAllowed(t *testing.T) {
	cfg := Default()
	if !cfg.GuardAllowed("abs") {
		t.Fatal("abs should be allowed by default")
	}
	if cfg.GuardAllowed("launch_missiles") {
		t.Fatal("unknown function allowed")
	}
}
