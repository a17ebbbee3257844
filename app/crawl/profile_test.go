package crawl

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProfileFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "profile.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write profile file: %v", err)
	}
	return path
}

func TestDefaultProfile(t *testing.T) {
	profile := DefaultProfile()

	if err := validateProfile(profile); err != nil {
		t.Errorf("Default profile should be valid, got: %v", err)
	}
}

func TestLoadProfile_FullOverride(t *testing.T) {
	path := writeProfileFile(t, `
list:
  actor_links: "ul.cast a.actor-link"
actor:
  name: "h1.name"
  titles: "ul.credits li"
`)

	profile, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}

	if profile.List.ActorLinks != "ul.cast a.actor-link" {
		t.Errorf("Expected overridden actor_links selector, got '%s'", profile.List.ActorLinks)
	}
	if profile.Actor.Name != "h1.name" {
		t.Errorf("Expected overridden name selector, got '%s'", profile.Actor.Name)
	}
	if profile.Actor.Titles != "ul.credits li" {
		t.Errorf("Expected overridden titles selector, got '%s'", profile.Actor.Titles)
	}
}

func TestLoadProfile_PartialOverrideFillsDefaults(t *testing.T) {
	path := writeProfileFile(t, `
actor:
  name: "h2.actor-name"
`)

	profile, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile failed: %v", err)
	}

	defaults := DefaultProfile()
	if profile.Actor.Name != "h2.actor-name" {
		t.Errorf("Expected overridden name selector, got '%s'", profile.Actor.Name)
	}
	if profile.List.ActorLinks != defaults.List.ActorLinks {
		t.Errorf("Expected default actor_links selector, got '%s'", profile.List.ActorLinks)
	}
	if profile.Actor.Titles != defaults.Actor.Titles {
		t.Errorf("Expected default titles selector, got '%s'", profile.Actor.Titles)
	}
}

func TestLoadProfile_MissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yml"))
	if err == nil {
		t.Error("Expected error for missing profile file")
	}
}

func TestLoadProfile_InvalidYAML(t *testing.T) {
	path := writeProfileFile(t, "list: [unclosed")

	_, err := LoadProfile(path)
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}
