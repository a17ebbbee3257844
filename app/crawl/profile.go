package crawl

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultProfile returns the selector paths for the movie database the tool
// was written against. A site profile file overrides any subset of them.
func DefaultProfile() *Profile {
	return &Profile{
		List: ProfileList{
			ActorLinks: "table.cast_list td.primary_photo a",
		},
		Actor: ProfileActor{
			Name:   "h1.header span.itemprop",
			Titles: "div.filmo-category-section b a",
		},
	}
}

// LoadProfile reads a site profile from a YAML file, filling unset selectors
// from the defaults.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	defaults := DefaultProfile()
	if profile.List.ActorLinks == "" {
		profile.List.ActorLinks = defaults.List.ActorLinks
	}
	if profile.Actor.Name == "" {
		profile.Actor.Name = defaults.Actor.Name
	}
	if profile.Actor.Titles == "" {
		profile.Actor.Titles = defaults.Actor.Titles
	}

	if err := validateProfile(&profile); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	return &profile, nil
}

func validateProfile(profile *Profile) error {
	if profile == nil {
		return fmt.Errorf("profile is nil")
	}

	requiredSelectors := map[string]string{
		"list actor_links selector": profile.List.ActorLinks,
		"actor name selector":       profile.Actor.Name,
		"actor titles selector":     profile.Actor.Titles,
	}

	for selectorName, selectorValue := range requiredSelectors {
		if selectorValue == "" {
			return fmt.Errorf("%s is required", selectorName)
		}
	}

	return nil
}
