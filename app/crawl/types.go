package crawl

// Record is one extracted (actor, title) credit. Records are written to the
// sink in the order extraction produces them; two actors sharing a credit
// produce two records, one per actor.
type Record struct {
	Actor string
	Title string
}

// Profile names the selector paths used to pull fields out of the two page
// kinds the crawl visits. Profiles are loaded from YAML files; the zero
// selectors are filled from DefaultProfile.
type Profile struct {
	List  ProfileList  `yaml:"list"`
	Actor ProfileActor `yaml:"actor"`
}

type ProfileList struct {
	ActorLinks string `yaml:"actor_links"`
}

type ProfileActor struct {
	Name   string `yaml:"name"`
	Titles string `yaml:"titles"`
}

// RecordSink receives extracted records. Implementations must be safe for
// concurrent use by multiple fetch workers.
type RecordSink interface {
	Write(record Record) error
	Count() int
}
