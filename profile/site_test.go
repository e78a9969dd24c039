package profile

import "testing"

func TestDecodeSiteNavDefaults(t *testing.T) {
	cfg, err := DecodeSite([]byte(`{"familyName": "Example", "profiles": [{"slug": "ada", "name": "Ada", "shortTitle": "Researcher", "location": {"city": "Boston", "country": "USA"}, "template": "academic"}]}`))
	if err != nil {
		t.Fatalf("DecodeSite: %v", err)
	}
	if len(cfg.Profiles) != 1 || cfg.Profiles[0].Slug != "ada" {
		t.Fatalf("Profiles = %+v", cfg.Profiles)
	}
	if !cfg.ShowFeed() || !cfg.ShowContact() || !cfg.ShowAbout() {
		t.Error("nav links should default to shown")
	}
}

func TestDecodeSiteNavFlags(t *testing.T) {
	cfg, err := DecodeSite([]byte(`{"familyName": "Example", "profiles": [], "nav": {"showFeed": false, "showAbout": true}}`))
	if err != nil {
		t.Fatalf("DecodeSite: %v", err)
	}
	if cfg.ShowFeed() {
		t.Error("ShowFeed should be false")
	}
	if !cfg.ShowAbout() {
		t.Error("ShowAbout should be true")
	}
	if !cfg.ShowContact() {
		t.Error("unset ShowContact should be true")
	}
}

func TestAggregateFeed(t *testing.T) {
	a := &Document{
		Meta: Meta{Slug: "a", Name: "A"},
		ActivityFeed: []FeedItem{
			{Date: "2024-01-01", Type: FeedCareer, Title: "a-old"},
			{Date: "2024-06-01", Type: FeedAward, Title: "a-new"},
		},
	}
	b := &Document{
		Meta:         Meta{Slug: "b", Name: "B"},
		Hero:         Hero{Avatar: "/b.jpg"},
		ActivityFeed: []FeedItem{{Date: "2024-03-01", Type: FeedGeneral, Title: "b-mid"}},
	}
	items := AggregateFeed(a, nil, b)
	var titles []string
	for _, it := range items {
		titles = append(titles, it.Title)
	}
	want := []string{"a-new", "b-mid", "a-old"}
	if len(titles) != len(want) {
		t.Fatalf("titles = %v, want %v", titles, want)
	}
	for i := range want {
		if titles[i] != want[i] {
			t.Fatalf("titles = %v, want %v", titles, want)
		}
	}
	if items[1].ProfileSlug != "b" || items[1].ProfileAvatar != "/b.jpg" {
		t.Errorf("aggregated item lost its profile: %+v", items[1])
	}
}

func TestFeedTypeValid(t *testing.T) {
	if !FeedMilestone.Valid() {
		t.Error("milestone should be valid")
	}
	if FeedType("party").Valid() {
		t.Error("party should not be valid")
	}
}
