package profile

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleDoc = `{
  "meta": {"name": "Ada Example", "slug": "ada", "template": "academic", "theme": {"primary": "#0d9488"}},
  "hero": {
    "title": "Ada Example",
    "subtitle": "Researcher",
    "bio": "Works on things.",
    "socials": {"github": "https://github.com/ada", "googleScholar": "https://scholar.example/ada"}
  },
  "status": {
    "currentRole": "Postdoc",
    "organization": "Example University",
    "location": {"city": "Boston", "region": "MA", "country": "USA"},
    "lastUpdated": "2025-01"
  },
  "sections": [
    {"type": "about", "title": "About", "content": {"paragraphs": ["One.", "Two."], "images": ["/img/a.jpg"]}},
    {"type": "papers", "title": "Papers", "content": {"items": [{"year": 2021, "authors": "A. Example", "title": "On Things", "journal": "J. Things", "url": "https://doi.example/1"}]}},
    {"type": "timeline", "title": "Timeline", "content": {"items": [{"title": "PhD", "institution": "EU", "date": "2018-2023", "side": "left"}]}},
    {"type": "custom", "title": "Misc", "content": {"items": ["Plays chess"]}},
    {"type": "about", "title": "More About", "content": {"paragraphs": ["Three."]}}
  ],
  "activityFeed": [{"date": "2024-05-01", "type": "publication", "title": "Paper out"}],
  "getInTouch": {"text": "Say hi.", "showEmail": true, "email": "ada@example.com"}
}`

func TestDecodeDocument(t *testing.T) {
	doc, err := Decode([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if doc.Meta.Template != TemplateAcademic {
		t.Errorf("Template = %q, want academic", doc.Meta.Template)
	}
	if doc.Meta.Theme == nil || doc.Meta.Theme.Primary != "#0d9488" {
		t.Errorf("Theme = %+v", doc.Meta.Theme)
	}
	if got := doc.Status.Location.String(); got != "Boston, USA" {
		t.Errorf("Location = %q", got)
	}
	if got := doc.GetInTouch.DisplayEmail(); got != "ada@example.com" {
		t.Errorf("DisplayEmail = %q", got)
	}

	want := Sections{
		AboutSection{Title: "About", Content: AboutContent{Paragraphs: []string{"One.", "Two."}, Images: []string{"/img/a.jpg"}}},
		PapersSection{Title: "Papers", Content: Items[Paper]{Items: []Paper{{Year: 2021, Authors: "A. Example", Title: "On Things", Journal: "J. Things", URL: "https://doi.example/1"}}}},
		TimelineSection{Title: "Timeline", Content: Items[TimelineEntry]{Items: []TimelineEntry{{Title: "PhD", Institution: "EU", Date: "2018-2023", Side: SideLeft}}}},
		CustomSection{Title: "Misc", Content: Items[string]{Items: []string{"Plays chess"}}},
		AboutSection{Title: "More About", Content: AboutContent{Paragraphs: []string{"Three."}}},
	}
	if diff := cmp.Diff(want, doc.Sections); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSectionEveryKind(t *testing.T) {
	content := map[SectionKind]string{
		KindAbout:          `{"paragraphs": ["p"]}`,
		KindPapers:         `{"items": [{"year": 2020, "authors": "a", "title": "t", "journal": "j", "url": "u"}]}`,
		KindTalks:          `{"items": [{"year": 2020, "description": "d"}]}`,
		KindPosters:        `{"items": [{"year": 2020, "description": "d"}]}`,
		KindAwards:         `{"items": [{"year": 2020, "name": "n", "institution": "i"}]}`,
		KindTimeline:       `{"items": [{"title": "t", "institution": "i", "side": "right"}]}`,
		KindEducation:      `{"items": [{"institution": "i", "degree": "d", "details": ["x"]}]}`,
		KindSkills:         `{"items": [{"category": "c", "items": ["go"]}]}`,
		KindCertifications: `{"items": [{"year": 2020, "name": "n", "institution": "i"}]}`,
		KindProjects:       `{"items": [{"title": "t", "description": "d"}]}`,
		KindGallery:        `{"items": ["/a.jpg"]}`,
		KindCustom:         `{"items": ["x"]}`,
	}
	for _, kind := range SectionKinds {
		raw := `{"type": "` + string(kind) + `", "title": "T", "content": ` + content[kind] + `}`
		sec, err := DecodeSection([]byte(raw))
		if err != nil {
			t.Fatalf("%s: DecodeSection: %v", kind, err)
		}
		if sec.Kind() != kind {
			t.Errorf("%s: Kind() = %q", kind, sec.Kind())
		}
		if sec.Heading() != "T" {
			t.Errorf("%s: Heading() = %q", kind, sec.Heading())
		}
		if _, unknown := sec.(UnknownSection); unknown {
			t.Errorf("%s: decoded as UnknownSection", kind)
		}
	}
}

func TestDecodeSectionUnknownKind(t *testing.T) {
	sec, err := DecodeSection([]byte(`{"type": "podcasts", "title": "Pods", "content": {"items": [1, 2]}}`))
	if err != nil {
		t.Fatalf("DecodeSection: %v", err)
	}
	u, ok := sec.(UnknownSection)
	if !ok {
		t.Fatalf("got %T, want UnknownSection", sec)
	}
	if u.Type != "podcasts" || u.Title != "Pods" {
		t.Errorf("unexpected unknown section %+v", u)
	}
	if u.Kind().Valid() {
		t.Error("unknown kind reported as valid")
	}
}

func TestDecodeSectionWrongShape(t *testing.T) {
	// papers content must be {"items": [...]}, not a list of strings
	_, err := Decode([]byte(`{"sections": [{"type": "papers", "title": "P", "content": {"items": ["nope"]}}]}`))
	if err == nil {
		t.Fatal("expected error for mismatched content shape")
	}
	if !strings.Contains(err.Error(), "sections[0]") {
		t.Errorf("error %q does not name the section index", err)
	}
}

func TestDecodeSectionMissingContent(t *testing.T) {
	sec, err := DecodeSection([]byte(`{"type": "custom", "title": "Empty"}`))
	if err != nil {
		t.Fatalf("DecodeSection: %v", err)
	}
	if got := sec.(CustomSection).Content.Items; len(got) != 0 {
		t.Errorf("Items = %v, want empty", got)
	}
}

func TestSectionsRoundTrip(t *testing.T) {
	doc, err := Decode([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	again, err := Decode(out)
	if err != nil {
		t.Fatalf("Decode again: %v", err)
	}
	if diff := cmp.Diff(doc, again); diff != "" {
		t.Errorf("round trip mismatch (-first +second):\n%s", diff)
	}
}

func TestFirstSection(t *testing.T) {
	doc, err := Decode([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	sec, ok := doc.FirstSection(KindAbout)
	if !ok {
		t.Fatal("expected an about section")
	}
	if sec.Heading() != "About" {
		t.Errorf("FirstSection(about) = %q, want the first one", sec.Heading())
	}
	if _, ok := doc.FirstSection(KindSkills); ok {
		t.Error("FirstSection(skills) found a section that does not exist")
	}
}

func TestTemplateValid(t *testing.T) {
	for _, tpl := range Templates {
		if !tpl.Valid() {
			t.Errorf("%q should be valid", tpl)
		}
	}
	for _, tpl := range []Template{"", "oil-painting", "Academic"} {
		if tpl.Valid() {
			t.Errorf("%q should not be valid", tpl)
		}
	}
}

func TestGetInTouchDisplayEmail(t *testing.T) {
	tests := []struct {
		in   GetInTouch
		want string
	}{
		{GetInTouch{ShowEmail: true, Email: "a@b.c"}, "a@b.c"},
		{GetInTouch{ShowEmail: false, Email: "a@b.c"}, ""},
		{GetInTouch{ShowEmail: true}, ""},
	}
	for _, tt := range tests {
		if got := tt.in.DisplayEmail(); got != tt.want {
			t.Errorf("DisplayEmail(%+v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
