package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SectionKind is the discriminator of the Section union.
type SectionKind string

const (
	KindAbout          SectionKind = "about"
	KindPapers         SectionKind = "papers"
	KindTalks          SectionKind = "talks"
	KindPosters        SectionKind = "posters"
	KindAwards         SectionKind = "awards"
	KindTimeline       SectionKind = "timeline"
	KindEducation      SectionKind = "education"
	KindSkills         SectionKind = "skills"
	KindCertifications SectionKind = "certifications"
	KindProjects       SectionKind = "projects"
	KindGallery        SectionKind = "gallery"
	KindCustom         SectionKind = "custom"
)

// SectionKinds lists every known kind in canonical order.
var SectionKinds = []SectionKind{
	KindAbout, KindPapers, KindTalks, KindPosters, KindAwards, KindTimeline,
	KindEducation, KindSkills, KindCertifications, KindProjects, KindGallery, KindCustom,
}

// Valid reports whether k is one of the known kinds.
func (k SectionKind) Valid() bool {
	for _, known := range SectionKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Section is one content block of a profile. The set of implementations is
// closed: every variant lives in this file.
type Section interface {
	Kind() SectionKind
	Heading() string
	section()
}

// Items is the {"items": [...]} content shape shared by most variants.
type Items[T any] struct {
	Items []T `json:"items"`
}

type AboutContent struct {
	Paragraphs []string `json:"paragraphs"`
	Images     []string `json:"images,omitempty"`
}

type Paper struct {
	Year    int    `json:"year"`
	Authors string `json:"authors"`
	Title   string `json:"title"`
	Journal string `json:"journal"`
	URL     string `json:"url"`
}

// Talk is a dated one-line entry.
type Talk struct {
	Year        int    `json:"year"`
	Description string `json:"description"`
}

type Poster struct {
	Year        int    `json:"year"`
	Description string `json:"description"`
}

type Award struct {
	Year        int    `json:"year"`
	Name        string `json:"name"`
	Institution string `json:"institution"`
}

type Certification struct {
	Year        int    `json:"year"`
	Name        string `json:"name"`
	Institution string `json:"institution"`
}

// Side places a timeline entry on one side of the axis.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

type TimelineEntry struct {
	Title       string `json:"title"`
	Institution string `json:"institution"`
	Date        string `json:"date,omitempty"`
	Side        Side   `json:"side"`
}

type Education struct {
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Details     []string `json:"details"`
	URL         string   `json:"url,omitempty"`
}

type SkillCategory struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url,omitempty"`
	Image       string   `json:"image,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type AboutSection struct {
	Title   string
	Content AboutContent
}

type PapersSection struct {
	Title   string
	Content Items[Paper]
}

type TalksSection struct {
	Title   string
	Content Items[Talk]
}

type PostersSection struct {
	Title   string
	Content Items[Poster]
}

type AwardsSection struct {
	Title   string
	Content Items[Award]
}

type TimelineSection struct {
	Title   string
	Content Items[TimelineEntry]
}

type EducationSection struct {
	Title   string
	Content Items[Education]
}

type SkillsSection struct {
	Title   string
	Content Items[SkillCategory]
}

type CertificationsSection struct {
	Title   string
	Content Items[Certification]
}

type ProjectsSection struct {
	Title   string
	Content Items[Project]
}

type GallerySection struct {
	Title   string
	Content Items[string]
}

type CustomSection struct {
	Title   string
	Content Items[string]
}

// UnknownSection holds a section whose tag is not a known kind. Its content
// is kept raw and is never rendered.
type UnknownSection struct {
	Type    SectionKind
	Title   string
	Content json.RawMessage
}

func (AboutSection) Kind() SectionKind          { return KindAbout }
func (PapersSection) Kind() SectionKind         { return KindPapers }
func (TalksSection) Kind() SectionKind          { return KindTalks }
func (PostersSection) Kind() SectionKind        { return KindPosters }
func (AwardsSection) Kind() SectionKind         { return KindAwards }
func (TimelineSection) Kind() SectionKind       { return KindTimeline }
func (EducationSection) Kind() SectionKind      { return KindEducation }
func (SkillsSection) Kind() SectionKind         { return KindSkills }
func (CertificationsSection) Kind() SectionKind { return KindCertifications }
func (ProjectsSection) Kind() SectionKind       { return KindProjects }
func (GallerySection) Kind() SectionKind        { return KindGallery }
func (CustomSection) Kind() SectionKind         { return KindCustom }
func (s UnknownSection) Kind() SectionKind      { return s.Type }

func (s AboutSection) Heading() string          { return s.Title }
func (s PapersSection) Heading() string         { return s.Title }
func (s TalksSection) Heading() string          { return s.Title }
func (s PostersSection) Heading() string        { return s.Title }
func (s AwardsSection) Heading() string         { return s.Title }
func (s TimelineSection) Heading() string       { return s.Title }
func (s EducationSection) Heading() string      { return s.Title }
func (s SkillsSection) Heading() string         { return s.Title }
func (s CertificationsSection) Heading() string { return s.Title }
func (s ProjectsSection) Heading() string       { return s.Title }
func (s GallerySection) Heading() string        { return s.Title }
func (s CustomSection) Heading() string         { return s.Title }
func (s UnknownSection) Heading() string        { return s.Title }

func (AboutSection) section()          {}
func (PapersSection) section()         {}
func (TalksSection) section()          {}
func (PostersSection) section()        {}
func (AwardsSection) section()         {}
func (TimelineSection) section()       {}
func (EducationSection) section()      {}
func (SkillsSection) section()         {}
func (CertificationsSection) section() {}
func (ProjectsSection) section()       {}
func (GallerySection) section()        {}
func (CustomSection) section()         {}
func (UnknownSection) section()        {}

// Sections is the ordered section list of a document. It decodes the
// "type"-tagged JSON objects into their variant structs.
type Sections []Section

type sectionJSON struct {
	Type    SectionKind     `json:"type"`
	Title   string          `json:"title"`
	Content json.RawMessage `json:"content,omitempty"`
}

func (s *Sections) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = nil
		return nil
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Sections, 0, len(raws))
	for i, raw := range raws {
		sec, err := DecodeSection(raw)
		if err != nil {
			return fmt.Errorf("sections[%d]: %w", i, err)
		}
		out = append(out, sec)
	}
	*s = out
	return nil
}

func (s Sections) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("null"), nil
	}
	out := make([]sectionJSON, 0, len(s))
	for _, sec := range s {
		content, err := sectionContent(sec)
		if err != nil {
			return nil, err
		}
		out = append(out, sectionJSON{Type: sec.Kind(), Title: sec.Heading(), Content: content})
	}
	return json.Marshal(out)
}

// DecodeSection decodes one tagged section object.
func DecodeSection(raw []byte) (Section, error) {
	var head sectionJSON
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case KindAbout:
		return decodeVariant(head, func(title string, c AboutContent) Section { return AboutSection{title, c} })
	case KindPapers:
		return decodeVariant(head, func(title string, c Items[Paper]) Section { return PapersSection{title, c} })
	case KindTalks:
		return decodeVariant(head, func(title string, c Items[Talk]) Section { return TalksSection{title, c} })
	case KindPosters:
		return decodeVariant(head, func(title string, c Items[Poster]) Section { return PostersSection{title, c} })
	case KindAwards:
		return decodeVariant(head, func(title string, c Items[Award]) Section { return AwardsSection{title, c} })
	case KindTimeline:
		return decodeVariant(head, func(title string, c Items[TimelineEntry]) Section { return TimelineSection{title, c} })
	case KindEducation:
		return decodeVariant(head, func(title string, c Items[Education]) Section { return EducationSection{title, c} })
	case KindSkills:
		return decodeVariant(head, func(title string, c Items[SkillCategory]) Section { return SkillsSection{title, c} })
	case KindCertifications:
		return decodeVariant(head, func(title string, c Items[Certification]) Section { return CertificationsSection{title, c} })
	case KindProjects:
		return decodeVariant(head, func(title string, c Items[Project]) Section { return ProjectsSection{title, c} })
	case KindGallery:
		return decodeVariant(head, func(title string, c Items[string]) Section { return GallerySection{title, c} })
	case KindCustom:
		return decodeVariant(head, func(title string, c Items[string]) Section { return CustomSection{title, c} })
	default:
		return UnknownSection{Type: head.Type, Title: head.Title, Content: head.Content}, nil
	}
}

func decodeVariant[C any](head sectionJSON, build func(title string, content C) Section) (Section, error) {
	var content C
	if err := decodeContent(head, &content); err != nil {
		return nil, err
	}
	return build(head.Title, content), nil
}

func decodeContent(head sectionJSON, v any) error {
	if len(head.Content) == 0 || bytes.Equal(head.Content, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(head.Content, v); err != nil {
		return fmt.Errorf("%s content: %w", head.Type, err)
	}
	return nil
}

func sectionContent(sec Section) (json.RawMessage, error) {
	var v any
	switch s := sec.(type) {
	case AboutSection:
		v = s.Content
	case PapersSection:
		v = s.Content
	case TalksSection:
		v = s.Content
	case PostersSection:
		v = s.Content
	case AwardsSection:
		v = s.Content
	case TimelineSection:
		v = s.Content
	case EducationSection:
		v = s.Content
	case SkillsSection:
		v = s.Content
	case CertificationsSection:
		v = s.Content
	case ProjectsSection:
		v = s.Content
	case GallerySection:
		v = s.Content
	case CustomSection:
		v = s.Content
	case UnknownSection:
		return s.Content, nil
	default:
		return nil, fmt.Errorf("profile: unhandled section type %T", sec)
	}
	return json.Marshal(v)
}
