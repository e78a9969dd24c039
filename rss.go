package folio

import (
	"context"
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/folio/profile"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string  `xml:"title"`
	Link        string  `xml:"link"`
	Description string  `xml:"description,omitempty"`
	Category    string  `xml:"category,omitempty"`
	PubDate     string  `xml:"pubDate,omitempty"`
	GUID        rssGUID `xml:"guid"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// feedFetchLimit bounds concurrent profile fetches while building the feed.
const feedFetchLimit = 4

// collectProfiles fetches every profile listed in site. Profiles that fail
// to load are logged and left out.
func (a *App) collectProfiles(ctx context.Context, site *profile.SiteConfig) []*profile.Document {
	docs := make([]*profile.Document, len(site.Profiles))
	var g errgroup.Group
	g.SetLimit(feedFetchLimit)
	for i, p := range site.Profiles {
		g.Go(func() error {
			doc, err := a.Data.FetchProfile(ctx, p.Slug)
			if err != nil {
				a.Log.Warn("feed: skipping profile", zap.String("slug", p.Slug), zap.Error(err))
				return nil
			}
			docs[i] = doc
			return nil
		})
	}
	_ = g.Wait()
	return docs
}

// feedDateLayouts are the date forms accepted in activity feeds.
var feedDateLayouts = []string{"2006-01-02", "2006-01", "2006"}

func feedPubDate(date string) string {
	for _, layout := range feedDateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format(time.RFC1123Z)
		}
	}
	return ""
}

func (a *App) renderRSS(c echo.Context, docs []*profile.Document) error {
	base := a.Config.URL
	feed := profile.AggregateFeed(docs...)
	items := make([]rssItem, 0, len(feed))
	for _, it := range feed {
		profileURL := BuildURL(base, "profiles", it.ProfileSlug)
		link := profileURL
		if it.URL != "" {
			link = AbsoluteURL(profileURL, it.URL)
		}
		items = append(items, rssItem{
			Title:       it.ProfileName + ": " + it.Title,
			Link:        link,
			Description: it.Description,
			Category:    string(it.Type),
			PubDate:     feedPubDate(it.Date),
			GUID:        rssGUID{Value: profileURL + "#" + Slugify(it.Date+" "+it.Title)},
		})
	}
	title := a.Config.Name
	if site, err := a.Site.Get(c.Request().Context()); err == nil && site.FamilyName != "" {
		title = site.FamilyName
	}
	out := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       title,
			Link:        BuildURL(base),
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(out)
}
