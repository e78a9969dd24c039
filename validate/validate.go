// Package validate performs the offline structural checks run before
// deployment: presence of required keys and membership of enum fields in the
// profile documents and site.json. It never checks value types beyond that.
package validate

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/eringen/folio/profile"
)

const invalidJSON = "Invalid JSON: could not parse file"

var (
	templateNames = names(profile.Templates)
	sectionNames  = names(profile.SectionKinds)
	feedNames     = names(profile.FeedTypes)
)

func names[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

// object is a decoded JSON object. A JSON array or other non-object value in
// a position that expects an object becomes an empty object, so every key
// reads as missing.
type object map[string]any

func asObject(v any) (object, bool) {
	switch v := v.(type) {
	case map[string]any:
		return v, true
	case []any:
		return object{}, true
	}
	return nil, false
}

func (o object) has(key string) bool {
	_, ok := o[key]
	return ok
}

func parse(data []byte) (object, bool) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, false
	}
	if o, ok := asObject(v); ok {
		return o, true
	}
	return object{}, true
}

// Profile returns the findings for one profile document, in check order.
func Profile(data []byte) []string {
	doc, ok := parse(data)
	if !ok {
		return []string{invalidJSON}
	}
	var errs []string
	for _, field := range []string{"meta", "hero", "status", "sections", "getInTouch"} {
		if !doc.has(field) {
			errs = append(errs, fmt.Sprintf("Missing required field: %q", field))
		}
	}

	if meta, ok := asObject(doc["meta"]); ok {
		for _, field := range []string{"name", "slug", "template"} {
			if !meta.has(field) {
				errs = append(errs, "Missing meta."+field)
			}
		}
		if tpl := meta["template"]; truthy(tpl) && !oneOf(tpl, templateNames) {
			errs = append(errs, fmt.Sprintf("Invalid meta.template: \"%s\". Must be one of: %s",
				jsString(tpl), strings.Join(templateNames, ", ")))
		}
	}

	if hero, ok := asObject(doc["hero"]); ok {
		if !hero.has("title") {
			errs = append(errs, "Missing hero.title")
		}
		if !hero.has("bio") {
			errs = append(errs, "Missing hero.bio")
		}
	}

	if status, ok := asObject(doc["status"]); ok {
		for _, field := range []string{"currentRole", "organization", "location", "lastUpdated"} {
			if !status.has(field) {
				errs = append(errs, "Missing status."+field)
			}
		}
		if loc, ok := asObject(status["location"]); ok {
			if !loc.has("city") {
				errs = append(errs, "Missing status.location.city")
			}
			if !loc.has("country") {
				errs = append(errs, "Missing status.location.country")
			}
		}
	}

	if sections, ok := doc["sections"].([]any); ok {
		for i, raw := range sections {
			sec := entry(raw)
			prefix := fmt.Sprintf("sections[%d]: ", i)
			if !sec.has("type") {
				errs = append(errs, prefix+`missing "type"`)
			} else if !oneOf(sec["type"], sectionNames) {
				errs = append(errs, prefix+fmt.Sprintf("invalid type \"%s\". Must be one of: %s",
					jsString(sec["type"]), strings.Join(sectionNames, ", ")))
			}
			if !sec.has("title") {
				errs = append(errs, prefix+`missing "title"`)
			}
			if !sec.has("content") {
				errs = append(errs, prefix+`missing "content"`)
			}
		}
	}

	if feed, ok := doc["activityFeed"].([]any); ok {
		for i, raw := range feed {
			item := entry(raw)
			prefix := fmt.Sprintf("activityFeed[%d]: ", i)
			if !item.has("date") {
				errs = append(errs, prefix+`missing "date"`)
			}
			if !item.has("type") {
				errs = append(errs, prefix+`missing "type"`)
			} else if !oneOf(item["type"], feedNames) {
				errs = append(errs, prefix+fmt.Sprintf("invalid type \"%s\"", jsString(item["type"])))
			}
			if !item.has("title") {
				errs = append(errs, prefix+`missing "title"`)
			}
		}
	}
	return errs
}

// Site returns the findings for site.json.
func Site(data []byte) []string {
	doc, ok := parse(data)
	if !ok {
		return []string{invalidJSON}
	}
	var errs []string
	if !doc.has("familyName") {
		errs = append(errs, `Missing "familyName"`)
	}
	if !doc.has("profiles") {
		return append(errs, `Missing "profiles" array`)
	}
	profiles, ok := doc["profiles"].([]any)
	if !ok {
		return errs
	}
	for i, raw := range profiles {
		p := entry(raw)
		for _, field := range []string{"slug", "name", "template"} {
			if !p.has(field) {
				errs = append(errs, fmt.Sprintf("profiles[%d]: missing %q", i, field))
			}
		}
		if tpl := p["template"]; truthy(tpl) && !oneOf(tpl, templateNames) {
			errs = append(errs, fmt.Sprintf("profiles[%d]: invalid template \"%s\"", i, jsString(tpl)))
		}
	}
	return errs
}

// entry is an array element that should be an object. Anything else is
// treated as an object with no keys.
func entry(v any) object {
	if o, ok := asObject(v); ok {
		return o
	}
	return object{}
}

func oneOf(v any, allowed []string) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0 && !math.IsNaN(v)
	}
	return true
}

// jsString formats a decoded JSON value the way it reads when interpolated
// into a message: arrays comma-joined, objects as "[object Object]".
func jsString(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			if e != nil {
				parts[i] = jsString(e)
			}
		}
		return strings.Join(parts, ",")
	}
	return "[object Object]"
}

// FileResult holds the findings for one file.
type FileResult struct {
	File   string
	Errors []string
}

// Report aggregates the findings of a full scan. Only files with findings
// are listed.
type Report struct {
	Results []FileResult
}

// OK reports whether the scan found nothing.
func (r Report) OK() bool {
	return len(r.Results) == 0
}

func (r *Report) add(file string, errs []string) {
	if len(errs) > 0 {
		r.Results = append(r.Results, FileResult{File: file, Errors: errs})
	}
}

// Run scans public/data/site.json and every *.json file directly inside
// public/data/profiles under root.
func Run(root string) Report {
	var r Report

	sitePath := filepath.Join(root, "public", "data", "site.json")
	const siteLabel = "public/data/site.json"
	if data, err := os.ReadFile(sitePath); err == nil {
		r.add(siteLabel, Site(data))
	} else if os.IsNotExist(err) {
		r.add(siteLabel, []string{"File not found"})
	} else {
		r.add(siteLabel, []string{"Could not read file: " + err.Error()})
	}

	profilesDir := filepath.Join(root, "public", "data", "profiles")
	entries, err := os.ReadDir(profilesDir)
	if err != nil {
		r.add("public/data/profiles/", []string{"Directory not found"})
		return r
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		r.add(profilesDir, []string{"No profile JSON files found"})
	}
	for _, name := range files {
		label := "public/data/profiles/" + name
		data, err := os.ReadFile(filepath.Join(profilesDir, name))
		if err != nil {
			r.add(label, []string{"Could not read file: " + err.Error()})
			continue
		}
		r.add(label, Profile(data))
	}
	return r
}

// Write prints the report: findings grouped by file on errOut, or the
// success line on out.
func (r Report) Write(out, errOut io.Writer) {
	if r.OK() {
		fmt.Fprintln(out, "All profiles and site config are valid!")
		return
	}
	fmt.Fprint(errOut, "\nValidation FAILED:\n\n")
	for _, res := range r.Results {
		fmt.Fprintf(errOut, "  %s:\n", res.File)
		for _, e := range res.Errors {
			fmt.Fprintf(errOut, "    - %s\n", e)
		}
		fmt.Fprintln(errOut)
	}
}
