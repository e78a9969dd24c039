package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/folio"
	"github.com/eringen/folio/profile"
	"github.com/eringen/folio/scaffold"
)

func newNewCmd() *cobra.Command {
	var tpl string
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a starter profile document",
		Long: `Create public/data/profiles/<slug>.json for the named person. When
public/data/site.json does not exist yet it is created with this profile.`,
		Example: `  folio new "Tra Ngo"
  folio new "Amy Ngo" --template business`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(".", args[0], profile.Template(tpl), time.Now(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&tpl, "template", "t", string(profile.TemplateAcademic),
		"page template: academic, business, creative or minimal")
	return cmd
}

func runNew(root, name string, tpl profile.Template, now time.Time, out io.Writer) error {
	name = strings.TrimSpace(name)
	slug := folio.Slugify(name)
	if slug == "" {
		return fmt.Errorf("cannot derive a slug from %q", name)
	}
	if !tpl.Valid() {
		return fmt.Errorf("unknown template %q", tpl)
	}

	data := scaffold.Data{
		Name:     name,
		Slug:     slug,
		Family:   familyName(name),
		Template: tpl,
		Date:     now.Format(time.DateOnly),
	}

	profilePath := filepath.Join(root, "public", "data", "profiles", slug+".json")
	if _, err := os.Stat(profilePath); err == nil {
		return fmt.Errorf("%s already exists", profilePath)
	}
	if err := writeScaffold(profilePath, "profile.json", data); err != nil {
		return err
	}
	fmt.Fprintf(out, "  created %s\n", profilePath)

	sitePath := filepath.Join(root, "public", "data", "site.json")
	if _, err := os.Stat(sitePath); os.IsNotExist(err) {
		if err := writeScaffold(sitePath, "site.json", data); err != nil {
			return err
		}
		fmt.Fprintf(out, "  created %s\n", sitePath)
	} else {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Add the profile to %s:\n", sitePath)
		fmt.Fprintf(out, "  {\"slug\": %q, \"name\": %q, \"template\": %q}\n", slug, name, tpl)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Edit %s, then run 'folio validate'.\n", profilePath)
	return nil
}

func writeScaffold(path, name string, data scaffold.Data) error {
	var buf bytes.Buffer
	if err := scaffold.Execute(&buf, name, data); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return nil
}

// familyName guesses a site title from a person's name: its last word.
func familyName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[len(fields)-1]
}
