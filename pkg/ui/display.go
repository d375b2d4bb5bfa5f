package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/skillpack/pkg/commands"
)

// Display writes command results to a writer in one fixed format.
type Display struct {
	w      io.Writer
	format Format
}

// New resolves FormatAuto against the writer and returns a Display. A
// non-file writer cannot be probed and falls back to plain.
func New(w io.Writer, format Format) *Display {
	if format == FormatAuto {
		if f, ok := w.(*os.File); ok {
			format = DetectFormat(f)
		} else {
			format = FormatPlain
		}
	}
	return &Display{w: w, format: format}
}

// Format returns the resolved output format.
func (d *Display) Format() Format {
	return d.format
}

func (d *Display) renderJSON(v any) error {
	enc := json.NewEncoder(d.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (d *Display) title(text string) {
	fmt.Fprintln(d.w, TitleStyle.Render(text))
	fmt.Fprintln(d.w)
}

func (d *Display) table(data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(d.w, out)
	return nil
}

// SkillList renders the skills command result.
func (d *Display) SkillList(result *commands.ListSkillsResult) error {
	switch d.format {
	case FormatJSON:
		return d.renderJSON(result)
	case FormatPlain:
		for _, s := range result.Skills {
			if s.Bundled {
				fmt.Fprintf(d.w, "%s\tbundled\n", s.ID)
			} else {
				fmt.Fprintln(d.w, s.ID)
			}
		}
		return nil
	}

	if len(result.Skills) == 0 {
		fmt.Fprintln(d.w, "No skills found.")
		return nil
	}
	d.title(fmt.Sprintf("Skills (%d)", len(result.Skills)))
	data := pterm.TableData{{"ID", "SOURCE"}}
	for _, s := range result.Skills {
		source := "repo"
		if s.Bundled {
			source = MutedStyle.Render("bundled")
		}
		data = append(data, []string{s.ID, source})
	}
	return d.table(data)
}

// PackList renders the packs command result.
func (d *Display) PackList(result *commands.ListPacksResult) error {
	switch d.format {
	case FormatJSON:
		return d.renderJSON(result)
	case FormatPlain:
		for _, p := range result.Packs {
			if p.Bundled {
				fmt.Fprintf(d.w, "%s\t%s\tbundled\n", p.Name, p.Path)
			} else {
				fmt.Fprintf(d.w, "%s\t%s\n", p.Name, p.Path)
			}
		}
		return nil
	}

	if len(result.Packs) == 0 {
		fmt.Fprintln(d.w, "No packs found.")
		return nil
	}
	d.title(fmt.Sprintf("Packs (%d)", len(result.Packs)))
	data := pterm.TableData{{"NAME", "MANIFEST", "SOURCE"}}
	for _, p := range result.Packs {
		source := "repo"
		if p.Bundled {
			source = MutedStyle.Render("bundled")
		}
		data = append(data, []string{p.Name, PathStyle.Render(p.Path), source})
	}
	return d.table(data)
}

// PackDetail renders the show command result.
func (d *Display) PackDetail(result *commands.ShowPackResult) error {
	switch d.format {
	case FormatJSON:
		return d.renderJSON(result)
	case FormatPlain:
		fmt.Fprintf(d.w, "pack\t%s\n", result.Name)
		fmt.Fprintf(d.w, "manifest\t%s\n", result.PackFile)
		fmt.Fprintf(d.w, "naming\tprefix=%s sep=%s flatten=%t\n", result.Prefix, result.Sep, result.Flatten)
		for _, imp := range result.Imports {
			fmt.Fprintf(d.w, "import\t%s\t%s\t%s\n", imp.Repo, imp.Ref, imp.Commit)
		}
		for _, s := range result.Skills {
			fmt.Fprintf(d.w, "skill\t%s\t%s\t%s\n", s.InstallName, s.ID, s.Source)
		}
		return nil
	}

	d.title(fmt.Sprintf("Pack %s", result.Name))
	fmt.Fprintf(d.w, "%s %s\n", LabelStyle.Render("Manifest:"), PathStyle.Render(result.PackFile))
	fmt.Fprintf(d.w, "%s prefix=%s sep=%s flatten=%t\n\n",
		LabelStyle.Render("Naming:"), result.Prefix, result.Sep, result.Flatten)

	if len(result.Imports) > 0 {
		data := pterm.TableData{{"REPO", "REF", "COMMIT", "SKILLS"}}
		for _, imp := range result.Imports {
			commit := imp.Commit
			if len(commit) > 12 {
				commit = commit[:12]
			}
			data = append(data, []string{imp.Repo, imp.Ref, commit, fmt.Sprintf("%d", imp.Skills)})
		}
		if err := d.table(data); err != nil {
			return err
		}
	}

	data := pterm.TableData{{"INSTALL NAME", "SKILL", "SOURCE"}}
	for _, s := range result.Skills {
		source := s.Source
		if s.Repo != "" {
			source = fmt.Sprintf("%s (%s)", s.Source, s.Repo)
		}
		data = append(data, []string{s.InstallName, s.ID, source})
	}
	return d.table(data)
}

// InstallReport renders the install command result.
func (d *Display) InstallReport(result *commands.InstallResult) error {
	switch d.format {
	case FormatJSON:
		return d.renderJSON(result)
	case FormatPlain:
		for _, s := range result.Sinks {
			fmt.Fprintf(d.w, "%s\t%s\t+%d\t~%d\t-%d\n", s.Sink, s.Path, s.Added, s.Updated, s.Removed)
		}
		return nil
	}

	d.title(fmt.Sprintf("Installed %s", result.Pack))
	for _, s := range result.Sinks {
		counts := fmt.Sprintf("%s %s %s",
			SuccessStyle.Render(fmt.Sprintf("+%d", s.Added)),
			LabelStyle.Render(fmt.Sprintf("~%d", s.Updated)),
			WarningStyle.Render(fmt.Sprintf("-%d", s.Removed)))
		fmt.Fprintf(d.w, "  %s %s  %s (%d skills)\n",
			s.Sink, PathStyle.Render(s.Path), counts, s.Skills)
	}
	return nil
}

// UninstallReport renders the uninstall command result.
func (d *Display) UninstallReport(result *commands.UninstallResult) error {
	switch d.format {
	case FormatJSON:
		return d.renderJSON(result)
	case FormatPlain:
		for _, s := range result.Sinks {
			fmt.Fprintf(d.w, "%s\t%s\t-%d\n", s.Sink, s.Path, s.Removed)
		}
		return nil
	}

	d.title(fmt.Sprintf("Uninstalled %s", result.Pack))
	for _, s := range result.Sinks {
		fmt.Fprintf(d.w, "  %s %s  %s\n",
			s.Sink, PathStyle.Render(s.Path),
			WarningStyle.Render(fmt.Sprintf("-%d", s.Removed)))
	}
	return nil
}

// InstalledReport renders the installed command result.
func (d *Display) InstalledReport(result *commands.InstalledResult) error {
	switch d.format {
	case FormatJSON:
		return d.renderJSON(result)
	case FormatPlain:
		for _, rec := range result.Installs {
			fmt.Fprintf(d.w, "%s\t%s\t%s\t%d\t%s\n",
				rec.Pack, rec.Sink, rec.SinkPath, rec.Skills, rec.InstalledAt)
		}
		return nil
	}

	if len(result.Installs) == 0 {
		fmt.Fprintln(d.w, "Nothing installed.")
		return nil
	}
	d.title(fmt.Sprintf("Installed packs (%d)", len(result.Installs)))
	data := pterm.TableData{{"PACK", "SINK", "PATH", "SKILLS", "WHEN"}}
	for _, rec := range result.Installs {
		data = append(data, []string{
			rec.Pack, rec.Sink, PathStyle.Render(rec.SinkPath),
			fmt.Sprintf("%d", rec.Skills), rec.InstalledAt,
		})
	}
	return d.table(data)
}

// ConfigReport renders the config command result.
func (d *Display) ConfigReport(result *commands.ConfigResult) error {
	switch d.format {
	case FormatJSON:
		return d.renderJSON(result)
	case FormatPlain:
		for _, name := range sortedKeys(result.Effective) {
			fmt.Fprintf(d.w, "%s\t%s\n", name, result.Effective[name])
		}
		return nil
	}

	d.title("Sinks")
	fmt.Fprintf(d.w, "%s %s\n\n", LabelStyle.Render("Config file:"), PathStyle.Render(result.ConfigFile))
	data := pterm.TableData{{"SINK", "PATH", "LAYER"}}
	for _, name := range sortedKeys(result.Effective) {
		layer := "default"
		if _, ok := result.RepoSinks[name]; ok {
			layer = "repo"
		} else if _, ok := result.Overrides[name]; ok {
			layer = "user"
		}
		data = append(data, []string{name, PathStyle.Render(result.Effective[name]), layer})
	}
	return d.table(data)
}

// Preview renders a skill's SKILL.md, through glamour when pretty.
func (d *Display) Preview(result *commands.PreviewResult) error {
	switch d.format {
	case FormatJSON:
		return d.renderJSON(result)
	case FormatPlain:
		fmt.Fprint(d.w, result.Markdown)
		if !strings.HasSuffix(result.Markdown, "\n") {
			fmt.Fprintln(d.w)
		}
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Fprint(d.w, result.Markdown)
		return nil
	}
	out, err := renderer.Render(result.Markdown)
	if err != nil {
		fmt.Fprint(d.w, result.Markdown)
		return nil
	}
	fmt.Fprint(d.w, out)
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
