package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arthur-debert/skillpack/pkg/commands"
	"github.com/arthur-debert/skillpack/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    ui.Format
		wantErr bool
	}{
		{input: "", want: ui.FormatAuto},
		{input: "auto", want: ui.FormatAuto},
		{input: "pretty", want: ui.FormatPretty},
		{input: "plain", want: ui.FormatPlain},
		{input: "text", want: ui.FormatPlain},
		{input: "JSON", want: ui.FormatJSON},
		{input: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewResolvesAutoToPlainForBuffers(t *testing.T) {
	d := ui.New(&bytes.Buffer{}, ui.FormatAuto)
	assert.Equal(t, ui.FormatPlain, d.Format())
}

func TestSkillListPlain(t *testing.T) {
	var buf bytes.Buffer
	d := ui.New(&buf, ui.FormatPlain)

	err := d.SkillList(&commands.ListSkillsResult{Skills: []commands.SkillInfo{
		{ID: "coding/go", Dir: "/repo/skills/coding/go"},
		{ID: "starter/hello-skill", Dir: "/x", Bundled: true},
	}})
	require.NoError(t, err)

	assert.Equal(t, "coding/go\nstarter/hello-skill\tbundled\n", buf.String())
}

func TestSkillListJSON(t *testing.T) {
	var buf bytes.Buffer
	d := ui.New(&buf, ui.FormatJSON)

	err := d.SkillList(&commands.ListSkillsResult{Skills: []commands.SkillInfo{
		{ID: "coding/go", Dir: "/repo/skills/coding/go"},
	}})
	require.NoError(t, err)

	var decoded commands.ListSkillsResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Skills, 1)
	assert.Equal(t, "coding/go", decoded.Skills[0].ID)
}

func TestPackListPretty(t *testing.T) {
	var buf bytes.Buffer
	d := ui.New(&buf, ui.FormatPretty)

	err := d.PackList(&commands.ListPacksResult{Packs: []commands.PackInfo{
		{Name: "demo", Path: "packs/demo.yaml"},
		{Name: "starter", Path: "packs/starter.yaml", Bundled: true},
	}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "demo")
	assert.Contains(t, out, "starter")
	assert.Contains(t, out, "packs/demo.yaml")
}

func TestInstallReportPlain(t *testing.T) {
	var buf bytes.Buffer
	d := ui.New(&buf, ui.FormatPlain)

	err := d.InstallReport(&commands.InstallResult{
		Pack: "demo",
		Sinks: []commands.SinkInstallResult{
			{Sink: "claude", Path: "/home/u/.claude/skills", Skills: 3, Added: 2, Updated: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "claude\t/home/u/.claude/skills\t+2\t~1\t-0\n", buf.String())
}

func TestPackDetailPlain(t *testing.T) {
	var buf bytes.Buffer
	d := ui.New(&buf, ui.FormatPlain)

	err := d.PackDetail(&commands.ShowPackResult{
		Name:     "demo",
		PackFile: "/repo/packs/demo.yaml",
		Prefix:   "demo",
		Sep:      "__",
		Skills: []commands.ResolvedSkillInfo{
			{ID: "a/b", InstallName: "demo__a/b", Source: "local"},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "pack\tdemo\n")
	assert.Contains(t, out, "skill\tdemo__a/b\ta/b\tlocal\n")
}

func TestConfigReportPlainSorted(t *testing.T) {
	var buf bytes.Buffer
	d := ui.New(&buf, ui.FormatPlain)

	err := d.ConfigReport(&commands.ConfigResult{
		Effective: map[string]string{
			"codex":  "/c",
			"claude": "/a",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "claude\t/a\ncodex\t/c\n", buf.String())
}

func TestPreviewPlainPassesMarkdownThrough(t *testing.T) {
	var buf bytes.Buffer
	d := ui.New(&buf, ui.FormatPlain)

	err := d.Preview(&commands.PreviewResult{ID: "a", Markdown: "# Title\nbody"})
	require.NoError(t, err)
	assert.Equal(t, "# Title\nbody\n", buf.String())
}
