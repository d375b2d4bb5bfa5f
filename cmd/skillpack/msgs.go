package main

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort = "Package and install skills for AI agent tools"
	MsgRootLong = `skillpack packages skills from a repo into named packs and installs them
into the directories agent tools read from (claude, codex, copilot, cursor,
windsurf, or any custom directory).

A skill is a directory holding a SKILL.md; a pack is a YAML manifest that
selects skills by glob pattern and may import skills from remote git repos.`

	MsgSkillsShort    = "List the skills in the repo"
	MsgPacksShort     = "List the pack manifests"
	MsgShowShort      = "Show a pack fully resolved, imports included"
	MsgInstallShort   = "Install a pack into one or more sinks"
	MsgUninstallShort = "Remove an installed pack from one or more sinks"
	MsgInstalledShort = "List what is installed where"
	MsgConfigShort    = "Show the configured sinks layer by layer"
	MsgPreviewShort   = "Render a skill's SKILL.md"
	MsgVersionShort   = "Print version information"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot     = "Skill repo root (default: walk up from the working directory)"
	MsgFlagCacheDir = "Directory for cached git clones"
	MsgFlagFormat   = "Output format: pretty, plain, or json (default: auto-detect)"
	MsgFlagNoColor  = "Disable styled output"
	MsgFlagBundled  = "Include the bundled skills"
	MsgFlagPath     = "Destination directory for the custom sink"

	// Errors
	MsgErrNoRepo = "not inside a skill repo (no skills/ or packs/ directory found)"
)

// Examples
const (
	MsgInstallExample = `  skillpack install writing --claude
  skillpack install writing --claude --codex
  skillpack install packs/writing.yaml --custom --path ~/team/skills`

	MsgUninstallExample = `  skillpack uninstall writing --claude
  skillpack uninstall writing --custom --path ~/team/skills`
)
