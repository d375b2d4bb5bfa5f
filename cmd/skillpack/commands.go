package main

import (
	"github.com/arthur-debert/skillpack/pkg/commands"
	"github.com/arthur-debert/skillpack/pkg/config"
	"github.com/spf13/cobra"
)

// sinkFlagNames are the named sinks exposed as boolean flags on install,
// uninstall, and installed.
var sinkFlagNames = []string{"codex", "claude", "copilot", "cursor", "windsurf"}

// sinkFlags binds one boolean flag per named sink plus --custom/--path and
// collects the selection in flag declaration order.
type sinkFlags struct {
	selected map[string]*bool
	custom   bool
	path     string
}

func newSinkFlags(cmd *cobra.Command) *sinkFlags {
	sf := &sinkFlags{selected: make(map[string]*bool, len(sinkFlagNames))}
	for _, name := range sinkFlagNames {
		v := false
		sf.selected[name] = &v
		cmd.Flags().BoolVar(&v, name, false, "Select the "+name+" sink")
	}
	cmd.Flags().BoolVar(&sf.custom, config.SinkCustom, false, "Select a custom sink directory")
	cmd.Flags().StringVar(&sf.path, "path", "", MsgFlagPath)
	return sf
}

func (sf *sinkFlags) names() []string {
	var out []string
	for _, name := range sinkFlagNames {
		if *sf.selected[name] {
			out = append(out, name)
		}
	}
	if sf.custom {
		out = append(out, config.SinkCustom)
	}
	return out
}

func newSkillsCmd(flags *globalFlags) *cobra.Command {
	var includeBundled bool
	cmd := &cobra.Command{
		Use:   "skills",
		Short: MsgSkillsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(flags)
			if err != nil {
				return err
			}
			result, err := commands.ListSkills(commands.ListSkillsOptions{
				Env:            *env,
				IncludeBundled: includeBundled,
			})
			if err != nil {
				return err
			}
			display, err := newDisplay(flags)
			if err != nil {
				return err
			}
			return display.SkillList(result)
		},
	}
	cmd.Flags().BoolVar(&includeBundled, "bundled", false, MsgFlagBundled)
	return cmd
}

func newPacksCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "packs",
		Short: MsgPacksShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(flags)
			if err != nil {
				return err
			}
			result, err := commands.ListPacks(commands.ListPacksOptions{Env: *env})
			if err != nil {
				return err
			}
			display, err := newDisplay(flags)
			if err != nil {
				return err
			}
			return display.PackList(result)
		},
	}
}

func newShowCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <pack>",
		Short: MsgShowShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(flags)
			if err != nil {
				return err
			}
			result, err := commands.ShowPack(commands.ShowPackOptions{
				Env:     *env,
				PackArg: args[0],
			})
			if err != nil {
				return err
			}
			display, err := newDisplay(flags)
			if err != nil {
				return err
			}
			return display.PackDetail(result)
		},
	}
}

func newInstallCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "install <pack>",
		Short:   MsgInstallShort,
		Example: MsgInstallExample,
		Args:    cobra.ExactArgs(1),
	}
	sf := newSinkFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(flags)
		if err != nil {
			return err
		}
		result, err := commands.InstallPack(commands.InstallOptions{
			Env:        *env,
			PackArg:    args[0],
			Sinks:      sf.names(),
			CustomPath: sf.path,
		})
		if err != nil {
			return err
		}
		display, err := newDisplay(flags)
		if err != nil {
			return err
		}
		return display.InstallReport(result)
	}
	return cmd
}

func newUninstallCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "uninstall <pack>",
		Short:   MsgUninstallShort,
		Example: MsgUninstallExample,
		Args:    cobra.ExactArgs(1),
	}
	sf := newSinkFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(flags)
		if err != nil {
			return err
		}
		result, err := commands.UninstallPack(commands.UninstallOptions{
			Env:        *env,
			PackArg:    args[0],
			Sinks:      sf.names(),
			CustomPath: sf.path,
		})
		if err != nil {
			return err
		}
		display, err := newDisplay(flags)
		if err != nil {
			return err
		}
		return display.UninstallReport(result)
	}
	return cmd
}

func newInstalledCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "installed",
		Short: MsgInstalledShort,
		Args:  cobra.NoArgs,
	}
	sf := newSinkFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		env, err := newEnv(flags)
		if err != nil {
			return err
		}
		result, err := commands.ListInstalled(commands.InstalledOptions{
			Env:        *env,
			Sinks:      sf.names(),
			CustomPath: sf.path,
		})
		if err != nil {
			return err
		}
		display, err := newDisplay(flags)
		if err != nil {
			return err
		}
		return display.InstalledReport(result)
	}
	return cmd
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(flags)
			if err != nil {
				return err
			}
			result, err := commands.ShowConfig(commands.ConfigOptions{Env: *env})
			if err != nil {
				return err
			}
			display, err := newDisplay(flags)
			if err != nil {
				return err
			}
			return display.ConfigReport(result)
		},
	}
}

func newPreviewCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <skill-id>",
		Short: MsgPreviewShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(flags)
			if err != nil {
				return err
			}
			result, err := commands.PreviewSkill(commands.PreviewOptions{
				Env:     *env,
				SkillID: args[0],
			})
			if err != nil {
				return err
			}
			display, err := newDisplay(flags)
			if err != nil {
				return err
			}
			return display.Preview(result)
		},
	}
}
