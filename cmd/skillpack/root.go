package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/skillpack/internal/version"
	"github.com/arthur-debert/skillpack/pkg/commands"
	"github.com/arthur-debert/skillpack/pkg/logging"
	"github.com/arthur-debert/skillpack/pkg/paths"
	"github.com/arthur-debert/skillpack/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	verbosity int
	rootDir   string
	cacheDir  string
	format    string
	noColor   bool
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "skillpack",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(flags.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&flags.rootDir, "root", "", MsgFlagRoot)
	pf.StringVar(&flags.cacheDir, "cache-dir", "", MsgFlagCacheDir)
	pf.StringVar(&flags.format, "format", "", MsgFlagFormat)
	pf.BoolVar(&flags.noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddCommand(newSkillsCmd(flags))
	rootCmd.AddCommand(newPacksCmd(flags))
	rootCmd.AddCommand(newShowCmd(flags))
	rootCmd.AddCommand(newInstallCmd(flags))
	rootCmd.AddCommand(newUninstallCmd(flags))
	rootCmd.AddCommand(newInstalledCmd(flags))
	rootCmd.AddCommand(newConfigCmd(flags))
	rootCmd.AddCommand(newPreviewCmd(flags))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newEnv resolves the execution environment from flags, environment
// variables, and the working directory, in that order.
func newEnv(flags *globalFlags) (*commands.Env, error) {
	p, err := paths.New()
	if err != nil {
		return nil, err
	}

	root := flags.rootDir
	if root == "" {
		root = os.Getenv(paths.EnvRepoRoot)
	}
	if root == "" {
		if cwd, err := os.Getwd(); err == nil {
			root = paths.DiscoverRepoRoot(cwd)
		}
	}
	if root != "" {
		root, err = paths.MakeAbsolute(root)
		if err != nil {
			return nil, err
		}
	}

	return &commands.Env{RepoRoot: root, Paths: p, CacheDir: flags.cacheDir}, nil
}

// newDisplay builds the stdout renderer from the format flags. --no-color
// downgrades pretty output to plain; json stays json.
func newDisplay(flags *globalFlags) (*ui.Display, error) {
	format, err := ui.ParseFormat(flags.format)
	if err != nil {
		return nil, err
	}
	if flags.noColor && (format == ui.FormatAuto || format == ui.FormatPretty) {
		format = ui.FormatPlain
	}
	return ui.New(os.Stdout, format), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("skillpack version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}
