// Package cmd provides the root command and CLI setup for codepub.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codepub.dev/pkg/codepub/internal/adapter"
	"codepub.dev/pkg/codepub/internal/controller"
	"codepub.dev/pkg/codepub/internal/domain"
	"codepub.dev/pkg/codepub/internal/highlight"
	m "codepub.dev/pkg/codepub/internal/model"
)

var fsAdapter adapter.SourceFSAdapter

// workflow overrides the configured workflow when set.
var workflow domain.Workflow

// outputDirFlag names the directory, inside the assignment root, that
// receives the generated document.
var outputDirFlag string

// excludeNames is a root-level flag adding names to the global skip list.
var excludeNames []string

var verboseFlag bool
var logFileFlag string

func init() {
	rootCmd = newRootCmd()
	rootCmd.AddCommand(
		newPublishCmd(),
		newListCmd(),
		newInitCmd(),
		newVersionCmd(),
	)

	fsAdapter = adapter.NewLocalSourceFSAdapter()
}

const layoutHelp = `Layout of an assignment directory:
  - *.tex, *.latex       LaTeX fragments included verbatim
  - *.h, *.hpp, *.cpp, *.py  code listings (inside subdirectories only)
  - *.txt, *.log         program output (inside subdirectories only)
  - *.puml, *.plantuml   diagrams rendered through plantuml
  - subdirectories       become chapters, sections, subsections, ...
  - skip.txt             names to leave out of this directory
  - publish.txt          explicit ordered list of items for this directory
A leading [n] in a name orders it and is dropped from the title.`

const rootLongDescription = `Codepub turns a coursework assignment directory into a single LaTeX
document with highlighted code, program output and diagrams, and
compiles it to PDF.

` + layoutHelp

const publishLongDescription = `Publish the assignment in dir (default: current directory) as a LaTeX
document and compile it to PDF.

` + layoutHelp

const listLongDescription = `List the items that would be published from dir (default: current
directory) with their kind and nesting level, without rendering anything.

` + layoutHelp

// rootCmd represents the base command when called without any subcommands.
// It is built in init so flag defaults see the configuration.
var rootCmd *cobra.Command

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codepub",
		Short: "Coursework assignment publisher",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"directory inside the assignment that receives the document",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludeNames, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "skip files and folders with this name (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newWorkflow wires the workflow from the current configuration, writing
// its UI to cmd.
func newWorkflow(cmd *cobra.Command) domain.Workflow {
	if workflow != nil {
		return workflow
	}

	runner := adapter.NewLocalToolRunnerAdapter(toolTimeout())

	return domain.NewWorkflow(
		fsAdapter,
		controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout())),
		profileFromConfig(),
		highlight.NewHighlighter(viper.GetString(highlightStyleKey)),
		adapter.NewToolDiagramAdapter(runner, viper.GetStringSlice(diagramToolKey)),
		adapter.NewToolCompilerAdapter(runner, viper.GetStringSlice(compilerToolKey)),
	)
}

func parseRoot(args []string) m.Path {
	if len(args) == 0 {
		return m.Path(".")
	}

	return m.Path(args[0])
}
