package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codepub.dev/pkg/codepub/internal/domain"
	m "codepub.dev/pkg/codepub/internal/model"
)

var titleFlag string
var subtitleFlag string
var authorFlag string
var noPDFFlag bool

func newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "publish [dir]",
		Short:        "Publish an assignment as LaTeX and PDF",
		Long:         publishLongDescription,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := newWorkflow(cmd).Publish(cmd.Context(), domain.PublishArgs{
				Root: parseRoot(args),
				Document: m.Document{
					Title:    viper.GetString(titleConfigKey),
					Subtitle: viper.GetString(subtitleConfigKey),
					Author:   viper.GetString(authorConfigKey),
				},
				OutputDir: viper.GetString(outputFlagName),
				PDF:       viper.GetBool(pdfConfigKey) && !noPDFFlag,
			})

			return err
		},
	}

	configurePublishFlags(cmd)

	return cmd
}

func configurePublishFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&titleFlag, titleFlagName, "t", viper.GetString(titleConfigKey), "document title, also the .tex file name")
	bindFlagToConfig(cmd.Flags().Lookup(titleFlagName), titleConfigKey)

	cmd.Flags().StringVar(&subtitleFlag, subtitleFlagName, viper.GetString(subtitleConfigKey), "document subtitle")
	bindFlagToConfig(cmd.Flags().Lookup(subtitleFlagName), subtitleConfigKey)

	cmd.Flags().StringVarP(&authorFlag, authorFlagName, "a", viper.GetString(authorConfigKey), "document author")
	bindFlagToConfig(cmd.Flags().Lookup(authorFlagName), authorConfigKey)

	cmd.Flags().BoolVar(&noPDFFlag, noPDFFlagName, false, "write the .tex file without compiling it")
}
