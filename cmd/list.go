package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codepub.dev/pkg/codepub/internal/controller"
	"codepub.dev/pkg/codepub/internal/domain"
)

var formatFlag string

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list [dir]",
		Short:        "List the items that would be published",
		Long:         listLongDescription,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := controller.ParseListFormat(formatFlag)
			if err != nil {
				return err
			}

			return newWorkflow(cmd).List(cmd.Context(), domain.ListArgs{
				Root:      parseRoot(args),
				OutputDir: viper.GetString(outputFlagName),
				Format:    format,
			})
		},
	}

	cmd.Flags().StringVarP(&formatFlag, formatFlagName, "f", string(controller.FormatTable), "output format: table or yaml")

	return cmd
}
