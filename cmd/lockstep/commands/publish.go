package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lockstep/internal/app"
)

func (c *CLI) newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish workspace packages in dependency order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tag, _ := cmd.Flags().GetString("tag")
			access, _ := cmd.Flags().GetString("access")
			dry, _ := cmd.Flags().GetBool("dry")
			gitPush, _ := cmd.Flags().GetBool("git-push")

			return c.app.Publish(cmd.Context(), app.PublishOptions{
				Tag:     tag,
				Access:  access,
				DryRun:  dry,
				GitPush: gitPush,
			})
		},
	}
	cmd.Flags().String("tag", "", "Distribution tag for the release (required)")
	cmd.Flags().String("access", "", "Registry access level: public or restricted")
	cmd.Flags().Bool("dry", false, "Report what would be published without side effects")
	cmd.Flags().Bool("git-push", false, "Push commits and tags after publishing")
	return cmd
}
