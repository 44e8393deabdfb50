package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lockstep/internal/app"
	"go.trai.ch/lockstep/internal/core/domain"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Bump every workspace package to the next lockstep version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bumpType, _ := cmd.Flags().GetString("type")
			ci, _ := cmd.Flags().GetBool("ci")
			noGitCommit, _ := cmd.Flags().GetBool("no-git-commit")

			kind, err := domain.ParseBumpType(bumpType)
			if err != nil {
				return err
			}

			return c.app.Version(cmd.Context(), app.VersionOptions{
				Type:        kind,
				SkipCI:      ci,
				NoGitCommit: noGitCommit,
			})
		},
	}
	cmd.Flags().StringP("type", "t", "patch", "Bump type: patch, minor, major or auto")
	cmd.Flags().Bool("ci", false, "Append [skip ci] to the release commit message")
	cmd.Flags().Bool("no-git-commit", false, "Skip the git stage, commit and tag steps")
	return cmd
}
