package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKeywordsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "keywords",
		Short: "Print the effective keyword dictionary in scoring order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := root.getConfig()
			if err != nil {
				return err
			}

			dict, err := root.dictionary(config)
			if err != nil {
				return err
			}

			for _, term := range dict.Terms() {
				fmt.Fprintln(cmd.OutOrStdout(), term)
			}
			return nil
		},
	}
}
