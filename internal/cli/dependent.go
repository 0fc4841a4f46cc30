package cli

import (
	"github.com/spf13/cobra"
)

func newDependentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dependent",
		Short: "Household dependent commands",
	}

	cmd.AddCommand(newDependentAddCmd())
	cmd.AddCommand(newDependentListCmd())

	return cmd
}

func newDependentAddCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a dependent to your household",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.AddDependent(cmd.Context(), name)
			if err != nil {
				return err
			}

			output(cmd).Print(*result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newDependentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your household's dependents",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.ListDependents(cmd.Context())
			if err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}
