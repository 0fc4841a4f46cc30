package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mcoot/assemblie-checkin/internal/api/response"
	"github.com/mcoot/assemblie-checkin/internal/client"
	"github.com/mcoot/assemblie-checkin/internal/model"
	"github.com/mcoot/assemblie-checkin/internal/services/group"
)

func newGroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Group management commands",
	}

	cmd.AddCommand(newGroupCreateCmd())
	cmd.AddCommand(newGroupListCmd())
	cmd.AddCommand(newGroupGetCmd())
	cmd.AddCommand(newGroupStateCmd("activate", "Open a group for check-in", (*client.Client).ActivateGroup))
	cmd.AddCommand(newGroupStateCmd("deactivate", "Close a group for check-in", (*client.Client).DeactivateGroup))

	return cmd
}

func newGroupCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new group",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.CreateGroup(cmd.Context(), name)
			if err != nil {
				return err
			}

			output(cmd).Print(*result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Group name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newGroupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.ListGroups(cmd.Context())
			if err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newGroupGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Get group details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.GetGroup(cmd.Context(), groupArg(args[0]))
			if err != nil {
				return err
			}

			output(cmd).Print(*result)
			return nil
		},
	}
}

// groupStateFunc is an activate or deactivate call on the client
type groupStateFunc func(*client.Client, context.Context, model.GroupCode) (*response.Group, error)

func newGroupStateCmd(use, short string, apply groupStateFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <code>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apply(apiClient, cmd.Context(), groupArg(args[0]))
			if err != nil {
				return err
			}

			output(cmd).Print(*result)
			return nil
		},
	}
}

func groupArg(arg string) model.GroupCode {
	return group.NormalizeCode(model.GroupCode(arg))
}
