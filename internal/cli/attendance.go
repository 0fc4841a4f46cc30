package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/assemblie-checkin/internal/api/response"
	"github.com/mcoot/assemblie-checkin/internal/checkin"
	"github.com/mcoot/assemblie-checkin/internal/model"
)

// errPartialFailure makes the command exit non-zero after printing the result
var errPartialFailure = errors.New("some changes were not applied")

// household is the signed-in member and their dependents
type household struct {
	primary    response.Member
	dependents []response.Dependent
}

func loadHousehold(ctx context.Context) (*household, error) {
	me, err := apiClient.Me(ctx)
	if err != nil {
		return nil, err
	}
	deps, err := apiClient.ListDependents(ctx)
	if err != nil {
		return nil, err
	}
	return &household{primary: *me, dependents: deps}, nil
}

func (h *household) primaryID() model.MemberID {
	return model.MemberID(h.primary.ID)
}

func (h *household) dependentIDs() []model.DependentID {
	ids := make([]model.DependentID, 0, len(h.dependents))
	for _, d := range h.dependents {
		ids = append(ids, model.DependentID(d.ID))
	}
	return ids
}

// resolve finds a dependent by id or, case-insensitively, by display name
func (h *household) resolve(value string) (model.DependentID, error) {
	var matches []model.DependentID
	for _, d := range h.dependents {
		if d.ID == value {
			return model.DependentID(d.ID), nil
		}
		if strings.EqualFold(d.DisplayName, value) {
			matches = append(matches, model.DependentID(d.ID))
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%q is not in your household", value)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q matches more than one dependent, use the id", value)
	}
}

func (h *household) name(ref model.ParticipantRef) string {
	if ref.Kind == model.KindMember && ref.ID == h.primary.ID {
		return h.primary.DisplayName
	}
	for _, d := range h.dependents {
		if d.ID == ref.ID {
			return d.DisplayName
		}
	}
	return ref.ID
}

func (h *household) refs() []model.ParticipantRef {
	refs := []model.ParticipantRef{model.MemberRef(h.primaryID())}
	for _, id := range h.dependentIDs() {
		refs = append(refs, model.DependentRef(id))
	}
	return refs
}

func (h *household) roster(roster *model.Roster) HouseholdRoster {
	view := HouseholdRoster{Group: string(roster.Group), Day: roster.Day}
	for _, ref := range h.refs() {
		view.Participants = append(view.Participants, Participant{
			ID:        ref.ID,
			Name:      h.name(ref),
			Kind:      string(ref.Kind),
			CheckedIn: roster.IsCheckedIn(ref),
		})
	}
	return view
}

func (h *household) names(change model.Change) []string {
	var names []string
	for _, id := range change.Members {
		names = append(names, h.name(model.MemberRef(id)))
	}
	for _, id := range change.Dependents {
		names = append(names, h.name(model.DependentRef(id)))
	}
	return names
}

func newRosterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roster <group>",
		Short: "Show today's check-ins for your household",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := loadHousehold(cmd.Context())
			if err != nil {
				return err
			}

			roster, err := apiClient.FetchRoster(cmd.Context(), groupArg(args[0]))
			if err != nil {
				return err
			}

			output(cmd).Print(h.roster(roster))
			return nil
		},
	}
}

func newCheckInCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Check your household in or out of a group",
	}

	cmd.AddCommand(newCheckInSetCmd())
	cmd.AddCommand(newCheckInToggleCmd())

	return cmd
}

// selectionFlags names the participants a check-in command acts on
type selectionFlags struct {
	self       bool
	dependents []string
}

func (f *selectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.self, "self", false, "Include yourself")
	cmd.Flags().StringArrayVar(&f.dependents, "dependent", nil, "Dependent id or name (repeatable)")
}

func (f *selectionFlags) refs(h *household) ([]model.ParticipantRef, error) {
	var refs []model.ParticipantRef
	if f.self {
		refs = append(refs, model.MemberRef(h.primaryID()))
	}
	for _, value := range f.dependents {
		id, err := h.resolve(value)
		if err != nil {
			return nil, err
		}
		refs = append(refs, model.DependentRef(id))
	}
	return refs, nil
}

func newCheckInSetCmd() *cobra.Command {
	var flags selectionFlags

	cmd := &cobra.Command{
		Use:   "set <group>",
		Short: "Make exactly the named participants checked in",
		Long: `Make exactly the named participants checked in for today.
Anyone in your household who is not named is checked out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckIn(cmd, groupArg(args[0]), func(session *checkin.Session, h *household) error {
				wanted, err := flags.refs(h)
				if err != nil {
					return err
				}
				want := make(map[model.ParticipantRef]bool, len(wanted))
				for _, ref := range wanted {
					want[ref] = true
				}

				selection := session.Selection()
				for _, ref := range h.refs() {
					if selection.IsSelected(ref) != want[ref] {
						if err := session.Toggle(ref); err != nil {
							return err
						}
					}
				}
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}

func newCheckInToggleCmd() *cobra.Command {
	var flags selectionFlags

	cmd := &cobra.Command{
		Use:   "toggle <group>",
		Short: "Flip the named participants relative to the current roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckIn(cmd, groupArg(args[0]), func(session *checkin.Session, h *household) error {
				refs, err := flags.refs(h)
				if err != nil {
					return err
				}
				if len(refs) == 0 {
					return fmt.Errorf("nothing to toggle: pass --self or --dependent")
				}
				for _, ref := range refs {
					if err := session.Toggle(ref); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	flags.register(cmd)
	return cmd
}

// runCheckIn loads the group into a session, lets edit change the selection,
// commits, and prints what the server now holds
func runCheckIn(cmd *cobra.Command, group model.GroupCode, edit func(*checkin.Session, *household) error) error {
	ctx := cmd.Context()

	h, err := loadHousehold(ctx)
	if err != nil {
		return err
	}

	session := checkin.NewSession(apiClient, h.primaryID(), h.dependentIDs(), newLogger(cmd))
	celebrated := false
	session.OnCelebration(func(checkin.Celebration) { celebrated = true })

	if _, err := session.SwitchGroup(ctx, group); err != nil {
		return err
	}
	if err := edit(session, h); err != nil {
		return err
	}

	result, err := session.Commit(ctx)
	if result == nil {
		return err
	}

	summary := CommitSummary{
		Group:      string(group),
		Success:    result.Success,
		Celebrated: celebrated,
	}
	for _, op := range result.Attempted {
		if op.Err != nil {
			summary.Failed = append(summary.Failed, FailedBatch{Operation: string(op.Kind), Error: op.Err.Error()})
			continue
		}
		names := h.names(model.Change{Members: op.Members, Dependents: op.Dependents})
		switch op.Kind {
		case checkin.OpMemberCheckIn, checkin.OpDependentCheckIn:
			summary.CheckedIn = append(summary.CheckedIn, names...)
		case checkin.OpMemberCheckOut, checkin.OpDependentCheckOut:
			summary.CheckedOut = append(summary.CheckedOut, names...)
		}
	}
	if result.RosterAfter != nil {
		roster := h.roster(result.RosterAfter)
		summary.Roster = &roster
	}
	output(cmd).Print(summary)

	if err != nil {
		return err
	}
	if !result.Success {
		return errPartialFailure
	}
	return nil
}
