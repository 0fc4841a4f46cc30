package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/assemblie-checkin/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Member:
		o.printMember(v)
	case response.AuthResponse:
		o.printAuth(v)
	case response.Dependent:
		o.printDependent(v)
	case []response.Dependent:
		o.printDependents(v)
	case response.Group:
		o.printGroup(v)
	case []response.Group:
		o.printGroups(v)
	case HouseholdRoster:
		o.printRoster(v)
	case CommitSummary:
		o.printCommit(v)
	case response.HealthResponse:
		o.printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HouseholdRoster is today's attendance for the signed-in member's household
type HouseholdRoster struct {
	Group        string        `json:"group"`
	Day          string        `json:"day"`
	Participants []Participant `json:"participants"`
}

// Participant is one household entry in a HouseholdRoster
type Participant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	CheckedIn bool   `json:"checked_in"`
}

// CommitSummary reports a check-in commit
type CommitSummary struct {
	Group      string           `json:"group"`
	Roster     *HouseholdRoster `json:"roster,omitempty"`
	Success    bool             `json:"success"`
	CheckedIn  []string         `json:"checked_in,omitempty"`
	CheckedOut []string         `json:"checked_out,omitempty"`
	Failed     []FailedBatch    `json:"failed,omitempty"`
	Celebrated bool             `json:"celebrated"`
}

// FailedBatch is a batch the server rejected
type FailedBatch struct {
	Operation string `json:"operation"`
	Error     string `json:"error"`
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printMember(m response.Member) {
	o.printf("Member: %s (%s)\n", m.DisplayName, m.ID)
}

func (o *Output) printAuth(a response.AuthResponse) {
	o.printMember(a.Member)
	o.printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printDependent(d response.Dependent) {
	o.printf("Dependent: %s (%s)\n", d.DisplayName, d.ID)
}

func (o *Output) printDependents(deps []response.Dependent) {
	if len(deps) == 0 {
		o.printf("No dependents\n")
		return
	}
	o.printf("Dependents (%d):\n", len(deps))
	for _, d := range deps {
		o.printf("  - %s (%s)\n", d.DisplayName, d.ID)
	}
}

func (o *Output) printGroup(g response.Group) {
	state := "active"
	if !g.Active {
		state = "inactive"
	}
	o.printf("Group: %s (%s)\n", g.Name, g.Code)
	o.printf("State: %s\n", state)
	o.printf("Owner: %s\n", g.CreatedBy)
}

func (o *Output) printGroups(groups []response.Group) {
	if len(groups) == 0 {
		o.printf("No groups\n")
		return
	}
	for _, g := range groups {
		marker := ""
		if !g.Active {
			marker = " [inactive]"
		}
		o.printf("%s  %s%s\n", g.Code, g.Name, marker)
	}
}

func (o *Output) printRoster(r HouseholdRoster) {
	o.printf("Group: %s\n", r.Group)
	o.printf("Day: %s\n", r.Day)
	for _, p := range r.Participants {
		mark := "[ ]"
		if p.CheckedIn {
			mark = "[x]"
		}
		o.printf("  %s %s (%s)\n", mark, p.Name, p.ID)
	}
}

func (o *Output) printCommit(c CommitSummary) {
	if len(c.CheckedIn) == 0 && len(c.CheckedOut) == 0 && len(c.Failed) == 0 {
		o.printf("Nothing to change\n")
	}
	if len(c.CheckedIn) > 0 {
		o.printf("Checked in: %s\n", strings.Join(c.CheckedIn, ", "))
	}
	if len(c.CheckedOut) > 0 {
		o.printf("Checked out: %s\n", strings.Join(c.CheckedOut, ", "))
	}
	for _, f := range c.Failed {
		o.printf("Failed %s: %s\n", strings.ReplaceAll(f.Operation, "_", " "), f.Error)
	}
	if c.Roster != nil {
		o.printRoster(*c.Roster)
	} else {
		o.printf("Roster unavailable, run \"checkin roster %s\" to retry\n", c.Group)
	}
	if c.Celebrated {
		o.printf("Welcome! Enjoy the service.\n")
	}
}
