package checkin

import (
	"context"
	"slices"
	"sync"

	"github.com/mcoot/assemblie-checkin/internal/model"
)

// serviceCall records one remote call made by the reconciler
type serviceCall struct {
	Method     string
	Members    []model.MemberID
	Dependents []model.DependentID
}

// fakeService is an in-memory attendance service with failure injection
type fakeService struct {
	mu sync.Mutex

	members    model.Set[model.MemberID]
	dependents model.Set[model.DependentID]
	calls      []serviceCall

	fetchErrs            []error // consumed one per fetch
	memberCheckInErr     error
	memberCheckOutErr    error
	dependentCheckInErr  error
	dependentCheckOutErr error

	// beforeMutation runs before each check-in/out is applied
	beforeMutation func()
	// afterRead runs once a fetch has read server state, before it returns
	afterRead func()
}

var _ AttendanceService = (*fakeService)(nil)

func newFakeService() *fakeService {
	return &fakeService{
		members:    model.NewSet[model.MemberID](),
		dependents: model.NewSet[model.DependentID](),
	}
}

func (f *fakeService) seed(members []model.MemberID, dependents []model.DependentID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members = model.NewSet(members...)
	f.dependents = model.NewSet(dependents...)
}

func (f *fakeService) FetchRoster(ctx context.Context, group model.GroupCode) (*model.Roster, error) {
	roster, err := f.read(group)
	if err == nil && f.afterRead != nil {
		f.afterRead()
	}
	return roster, err
}

func (f *fakeService) read(group model.GroupCode) (*model.Roster, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, serviceCall{Method: "fetch"})
	if len(f.fetchErrs) > 0 {
		err := f.fetchErrs[0]
		f.fetchErrs = f.fetchErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return &model.Roster{
		Group:      group,
		Day:        "2024-01-01",
		Members:    f.members.Clone(),
		Dependents: f.dependents.Clone(),
	}, nil
}

func (f *fakeService) CheckIn(ctx context.Context, group model.GroupCode, members []model.MemberID, dependents []model.DependentID) error {
	if f.beforeMutation != nil {
		f.beforeMutation()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, serviceCall{Method: "check_in", Members: slices.Clone(members), Dependents: slices.Clone(dependents)})
	if len(members) > 0 && f.memberCheckInErr != nil {
		return f.memberCheckInErr
	}
	if len(dependents) > 0 && f.dependentCheckInErr != nil {
		return f.dependentCheckInErr
	}
	f.members.Add(members...)
	f.dependents.Add(dependents...)
	return nil
}

func (f *fakeService) CheckOut(ctx context.Context, group model.GroupCode, members []model.MemberID, dependents []model.DependentID) error {
	if f.beforeMutation != nil {
		f.beforeMutation()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, serviceCall{Method: "check_out", Members: slices.Clone(members), Dependents: slices.Clone(dependents)})
	if len(members) > 0 && f.memberCheckOutErr != nil {
		return f.memberCheckOutErr
	}
	if len(dependents) > 0 && f.dependentCheckOutErr != nil {
		return f.dependentCheckOutErr
	}
	f.members.Remove(members...)
	f.dependents.Remove(dependents...)
	return nil
}

func (f *fakeService) Calls() []serviceCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

func (f *fakeService) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *fakeService) fetchCount() int {
	n := 0
	for _, c := range f.Calls() {
		if c.Method == "fetch" {
			n++
		}
	}
	return n
}

// mutations returns only the check-in/out calls
func (f *fakeService) mutations() []serviceCall {
	var out []serviceCall
	for _, c := range f.Calls() {
		if c.Method != "fetch" {
			out = append(out, c)
		}
	}
	return out
}
