package redis

import (
	"fmt"

	"github.com/mcoot/assemblie-checkin/internal/model"
)

// Key prefix for all check-in data
const keyPrefix = "checkin"

func memberKey(id model.MemberID) string {
	return fmt.Sprintf("%s:member:%s", keyPrefix, id)
}

func registeredMemberKey(id model.MemberID) string {
	return fmt.Sprintf("%s:registered_member:%s", keyPrefix, id)
}

// usernameIndexKey maps a login username to a member id
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

func dependentKey(id model.DependentID) string {
	return fmt.Sprintf("%s:dependent:%s", keyPrefix, id)
}

// householdIndexKey is the SET of dependent keys belonging to a member
func householdIndexKey(guardian model.MemberID) string {
	return fmt.Sprintf("%s:idx:household:%s", keyPrefix, guardian)
}

func groupKey(code model.GroupCode) string {
	return fmt.Sprintf("%s:group:%s", keyPrefix, code)
}

// groupsIndexKey is the SET of all group keys
func groupsIndexKey() string {
	return fmt.Sprintf("%s:idx:groups", keyPrefix)
}

// checkedInMembersKey is the SET of member ids checked in to a group on a day
func checkedInMembersKey(code model.GroupCode, day string) string {
	return fmt.Sprintf("%s:attendance:%s:%s:members", keyPrefix, code, day)
}

// checkedInDependentsKey is the SET of dependent ids checked in to a group on a day
func checkedInDependentsKey(code model.GroupCode, day string) string {
	return fmt.Sprintf("%s:attendance:%s:%s:dependents", keyPrefix, code, day)
}
