package db

import (
	"errors"
	"fmt"
)

// globalGroupID marks a trigger that matches in every group.
const globalGroupID int64 = -1

var (
	ErrGroupNotFound = errors.New("group not found")
	// ErrReservedGroupID is returned for a group scope whose id is the one
	// stored for global triggers.
	ErrReservedGroupID = errors.New("group id is reserved for global triggers")
)

// Scope says which groups a trigger applies to.
type Scope struct {
	global  bool
	groupID int64
}

// GlobalScope matches in every group.
func GlobalScope() Scope {
	return Scope{global: true}
}

// GroupScope matches only in the given group.
func GroupScope(groupID int64) Scope {
	return Scope{groupID: groupID}
}

func (s Scope) IsGlobal() bool { return s.global }

func (s Scope) GroupID() int64 { return s.groupID }

func (s Scope) value() (int64, error) {
	if s.global {
		return globalGroupID, nil
	}
	if s.groupID == globalGroupID {
		return 0, fmt.Errorf("group %d: %w", s.groupID, ErrReservedGroupID)
	}
	return s.groupID, nil
}

func scopeFromValue(v int64) Scope {
	if v == globalGroupID {
		return GlobalScope()
	}
	return GroupScope(v)
}

// Group holds a chat's metadata and counters.
type Group struct {
	GroupID       int64  `db:"group_id"`
	GroupName     string `db:"group_name"`
	GroupLink     string `db:"group_link"`
	BoomerCounter int64  `db:"boomer_counter"`
	CringeCounter int64  `db:"cringe_counter"`
}

// Trigger is a phrase that bumps the boomer counter when a message normalizes to Key.
type Trigger struct {
	Key    string `db:"trigger_key"`
	Scope  Scope
	Phrase string `db:"phrase"`
}

// Stats are the totals shown by /start.
type Stats struct {
	TotalBoomers int64
	Groups       int64
}
