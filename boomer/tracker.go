package boomer

import (
	"context"
)

// CounterStore is the storage the tracker needs.
type CounterStore interface {
	// TriggerExists reports whether key is a trigger of the group or a global one.
	TriggerExists(ctx context.Context, key string, groupID int64) (bool, error)
	IncrementBoomer(ctx context.Context, groupID int64) (int64, error)
}

type Tracker struct {
	store CounterStore
}

func NewTracker(store CounterStore) *Tracker {
	return &Tracker{store: store}
}

// Observe checks a group message against the triggers. On a match the group's
// boomer counter goes up by exactly one, however many triggers match, and the
// new value is returned. The group row must already exist.
func (t *Tracker) Observe(ctx context.Context, groupID int64, text string) (count int64, matched bool, err error) {
	key := Normalize(text)
	if key == "" {
		return 0, false, nil
	}

	exists, err := t.store.TriggerExists(ctx, key, groupID)
	if err != nil {
		return 0, false, err
	}
	if !exists {
		return 0, false, nil
	}

	count, err = t.store.IncrementBoomer(ctx, groupID)
	if err != nil {
		return 0, true, err
	}
	return count, true, nil
}
