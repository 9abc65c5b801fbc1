package prediction

import (
	"fmt"
	"time"

	"github.com/AdamBeresnev/afcon-predictor/internal/tournament"
)

// LockPolicy reports whether submissions for the match are closed at now
type LockPolicy func(now time.Time, m *tournament.Match) bool

const (
	PolicyKickoff  = "kickoff"
	PolicyDeadline = "deadline"
)

// Each match locks at its own kickoff
func KickoffLock() LockPolicy {
	return func(now time.Time, m *tournament.Match) bool {
		return !now.Before(m.KickoffAt)
	}
}

// Every match locks at the same instant, regardless of kickoff
func DeadlineLock(deadline time.Time) LockPolicy {
	return func(now time.Time, _ *tournament.Match) bool {
		return !now.Before(deadline)
	}
}

func NewLockPolicy(name string, deadline time.Time) (LockPolicy, error) {
	switch name {
	case PolicyKickoff:
		return KickoffLock(), nil
	case PolicyDeadline:
		if deadline.IsZero() {
			return nil, fmt.Errorf("deadline lock policy needs a deadline")
		}
		return DeadlineLock(deadline), nil
	}
	return nil, fmt.Errorf("unknown lock policy %q", name)
}
