package invitation

import (
	"sync"

	"invite.link/models"
)

// VerificationState is the outcome of verifying the current token.
type VerificationState int

const (
	Unverified VerificationState = iota
	Valid
	Invalid
)

func (s VerificationState) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	}
	return "unverified"
}

// Ticket identifies one verification attempt. Only the newest ticket may
// complete.
type Ticket struct {
	Token string
	seq   uint64
}

// Verification tracks the verification of whichever token is current.
// Results for a token that is no longer current, or for an older attempt, are
// dropped. A resolved token never goes back to Unverified.
type Verification struct {
	mu    sync.Mutex
	token string
	seq   uint64
	state VerificationState
	group models.Group
	err   error
}

// Begin makes token current. A new token resets the state to Unverified; the
// same token keeps its resolved state.
func (v *Verification) Begin(token string) Ticket {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.seq++
	if token != v.token {
		v.token = token
		v.state = Unverified
		v.group = models.Group{}
		v.err = nil
	}
	return Ticket{Token: token, seq: v.seq}
}

// Complete applies a result. It reports false and changes nothing when the
// ticket is stale or the token is already resolved.
func (v *Verification) Complete(t Ticket, group models.Group, err error) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if t.Token != v.token || t.seq != v.seq {
		return false
	}
	if v.state != Unverified {
		return false
	}
	if err != nil {
		v.state = Invalid
		v.err = err
		return true
	}
	v.state = Valid
	v.group = group
	return true
}

// State returns the current token and its state. The group is only set when
// the state is Valid.
func (v *Verification) State() (token string, state VerificationState, group models.Group) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.token, v.state, v.group
}

// Err is the error that made the current token Invalid.
func (v *Verification) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}
