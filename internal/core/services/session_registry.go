package services

import (
	"fmt"
	"sync"

	"github.com/Rahul09123/SS-Mini-Project/internal/apperrors"
	"github.com/Rahul09123/SS-Mini-Project/internal/core/ports"
)

const freeSlot int32 = -1

// sessionRegistry is a fixed-capacity slot table mapping slot index to the
// logged-in user ID. It is created once at startup and injected wherever a
// session needs claiming; there is no package-level instance. State is
// in-memory only and does not survive restarts.
type sessionRegistry struct {
	mu    sync.Mutex
	slots []int32
}

// NewSessionRegistry returns a registry with capacity concurrent sessions.
func NewSessionRegistry(capacity int) ports.SessionRegistry {
	slots := make([]int32, capacity)
	for i := range slots {
		slots[i] = freeSlot
	}
	return &sessionRegistry{slots: slots}
}

var _ ports.SessionRegistry = (*sessionRegistry)(nil)

func (r *sessionRegistry) Claim(userID int32) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	free := -1
	for i, id := range r.slots {
		if id == userID {
			return 0, fmt.Errorf("user %d: %w", userID, apperrors.ErrAlreadyLoggedIn)
		}
		if id == freeSlot && free == -1 {
			free = i
		}
	}
	if free == -1 {
		return 0, apperrors.ErrSessionCapacity
	}
	r.slots[free] = userID
	return free, nil
}

// Release clears the slot only if it still holds userID, guarding against
// an accidental double release freeing somebody else's slot.
func (r *sessionRegistry) Release(slot int, userID int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slot >= 0 && slot < len(r.slots) && r.slots[slot] == userID {
		r.slots[slot] = freeSlot
	}
}

func (r *sessionRegistry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, id := range r.slots {
		if id != freeSlot {
			n++
		}
	}
	return n
}
