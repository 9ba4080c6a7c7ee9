package machine

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/bits"
	"strings"
	"sync"

	"propnet/circuit"
)

type StateHash uint64

// State is an immutable marking of the network's BASE propositions. The first query
// against a state populates a cached result bundle; later queries read the cache.
type State struct {
	words []uint64
	size  int
	prog  *program // compiled network that produced the state, nil for scratch states

	mu     sync.Mutex
	result *result // only filled by queries against prog
}

// result is the bundle computed by one propagation over a state with no action.
type result struct {
	terminal bool
	legal    [][]circuit.Move // per role index
	goals    [][]int          // scores of the true GOAL propositions, per role index
}

func newState(size int) *State {
	return &State{words: make([]uint64, (size+63)/64), size: size}
}

func (s *State) set(i int) {
	s.words[i/64] |= 1 << (uint(i) % 64)
}

// Has reports whether the i'th BASE proposition (in network base order) is true.
func (s *State) Has(i int) bool {
	if i < 0 || i >= s.size {
		return false
	}
	return s.words[i/64]&(1<<(uint(i)%64)) != 0
}

// Len returns the number of BASE propositions the state covers.
func (s *State) Len() int { return s.size }

// Count returns the number of true BASE propositions.
func (s *State) Count() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsMarked reports whether the cached result bundle has been populated.
func (s *State) IsMarked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result != nil
}

func (s *State) Equal(other *State) bool {
	if s == other {
		return true
	}
	if other == nil || s.size != other.size {
		return false
	}
	for i, w := range s.words {
		if other.words[i] != w {
			return false
		}
	}
	return true
}

func (s *State) Hash() StateHash {
	h := fnv.New64a()
	var buf [8]byte
	for _, w := range s.words {
		binary.LittleEndian.PutUint64(buf[:], w)
		h.Write(buf[:])
	}
	return StateHash(h.Sum64())
}

func (s *State) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for i := 0; i < s.size; i++ {
		if !s.Has(i) {
			continue
		}
		if !first {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", i)
		first = false
	}
	sb.WriteByte('}')
	return sb.String()
}
