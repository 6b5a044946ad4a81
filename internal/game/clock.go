package game

import "container/heap"

// Tick is the indivisible unit of simulated time. 60 ticks = 1 second
// (spec §4.1).
type Tick int

// TicksPerSecond is the fixed simulation cadence.
const TicksPerSecond = 60

// EventKind tags the side-effect a ScheduledEvent represents.
type EventKind int

const (
	EventWeaponStateTransition EventKind = iota
	EventImpact
	EventRecoveryComplete
	EventCounterAttackWindowEnd
)

// EventParams carries the kind-specific payload for a ScheduledEvent. Only
// the fields relevant to the event's Kind are populated; zero values are
// harmless for the rest.
type EventParams struct {
	TargetUnit   UnitID // unit being targeted/impacted, when applicable
	WeaponIsMain bool   // true = ranged weapon, false = melee weapon
	StateName    string // destination weapon-state name, for transitions
	Goal         string // the goal state progression was aiming for

	// RNG draws are taken when the event is scheduled, not when it fires
	// (spec §4.5.1 step 3: "RNG seed draws made at schedule time to preserve
	// determinism"), so the sequence of PRNG calls depends only on
	// scheduling order, never on how many other events happen to be queued
	// ahead of this one.
	HitRoll      int // uniform [1,100], consumed at impact
	LocationRoll int // uniform [1,100], consumed at impact on a hit
	DefenseRoll  int // uniform [1,100], consumed at impact if the target defends
	BurstIndex   int  // 0-based shot index within a BURST/FULL_AUTO firing cycle
	BurstTotal   int  // total shots in this firing cycle; BurstIndex == BurstTotal-1 is the last
	IsCounterAttack bool // a counter-attack impact is not itself defensible (spec §4.6)
}

// ScheduledEvent is a pending side-effect owned by a single unit (spec §3).
type ScheduledEvent struct {
	FireTick Tick
	Seq      int64
	Owner    UnitID
	Kind     EventKind
	Params   EventParams

	index int // heap bookkeeping
}

// eventHeap implements container/heap.Interface ordered by (tick, sequence),
// the same open-list-heap idiom the teacher uses for A* search nodes
// (navmesh.go's openList).
type eventHeap []*ScheduledEvent

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].FireTick != h[j].FireTick {
		return h[i].FireTick < h[j].FireTick
	}
	return h[i].Seq < h[j].Seq
}
func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *eventHeap) Push(x any) {
	e := x.(*ScheduledEvent)
	e.index = len(*h)
	*h = append(*h, e)
}
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// EventQueue is the priority queue of ScheduledEvents ordered by
// (tick ascending, sequence ascending) — spec §4.1.
type EventQueue struct {
	heap eventHeap
	seq  int64
}

// NewEventQueue creates an empty event queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Schedule inserts evt, assigning it the next sequence number. The returned
// sequence number is also stored on evt.Seq.
func (q *EventQueue) Schedule(fireTick Tick, owner UnitID, kind EventKind, params EventParams) *ScheduledEvent {
	q.seq++
	e := &ScheduledEvent{
		FireTick: fireTick,
		Seq:      q.seq,
		Owner:    owner,
		Kind:     kind,
		Params:   params,
	}
	heap.Push(&q.heap, e)
	return e
}

// CancelByOwner removes every queued event owned by unitID whose Kind is in
// kinds (or all events owned by unitID if kinds is empty). Cancellation is a
// linear scan (spec §5); it is silently a no-op if nothing matches.
func (q *EventQueue) CancelByOwner(unitID UnitID, kinds ...EventKind) {
	match := func(k EventKind) bool {
		if len(kinds) == 0 {
			return true
		}
		for _, want := range kinds {
			if k == want {
				return true
			}
		}
		return false
	}
	kept := q.heap[:0]
	for _, e := range q.heap {
		if e.Owner == unitID && match(e.Kind) {
			continue
		}
		kept = append(kept, e)
	}
	q.heap = kept
	for i := range q.heap {
		q.heap[i].index = i
	}
	// Restore heap order in place; a fresh Init is O(n) and n is always small
	// (§5: queue size bounded by active units × events per attack cycle).
	heap.Init(&q.heap)
}

// DrainDue pops and returns every event whose FireTick <= currentTick, in
// (tick, sequence) order. Events scheduled by a handler for currentTick
// itself are not re-visited within the same DrainDue call — callers that
// need same-tick scheduling must re-invoke DrainDue (spec §4.1 permits
// either a single-pass or two-phase drain).
func (q *EventQueue) DrainDue(currentTick Tick) []*ScheduledEvent {
	var due []*ScheduledEvent
	for q.heap.Len() > 0 && q.heap[0].FireTick <= currentTick {
		e := heap.Pop(&q.heap).(*ScheduledEvent)
		due = append(due, e)
	}
	return due
}

// Len returns the number of events currently queued.
func (q *EventQueue) Len() int { return q.heap.Len() }

// Peek returns the earliest scheduled event without removing it, or nil if
// the queue is empty.
func (q *EventQueue) Peek() *ScheduledEvent {
	if q.heap.Len() == 0 {
		return nil
	}
	return q.heap[0]
}
