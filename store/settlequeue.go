package store

import (
	"github.com/google/btree"

	"github.com/synthex-labs/matchcore/types"
)

// settleBucket groups every force-settlement order requested at the exact
// same settlement time, mirroring the host's ordersAtTS grouping for
// expiring orders.
type settleBucket struct {
	ts      int64
	settles []*types.SettleOrder
}

func (b *settleBucket) Less(oth btree.Item) bool {
	return b.ts < oth.(*settleBucket).ts
}

// SettleQueue is the force-settlement index for one market-issued asset,
// ordered by settlement time ascending (oldest request first), matching the
// FIFO consumption order of spec.md §4.2/§4.6.
type SettleQueue struct {
	byTime *btree.BTree
	byID   map[types.SettleOrderID]*types.SettleOrder
}

func NewSettleQueue() *SettleQueue {
	return &SettleQueue{
		byTime: btree.New(btreeDegree),
		byID:   make(map[types.SettleOrderID]*types.SettleOrder),
	}
}

func (q *SettleQueue) Len() int { return len(q.byID) }

func (q *SettleQueue) Get(id types.SettleOrderID) *types.SettleOrder { return q.byID[id] }

func (q *SettleQueue) Insert(s *types.SettleOrder) {
	if _, exists := q.byID[s.ID]; exists {
		panic("store: settle order already present: " + string(s.ID))
	}
	key := &settleBucket{ts: s.SettlementTime}
	if found := q.byTime.Get(key); found != nil {
		bucket := found.(*settleBucket)
		bucket.settles = append(bucket.settles, s)
	} else {
		key.settles = []*types.SettleOrder{s}
		q.byTime.ReplaceOrInsert(key)
	}
	q.byID[s.ID] = s
}

func (q *SettleQueue) Remove(s *types.SettleOrder) bool {
	if _, exists := q.byID[s.ID]; !exists {
		return false
	}
	key := &settleBucket{ts: s.SettlementTime}
	found := q.byTime.Get(key)
	if found != nil {
		bucket := found.(*settleBucket)
		for i, ord := range bucket.settles {
			if ord.ID == s.ID {
				bucket.settles = append(bucket.settles[:i], bucket.settles[i+1:]...)
				break
			}
		}
		if len(bucket.settles) == 0 {
			q.byTime.Delete(found)
		}
	}
	delete(q.byID, s.ID)
	return true
}

// Front returns the oldest pending settlement request, or nil if empty.
func (q *SettleQueue) Front() *types.SettleOrder {
	var found *types.SettleOrder
	q.byTime.Ascend(func(item btree.Item) bool {
		bucket := item.(*settleBucket)
		if len(bucket.settles) > 0 {
			found = bucket.settles[0]
		}
		return false
	})
	return found
}

// Ascend walks every pending settlement request oldest-first.
func (q *SettleQueue) Ascend(fn func(*types.SettleOrder) bool) {
	q.byTime.Ascend(func(item btree.Item) bool {
		bucket := item.(*settleBucket)
		for _, s := range bucket.settles {
			if !fn(s) {
				return false
			}
		}
		return true
	})
}
