package orderbook

import (
	"sync"

	"grynvault-backend/internal/domain/order"
)

// Store holds the current orderbook snapshot. Writers swap in a fresh slice;
// a published slice is never mutated afterwards.
type Store struct {
	mu     sync.RWMutex
	orders []order.Order
	subs   map[int]chan []order.Order
	nextID int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]chan []order.Order)}
}

// Replace publishes a copy of orders as the new snapshot.
func (s *Store) Replace(orders []order.Order) {
	next := make([]order.Order, len(orders))
	copy(next, orders)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.publishLocked(next)
}

// Add publishes the current snapshot with o in front.
func (s *Store) Add(o order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]order.Order, 0, len(s.orders)+1)
	next = append(next, o)
	next = append(next, s.orders...)
	s.publishLocked(next)
}

// Snapshot returns a copy of the current orders.
func (s *Store) Snapshot() []order.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]order.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// Find looks an order up by its bare order id or its prefixed view id.
func (s *Store) Find(orderID string) (order.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.OrderID == orderID || o.ID == orderID {
			return o, true
		}
	}
	return order.Order{}, false
}

// Subscribe delivers every published snapshot. A slow reader only sees the
// latest one. The returned func unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan []order.Order, func()) {
	ch := make(chan []order.Order, 1)

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Store) publishLocked(next []order.Order) {
	s.orders = next
	for _, ch := range s.subs {
		snap := make([]order.Order, len(next))
		copy(snap, next)
		select {
		case ch <- snap:
		default:
			// drop the stale snapshot, keep the newest
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
