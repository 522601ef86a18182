package state

// Handler is called with the state after every transition.
type Handler func(*State)

// Subject keeps an ordered list of handlers and calls them synchronously.
type Subject struct {
	nextID   int
	handlers []subscriber
}

type subscriber struct {
	id int
	fn Handler
}

// Subscription identifies a registered handler.
type Subscription struct {
	subject *Subject
	id      int
}

// Subscribe registers fn. Handlers run in registration order.
func (s *Subject) Subscribe(fn Handler) Subscription {
	if fn == nil {
		return Subscription{}
	}
	s.nextID++
	s.handlers = append(s.handlers, subscriber{id: s.nextID, fn: fn})
	return Subscription{subject: s, id: s.nextID}
}

// Unsubscribe removes the handler. Calling it more than once is a no-op.
func (sub Subscription) Unsubscribe() {
	if sub.subject == nil {
		return
	}
	hs := sub.subject.handlers
	for i, h := range hs {
		if h.id == sub.id {
			sub.subject.handlers = append(hs[:i:i], hs[i+1:]...)
			return
		}
	}
}

// notify calls every handler with st.
func (s *Subject) notify(st *State) {
	// Handlers may unsubscribe while being notified.
	hs := append([]subscriber(nil), s.handlers...)
	for _, h := range hs {
		h.fn(st)
	}
}
