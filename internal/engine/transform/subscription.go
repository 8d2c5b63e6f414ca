package transform

import "weak"

// Token observes world-space changes of one Transform. Any invalidation that
// reaches the transform raises the token's flag once, however many values
// changed.
//
// The transform holds tokens weakly: a token that is dropped without Close
// is pruned on the next notification.
type Token struct {
	changed bool
	owner   *Transform
}

// Subscribe registers a new token on t.
func (t *Transform) Subscribe() *Token {
	tok := &Token{owner: t}
	if !t.destroyed {
		t.subscribers = append(t.subscribers, weak.Make(tok))
	}
	return tok
}

// TakeChanged reports whether the transform changed since the last call and
// resets the flag.
func (k *Token) TakeChanged() bool {
	changed := k.changed
	k.changed = false
	return changed
}

// Peek reports the flag without resetting it.
func (k *Token) Peek() bool {
	return k.changed
}

// Close unregisters the token. It is safe to call more than once and after
// the transform has been destroyed.
func (k *Token) Close() {
	if k.owner == nil {
		return
	}
	k.owner.unsubscribe(k)
	k.owner = nil
}

// Subscribers returns the number of live tokens.
func (t *Transform) Subscribers() int {
	n := 0
	for _, wp := range t.subscribers {
		if wp.Value() != nil {
			n++
		}
	}
	return n
}

func (t *Transform) unsubscribe(k *Token) {
	for i, wp := range t.subscribers {
		if wp.Value() == k {
			copy(t.subscribers[i:], t.subscribers[i+1:])
			t.subscribers[len(t.subscribers)-1] = weak.Pointer[Token]{}
			t.subscribers = t.subscribers[:len(t.subscribers)-1]
			return
		}
	}
}

// notify raises every live token and drops collected ones.
func (t *Transform) notify() {
	t.stats.Notifies++
	live := t.subscribers[:0]
	for _, wp := range t.subscribers {
		if tok := wp.Value(); tok != nil {
			tok.changed = true
			live = append(live, wp)
		}
	}
	clear(t.subscribers[len(live):])
	t.subscribers = live
}
