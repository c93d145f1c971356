package keyspace

import "container/list"

// LPush prepends each of values (in argument order, so the last argument
// ends up frontmost) to key's LIST, creating it if absent, and returns the
// resulting length.
func (k *Keyspace) LPush(key []byte, values ...[]byte) (int, error) {
	e, l, err := k.listFor(key, true)
	if err != nil {
		return 0, err
	}
	for _, v := range values {
		l.PushFront(v)
	}
	return e.Payload.(*list.List).Len(), nil
}

// RPush appends each of values to key's LIST, creating it if absent, and
// returns the resulting length.
func (k *Keyspace) RPush(key []byte, values ...[]byte) (int, error) {
	e, l, err := k.listFor(key, true)
	if err != nil {
		return 0, err
	}
	for _, v := range values {
		l.PushBack(v)
	}
	return e.Payload.(*list.List).Len(), nil
}

// LPop removes and returns key's front element, or ok=false if the list is
// absent or empty. Popping the last element destroys the entry.
func (k *Keyspace) LPop(key []byte) (value []byte, ok bool, err error) {
	return k.listPop(key, true)
}

// RPop removes and returns key's back element, or ok=false if the list is
// absent or empty. Popping the last element destroys the entry.
func (k *Keyspace) RPop(key []byte) (value []byte, ok bool, err error) {
	return k.listPop(key, false)
}

// LLen returns the length of key's LIST, or 0 if absent.
func (k *Keyspace) LLen(key []byte) (int, error) {
	e, err := requireType(k.lookup(key), List)
	if err != nil || e == nil {
		return 0, err
	}
	return e.Payload.(*list.List).Len(), nil
}

// LRange returns the elements of key's LIST between start and stop
// inclusive, with Redis' index semantics: negative indices count from the
// end, out-of-range bounds clamp, and start > stop yields an empty result.
func (k *Keyspace) LRange(key []byte, start, stop int) ([][]byte, error) {
	e, err := requireType(k.lookup(key), List)
	if err != nil || e == nil {
		return nil, err
	}

	l := e.Payload.(*list.List)
	n := l.Len()
	start = clampIndex(start, n)
	stop = clampIndex(stop, n)
	if start > stop || start >= n || n == 0 {
		return nil, nil
	}

	out := make([][]byte, 0, stop-start+1)
	i := 0
	for el := l.Front(); el != nil; el = el.Next() {
		if i > stop {
			break
		}
		if i >= start {
			out = append(out, el.Value.([]byte))
		}
		i++
	}
	return out, nil
}

// clampIndex resolves a possibly-negative Redis index against length n,
// clamping the result into [0, n] (the exclusive upper bound used for stop
// comparisons below).
func clampIndex(idx, n int) int {
	if idx < 0 {
		idx += n
	}
	if idx < 0 {
		idx = 0
	}
	if idx > n {
		idx = n
	}
	return idx
}

func (k *Keyspace) listFor(key []byte, create bool) (*Entry, *list.List, error) {
	e, err := requireType(k.lookup(key), List)
	if err != nil {
		return nil, nil, err
	}
	if e == nil {
		if !create {
			return nil, nil, nil
		}
		e = k.insert(key, List, list.New())
	}
	return e, e.Payload.(*list.List), nil
}

func (k *Keyspace) listPop(key []byte, front bool) ([]byte, bool, error) {
	e, l, err := k.listFor(key, false)
	if err != nil || e == nil || l.Len() == 0 {
		return nil, false, err
	}

	var el *list.Element
	if front {
		el = l.Front()
	} else {
		el = l.Back()
	}
	value := el.Value.([]byte)
	l.Remove(el)

	k.removeIfEmpty(e, l.Len() == 0)
	return value, true, nil
}
