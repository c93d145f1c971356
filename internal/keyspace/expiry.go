package keyspace

// Expire sets key's expiry deadline to seconds from now. Reports whether
// key existed.
func (k *Keyspace) Expire(key []byte, seconds int64) bool {
	return k.PExpire(key, seconds*1000)
}

// PExpire sets key's expiry deadline to ms milliseconds from now. Reports
// whether key existed.
func (k *Keyspace) PExpire(key []byte, ms int64) bool {
	e := k.lookup(key)
	if e == nil {
		return false
	}
	e.ExpireAt = nowMillis() + ms
	return true
}

// Persist clears key's expiry deadline. Reports whether key existed and
// actually had one to clear.
func (k *Keyspace) Persist(key []byte) bool {
	e := k.lookup(key)
	if e == nil || e.ExpireAt == NoExpiry {
		return false
	}
	e.ExpireAt = NoExpiry
	return true
}

// TTL returns key's remaining lifetime in whole seconds: -2 if absent, -1
// if it never expires, the rounded-up remaining seconds otherwise.
func (k *Keyspace) TTL(key []byte) int64 {
	ms := k.PTTL(key)
	if ms < 0 {
		return ms
	}
	return (ms + 999) / 1000
}

// PTTL returns key's remaining lifetime in milliseconds: -2 if absent, -1
// if it never expires, the remaining milliseconds otherwise.
func (k *Keyspace) PTTL(key []byte) int64 {
	e := k.lookup(key)
	if e == nil {
		return -2
	}
	if e.ExpireAt == NoExpiry {
		return -1
	}
	remaining := e.ExpireAt - nowMillis()
	if remaining < 0 {
		return 0
	}
	return remaining
}
