package dispatch

import (
	"strconv"

	"github.com/iamNilotpal/redcask/internal/resp"
	"github.com/iamNilotpal/redcask/internal/zset"
)

func okReply() resp.Value           { return resp.NewSimpleString("OK") }
func intReply(n int64) resp.Value   { return resp.NewInteger(n) }
func boolAsInt(b bool) resp.Value   { return resp.NewInteger(boolToInt64(b)) }
func bulkReply(b []byte) resp.Value { return resp.NewBulkString(b) }
func arrayOfBulk(items [][]byte) resp.Value {
	vals := make([]resp.Value, len(items))
	for i, it := range items {
		vals[i] = resp.NewBulkString(it)
	}
	return resp.NewArray(vals)
}

func boolToInt64(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func parseInt(arg []byte) (int64, error) {
	n, err := strconv.ParseInt(string(arg), 10, 64)
	if err != nil {
		return 0, newNotAnInteger(arg)
	}
	return n, nil
}

func parseFloat(arg []byte) (float64, error) {
	f, err := strconv.ParseFloat(string(arg), 64)
	if err != nil {
		return 0, newNotAFloat(arg)
	}
	return f, nil
}

// handleGet, handleSet, ... are kept as free functions, one per command,
// registered into commandTable below — the original's Command.h lists
// commands the same way, one entry per supported verb.

func handleGet(d *Dispatcher, args [][]byte) resp.Value {
	v, ok, err := d.ks.Get(args[1])
	if err != nil {
		return errorReply(err)
	}
	if !ok {
		return resp.NewNull()
	}
	return bulkReply(v)
}

func handleSet(d *Dispatcher, args [][]byte) resp.Value {
	ttl := keyspaceNoExpiryMs
	for i := 3; i < len(args); i++ {
		switch equalFoldStr(args[i]) {
		case "PX":
			if i+1 >= len(args) {
				return resp.NewError("ERR syntax error")
			}
			ms, err := parseInt(args[i+1])
			if err != nil {
				return errorReply(err)
			}
			ttl = ms
			i++
		case "EX":
			if i+1 >= len(args) {
				return resp.NewError("ERR syntax error")
			}
			secs, err := parseInt(args[i+1])
			if err != nil {
				return errorReply(err)
			}
			ttl = secs * 1000
			i++
		default:
			return resp.NewError("ERR syntax error")
		}
	}
	d.ks.Set(args[1], args[2], ttl)
	return okReply()
}

func handleDel(d *Dispatcher, args [][]byte) resp.Value {
	count := int64(0)
	for _, key := range args[1:] {
		if d.ks.Del(key) {
			count++
		}
	}
	return intReply(count)
}

func handleIncr(d *Dispatcher, args [][]byte) resp.Value {
	return incrByReply(d, args[1], 1)
}

func handleDecr(d *Dispatcher, args [][]byte) resp.Value {
	return incrByReply(d, args[1], -1)
}

func handleIncrBy(d *Dispatcher, args [][]byte) resp.Value {
	delta, err := parseInt(args[2])
	if err != nil {
		return errorReply(err)
	}
	return incrByReply(d, args[1], delta)
}

func handleDecrBy(d *Dispatcher, args [][]byte) resp.Value {
	delta, err := parseInt(args[2])
	if err != nil {
		return errorReply(err)
	}
	return incrByReply(d, args[1], -delta)
}

func incrByReply(d *Dispatcher, key []byte, delta int64) resp.Value {
	n, err := d.ks.IncrBy(key, delta)
	if err != nil {
		return errorReply(err)
	}
	return intReply(n)
}

func handleType(d *Dispatcher, args [][]byte) resp.Value {
	return resp.NewSimpleString(d.ks.Type(args[1]))
}

func handleExists(d *Dispatcher, args [][]byte) resp.Value {
	count := int64(0)
	for _, key := range args[1:] {
		if d.ks.Exists(key) {
			count++
		}
	}
	return intReply(count)
}

func handleKeys(d *Dispatcher, args [][]byte) resp.Value {
	return arrayOfBulk(d.ks.Keys(string(args[1])))
}

func handleRename(d *Dispatcher, args [][]byte) resp.Value {
	if !d.ks.Rename(args[1], args[2]) {
		return resp.NewError("ERR no such key")
	}
	return okReply()
}

func handleExpire(d *Dispatcher, args [][]byte) resp.Value {
	secs, err := parseInt(args[2])
	if err != nil {
		return errorReply(err)
	}
	return boolAsInt(d.ks.Expire(args[1], secs))
}

func handlePExpire(d *Dispatcher, args [][]byte) resp.Value {
	ms, err := parseInt(args[2])
	if err != nil {
		return errorReply(err)
	}
	return boolAsInt(d.ks.PExpire(args[1], ms))
}

func handlePersist(d *Dispatcher, args [][]byte) resp.Value {
	return boolAsInt(d.ks.Persist(args[1]))
}

func handleTTL(d *Dispatcher, args [][]byte) resp.Value {
	return intReply(d.ks.TTL(args[1]))
}

func handlePTTL(d *Dispatcher, args [][]byte) resp.Value {
	return intReply(d.ks.PTTL(args[1]))
}

func handleLPush(d *Dispatcher, args [][]byte) resp.Value {
	n, err := d.ks.LPush(args[1], args[2:]...)
	if err != nil {
		return errorReply(err)
	}
	return intReply(int64(n))
}

func handleRPush(d *Dispatcher, args [][]byte) resp.Value {
	n, err := d.ks.RPush(args[1], args[2:]...)
	if err != nil {
		return errorReply(err)
	}
	return intReply(int64(n))
}

func handleLPop(d *Dispatcher, args [][]byte) resp.Value {
	v, ok, err := d.ks.LPop(args[1])
	if err != nil {
		return errorReply(err)
	}
	if !ok {
		return resp.NewNull()
	}
	return bulkReply(v)
}

func handleRPop(d *Dispatcher, args [][]byte) resp.Value {
	v, ok, err := d.ks.RPop(args[1])
	if err != nil {
		return errorReply(err)
	}
	if !ok {
		return resp.NewNull()
	}
	return bulkReply(v)
}

func handleLLen(d *Dispatcher, args [][]byte) resp.Value {
	n, err := d.ks.LLen(args[1])
	if err != nil {
		return errorReply(err)
	}
	return intReply(int64(n))
}

func handleLRange(d *Dispatcher, args [][]byte) resp.Value {
	start, err := parseInt(args[2])
	if err != nil {
		return errorReply(err)
	}
	stop, err := parseInt(args[3])
	if err != nil {
		return errorReply(err)
	}
	items, err := d.ks.LRange(args[1], int(start), int(stop))
	if err != nil {
		return errorReply(err)
	}
	return arrayOfBulk(items)
}

func handleSAdd(d *Dispatcher, args [][]byte) resp.Value {
	n, err := d.ks.SAdd(args[1], args[2:]...)
	if err != nil {
		return errorReply(err)
	}
	return intReply(int64(n))
}

func handleSRem(d *Dispatcher, args [][]byte) resp.Value {
	n, err := d.ks.SRem(args[1], args[2:]...)
	if err != nil {
		return errorReply(err)
	}
	return intReply(int64(n))
}

func handleSIsMember(d *Dispatcher, args [][]byte) resp.Value {
	ok, err := d.ks.SIsMember(args[1], args[2])
	if err != nil {
		return errorReply(err)
	}
	return boolAsInt(ok)
}

func handleSMembers(d *Dispatcher, args [][]byte) resp.Value {
	members, err := d.ks.SMembers(args[1])
	if err != nil {
		return errorReply(err)
	}
	return arrayOfBulk(members)
}

func handleSCard(d *Dispatcher, args [][]byte) resp.Value {
	n, err := d.ks.SCard(args[1])
	if err != nil {
		return errorReply(err)
	}
	return intReply(int64(n))
}

func handleHSet(d *Dispatcher, args [][]byte) resp.Value {
	created, err := d.ks.HSet(args[1], args[2], args[3])
	if err != nil {
		return errorReply(err)
	}
	return boolAsInt(created)
}

func handleHMSet(d *Dispatcher, args [][]byte) resp.Value {
	if len(args[2:])%2 != 0 {
		return resp.NewError("ERR wrong number of arguments for 'hmset' command")
	}
	pairs := make([][2][]byte, 0, len(args[2:])/2)
	for i := 2; i < len(args); i += 2 {
		pairs = append(pairs, [2][]byte{args[i], args[i+1]})
	}
	if err := d.ks.HMSet(args[1], pairs); err != nil {
		return errorReply(err)
	}
	return okReply()
}

func handleHGet(d *Dispatcher, args [][]byte) resp.Value {
	v, ok, err := d.ks.HGet(args[1], args[2])
	if err != nil {
		return errorReply(err)
	}
	if !ok {
		return resp.NewNull()
	}
	return bulkReply(v)
}

func handleHMGet(d *Dispatcher, args [][]byte) resp.Value {
	values, err := d.ks.HMGet(args[1], args[2:])
	if err != nil {
		return errorReply(err)
	}
	vals := make([]resp.Value, len(values))
	for i, v := range values {
		if v == nil {
			vals[i] = resp.NewNull()
		} else {
			vals[i] = bulkReply(v)
		}
	}
	return resp.NewArray(vals)
}

func handleHDel(d *Dispatcher, args [][]byte) resp.Value {
	n, err := d.ks.HDel(args[1], args[2:]...)
	if err != nil {
		return errorReply(err)
	}
	return intReply(int64(n))
}

func handleHGetAll(d *Dispatcher, args [][]byte) resp.Value {
	pairs, err := d.ks.HGetAll(args[1])
	if err != nil {
		return errorReply(err)
	}
	vals := make([]resp.Value, 0, len(pairs)*2)
	for _, p := range pairs {
		vals = append(vals, bulkReply(p[0]), bulkReply(p[1]))
	}
	return resp.NewArray(vals)
}

func handleHLen(d *Dispatcher, args [][]byte) resp.Value {
	n, err := d.ks.HLen(args[1])
	if err != nil {
		return errorReply(err)
	}
	return intReply(int64(n))
}

func handleZAdd(d *Dispatcher, args [][]byte) resp.Value {
	score, err := parseFloat(args[2])
	if err != nil {
		return errorReply(err)
	}
	added, err := d.ks.ZAdd(args[1], args[3], score)
	if err != nil {
		return errorReply(err)
	}
	return boolAsInt(added)
}

func handleZRem(d *Dispatcher, args [][]byte) resp.Value {
	removed, err := d.ks.ZRem(args[1], args[2])
	if err != nil {
		return errorReply(err)
	}
	return boolAsInt(removed)
}

func handleZScore(d *Dispatcher, args [][]byte) resp.Value {
	score, ok, err := d.ks.ZScore(args[1], args[2])
	if err != nil {
		return errorReply(err)
	}
	if !ok {
		return resp.NewNull()
	}
	return bulkReply([]byte(strconv.FormatFloat(score, 'g', -1, 64)))
}

func handleZRank(d *Dispatcher, args [][]byte) resp.Value {
	rank, ok, err := d.ks.ZRank(args[1], args[2])
	if err != nil {
		return errorReply(err)
	}
	if !ok {
		return resp.NewNull()
	}
	return intReply(int64(rank))
}

func handleZCard(d *Dispatcher, args [][]byte) resp.Value {
	n, err := d.ks.ZCard(args[1])
	if err != nil {
		return errorReply(err)
	}
	return intReply(int64(n))
}

func zrangeReply(entries []zset.RangeEntry, withScores bool) resp.Value {
	vals := make([]resp.Value, 0, len(entries)*2)
	for _, e := range entries {
		vals = append(vals, bulkReply(e.Member))
		if withScores {
			vals = append(vals, bulkReply([]byte(strconv.FormatFloat(e.Score, 'g', -1, 64))))
		}
	}
	return resp.NewArray(vals)
}

func handleZRange(d *Dispatcher, args [][]byte) resp.Value {
	start, err := parseInt(args[2])
	if err != nil {
		return errorReply(err)
	}
	stop, err := parseInt(args[3])
	if err != nil {
		return errorReply(err)
	}
	withScores := len(args) >= 5 && equalFoldStr(args[4]) == "WITHSCORES"

	entries, err := d.ks.ZRange(args[1], int(start), int(stop))
	if err != nil {
		return errorReply(err)
	}
	return zrangeReply(entries, withScores)
}

func handleZRangeByScore(d *Dispatcher, args [][]byte) resp.Value {
	min, err := parseFloat(args[2])
	if err != nil {
		return errorReply(err)
	}
	max, err := parseFloat(args[3])
	if err != nil {
		return errorReply(err)
	}
	withScores := len(args) >= 5 && equalFoldStr(args[4]) == "WITHSCORES"

	entries, err := d.ks.ZRangeByScore(args[1], min, max)
	if err != nil {
		return errorReply(err)
	}
	return zrangeReply(entries, withScores)
}

func handleFlushAll(d *Dispatcher, args [][]byte) resp.Value {
	d.ks.FlushAll()
	return okReply()
}

func handleConfig(d *Dispatcher, args [][]byte) resp.Value {
	switch equalFoldStr(args[1]) {
	case "GET":
		value, ok := d.runtime.ConfigGet(string(args[2]))
		if !ok {
			return resp.NewArray(nil)
		}
		return resp.NewArray([]resp.Value{bulkReply(args[2]), bulkReply([]byte(value))})
	case "SET":
		if len(args) != 4 {
			return resp.NewError("ERR wrong number of arguments for 'CONFIG SET' command")
		}
		if !d.runtime.ConfigSet(string(args[2]), string(args[3])) {
			return resp.NewError("ERR unsupported CONFIG parameter or value")
		}
		return okReply()
	default:
		return resp.NewError("ERR unknown CONFIG subcommand")
	}
}

func handleClient(d *Dispatcher, args [][]byte) resp.Value {
	return okReply()
}

func handleBgRewriteAOF(d *Dispatcher, args [][]byte) resp.Value {
	if d.rewrite == nil {
		return resp.NewError("ERR background rewrite not available")
	}
	if err := d.rewrite(); err != nil {
		return errorReply(err)
	}
	return resp.NewSimpleString("Background append only file rewriting started")
}

func handlePing(d *Dispatcher, args [][]byte) resp.Value {
	if len(args) == 2 {
		return bulkReply(args[1])
	}
	return resp.NewSimpleString("PONG")
}
