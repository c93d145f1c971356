package dispatch

// commandTable is the static command registry: name -> spec. Built once at
// package init, mirroring the original's Command.h enumeration of every
// supported verb, but looked up by map instead of a chain of string
// comparisons.
var commandTable = map[string]commandSpec{
	"PING": {name: "PING", arity: -1, handler: handlePing},

	"GET":    {name: "GET", arity: 2, handler: handleGet},
	"SET":    {name: "SET", arity: -3, isWrite: true, handler: handleSet},
	"DEL":    {name: "DEL", arity: -2, isWrite: true, handler: handleDel},
	"INCR":   {name: "INCR", arity: 2, isWrite: true, handler: handleIncr},
	"DECR":   {name: "DECR", arity: 2, isWrite: true, handler: handleDecr},
	"INCRBY": {name: "INCRBY", arity: 3, isWrite: true, handler: handleIncrBy},
	"DECRBY": {name: "DECRBY", arity: 3, isWrite: true, handler: handleDecrBy},
	"TYPE":   {name: "TYPE", arity: 2, handler: handleType},
	"EXISTS": {name: "EXISTS", arity: -2, handler: handleExists},
	"KEYS":   {name: "KEYS", arity: 2, handler: handleKeys},
	"RENAME": {name: "RENAME", arity: 3, isWrite: true, handler: handleRename},

	"EXPIRE":  {name: "EXPIRE", arity: 3, isWrite: true, handler: handleExpire},
	"PEXPIRE": {name: "PEXPIRE", arity: 3, isWrite: true, handler: handlePExpire},
	"PERSIST": {name: "PERSIST", arity: 2, isWrite: true, handler: handlePersist},
	"TTL":     {name: "TTL", arity: 2, handler: handleTTL},
	"PTTL":    {name: "PTTL", arity: 2, handler: handlePTTL},

	"LPUSH":  {name: "LPUSH", arity: -3, isWrite: true, handler: handleLPush},
	"RPUSH":  {name: "RPUSH", arity: -3, isWrite: true, handler: handleRPush},
	"LPOP":   {name: "LPOP", arity: 2, isWrite: true, handler: handleLPop},
	"RPOP":   {name: "RPOP", arity: 2, isWrite: true, handler: handleRPop},
	"LLEN":   {name: "LLEN", arity: 2, handler: handleLLen},
	"LRANGE": {name: "LRANGE", arity: 4, handler: handleLRange},

	"SADD":      {name: "SADD", arity: -3, isWrite: true, handler: handleSAdd},
	"SREM":      {name: "SREM", arity: -3, isWrite: true, handler: handleSRem},
	"SISMEMBER": {name: "SISMEMBER", arity: 3, handler: handleSIsMember},
	"SMEMBERS":  {name: "SMEMBERS", arity: 2, handler: handleSMembers},
	"SCARD":     {name: "SCARD", arity: 2, handler: handleSCard},

	"HSET":    {name: "HSET", arity: 4, isWrite: true, handler: handleHSet},
	"HMSET":   {name: "HMSET", arity: -4, isWrite: true, handler: handleHMSet},
	"HGET":    {name: "HGET", arity: 3, handler: handleHGet},
	"HMGET":   {name: "HMGET", arity: -3, handler: handleHMGet},
	"HDEL":    {name: "HDEL", arity: -3, isWrite: true, handler: handleHDel},
	"HGETALL": {name: "HGETALL", arity: 2, handler: handleHGetAll},
	"HLEN":    {name: "HLEN", arity: 2, handler: handleHLen},

	"ZADD":          {name: "ZADD", arity: 4, isWrite: true, handler: handleZAdd},
	"ZREM":          {name: "ZREM", arity: 3, isWrite: true, handler: handleZRem},
	"ZSCORE":        {name: "ZSCORE", arity: 3, handler: handleZScore},
	"ZRANK":         {name: "ZRANK", arity: 3, handler: handleZRank},
	"ZCARD":         {name: "ZCARD", arity: 2, handler: handleZCard},
	"ZRANGE":        {name: "ZRANGE", arity: -4, handler: handleZRange},
	"ZRANGEBYSCORE": {name: "ZRANGEBYSCORE", arity: -4, handler: handleZRangeByScore},

	"FLUSHALL":     {name: "FLUSHALL", arity: 1, isWrite: true, handler: handleFlushAll},
	"BGREWRITEAOF": {name: "BGREWRITEAOF", arity: 1, handler: handleBgRewriteAOF},
	"CONFIG":       {name: "CONFIG", arity: -3, handler: handleConfig},
	"CLIENT":       {name: "CLIENT", arity: -2, handler: handleClient},
}
