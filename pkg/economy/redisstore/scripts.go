package redisstore

import "github.com/redis/go-redis/v9"

// script status codes
const (
	codeOK       = 1
	codeNotFound = -1
	codeRejected = -2
)

// KEYS[1] name index, KEYS[2] user hash
// ARGV id, name, credential, wallet
var createUserScript = redis.NewScript(`
if redis.call('SETNX', KEYS[1], ARGV[1]) == 0 then
	return -2
end
redis.call('HSET', KEYS[2], 'id', ARGV[1], 'name', ARGV[2], 'credential', ARGV[3], 'wallet', ARGV[4])
return 1
`)

// KEYS[1] user hash
// ARGV amount, negated amount
var debitWalletScript = redis.NewScript(`
local wallet = redis.call('HGET', KEYS[1], 'wallet')
if not wallet then
	return {-1, 0}
end
wallet = tonumber(wallet)
if wallet < tonumber(ARGV[1]) then
	return {-2, wallet}
end
return {1, redis.call('HINCRBY', KEYS[1], 'wallet', ARGV[2])}
`)

// KEYS[1] user hash
// ARGV amount
var creditWalletScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return {-1, 0}
end
return {1, redis.call('HINCRBY', KEYS[1], 'wallet', ARGV[1])}
`)

// KEYS[1] round hash
// ARGV cards
var replaceCardsScript = redis.NewScript(`
local status = redis.call('HGET', KEYS[1], 'status')
if not status then
	return -1
end
if status ~= 'active' then
	return -2
end
redis.call('HSET', KEYS[1], 'cards', ARGV[1])
return 1
`)

// KEYS[1] round hash
var claimRoundScript = redis.NewScript(`
local r = redis.call('HMGET', KEYS[1], 'status', 'user_id', 'ante', 'cards')
if not r[1] then
	return {'-1'}
end
if r[1] ~= 'active' then
	return {'-2'}
end
redis.call('HSET', KEYS[1], 'status', 'revealed')
return {'1', r[2], r[3], r[4]}
`)

// KEYS[1] pools hash
// ARGV win delta, house delta
var adjustPoolsScript = redis.NewScript(`
local win = tonumber(redis.call('HGET', KEYS[1], 'win_pool') or '0')
local house = tonumber(redis.call('HGET', KEYS[1], 'house_profit') or '0')
if win + tonumber(ARGV[1]) < 0 or house + tonumber(ARGV[2]) < 0 then
	return {-2, win, house}
end
win = redis.call('HINCRBY', KEYS[1], 'win_pool', ARGV[1])
house = redis.call('HINCRBY', KEYS[1], 'house_profit', ARGV[2])
return {1, win, house}
`)

// KEYS[1] pools hash
// ARGV amount, negated amount
var debitWinPoolScript = redis.NewScript(`
local win = tonumber(redis.call('HGET', KEYS[1], 'win_pool') or '0')
local house = tonumber(redis.call('HGET', KEYS[1], 'house_profit') or '0')
if win < tonumber(ARGV[1]) then
	return {-2, win, house}
end
win = redis.call('HINCRBY', KEYS[1], 'win_pool', ARGV[2])
return {1, win, house}
`)
