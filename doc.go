// Package boundedfifo provides a bounded, thread-safe FIFO for pipelines
// whose producers and consumers run at different rates.
//
// A queue is created with a fixed overflow policy and a capacity. The
// capacity is either an item count (New) or a cumulative per-item weight
// such as playback duration (NewWeighted); both variants share the same
// queue type and differ only in how fullness is measured. Push never
// blocks: against a full queue it either rejects the new item or evicts
// the oldest resident one, depending on the policy. Pull blocks until an
// item is available, optionally bounded by a timeout.
//
// All operations on one queue serialise on a single lock. Blocked
// consumers re-check the emptiness predicate under that lock after every
// wake, so spurious wakes and consumers racing for the same item resolve
// to exactly one winner per item. A timed pull that expires consumes
// nothing; a producer signal racing the timeout is kept for the next
// caller.
//
// Items are owned exclusively: by the producer before Push, by the queue
// while resident, and by the consumer after Pull. Items the queue discards
// itself, through eviction or Clear, are handed to the optional release
// hook installed with WithRelease; its errors surface from Push and Clear.
package boundedfifo
