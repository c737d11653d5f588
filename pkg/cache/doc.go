// Package cache provides a generic, mutex-guarded LRU cache with hit and miss
// counters. The harness keeps compiled unit handles in it, keyed by source
// digest.
//
// # Usage
//
//	c, err := cache.New[string, *Handle](128)
//	if err != nil {
//		return err
//	}
//
//	h, err := c.GetOrLoad(key, func() (*Handle, error) {
//		return compile(src)
//	})
//
//	st := c.Stats() // Hits, Misses, Evictions, Len, Capacity
//
// Loader calls for different keys run concurrently. Concurrent GetOrLoad calls
// for the same missing key may each run the loader; the first stored value
// wins and is returned to every caller.
package cache
