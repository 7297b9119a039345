// Package cache provides a generic thread-safe LRU cache.
//
//	c := cache.New[string, *template.Template](64)
//	c.Put("welcome.tmpl", tmpl)
//	tmpl, ok := c.Get("welcome.tmpl")
//
// OnEvict releases resources held by entries that leave the cache:
//
//	c := cache.New(128, cache.OnEvict(func(id string, b *Broadcaster) { _ = b.Close() }))
package cache
