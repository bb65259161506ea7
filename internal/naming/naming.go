// Package naming mints the binding names threaded through a compiled query.
package naming

import "strconv"

// Canonical is the fixed binding of a Select-by-ID block in first position.
const Canonical = "n"

// Allocator hands out collision-free binding names for one compilation.
// The zero value is ready to use.
type Allocator struct {
	counter int
}

// Entity returns a fresh entity binding: n1, n2, ...
func (a *Allocator) Entity() string {
	a.counter++
	return "n" + strconv.Itoa(a.counter)
}

// Pair returns a fresh entity binding and the path binding that shares its
// suffix, for emitters that bind both at once.
func (a *Allocator) Pair() (entity, path string) {
	a.counter++
	suffix := strconv.Itoa(a.counter)
	return "n" + suffix, "p" + suffix
}

// Target returns a fresh binding for a path's far end and the path binding
// itself.
func (a *Allocator) Target() (target, path string) {
	a.counter++
	suffix := strconv.Itoa(a.counter)
	return "t" + suffix, "p" + suffix
}
