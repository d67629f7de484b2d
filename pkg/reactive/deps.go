package reactive

import "reflect"

// Deps is an ordered dependency list for UseEffect, UseCallback and UseMemo.
//
// A nil Deps means "no list": the hook treats every render as a change.
// An empty non-nil Deps (Deps{}) never changes after the first render.
//
// Elements are compared by identity, not by deep value. Put a slice in a
// Deps to key a hook on that slice's identity:
//
//	filters := reactive.UseRef(reactive.Deps{userID}).Current()
//	fetch := reactive.UseCallback(load, reactive.Deps{filters})
type Deps []any

// SameDeps reports whether two dependency lists are identical for the
// purpose of skipping a hook's setup.
//
// Rules, per element:
//   - comparable values (numbers, strings, pointers, interfaces holding
//     comparable values) compare with ==
//   - slices are the same when they share a backing array and a length
//   - maps and channels compare by address
//   - funcs are never the same; closures are rebuilt on every render
//
// A nil list on either side is never the same.
func SameDeps(prev, next Deps) bool {
	if prev == nil || next == nil {
		return false
	}
	if len(prev) != len(next) {
		return false
	}
	for i := range prev {
		if !sameValue(prev[i], next[i]) {
			return false
		}
	}
	return true
}

// sameValue compares a single dependency element by identity.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Func:
		return false
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Map, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	}

	// Structs and arrays may hold non-comparable values behind interfaces;
	// Value.Comparable checks the dynamic contents.
	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return va.Equal(vb)
}
