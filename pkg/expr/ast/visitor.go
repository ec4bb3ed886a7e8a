package ast

import (
	"errors"
	"reflect"
)

// SkipChildren can be returned by a WalkFunc to skip the children of the
// current node without stopping the walk.
var SkipChildren = errors.New("skip children")

// WalkFunc is called for every node visited by Walk.
type WalkFunc func(Metric) error

// Children returns the metric-typed children of m in source order.
// Parameters (factors, percentages, durations) are not children.
func Children(m Metric) []Metric {
	switch n := m.(type) {
	case *Avg:
		return []Metric{n.Child}
	case *Max:
		return []Metric{n.Child}
	case *Min:
		return []Metric{n.Child}
	case *Product:
		return []Metric{n.Child}
	case *Stack:
		return []Metric{n.Child}
	case *Diff:
		return []Metric{n.Left, n.Right}
	case *Divide:
		return []Metric{n.Left, n.Right}
	case *Scale:
		return []Metric{n.Child}
	case *Offset:
		return []Metric{n.Child}
	case *Percentile:
		return []Metric{n.Child}
	case *TimeShift:
		return []Metric{n.Child}
	case *MovingAverage:
		return []Metric{n.Child}
	case *LinearRegression:
		return []Metric{n.Child}
	case *TimeLeftForecast:
		return []Metric{n.Child}
	case *Group:
		return n.Children
	}
	return nil
}

// Walk traverses the tree rooted at m depth-first, left to right, and calls
// fn for each node before its children. It returns the first error returned
// by fn, except SkipChildren which only prunes the current subtree.
// Nil children are skipped.
func Walk(m Metric, fn WalkFunc) error {
	if IsNil(m) {
		return nil
	}
	if err := fn(m); err != nil {
		if err == SkipChildren {
			return nil
		}
		return err
	}
	for _, child := range Children(m) {
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of nodes in the tree rooted at m.
func Count(m Metric) int {
	n := 0
	_ = Walk(m, func(Metric) error {
		n++
		return nil
	})
	return n
}

// Equal reports whether a and b are structurally equal trees.
// Literal tokens are compared by their source text.
func Equal(a, b Metric) bool {
	return reflect.DeepEqual(a, b)
}

// IsNil reports whether m is nil or a typed nil node pointer.
func IsNil(m Metric) bool {
	if m == nil {
		return true
	}
	v := reflect.ValueOf(m)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
