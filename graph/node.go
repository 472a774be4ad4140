package graph

import "fmt"

// nodeString returns a string representation of a node value.
func nodeString[N comparable](n N) string {
	if s, ok := any(n).(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", n)
}
