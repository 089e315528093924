package exam

import (
	"strconv"
	"strings"

	"github.com/abhisek/certprep/internal/errors"
)

type targetKind int

const (
	targetNext targetKind = iota + 1
	targetPrev
	targetIndex
)

// Target is a navigation destination: Next, Prev or an absolute index.
type Target struct {
	kind  targetKind
	index int
}

var (
	Next = Target{kind: targetNext}
	Prev = Target{kind: targetPrev}
)

// Index targets the question at i.
func Index(i int) Target {
	return Target{kind: targetIndex, index: i}
}

// ParseTarget accepts "next", "prev" or a zero-based question index.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "next":
		return Next, nil
	case "prev", "previous":
		return Prev, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Target{}, errors.InvalidInput("navigation target %q is not next, prev or an index", s)
	}
	return Index(i), nil
}

func (t Target) String() string {
	switch t.kind {
	case targetNext:
		return "next"
	case targetPrev:
		return "prev"
	case targetIndex:
		return strconv.Itoa(t.index)
	default:
		return "invalid"
	}
}
