// Package plan turns a group specification such as "val,sentry:3,seed:0"
// into the ordered list of (group, index) slots that drives key generation.
//
// Output order is part of the contract: groups in token order, indices
// ascending. Re-running with the same inputs yields the same names in the
// same order.
package plan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DeBrosOfficial/keygen/pkg/errors"
)

const field = "group_prefix_list"

// MaxSlots caps the number of slots a plan may hold, per group and in total.
const MaxSlots = 100_000

// Group is a named node group and how many nodes it holds.
type Group struct {
	Name  string
	Count int
}

// Slot is one node position within a group.
type Slot struct {
	Group string
	Index int
}

// Parse splits spec on ',' into groups. A token is either "name", which takes
// defaultCount, or "name:count". Surrounding whitespace is ignored and empty
// tokens are skipped, so "" yields no groups.
func Parse(spec string, defaultCount int) ([]Group, error) {
	if defaultCount < 0 || defaultCount > MaxSlots {
		return nil, errors.NewValidationError("global_node_per_group",
			fmt.Sprintf("must be between 0 and %d; got %d", MaxSlots, defaultCount), defaultCount)
	}

	var groups []Group
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		g, err := parseToken(token, defaultCount)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	if err := Check(groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Check rejects groups with a negative count or more than MaxSlots slots in
// total.
func Check(groups []Group) error {
	total := 0
	for _, g := range groups {
		if g.Count < 0 || g.Count > MaxSlots {
			return errors.NewValidationError(field,
				fmt.Sprintf("group %q: count must be between 0 and %d; got %d", g.Name, MaxSlots, g.Count), g.Count)
		}
		total += g.Count
		if total > MaxSlots {
			return errors.NewValidationError(field,
				fmt.Sprintf("plan holds more than %d slots", MaxSlots), total)
		}
	}
	return nil
}

func parseToken(token string, defaultCount int) (Group, error) {
	name, countStr, hasCount := strings.Cut(token, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return Group{}, errors.NewValidationError(field,
			fmt.Sprintf("missing group name in token %q", token), token)
	}
	if !hasCount {
		return Group{Name: name, Count: defaultCount}, nil
	}

	countStr = strings.TrimSpace(countStr)
	count, err := strconv.ParseUint(countStr, 10, 31)
	if err != nil {
		return Group{}, errors.NewValidationError(field,
			fmt.Sprintf("malformed count %q in token %q; expected a non-negative integer", countStr, token), token)
	}
	return Group{Name: name, Count: int(count)}, nil
}

// Enumerate lists every slot, group by group, indices 0..Count-1.
// Groups must pass Check.
func Enumerate(groups []Group) []Slot {
	slots := make([]Slot, 0, Total(groups))
	for _, g := range groups {
		for i := 0; i < g.Count; i++ {
			slots = append(slots, Slot{Group: g.Name, Index: i})
		}
	}
	return slots
}

// Total is the number of slots Enumerate returns.
func Total(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += g.Count
	}
	return n
}
