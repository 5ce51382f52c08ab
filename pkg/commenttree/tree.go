// Package commenttree applies localized edits to a nested comment forest.
//
// The forest is never mutated. Apply returns a new top-level slice in which
// only the nodes on the path from the root to the edited node are copies;
// every other subtree is the same pointer as in the input. Callers that
// detect changes by reference equality therefore see exactly one changed
// branch.
package commenttree

import (
	"errors"
	"fmt"

	"github.com/akinalp/sphere/models"
	"github.com/akinalp/sphere/pkg"
)

// Mode selects what Apply does to the target's replies.
type Mode int

const (
	// ModeReplace installs the payload as the target's full reply list.
	// Used after a page of replies is fetched.
	ModeReplace Mode = iota + 1
	// ModeAdd appends exactly one reply to the target's reply list.
	// Used after a reply is submitted.
	ModeAdd
)

func (m Mode) String() string {
	switch m {
	case ModeReplace:
		return "replace"
	case ModeAdd:
		return "add"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Outcomes other than success. They wrap the domain errors in pkg so the
// HTTP layer maps them without knowing this package.
var (
	// ErrNotFound: the target id is nowhere in the forest. A stale id or a
	// caller bug; propagate it.
	ErrNotFound = fmt.Errorf("%w: target comment not in thread", pkg.ErrNotFound)
	// ErrDuplicateReply: the reply is already under the target. An expected
	// double-submit race; callers ignore it.
	ErrDuplicateReply = fmt.Errorf("%w: reply already present", pkg.ErrAlreadyExists)
	// ErrInvalidArgument: the payload does not fit the mode. A programming
	// error, never corrected silently.
	ErrInvalidArgument = fmt.Errorf("%w: invalid tree edit", pkg.ErrBadRequest)
)

// Apply finds targetID anywhere in forest (depth-first, forest order, first
// match) and edits its replies according to mode.
//
// On success it returns the new forest and a nil error. On any error the
// returned forest is nil and the input is untouched.
func Apply(forest []*models.Comment, targetID string, payload []*models.Comment, mode Mode) ([]*models.Comment, error) {
	switch mode {
	case ModeReplace:
	case ModeAdd:
		if len(payload) != 1 {
			return nil, fmt.Errorf("%w: add expects exactly one reply, got %d", ErrInvalidArgument, len(payload))
		}
		if payload[0] == nil {
			return nil, fmt.Errorf("%w: add got a nil reply", ErrInvalidArgument)
		}
	default:
		return nil, fmt.Errorf("%w: unknown %s", ErrInvalidArgument, mode)
	}

	out, err := applyLevel(forest, targetID, payload, mode)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, targetID)
	}
	return out, nil
}

// applyLevel returns nil, nil when targetID is not under nodes.
func applyLevel(nodes []*models.Comment, targetID string, payload []*models.Comment, mode Mode) ([]*models.Comment, error) {
	for i, node := range nodes {
		if node == nil {
			continue
		}

		if node.ID == targetID {
			edited, err := edit(node, payload, mode)
			if err != nil {
				return nil, err
			}
			return replaceAt(nodes, i, edited), nil
		}

		if len(node.Replies) == 0 {
			continue
		}

		children, err := applyLevel(node.Replies, targetID, payload, mode)
		if err != nil {
			return nil, err
		}
		if children != nil {
			cp := *node
			cp.Replies = children
			return replaceAt(nodes, i, &cp), nil
		}
	}
	return nil, nil
}

func edit(node *models.Comment, payload []*models.Comment, mode Mode) (*models.Comment, error) {
	cp := *node

	switch mode {
	case ModeReplace:
		cp.Replies = payload
	case ModeAdd:
		reply := payload[0]
		for _, existing := range node.Replies {
			if existing != nil && existing.ID == reply.ID {
				return nil, fmt.Errorf("%w: %s under %s", ErrDuplicateReply, reply.ID, node.ID)
			}
		}

		// Fresh backing array: appending to node.Replies could write into
		// a slot the original forest still sees.
		replies := make([]*models.Comment, len(node.Replies), len(node.Replies)+1)
		copy(replies, node.Replies)
		cp.Replies = append(replies, reply)

		if cp.RepliesCount < len(cp.Replies) {
			cp.RepliesCount = len(cp.Replies)
		}
	}

	return &cp, nil
}

// replaceAt copies nodes with nodes[i] swapped for node.
func replaceAt(nodes []*models.Comment, i int, node *models.Comment) []*models.Comment {
	out := make([]*models.Comment, len(nodes))
	copy(out, nodes)
	out[i] = node
	return out
}

// Find returns the node with the given id, or nil. The node is shared with
// the forest and must be treated as read-only.
func Find(forest []*models.Comment, id string) *models.Comment {
	var found *models.Comment
	Walk(forest, func(c *models.Comment, _ int) bool {
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// Walk visits every loaded node in pre-order with its depth (0 for
// top-level). Returning false from fn stops the walk.
func Walk(forest []*models.Comment, fn func(c *models.Comment, depth int) bool) {
	walk(forest, 0, fn)
}

func walk(nodes []*models.Comment, depth int, fn func(*models.Comment, int) bool) bool {
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if !fn(node, depth) {
			return false
		}
		if !walk(node.Replies, depth+1, fn) {
			return false
		}
	}
	return true
}

// Outcome names the result of an Apply call for logs and metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "applied"
	case errors.Is(err, ErrDuplicateReply):
		return "duplicate"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid"
	default:
		return "error"
	}
}
