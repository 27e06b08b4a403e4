// Copyright 2026 The CC Authors.
//
// Use of this software is governed by the Apache License, Version 2.0,
// available at http://www.apache.org/licenses/LICENSE-2.0.

package ordmap

import (
	"github.com/cockroachdb/errors"
)

// CheckInvariants verifies the red-black properties, the ordering of keys,
// the subtree size annotations, and parent-pointer consistency.
func (m *Map[K, V]) CheckInvariants() error {
	if m.sent.color != black {
		return errors.New("sentinel is not black")
	}
	if m.sent.size != 0 {
		return errors.New("sentinel has nonzero size")
	}
	if m.root != m.sent && m.root.color != black {
		return errors.New("root is not black")
	}
	_, err := m.checkSubtree(m.root)
	return err
}

// checkSubtree returns the black height of n's subtree.
func (m *Map[K, V]) checkSubtree(n *node[K, V]) (int, error) {
	if n == m.sent {
		return 1, nil
	}
	if n.parent == n {
		return 0, errors.New("reachable node carries the stale marker")
	}
	if n.color == red && (n.left.color == red || n.right.color == red) {
		return 0, errors.Newf("red node %v has a red child", n.key)
	}
	if n.left != m.sent {
		if n.left.parent != n {
			return 0, errors.Newf("node %v: left child's parent pointer is wrong", n.key)
		}
		if m.cfg.cmp(n.left.key, n.key) >= 0 {
			return 0, errors.Newf("node %v: left child %v is not smaller", n.key, n.left.key)
		}
	}
	if n.right != m.sent {
		if n.right.parent != n {
			return 0, errors.Newf("node %v: right child's parent pointer is wrong", n.key)
		}
		if m.cfg.cmp(n.right.key, n.key) <= 0 {
			return 0, errors.Newf("node %v: right child %v is not larger", n.key, n.right.key)
		}
	}
	if want := n.left.size + n.right.size + 1; n.size != want {
		return 0, errors.Newf("node %v: size %d, want %d", n.key, n.size, want)
	}
	lh, err := m.checkSubtree(n.left)
	if err != nil {
		return 0, err
	}
	rh, err := m.checkSubtree(n.right)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, errors.Newf("node %v: black height mismatch %d vs %d", n.key, lh, rh)
	}
	if n.color == black {
		lh++
	}
	return lh, nil
}
