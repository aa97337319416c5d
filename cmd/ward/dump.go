package main

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"ward"
)

// Current schema version - increment when snapshotNode format changes
const snapshotSchemaVersion uint16 = 1

// snapshot is the msgpack payload for a classified hint tree. Compiled
// closures are not serializable; the snapshot carries the normalized
// tree so external tooling can inspect or diff hint structure.
type snapshot struct {
	Schema uint16       `msgpack:"schema"`
	Root   snapshotNode `msgpack:"root"`
}

type snapshotNode struct {
	Sign     string         `msgpack:"sign"`
	Key      string         `msgpack:"key"`
	Rendered string         `msgpack:"rendered"`
	Type     string         `msgpack:"type,omitempty"`
	Tower    string         `msgpack:"tower,omitempty"`
	Literals []string       `msgpack:"literals,omitempty"`
	Children []snapshotNode `msgpack:"children,omitempty"`
}

func writeSnapshot(path string, root *ward.Node) error {
	payload := snapshot{Schema: snapshotSchemaVersion, Root: snapshotFrom(root)}
	data, err := msgpack.Marshal(&payload)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

func snapshotFrom(n *ward.Node) snapshotNode {
	sn := snapshotNode{
		Sign:     n.Sign.String(),
		Key:      n.Key(),
		Rendered: n.String(),
	}
	if n.Type != nil {
		sn.Type = n.Type.String()
	}
	if n.Tower != 0 {
		sn.Tower = n.Tower.String()
	}
	for _, v := range n.Literals {
		if s, ok := v.(string); ok {
			sn.Literals = append(sn.Literals, fmt.Sprintf("%q", s))
		} else {
			sn.Literals = append(sn.Literals, fmt.Sprintf("%v", v))
		}
	}
	for _, c := range n.Children {
		sn.Children = append(sn.Children, snapshotFrom(c))
	}
	return sn
}
