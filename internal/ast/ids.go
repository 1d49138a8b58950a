package ast

// NodeID addresses a node in a Tree's arena.
type NodeID uint32

// NoNodeID marks an absent node (e.g. a bare "return;").
const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }
