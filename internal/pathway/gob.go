package pathway

import (
	"bytes"
	"encoding/gob"
)

// gobGraph is the exported-field mirror of Graph used for gob encoding;
// Graph itself keeps its adjacency indices unexported so callers can only
// build one through Compile/Trivial.
type gobGraph struct {
	Edges []Edge
	Nodes int
}

// GobEncode implements gob.GobEncoder, since Graph's fields are otherwise
// unexported and invisible to gob's default struct encoding.
func (g *Graph) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(gobGraph{Edges: g.edges, Nodes: g.nodes}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder, rebuilding the adjacency indices
// from the decoded edge list.
func (g *Graph) GobDecode(data []byte) error {
	var gg gobGraph
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&gg); err != nil {
		return err
	}

	g.edges = gg.Edges
	g.nodes = gg.Nodes
	g.out = make(map[int][]int, gg.Nodes)
	g.in = make(map[int][]int, gg.Nodes)
	for _, e := range g.edges {
		g.out[e.From] = append(g.out[e.From], e.ID)
		g.in[e.To] = append(g.in[e.To], e.ID)
	}

	return nil
}
