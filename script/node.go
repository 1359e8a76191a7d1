package script

import "regexp"

// node matches a {name: value} directive. The name and value are both
// non-greedy and the value may span newlines. A literal } inside a value
// closes the node early; there is no escape for it.
var node = regexp.MustCompile(`(?s)\{(.*?):\s*(.*?)\}`)

// Node is a single parsed directive occurrence in a fixed template.
type Node struct {
	// Name is the directive name, the text before the colon.
	Name string
	// Value is the raw directive value.
	Value string
	// Start and End are the byte offsets of the node in the fixed template,
	// with End one past the closing brace.
	Start, End int
}

// parseNodes scans a fixed template for directive nodes in left-to-right
// order.
func parseNodes(template string) []Node {
	ms := node.FindAllStringSubmatchIndex(template, -1)
	if ms == nil {
		return nil
	}
	nodes := make([]Node, 0, len(ms))
	for _, m := range ms {
		nodes = append(nodes, Node{
			Name:  template[m[2]:m[3]],
			Value: template[m[4]:m[5]],
			Start: m[0],
			End:   m[1],
		})
	}
	return nodes
}
