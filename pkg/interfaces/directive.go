package interfaces

// PayloadVersion is the schema version stamped on structured payloads.
const PayloadVersion = 1

// NodeType enumerates the node shapes a structured payload can carry.
type NodeType string

const (
	NodeHTML      NodeType = "html"
	NodeDirective NodeType = "directive"
)

// StructuredPayload is the serialized intermediate render tree produced for
// extended-dialect bodies. HTML nodes are finished markup; directive nodes are
// resolved at display time.
type StructuredPayload struct {
	Version int             `json:"version"`
	Nodes   []DirectiveNode `json:"nodes"`
}

// DirectiveNode is one node of a structured payload.
type DirectiveNode struct {
	Type     NodeType        `json:"type"`
	HTML     string          `json:"html,omitempty"`
	Name     string          `json:"name,omitempty"`
	Props    map[string]any  `json:"props,omitempty"`
	Children []DirectiveNode `json:"children,omitempty"`
}
