package domain

// Transition describes one edge of the state graph for introspection.
// The controller does not interpret Condition; it is a label.
type Transition struct {
	From      State  `json:"from" yaml:"from"`
	To        State  `json:"to" yaml:"to"`
	Condition string `json:"condition,omitempty" yaml:"condition,omitempty"`
}
