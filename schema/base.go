package schema

// Base is an embeddable base schema
type Base struct{}

// String implements Schema interface
func (r Base) String() string {
	return ""
}
