package fixture

// TeamPair joins records from independent sources. Name formatting can drift between
// sources, so a miss is expected and must degrade to "no data" rather than fail.
type TeamPair struct {
	Home string
	Away string
}

func (p TeamPair) Key() string {
	return p.Home + "-vs-" + p.Away
}

func (p TeamPair) IsZero() bool {
	return p.Home == "" && p.Away == ""
}
