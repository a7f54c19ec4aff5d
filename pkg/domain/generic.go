package domain

// GenericDataEntry is one tag/value pair within a generic data record.
type GenericDataEntry struct {
	Tag   string
	Value string
}

// GenericData is a timestamped set of free-form tag/value pairs attached to
// an entity, or to the scenario when addressed to ScenarioID. Values within
// a tag form a timeline; the value in effect at time t is the latest one at
// or before t that has not expired.
type GenericData struct {
	Time float64
	// Duration bounds how long the entries stay in effect, seconds. Zero
	// means they persist until overwritten.
	Duration float64
	Entries  []GenericDataEntry
}

// Timestamp returns the record time.
func (g *GenericData) Timestamp() float64 { return g.Time }

// Clone returns a deep copy.
func (g *GenericData) Clone() *GenericData {
	if g == nil {
		return nil
	}
	out := *g
	if g.Entries != nil {
		out.Entries = make([]GenericDataEntry, len(g.Entries))
		copy(out.Entries, g.Entries)
	}
	return &out
}

// CategoryDataEntry is one category name/value pair.
type CategoryDataEntry struct {
	Name  string
	Value string
}

// CategoryData is a timestamped set of category assignments for an entity.
// Category values are sticky: the value in effect at time t is the latest
// assignment at or before t, with no expiry.
type CategoryData struct {
	Time    float64
	Entries []CategoryDataEntry
}

// Timestamp returns the record time.
func (c *CategoryData) Timestamp() float64 { return c.Time }

// Clone returns a deep copy.
func (c *CategoryData) Clone() *CategoryData {
	if c == nil {
		return nil
	}
	out := *c
	if c.Entries != nil {
		out.Entries = make([]CategoryDataEntry, len(c.Entries))
		copy(out.Entries, c.Entries)
	}
	return &out
}
