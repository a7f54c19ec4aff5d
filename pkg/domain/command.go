package domain

// Command is a timestamped preference change destined for replay. During
// playback the store applies, in order, every command at or before the
// current time onto the entity's preferences.
//
// The type parameter is the entity's prefs struct (PlatformPrefs, BeamPrefs,
// and so on).
type Command[P any] struct {
	Time float64
	// Prefs carries the preference fields the command sets. For a clear
	// command it is instead the mask of fields to unset.
	Prefs *P
	// Clear marks the command as a field clear rather than a field set.
	// When replayed it unsets the matching fields from both the live
	// preferences and the replay cache.
	Clear bool
}

// Timestamp returns the command's activation time.
func (c *Command[P]) Timestamp() float64 { return c.Time }
