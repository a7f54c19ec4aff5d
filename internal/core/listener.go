package core

import "trackstore/pkg/domain"

// Listener observes store mutations. Callbacks run synchronously inside the
// store call that triggered them, after the mutation is visible, and always
// in listener registration order. A callback may mutate the store and may
// remove listeners, including itself.
type Listener interface {
	// OnAddEntity fires when an entity's creation transaction commits.
	OnAddEntity(ds DataStore, id domain.ObjectID, ot domain.ObjectType)
	// OnRemoveEntity fires before the entity's state is discarded, so the
	// callback can still query it.
	OnRemoveEntity(ds DataStore, id domain.ObjectID, ot domain.ObjectType)
	// OnPrefsChange fires when a committed prefs transaction or command
	// replay leaves the entity's resolved preferences different.
	OnPrefsChange(ds DataStore, id domain.ObjectID)
	// OnTimeChange fires when an update pass runs for a new time or new
	// data.
	OnTimeChange(ds DataStore)
	// OnCategoryDataChange fires when an update pass changes the category
	// values in effect for an entity.
	OnCategoryDataChange(ds DataStore, id domain.ObjectID, ot domain.ObjectType)
	// OnNameChange fires when an entity's resolved display name changes.
	OnNameChange(ds DataStore, id domain.ObjectID)
	// OnFlush fires after a flush; id is ScenarioID for a store-wide flush.
	OnFlush(ds DataStore, id domain.ObjectID)
	// OnScenarioDelete fires when the whole scenario is cleared.
	OnScenarioDelete(ds DataStore)
}

// BaseListener is a no-op Listener for embedding, so observers implement
// only the callbacks they care about.
type BaseListener struct{}

func (BaseListener) OnAddEntity(DataStore, domain.ObjectID, domain.ObjectType)          {}
func (BaseListener) OnRemoveEntity(DataStore, domain.ObjectID, domain.ObjectType)       {}
func (BaseListener) OnPrefsChange(DataStore, domain.ObjectID)                           {}
func (BaseListener) OnTimeChange(DataStore)                                             {}
func (BaseListener) OnCategoryDataChange(DataStore, domain.ObjectID, domain.ObjectType) {}
func (BaseListener) OnNameChange(DataStore, domain.ObjectID)                            {}
func (BaseListener) OnFlush(DataStore, domain.ObjectID)                                 {}
func (BaseListener) OnScenarioDelete(DataStore)                                         {}

// ScenarioListener observes scenario property edits.
type ScenarioListener interface {
	OnScenarioPropertiesChange(ds DataStore)
}

// NewUpdatesListener observes individual data arrivals as they commit,
// before any update pass, for consumers that tail the live stream.
type NewUpdatesListener interface {
	// OnEntityUpdate fires when an update record for id commits at dataTime.
	OnEntityUpdate(ds DataStore, id domain.ObjectID, dataTime float64)
	// OnFlush fires when stored data is discarded; id is ScenarioID for a
	// store-wide flush.
	OnFlush(ds DataStore, id domain.ObjectID)
}

// listenerList tracks registered listeners and keeps dispatch safe against
// reentrant removal: callbacks run over a snapshot, and a listener removed
// mid-dispatch is skipped for the rest of that dispatch.
type listenerList struct {
	listeners   []Listener
	justRemoved []Listener
}

func (l *listenerList) add(listener Listener) {
	l.listeners = append(l.listeners, listener)
}

func (l *listenerList) remove(listener Listener) {
	for i, have := range l.listeners {
		if have == listener {
			l.listeners = append(l.listeners[:i], l.listeners[i+1:]...)
			l.justRemoved = append(l.justRemoved, listener)
			return
		}
	}
}

// invoke calls fn for each registered listener over a snapshot taken at
// entry.
func (l *listenerList) invoke(fn func(Listener)) {
	l.justRemoved = l.justRemoved[:0]
	snapshot := make([]Listener, len(l.listeners))
	copy(snapshot, l.listeners)
	for _, listener := range snapshot {
		if l.wasJustRemoved(listener) {
			continue
		}
		fn(listener)
	}
}

func (l *listenerList) wasJustRemoved(listener Listener) bool {
	for _, removed := range l.justRemoved {
		if removed == listener {
			return true
		}
	}
	return false
}
