package core

import (
	"reflect"

	"trackstore/pkg/domain"
)

// commonPrefsOf returns the entity's shared preference block for data
// limiting, or nil for unknown ids and the scenario.
func (s *MemoryDataStore) commonPrefsOf(id domain.ObjectID) *domain.CommonPrefs {
	switch s.entityTypes[id] {
	case domain.Platform:
		return &s.platforms[id].prefs.Common
	case domain.Beam:
		return &s.beams[id].prefs.Common
	case domain.Gate:
		return &s.gates[id].prefs.Common
	case domain.Laser:
		return &s.lasers[id].prefs.Common
	case domain.Projector:
		return &s.projectors[id].prefs.Common
	case domain.LOBGroup:
		return &s.lobGroups[id].prefs.Common
	case domain.CustomRendering:
		return &s.customRenderings[id].prefs.Common
	}
	return nil
}

// registerEntity performs the shared bookkeeping of an entity creation
// commit.
func (s *MemoryDataStore) registerEntity(id domain.ObjectID, ot domain.ObjectType, name string) {
	s.entityTypes[id] = ot
	s.genericData[id] = newGenericDataSlice()
	s.categoryData[id] = newCategoryDataSlice()
	s.cacheName(id, ot, name)
	s.hasChanged = true
	s.log.Debugw("entity added", "id", id, "type", ot.String())
}

// prefsTransaction builds the mutable prefs handle shared by every entity
// type: the caller edits a staged copy, commit publishes it and refreshes
// the name cache, and release fires prefs and name change notifications.
func prefsTransaction[P any, PP prefsPtr[P]](
	s *MemoryDataStore,
	id domain.ObjectID,
	ot domain.ObjectType,
	get func() PP,
	set func(PP),
) (PP, *Transaction) {
	staged := PP(get().Clone())
	prefsChanged := false
	nameChanged := false
	txn := newTransaction(func() {
		oldName := rawName(get().CommonPrefs())
		incoming := staged.Clone()
		if !reflect.DeepEqual((*P)(get()), incoming) {
			prefsChanged = true
		}
		newName := rawName(PP(incoming).CommonPrefs())
		if newName != oldName {
			nameChanged = true
			s.uncacheName(id, oldName)
			s.cacheName(id, ot, newName)
		}
		set(PP(incoming))
		s.hasChanged = true
	}, func() {
		if nameChanged {
			s.listeners.invoke(func(l Listener) { l.OnNameChange(s, id) })
		}
		if prefsChanged {
			s.listeners.invoke(func(l Listener) { l.OnPrefsChange(s, id) })
		}
	})
	return staged, txn
}

// --- platforms ---

// AddPlatform stages a new platform. The entity becomes visible on commit
// and OnAddEntity fires on release.
func (s *MemoryDataStore) AddPlatform() (*domain.PlatformProperties, *Transaction) {
	id := s.genUniqueID()
	props := &domain.PlatformProperties{ID: id}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		prefs := s.defaultPlatformPrefs()
		s.platforms[id] = &platformEntry{
			props:    props,
			prefs:    prefs,
			updates:  newUpdateSlice[*domain.PlatformUpdate](),
			commands: newCommandSlice[domain.PlatformPrefs, *domain.PlatformPrefs](),
		}
		s.registerEntity(id, domain.Platform, rawName(&prefs.Common))
		s.metrics.SetEntityCount(domain.Platform, len(s.platforms))
	}, func() {
		s.listeners.invoke(func(l Listener) { l.OnAddEntity(s, id, domain.Platform) })
	})
	return props, txn
}

func (s *MemoryDataStore) defaultPlatformPrefs() *domain.PlatformPrefs {
	if s.defaults != nil && s.defaults.Platform != nil {
		return s.defaults.Platform.Clone()
	}
	return &domain.PlatformPrefs{}
}

// PlatformProperties returns a copy of the platform's properties.
func (s *MemoryDataStore) PlatformProperties(id domain.ObjectID) (*domain.PlatformProperties, error) {
	e, ok := s.platforms[id]
	if !ok {
		return nil, wrongOrMissing(s, id, "platform")
	}
	return e.props.Clone(), nil
}

// MutablePlatformProperties stages an edit of the platform's properties.
// The id is immutable and survives any staged change.
func (s *MemoryDataStore) MutablePlatformProperties(id domain.ObjectID) (*domain.PlatformProperties, *Transaction, error) {
	e, ok := s.platforms[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "platform")
	}
	staged := e.props.Clone()
	txn := newTransaction(func() {
		staged.ID = id
		e.props = staged.Clone()
		s.hasChanged = true
	}, nil)
	return staged, txn, nil
}

// PlatformPrefs returns a copy of the platform's preferences.
func (s *MemoryDataStore) PlatformPrefs(id domain.ObjectID) (*domain.PlatformPrefs, error) {
	e, ok := s.platforms[id]
	if !ok {
		return nil, wrongOrMissing(s, id, "platform")
	}
	return e.prefs.Clone(), nil
}

// MutablePlatformPrefs stages an edit of the platform's preferences.
func (s *MemoryDataStore) MutablePlatformPrefs(id domain.ObjectID) (*domain.PlatformPrefs, *Transaction, error) {
	e, ok := s.platforms[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "platform")
	}
	staged, txn := prefsTransaction[domain.PlatformPrefs](s, id, domain.Platform,
		func() *domain.PlatformPrefs { return e.prefs },
		func(p *domain.PlatformPrefs) { e.prefs = p })
	return staged, txn, nil
}

// AddPlatformUpdate stages a kinematic sample. The caller fills the record
// and commits; the record must not be modified afterwards.
func (s *MemoryDataStore) AddPlatformUpdate(id domain.ObjectID) (*domain.PlatformUpdate, *Transaction, error) {
	e, ok := s.platforms[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "platform")
	}
	u := &domain.PlatformUpdate{}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		e.updates.insert(u)
		s.hasChanged = true
		s.dataLimit(&e.prefs.Common, e.updates.isStatic(),
			e.updates, e.commands, s.genericData[id], s.categoryData[id])
		s.notifyEntityUpdate(id, u.Time)
	}, nil)
	return u, txn, nil
}

// AddPlatformCommand stages a timestamped preference change for replay.
func (s *MemoryDataStore) AddPlatformCommand(id domain.ObjectID) (*domain.Command[domain.PlatformPrefs], *Transaction, error) {
	e, ok := s.platforms[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "platform")
	}
	cmd := &domain.Command[domain.PlatformPrefs]{}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		e.commands.insert(cmd)
		s.hasChanged = true
		s.dataLimit(&e.prefs.Common, e.updates.isStatic(),
			e.updates, e.commands, s.genericData[id], s.categoryData[id])
	}, nil)
	return cmd, txn, nil
}

// PlatformUpdates returns the platform's update slice, or nil for an
// unknown id or mismatched type.
func (s *MemoryDataStore) PlatformUpdates(id domain.ObjectID) *UpdateSlice[*domain.PlatformUpdate] {
	if e, ok := s.platforms[id]; ok {
		return e.updates
	}
	return nil
}

// PlatformCommands returns the platform's command slice, or nil for an
// unknown id or mismatched type.
func (s *MemoryDataStore) PlatformCommands(id domain.ObjectID) *CommandSlice[domain.PlatformPrefs, *domain.PlatformPrefs] {
	if e, ok := s.platforms[id]; ok {
		return e.commands
	}
	return nil
}

// --- beams ---

// AddBeam stages a new beam hosted on a platform.
func (s *MemoryDataStore) AddBeam(hostID domain.ObjectID) (*domain.BeamProperties, *Transaction, error) {
	if _, ok := s.platforms[hostID]; !ok {
		return nil, nil, invalidHost(uint64(hostID), "platform")
	}
	id := s.genUniqueID()
	props := &domain.BeamProperties{ID: id, HostID: hostID}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		prefs := s.defaultBeamPrefs()
		s.beams[id] = &beamEntry{
			props:    props,
			prefs:    prefs,
			updates:  newUpdateSlice[*domain.BeamUpdate](),
			commands: newCommandSlice[domain.BeamPrefs, *domain.BeamPrefs](),
		}
		s.registerEntity(id, domain.Beam, rawName(&prefs.Common))
		s.metrics.SetEntityCount(domain.Beam, len(s.beams))
	}, func() {
		s.listeners.invoke(func(l Listener) { l.OnAddEntity(s, id, domain.Beam) })
	})
	return props, txn, nil
}

func (s *MemoryDataStore) defaultBeamPrefs() *domain.BeamPrefs {
	if s.defaults != nil && s.defaults.Beam != nil {
		return s.defaults.Beam.Clone()
	}
	return &domain.BeamPrefs{}
}

// BeamProperties returns a copy of the beam's properties.
func (s *MemoryDataStore) BeamProperties(id domain.ObjectID) (*domain.BeamProperties, error) {
	e, ok := s.beams[id]
	if !ok {
		return nil, wrongOrMissing(s, id, "beam")
	}
	return e.props.Clone(), nil
}

// MutableBeamProperties stages an edit of the beam's properties. The id
// and host binding are immutable.
func (s *MemoryDataStore) MutableBeamProperties(id domain.ObjectID) (*domain.BeamProperties, *Transaction, error) {
	e, ok := s.beams[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "beam")
	}
	staged := e.props.Clone()
	host := e.props.HostID
	txn := newTransaction(func() {
		staged.ID = id
		staged.HostID = host
		e.props = staged.Clone()
		s.hasChanged = true
	}, nil)
	return staged, txn, nil
}

// BeamPrefs returns a copy of the beam's preferences.
func (s *MemoryDataStore) BeamPrefs(id domain.ObjectID) (*domain.BeamPrefs, error) {
	e, ok := s.beams[id]
	if !ok {
		return nil, wrongOrMissing(s, id, "beam")
	}
	return e.prefs.Clone(), nil
}

// MutableBeamPrefs stages an edit of the beam's preferences.
func (s *MemoryDataStore) MutableBeamPrefs(id domain.ObjectID) (*domain.BeamPrefs, *Transaction, error) {
	e, ok := s.beams[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "beam")
	}
	staged, txn := prefsTransaction[domain.BeamPrefs](s, id, domain.Beam,
		func() *domain.BeamPrefs { return e.prefs },
		func(p *domain.BeamPrefs) { e.prefs = p })
	return staged, txn, nil
}

// AddBeamUpdate stages a pointing sample.
func (s *MemoryDataStore) AddBeamUpdate(id domain.ObjectID) (*domain.BeamUpdate, *Transaction, error) {
	e, ok := s.beams[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "beam")
	}
	u := &domain.BeamUpdate{}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		e.updates.insert(u)
		s.hasChanged = true
		s.dataLimit(&e.prefs.Common, e.updates.isStatic(),
			e.updates, e.commands, s.genericData[id], s.categoryData[id])
		s.notifyEntityUpdate(id, u.Time)
	}, nil)
	return u, txn, nil
}

// AddBeamCommand stages a timestamped preference change for replay.
func (s *MemoryDataStore) AddBeamCommand(id domain.ObjectID) (*domain.Command[domain.BeamPrefs], *Transaction, error) {
	e, ok := s.beams[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "beam")
	}
	cmd := &domain.Command[domain.BeamPrefs]{}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		e.commands.insert(cmd)
		s.hasChanged = true
		s.dataLimit(&e.prefs.Common, e.updates.isStatic(),
			e.updates, e.commands, s.genericData[id], s.categoryData[id])
	}, nil)
	return cmd, txn, nil
}

// BeamUpdates returns the beam's update slice, or nil.
func (s *MemoryDataStore) BeamUpdates(id domain.ObjectID) *UpdateSlice[*domain.BeamUpdate] {
	if e, ok := s.beams[id]; ok {
		return e.updates
	}
	return nil
}

// BeamCommands returns the beam's command slice, or nil.
func (s *MemoryDataStore) BeamCommands(id domain.ObjectID) *CommandSlice[domain.BeamPrefs, *domain.BeamPrefs] {
	if e, ok := s.beams[id]; ok {
		return e.commands
	}
	return nil
}

// --- gates ---

// AddGate stages a new gate hosted on a beam.
func (s *MemoryDataStore) AddGate(hostID domain.ObjectID) (*domain.GateProperties, *Transaction, error) {
	if _, ok := s.beams[hostID]; !ok {
		return nil, nil, invalidHost(uint64(hostID), "beam")
	}
	id := s.genUniqueID()
	props := &domain.GateProperties{ID: id, HostID: hostID}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		prefs := s.defaultGatePrefs()
		s.gates[id] = &gateEntry{
			props:    props,
			prefs:    prefs,
			updates:  newUpdateSlice[*domain.GateUpdate](),
			commands: newCommandSlice[domain.GatePrefs, *domain.GatePrefs](),
		}
		s.registerEntity(id, domain.Gate, rawName(&prefs.Common))
		s.metrics.SetEntityCount(domain.Gate, len(s.gates))
	}, func() {
		s.listeners.invoke(func(l Listener) { l.OnAddEntity(s, id, domain.Gate) })
	})
	return props, txn, nil
}

func (s *MemoryDataStore) defaultGatePrefs() *domain.GatePrefs {
	if s.defaults != nil && s.defaults.Gate != nil {
		return s.defaults.Gate.Clone()
	}
	return &domain.GatePrefs{}
}

// GateProperties returns a copy of the gate's properties.
func (s *MemoryDataStore) GateProperties(id domain.ObjectID) (*domain.GateProperties, error) {
	e, ok := s.gates[id]
	if !ok {
		return nil, wrongOrMissing(s, id, "gate")
	}
	return e.props.Clone(), nil
}

// MutableGateProperties stages an edit of the gate's properties. The id
// and host binding are immutable.
func (s *MemoryDataStore) MutableGateProperties(id domain.ObjectID) (*domain.GateProperties, *Transaction, error) {
	e, ok := s.gates[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "gate")
	}
	staged := e.props.Clone()
	host := e.props.HostID
	txn := newTransaction(func() {
		staged.ID = id
		staged.HostID = host
		e.props = staged.Clone()
		s.hasChanged = true
	}, nil)
	return staged, txn, nil
}

// GatePrefs returns a copy of the gate's preferences.
func (s *MemoryDataStore) GatePrefs(id domain.ObjectID) (*domain.GatePrefs, error) {
	e, ok := s.gates[id]
	if !ok {
		return nil, wrongOrMissing(s, id, "gate")
	}
	return e.prefs.Clone(), nil
}

// MutableGatePrefs stages an edit of the gate's preferences.
func (s *MemoryDataStore) MutableGatePrefs(id domain.ObjectID) (*domain.GatePrefs, *Transaction, error) {
	e, ok := s.gates[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "gate")
	}
	staged, txn := prefsTransaction[domain.GatePrefs](s, id, domain.Gate,
		func() *domain.GatePrefs { return e.prefs },
		func(p *domain.GatePrefs) { e.prefs = p })
	return staged, txn, nil
}

// AddGateUpdate stages a geometry sample.
func (s *MemoryDataStore) AddGateUpdate(id domain.ObjectID) (*domain.GateUpdate, *Transaction, error) {
	e, ok := s.gates[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "gate")
	}
	u := &domain.GateUpdate{}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		e.updates.insert(u)
		s.hasChanged = true
		s.dataLimit(&e.prefs.Common, e.updates.isStatic(),
			e.updates, e.commands, s.genericData[id], s.categoryData[id])
		s.notifyEntityUpdate(id, u.Time)
	}, nil)
	return u, txn, nil
}

// AddGateCommand stages a timestamped preference change for replay.
func (s *MemoryDataStore) AddGateCommand(id domain.ObjectID) (*domain.Command[domain.GatePrefs], *Transaction, error) {
	e, ok := s.gates[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "gate")
	}
	cmd := &domain.Command[domain.GatePrefs]{}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		e.commands.insert(cmd)
		s.hasChanged = true
		s.dataLimit(&e.prefs.Common, e.updates.isStatic(),
			e.updates, e.commands, s.genericData[id], s.categoryData[id])
	}, nil)
	return cmd, txn, nil
}

// GateUpdates returns the gate's update slice, or nil.
func (s *MemoryDataStore) GateUpdates(id domain.ObjectID) *UpdateSlice[*domain.GateUpdate] {
	if e, ok := s.gates[id]; ok {
		return e.updates
	}
	return nil
}

// GateCommands returns the gate's command slice, or nil.
func (s *MemoryDataStore) GateCommands(id domain.ObjectID) *CommandSlice[domain.GatePrefs, *domain.GatePrefs] {
	if e, ok := s.gates[id]; ok {
		return e.commands
	}
	return nil
}

// --- lasers ---

// AddLaser stages a new laser hosted on a platform.
func (s *MemoryDataStore) AddLaser(hostID domain.ObjectID) (*domain.LaserProperties, *Transaction, error) {
	if _, ok := s.platforms[hostID]; !ok {
		return nil, nil, invalidHost(uint64(hostID), "platform")
	}
	id := s.genUniqueID()
	props := &domain.LaserProperties{ID: id, HostID: hostID}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		prefs := s.defaultLaserPrefs()
		s.lasers[id] = &laserEntry{
			props:    props,
			prefs:    prefs,
			updates:  newUpdateSlice[*domain.LaserUpdate](),
			commands: newCommandSlice[domain.LaserPrefs, *domain.LaserPrefs](),
		}
		s.registerEntity(id, domain.Laser, rawName(&prefs.Common))
		s.metrics.SetEntityCount(domain.Laser, len(s.lasers))
	}, func() {
		s.listeners.invoke(func(l Listener) { l.OnAddEntity(s, id, domain.Laser) })
	})
	return props, txn, nil
}

func (s *MemoryDataStore) defaultLaserPrefs() *domain.LaserPrefs {
	if s.defaults != nil && s.defaults.Laser != nil {
		return s.defaults.Laser.Clone()
	}
	return &domain.LaserPrefs{}
}

// LaserProperties returns a copy of the laser's properties.
func (s *MemoryDataStore) LaserProperties(id domain.ObjectID) (*domain.LaserProperties, error) {
	e, ok := s.lasers[id]
	if !ok {
		return nil, wrongOrMissing(s, id, "laser")
	}
	return e.props.Clone(), nil
}

// MutableLaserProperties stages an edit of the laser's properties. The id
// and host binding are immutable.
func (s *MemoryDataStore) MutableLaserProperties(id domain.ObjectID) (*domain.LaserProperties, *Transaction, error) {
	e, ok := s.lasers[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "laser")
	}
	staged := e.props.Clone()
	host := e.props.HostID
	txn := newTransaction(func() {
		staged.ID = id
		staged.HostID = host
		e.props = staged.Clone()
		s.hasChanged = true
	}, nil)
	return staged, txn, nil
}

// LaserPrefs returns a copy of the laser's preferences.
func (s *MemoryDataStore) LaserPrefs(id domain.ObjectID) (*domain.LaserPrefs, error) {
	e, ok := s.lasers[id]
	if !ok {
		return nil, wrongOrMissing(s, id, "laser")
	}
	return e.prefs.Clone(), nil
}

// MutableLaserPrefs stages an edit of the laser's preferences.
func (s *MemoryDataStore) MutableLaserPrefs(id domain.ObjectID) (*domain.LaserPrefs, *Transaction, error) {
	e, ok := s.lasers[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "laser")
	}
	staged, txn := prefsTransaction[domain.LaserPrefs](s, id, domain.Laser,
		func() *domain.LaserPrefs { return e.prefs },
		func(p *domain.LaserPrefs) { e.prefs = p })
	return staged, txn, nil
}

// AddLaserUpdate stages a pointing sample.
func (s *MemoryDataStore) AddLaserUpdate(id domain.ObjectID) (*domain.LaserUpdate, *Transaction, error) {
	e, ok := s.lasers[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "laser")
	}
	u := &domain.LaserUpdate{}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		e.updates.insert(u)
		s.hasChanged = true
		s.dataLimit(&e.prefs.Common, e.updates.isStatic(),
			e.updates, e.commands, s.genericData[id], s.categoryData[id])
		s.notifyEntityUpdate(id, u.Time)
	}, nil)
	return u, txn, nil
}

// AddLaserCommand stages a timestamped preference change for replay.
func (s *MemoryDataStore) AddLaserCommand(id domain.ObjectID) (*domain.Command[domain.LaserPrefs], *Transaction, error) {
	e, ok := s.lasers[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "laser")
	}
	cmd := &domain.Command[domain.LaserPrefs]{}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		e.commands.insert(cmd)
		s.hasChanged = true
		s.dataLimit(&e.prefs.Common, e.updates.isStatic(),
			e.updates, e.commands, s.genericData[id], s.categoryData[id])
	}, nil)
	return cmd, txn, nil
}

// LaserUpdates returns the laser's update slice, or nil.
func (s *MemoryDataStore) LaserUpdates(id domain.ObjectID) *UpdateSlice[*domain.LaserUpdate] {
	if e, ok := s.lasers[id]; ok {
		return e.updates
	}
	return nil
}

// LaserCommands returns the laser's command slice, or nil.
func (s *MemoryDataStore) LaserCommands(id domain.ObjectID) *CommandSlice[domain.LaserPrefs, *domain.LaserPrefs] {
	if e, ok := s.lasers[id]; ok {
		return e.commands
	}
	return nil
}

// --- projectors ---

// AddProjector stages a new projector hosted on a platform or beam.
func (s *MemoryDataStore) AddProjector(hostID domain.ObjectID) (*domain.ProjectorProperties, *Transaction, error) {
	hostType := s.entityTypes[hostID]
	if hostType != domain.Platform && hostType != domain.Beam {
		return nil, nil, invalidHost(uint64(hostID), "platform or beam")
	}
	id := s.genUniqueID()
	props := &domain.ProjectorProperties{ID: id, HostID: hostID}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		prefs := s.defaultProjectorPrefs()
		s.projectors[id] = &projectorEntry{
			props:    props,
			prefs:    prefs,
			updates:  newUpdateSlice[*domain.ProjectorUpdate](),
			commands: newCommandSlice[domain.ProjectorPrefs, *domain.ProjectorPrefs](),
		}
		s.registerEntity(id, domain.Projector, rawName(&prefs.Common))
		s.metrics.SetEntityCount(domain.Projector, len(s.projectors))
	}, func() {
		s.listeners.invoke(func(l Listener) { l.OnAddEntity(s, id, domain.Projector) })
	})
	return props, txn, nil
}

func (s *MemoryDataStore) defaultProjectorPrefs() *domain.ProjectorPrefs {
	if s.defaults != nil && s.defaults.Projector != nil {
		return s.defaults.Projector.Clone()
	}
	return &domain.ProjectorPrefs{}
}

// ProjectorProperties returns a copy of the projector's properties.
func (s *MemoryDataStore) ProjectorProperties(id domain.ObjectID) (*domain.ProjectorProperties, error) {
	e, ok := s.projectors[id]
	if !ok {
		return nil, wrongOrMissing(s, id, "projector")
	}
	return e.props.Clone(), nil
}

// MutableProjectorProperties stages an edit of the projector's properties.
// The id and host binding are immutable.
func (s *MemoryDataStore) MutableProjectorProperties(id domain.ObjectID) (*domain.ProjectorProperties, *Transaction, error) {
	e, ok := s.projectors[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "projector")
	}
	staged := e.props.Clone()
	host := e.props.HostID
	txn := newTransaction(func() {
		staged.ID = id
		staged.HostID = host
		e.props = staged.Clone()
		s.hasChanged = true
	}, nil)
	return staged, txn, nil
}

// ProjectorPrefs returns a copy of the projector's preferences.
func (s *MemoryDataStore) ProjectorPrefs(id domain.ObjectID) (*domain.ProjectorPrefs, error) {
	e, ok := s.projectors[id]
	if !ok {
		return nil, wrongOrMissing(s, id, "projector")
	}
	return e.prefs.Clone(), nil
}

// MutableProjectorPrefs stages an edit of the projector's preferences.
func (s *MemoryDataStore) MutableProjectorPrefs(id domain.ObjectID) (*domain.ProjectorPrefs, *Transaction, error) {
	e, ok := s.projectors[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "projector")
	}
	staged, txn := prefsTransaction[domain.ProjectorPrefs](s, id, domain.Projector,
		func() *domain.ProjectorPrefs { return e.prefs },
		func(p *domain.ProjectorPrefs) { e.prefs = p })
	return staged, txn, nil
}

// AddProjectorUpdate stages a field-of-view sample.
func (s *MemoryDataStore) AddProjectorUpdate(id domain.ObjectID) (*domain.ProjectorUpdate, *Transaction, error) {
	e, ok := s.projectors[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "projector")
	}
	u := &domain.ProjectorUpdate{}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		e.updates.insert(u)
		s.hasChanged = true
		s.dataLimit(&e.prefs.Common, e.updates.isStatic(),
			e.updates, e.commands, s.genericData[id], s.categoryData[id])
		s.notifyEntityUpdate(id, u.Time)
	}, nil)
	return u, txn, nil
}

// AddProjectorCommand stages a timestamped preference change for replay.
func (s *MemoryDataStore) AddProjectorCommand(id domain.ObjectID) (*domain.Command[domain.ProjectorPrefs], *Transaction, error) {
	e, ok := s.projectors[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "projector")
	}
	cmd := &domain.Command[domain.ProjectorPrefs]{}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		e.commands.insert(cmd)
		s.hasChanged = true
		s.dataLimit(&e.prefs.Common, e.updates.isStatic(),
			e.updates, e.commands, s.genericData[id], s.categoryData[id])
	}, nil)
	return cmd, txn, nil
}

// ProjectorUpdates returns the projector's update slice, or nil.
func (s *MemoryDataStore) ProjectorUpdates(id domain.ObjectID) *UpdateSlice[*domain.ProjectorUpdate] {
	if e, ok := s.projectors[id]; ok {
		return e.updates
	}
	return nil
}

// ProjectorCommands returns the projector's command slice, or nil.
func (s *MemoryDataStore) ProjectorCommands(id domain.ObjectID) *CommandSlice[domain.ProjectorPrefs, *domain.ProjectorPrefs] {
	if e, ok := s.projectors[id]; ok {
		return e.commands
	}
	return nil
}

// --- LOB groups ---

// AddLOBGroup stages a new line-of-bearing group hosted on a platform.
func (s *MemoryDataStore) AddLOBGroup(hostID domain.ObjectID) (*domain.LOBGroupProperties, *Transaction, error) {
	if _, ok := s.platforms[hostID]; !ok {
		return nil, nil, invalidHost(uint64(hostID), "platform")
	}
	id := s.genUniqueID()
	props := &domain.LOBGroupProperties{ID: id, HostID: hostID}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		prefs := s.defaultLOBGroupPrefs()
		s.lobGroups[id] = &lobGroupEntry{
			props:    props,
			prefs:    prefs,
			updates:  newUpdateSlice[*domain.LOBGroupUpdate](),
			commands: newCommandSlice[domain.LOBGroupPrefs, *domain.LOBGroupPrefs](),
		}
		s.registerEntity(id, domain.LOBGroup, rawName(&prefs.Common))
		s.metrics.SetEntityCount(domain.LOBGroup, len(s.lobGroups))
	}, func() {
		s.listeners.invoke(func(l Listener) { l.OnAddEntity(s, id, domain.LOBGroup) })
	})
	return props, txn, nil
}

func (s *MemoryDataStore) defaultLOBGroupPrefs() *domain.LOBGroupPrefs {
	if s.defaults != nil && s.defaults.LOBGroup != nil {
		return s.defaults.LOBGroup.Clone()
	}
	return &domain.LOBGroupPrefs{}
}

// LOBGroupProperties returns a copy of the group's properties.
func (s *MemoryDataStore) LOBGroupProperties(id domain.ObjectID) (*domain.LOBGroupProperties, error) {
	e, ok := s.lobGroups[id]
	if !ok {
		return nil, wrongOrMissing(s, id, "lobgroup")
	}
	return e.props.Clone(), nil
}

// MutableLOBGroupProperties stages an edit of the group's properties. The
// id and host binding are immutable.
func (s *MemoryDataStore) MutableLOBGroupProperties(id domain.ObjectID) (*domain.LOBGroupProperties, *Transaction, error) {
	e, ok := s.lobGroups[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "lobgroup")
	}
	staged := e.props.Clone()
	host := e.props.HostID
	txn := newTransaction(func() {
		staged.ID = id
		staged.HostID = host
		e.props = staged.Clone()
		s.hasChanged = true
	}, nil)
	return staged, txn, nil
}

// LOBGroupPrefs returns a copy of the group's preferences.
func (s *MemoryDataStore) LOBGroupPrefs(id domain.ObjectID) (*domain.LOBGroupPrefs, error) {
	e, ok := s.lobGroups[id]
	if !ok {
		return nil, wrongOrMissing(s, id, "lobgroup")
	}
	return e.prefs.Clone(), nil
}

// MutableLOBGroupPrefs stages an edit of the group's preferences.
func (s *MemoryDataStore) MutableLOBGroupPrefs(id domain.ObjectID) (*domain.LOBGroupPrefs, *Transaction, error) {
	e, ok := s.lobGroups[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "lobgroup")
	}
	staged, txn := prefsTransaction[domain.LOBGroupPrefs](s, id, domain.LOBGroup,
		func() *domain.LOBGroupPrefs { return e.prefs },
		func(p *domain.LOBGroupPrefs) { e.prefs = p })
	return staged, txn, nil
}

// AddLOBGroupUpdate stages a bearing sample.
func (s *MemoryDataStore) AddLOBGroupUpdate(id domain.ObjectID) (*domain.LOBGroupUpdate, *Transaction, error) {
	e, ok := s.lobGroups[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "lobgroup")
	}
	u := &domain.LOBGroupUpdate{}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		e.updates.insert(u)
		s.hasChanged = true
		s.dataLimit(&e.prefs.Common, e.updates.isStatic(),
			e.updates, e.commands, s.genericData[id], s.categoryData[id])
		s.limitLOBGroup(e)
		s.notifyEntityUpdate(id, u.Time)
	}, nil)
	return u, txn, nil
}

// limitLOBGroup applies the group-specific bearing caps, which act even in
// file mode.
func (s *MemoryDataStore) limitLOBGroup(e *lobGroupEntry) {
	pruned := 0
	if e.prefs.MaxDataPoints != nil && *e.prefs.MaxDataPoints > 0 {
		pruned += e.updates.limitByPoints(*e.prefs.MaxDataPoints)
	}
	if e.prefs.MaxDataSeconds != nil && *e.prefs.MaxDataSeconds > 0 {
		pruned += e.updates.limitByTime(*e.prefs.MaxDataSeconds)
	}
	if pruned > 0 {
		s.metrics.AddPrunedPoints(pruned)
	}
}

// AddLOBGroupCommand stages a timestamped preference change for replay.
func (s *MemoryDataStore) AddLOBGroupCommand(id domain.ObjectID) (*domain.Command[domain.LOBGroupPrefs], *Transaction, error) {
	e, ok := s.lobGroups[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "lobgroup")
	}
	cmd := &domain.Command[domain.LOBGroupPrefs]{}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		e.commands.insert(cmd)
		s.hasChanged = true
		s.dataLimit(&e.prefs.Common, e.updates.isStatic(),
			e.updates, e.commands, s.genericData[id], s.categoryData[id])
	}, nil)
	return cmd, txn, nil
}

// LOBGroupUpdates returns the group's update slice, or nil.
func (s *MemoryDataStore) LOBGroupUpdates(id domain.ObjectID) *UpdateSlice[*domain.LOBGroupUpdate] {
	if e, ok := s.lobGroups[id]; ok {
		return e.updates
	}
	return nil
}

// LOBGroupCommands returns the group's command slice, or nil.
func (s *MemoryDataStore) LOBGroupCommands(id domain.ObjectID) *CommandSlice[domain.LOBGroupPrefs, *domain.LOBGroupPrefs] {
	if e, ok := s.lobGroups[id]; ok {
		return e.commands
	}
	return nil
}

// --- custom renderings ---

// AddCustomRendering stages a new custom rendering entity hosted on a
// platform.
func (s *MemoryDataStore) AddCustomRendering(hostID domain.ObjectID) (*domain.CustomRenderingProperties, *Transaction, error) {
	if _, ok := s.platforms[hostID]; !ok {
		return nil, nil, invalidHost(uint64(hostID), "platform")
	}
	id := s.genUniqueID()
	props := &domain.CustomRenderingProperties{ID: id, HostID: hostID}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		prefs := s.defaultCustomRenderingPrefs()
		s.customRenderings[id] = &customRenderingEntry{
			props:    props,
			prefs:    prefs,
			commands: newCommandSlice[domain.CustomRenderingPrefs, *domain.CustomRenderingPrefs](),
		}
		s.registerEntity(id, domain.CustomRendering, rawName(&prefs.Common))
		s.metrics.SetEntityCount(domain.CustomRendering, len(s.customRenderings))
	}, func() {
		s.listeners.invoke(func(l Listener) { l.OnAddEntity(s, id, domain.CustomRendering) })
	})
	return props, txn, nil
}

func (s *MemoryDataStore) defaultCustomRenderingPrefs() *domain.CustomRenderingPrefs {
	if s.defaults != nil && s.defaults.CustomRendering != nil {
		return s.defaults.CustomRendering.Clone()
	}
	return &domain.CustomRenderingPrefs{}
}

// CustomRenderingProperties returns a copy of the entity's properties.
func (s *MemoryDataStore) CustomRenderingProperties(id domain.ObjectID) (*domain.CustomRenderingProperties, error) {
	e, ok := s.customRenderings[id]
	if !ok {
		return nil, wrongOrMissing(s, id, "customrendering")
	}
	return e.props.Clone(), nil
}

// MutableCustomRenderingProperties stages an edit of the entity's
// properties. The id and host binding are immutable.
func (s *MemoryDataStore) MutableCustomRenderingProperties(id domain.ObjectID) (*domain.CustomRenderingProperties, *Transaction, error) {
	e, ok := s.customRenderings[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "customrendering")
	}
	staged := e.props.Clone()
	host := e.props.HostID
	txn := newTransaction(func() {
		staged.ID = id
		staged.HostID = host
		e.props = staged.Clone()
		s.hasChanged = true
	}, nil)
	return staged, txn, nil
}

// CustomRenderingPrefs returns a copy of the entity's preferences.
func (s *MemoryDataStore) CustomRenderingPrefs(id domain.ObjectID) (*domain.CustomRenderingPrefs, error) {
	e, ok := s.customRenderings[id]
	if !ok {
		return nil, wrongOrMissing(s, id, "customrendering")
	}
	return e.prefs.Clone(), nil
}

// MutableCustomRenderingPrefs stages an edit of the entity's preferences.
func (s *MemoryDataStore) MutableCustomRenderingPrefs(id domain.ObjectID) (*domain.CustomRenderingPrefs, *Transaction, error) {
	e, ok := s.customRenderings[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "customrendering")
	}
	staged, txn := prefsTransaction[domain.CustomRenderingPrefs](s, id, domain.CustomRendering,
		func() *domain.CustomRenderingPrefs { return e.prefs },
		func(p *domain.CustomRenderingPrefs) { e.prefs = p })
	return staged, txn, nil
}

// AddCustomRenderingCommand stages a timestamped preference change for
// replay.
func (s *MemoryDataStore) AddCustomRenderingCommand(id domain.ObjectID) (*domain.Command[domain.CustomRenderingPrefs], *Transaction, error) {
	e, ok := s.customRenderings[id]
	if !ok {
		return nil, nil, wrongOrMissing(s, id, "customrendering")
	}
	cmd := &domain.Command[domain.CustomRenderingPrefs]{}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		e.commands.insert(cmd)
		s.hasChanged = true
		s.dataLimit(&e.prefs.Common, false,
			e.commands, s.genericData[id], s.categoryData[id])
	}, nil)
	return cmd, txn, nil
}

// CustomRenderingCommands returns the entity's command slice, or nil.
func (s *MemoryDataStore) CustomRenderingCommands(id domain.ObjectID) *CommandSlice[domain.CustomRenderingPrefs, *domain.CustomRenderingPrefs] {
	if e, ok := s.customRenderings[id]; ok {
		return e.commands
	}
	return nil
}

// --- generic and category data ---

// AddGenericData stages free-form tag/value entries for an entity, or for
// the scenario when id is ScenarioID. With data limiting on and duplicate
// suppression enabled in the scenario properties, entries repeating a tag's
// newest value are dropped.
func (s *MemoryDataStore) AddGenericData(id domain.ObjectID) (*domain.GenericData, *Transaction, error) {
	gd, ok := s.genericData[id]
	if !ok {
		return nil, nil, entityNotFound(uint64(id))
	}
	g := &domain.GenericData{}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		gd.insert(g, s.dataLimiting && s.properties.IgnoreDuplicateGenericData)
		s.hasChanged = true
		s.dataLimit(s.commonPrefsOf(id), false, gd)
	}, nil)
	return g, txn, nil
}

// AddCategoryData stages category assignments for an entity.
func (s *MemoryDataStore) AddCategoryData(id domain.ObjectID) (*domain.CategoryData, *Transaction, error) {
	cd, ok := s.categoryData[id]
	if !ok {
		return nil, nil, entityNotFound(uint64(id))
	}
	c := &domain.CategoryData{}
	committed := false
	txn := newTransaction(func() {
		if committed {
			return
		}
		committed = true
		cd.insert(c)
		s.hasChanged = true
		s.dataLimit(s.commonPrefsOf(id), false, cd)
	}, nil)
	return c, txn, nil
}

// GenericData returns the generic data slice for an entity or the
// scenario, or nil for an unknown id.
func (s *MemoryDataStore) GenericData(id domain.ObjectID) *GenericDataSlice {
	return s.genericData[id]
}

// CategoryData returns the entity's category data slice, or nil.
func (s *MemoryDataStore) CategoryData(id domain.ObjectID) *CategoryDataSlice {
	return s.categoryData[id]
}

// RemoveGenericDataTag drops a tag's entire timeline. Removing an absent
// tag is a no-op.
func (s *MemoryDataStore) RemoveGenericDataTag(id domain.ObjectID, tag string) error {
	gd, ok := s.genericData[id]
	if !ok {
		return entityNotFound(uint64(id))
	}
	if gd.removeTag(tag) {
		s.hasChanged = true
	}
	return nil
}

// RemoveCategoryDataPoint drops a single category assignment at exactly
// time t. Removing an absent point is a no-op.
func (s *MemoryDataStore) RemoveCategoryDataPoint(id domain.ObjectID, name string, t float64) error {
	cd, ok := s.categoryData[id]
	if !ok {
		return entityNotFound(uint64(id))
	}
	if cd.removePoint(name, t) {
		s.hasChanged = true
	}
	return nil
}

// wrongOrMissing distinguishes an unknown id from an id of another type so
// accessor errors name the actual problem.
func wrongOrMissing(s *MemoryDataStore, id domain.ObjectID, want string) error {
	if _, ok := s.entityTypes[id]; ok {
		return wrongEntityType(uint64(id), want)
	}
	return entityNotFound(uint64(id))
}
