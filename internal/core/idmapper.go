package core

import (
	"trackstore/pkg/domain"
)

// mappingRecord is the foreign side of an id mapping.
type mappingRecord struct {
	remoteID       uint64
	originalID     uint64
	name           string
	hostPlatformID uint64
}

// isPlatform reports whether the foreign record describes a platform. A
// platform hosts itself.
func (m mappingRecord) isPlatform() bool {
	return m.hostPlatformID == m.remoteID
}

// DataStoreIDMapper resolves entity ids from a foreign store, for example a
// peer in a distributed exercise, to the equivalent local ids. Resolution
// goes original id first, then host platform, then name; anything still
// ambiguous stays unmapped. Successful resolutions are cached until the
// local entity goes away. The mapping table itself is foreign-side data and
// survives local removals; only RemoveID and ClearMappings shrink it.
type DataStoreIDMapper struct {
	ds DataStore

	mappings      map[uint64]mappingRecord
	remoteToLocal map[uint64]domain.ObjectID
	localToRemote map[domain.ObjectID]uint64
}

// NewDataStoreIDMapper builds a mapper over ds and registers the listener
// that keeps the resolution cache honest across entity removals.
func NewDataStoreIDMapper(ds DataStore) *DataStoreIDMapper {
	m := &DataStoreIDMapper{
		ds:            ds,
		mappings:      make(map[uint64]mappingRecord),
		remoteToLocal: make(map[uint64]domain.ObjectID),
		localToRemote: make(map[domain.ObjectID]uint64),
	}
	ds.AddListener(&idMapperListener{mapper: m})
	return m
}

// AddMapping records or replaces the foreign descriptor for remoteID.
// Replacing a descriptor drops any cached resolution for it.
func (m *DataStoreIDMapper) AddMapping(remoteID, originalID uint64, name string, hostPlatformID uint64) {
	m.mappings[remoteID] = mappingRecord{
		remoteID:       remoteID,
		originalID:     originalID,
		name:           name,
		hostPlatformID: hostPlatformID,
	}
	m.dropResolution(remoteID)
}

// RemoveID forgets the foreign descriptor and any cached resolution for
// remoteID.
func (m *DataStoreIDMapper) RemoveID(remoteID uint64) {
	delete(m.mappings, remoteID)
	m.dropResolution(remoteID)
}

// ClearMappings forgets every descriptor and cached resolution.
func (m *DataStoreIDMapper) ClearMappings() {
	m.mappings = make(map[uint64]mappingRecord)
	m.remoteToLocal = make(map[uint64]domain.ObjectID)
	m.localToRemote = make(map[domain.ObjectID]uint64)
}

// Map resolves remoteID to the local entity id, or 0 when no unambiguous
// match exists. An unmapped result is not sticky; the same id may resolve
// later once more local entities or mappings arrive.
func (m *DataStoreIDMapper) Map(remoteID uint64) domain.ObjectID {
	if local, ok := m.remoteToLocal[remoteID]; ok {
		return local
	}
	rec, ok := m.mappings[remoteID]
	if !ok {
		return 0
	}
	local := m.resolve(rec)
	if local != 0 {
		m.remoteToLocal[remoteID] = local
		m.localToRemote[local] = remoteID
	}
	return local
}

// RemoteID is the reverse lookup over cached resolutions, or 0.
func (m *DataStoreIDMapper) RemoteID(localID domain.ObjectID) uint64 {
	return m.localToRemote[localID]
}

func (m *DataStoreIDMapper) resolve(rec mappingRecord) domain.ObjectID {
	mask := domain.All &^ domain.Platform
	if rec.isPlatform() {
		mask = domain.Platform
	}
	candidates := m.ds.IDsByOriginalID(rec.originalID, mask)
	if len(candidates) > 1 && !rec.isPlatform() {
		candidates = m.narrowByHost(rec, candidates)
	}
	if len(candidates) > 1 {
		candidates = m.narrowByName(rec, candidates)
	}
	if len(candidates) != 1 {
		return 0
	}
	return candidates[0]
}

// narrowByHost keeps the candidates whose hosting platform is the local
// mapping of the foreign record's host. The host resolves recursively
// through this mapper.
func (m *DataStoreIDMapper) narrowByHost(rec mappingRecord, candidates []domain.ObjectID) []domain.ObjectID {
	localHost := m.Map(rec.hostPlatformID)
	if localHost == 0 {
		return candidates
	}
	var kept []domain.ObjectID
	for _, id := range candidates {
		if m.hostPlatformOf(id) == localHost {
			kept = append(kept, id)
		}
	}
	if len(kept) == 0 {
		return candidates
	}
	return kept
}

func (m *DataStoreIDMapper) narrowByName(rec mappingRecord, candidates []domain.ObjectID) []domain.ObjectID {
	var kept []domain.ObjectID
	for _, id := range candidates {
		if m.ds.EntityName(id) == rec.name {
			kept = append(kept, id)
		}
	}
	if len(kept) == 0 {
		return candidates
	}
	return kept
}

// hostPlatformOf walks the host chain up to the owning platform. Platforms
// host themselves.
func (m *DataStoreIDMapper) hostPlatformOf(id domain.ObjectID) domain.ObjectID {
	for id != 0 && m.ds.ObjectTypeOf(id) != domain.Platform {
		id = m.ds.HostID(id)
	}
	return id
}

func (m *DataStoreIDMapper) dropResolution(remoteID uint64) {
	if local, ok := m.remoteToLocal[remoteID]; ok {
		delete(m.remoteToLocal, remoteID)
		delete(m.localToRemote, local)
	}
}

func (m *DataStoreIDMapper) dropLocal(localID domain.ObjectID) {
	if remote, ok := m.localToRemote[localID]; ok {
		delete(m.localToRemote, localID)
		delete(m.remoteToLocal, remote)
	}
}

// idMapperListener invalidates cached resolutions when mapped local
// entities disappear. The mapping table is untouched.
type idMapperListener struct {
	BaseListener
	mapper *DataStoreIDMapper
}

func (l *idMapperListener) OnRemoveEntity(_ DataStore, id domain.ObjectID, _ domain.ObjectType) {
	l.mapper.dropLocal(id)
}

func (l *idMapperListener) OnScenarioDelete(_ DataStore) {
	l.mapper.remoteToLocal = make(map[uint64]domain.ObjectID)
	l.mapper.localToRemote = make(map[domain.ObjectID]uint64)
}
