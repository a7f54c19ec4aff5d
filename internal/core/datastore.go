package core

import "trackstore/pkg/domain"

// DataStore is the full surface of the time-indexed entity store. It is
// implemented by MemoryDataStore and by DataStoreProxy, which lets an
// application swap the backing store without re-registering its observers.
//
// A DataStore is not safe for concurrent use. Listener callbacks run
// synchronously on the mutating goroutine and may re-enter the store.
type DataStore interface {
	// Entity creation. The returned properties carry the assigned id; the
	// entity becomes visible when the transaction commits. Hosted entity
	// creation validates the host at call time.
	AddPlatform() (*domain.PlatformProperties, *Transaction)
	AddBeam(hostID domain.ObjectID) (*domain.BeamProperties, *Transaction, error)
	AddGate(hostID domain.ObjectID) (*domain.GateProperties, *Transaction, error)
	AddLaser(hostID domain.ObjectID) (*domain.LaserProperties, *Transaction, error)
	AddProjector(hostID domain.ObjectID) (*domain.ProjectorProperties, *Transaction, error)
	AddLOBGroup(hostID domain.ObjectID) (*domain.LOBGroupProperties, *Transaction, error)
	AddCustomRendering(hostID domain.ObjectID) (*domain.CustomRenderingProperties, *Transaction, error)

	// Properties access. Read accessors return a copy.
	PlatformProperties(id domain.ObjectID) (*domain.PlatformProperties, error)
	BeamProperties(id domain.ObjectID) (*domain.BeamProperties, error)
	GateProperties(id domain.ObjectID) (*domain.GateProperties, error)
	LaserProperties(id domain.ObjectID) (*domain.LaserProperties, error)
	ProjectorProperties(id domain.ObjectID) (*domain.ProjectorProperties, error)
	LOBGroupProperties(id domain.ObjectID) (*domain.LOBGroupProperties, error)
	CustomRenderingProperties(id domain.ObjectID) (*domain.CustomRenderingProperties, error)
	MutablePlatformProperties(id domain.ObjectID) (*domain.PlatformProperties, *Transaction, error)
	MutableBeamProperties(id domain.ObjectID) (*domain.BeamProperties, *Transaction, error)
	MutableGateProperties(id domain.ObjectID) (*domain.GateProperties, *Transaction, error)
	MutableLaserProperties(id domain.ObjectID) (*domain.LaserProperties, *Transaction, error)
	MutableProjectorProperties(id domain.ObjectID) (*domain.ProjectorProperties, *Transaction, error)
	MutableLOBGroupProperties(id domain.ObjectID) (*domain.LOBGroupProperties, *Transaction, error)
	MutableCustomRenderingProperties(id domain.ObjectID) (*domain.CustomRenderingProperties, *Transaction, error)

	// Preferences access. Read accessors return a copy; mutable accessors
	// return a staged copy published on commit, with change notifications
	// on release.
	PlatformPrefs(id domain.ObjectID) (*domain.PlatformPrefs, error)
	BeamPrefs(id domain.ObjectID) (*domain.BeamPrefs, error)
	GatePrefs(id domain.ObjectID) (*domain.GatePrefs, error)
	LaserPrefs(id domain.ObjectID) (*domain.LaserPrefs, error)
	ProjectorPrefs(id domain.ObjectID) (*domain.ProjectorPrefs, error)
	LOBGroupPrefs(id domain.ObjectID) (*domain.LOBGroupPrefs, error)
	CustomRenderingPrefs(id domain.ObjectID) (*domain.CustomRenderingPrefs, error)
	MutablePlatformPrefs(id domain.ObjectID) (*domain.PlatformPrefs, *Transaction, error)
	MutableBeamPrefs(id domain.ObjectID) (*domain.BeamPrefs, *Transaction, error)
	MutableGatePrefs(id domain.ObjectID) (*domain.GatePrefs, *Transaction, error)
	MutableLaserPrefs(id domain.ObjectID) (*domain.LaserPrefs, *Transaction, error)
	MutableProjectorPrefs(id domain.ObjectID) (*domain.ProjectorPrefs, *Transaction, error)
	MutableLOBGroupPrefs(id domain.ObjectID) (*domain.LOBGroupPrefs, *Transaction, error)
	MutableCustomRenderingPrefs(id domain.ObjectID) (*domain.CustomRenderingPrefs, *Transaction, error)

	// Update and command ingest. The returned record is filled by the
	// caller and stored on commit; it must not be modified afterwards.
	AddPlatformUpdate(id domain.ObjectID) (*domain.PlatformUpdate, *Transaction, error)
	AddBeamUpdate(id domain.ObjectID) (*domain.BeamUpdate, *Transaction, error)
	AddGateUpdate(id domain.ObjectID) (*domain.GateUpdate, *Transaction, error)
	AddLaserUpdate(id domain.ObjectID) (*domain.LaserUpdate, *Transaction, error)
	AddProjectorUpdate(id domain.ObjectID) (*domain.ProjectorUpdate, *Transaction, error)
	AddLOBGroupUpdate(id domain.ObjectID) (*domain.LOBGroupUpdate, *Transaction, error)
	AddPlatformCommand(id domain.ObjectID) (*domain.Command[domain.PlatformPrefs], *Transaction, error)
	AddBeamCommand(id domain.ObjectID) (*domain.Command[domain.BeamPrefs], *Transaction, error)
	AddGateCommand(id domain.ObjectID) (*domain.Command[domain.GatePrefs], *Transaction, error)
	AddLaserCommand(id domain.ObjectID) (*domain.Command[domain.LaserPrefs], *Transaction, error)
	AddProjectorCommand(id domain.ObjectID) (*domain.Command[domain.ProjectorPrefs], *Transaction, error)
	AddLOBGroupCommand(id domain.ObjectID) (*domain.Command[domain.LOBGroupPrefs], *Transaction, error)
	AddCustomRenderingCommand(id domain.ObjectID) (*domain.Command[domain.CustomRenderingPrefs], *Transaction, error)

	// Slice access for queries. Accessors return nil for an unknown id or
	// mismatched type.
	PlatformUpdates(id domain.ObjectID) *UpdateSlice[*domain.PlatformUpdate]
	BeamUpdates(id domain.ObjectID) *UpdateSlice[*domain.BeamUpdate]
	GateUpdates(id domain.ObjectID) *UpdateSlice[*domain.GateUpdate]
	LaserUpdates(id domain.ObjectID) *UpdateSlice[*domain.LaserUpdate]
	ProjectorUpdates(id domain.ObjectID) *UpdateSlice[*domain.ProjectorUpdate]
	LOBGroupUpdates(id domain.ObjectID) *UpdateSlice[*domain.LOBGroupUpdate]
	PlatformCommands(id domain.ObjectID) *CommandSlice[domain.PlatformPrefs, *domain.PlatformPrefs]
	BeamCommands(id domain.ObjectID) *CommandSlice[domain.BeamPrefs, *domain.BeamPrefs]
	GateCommands(id domain.ObjectID) *CommandSlice[domain.GatePrefs, *domain.GatePrefs]
	LaserCommands(id domain.ObjectID) *CommandSlice[domain.LaserPrefs, *domain.LaserPrefs]
	ProjectorCommands(id domain.ObjectID) *CommandSlice[domain.ProjectorPrefs, *domain.ProjectorPrefs]
	LOBGroupCommands(id domain.ObjectID) *CommandSlice[domain.LOBGroupPrefs, *domain.LOBGroupPrefs]
	CustomRenderingCommands(id domain.ObjectID) *CommandSlice[domain.CustomRenderingPrefs, *domain.CustomRenderingPrefs]

	// Generic and category data. ScenarioID addresses scenario-scoped
	// generic data.
	AddGenericData(id domain.ObjectID) (*domain.GenericData, *Transaction, error)
	AddCategoryData(id domain.ObjectID) (*domain.CategoryData, *Transaction, error)
	GenericData(id domain.ObjectID) *GenericDataSlice
	CategoryData(id domain.ObjectID) *CategoryDataSlice
	RemoveGenericDataTag(id domain.ObjectID, tag string) error
	RemoveCategoryDataPoint(id domain.ObjectID, name string, t float64) error

	// Time control.
	Update(t float64)
	LastUpdateTime() float64
	TimeBounds(id domain.ObjectID) (first, last float64)

	// Deletion.
	Flush(id domain.ObjectID) error
	FlushTimeRange(id domain.ObjectID, start, end float64) error
	RemoveEntity(id domain.ObjectID) error
	Clear()

	// Lookup.
	IDList(mask domain.ObjectType) []domain.ObjectID
	IDsByName(name string, mask domain.ObjectType) []domain.ObjectID
	IDsByOriginalID(originalID uint64, mask domain.ObjectType) []domain.ObjectID
	IDsForHost(hostID domain.ObjectID, mask domain.ObjectType) []domain.ObjectID
	ObjectTypeOf(id domain.ObjectID) domain.ObjectType
	HostID(id domain.ObjectID) domain.ObjectID
	EntityName(id domain.ObjectID) string

	// Scenario settings.
	ScenarioProperties() domain.ScenarioProperties
	MutableScenarioProperties() (*domain.ScenarioProperties, *Transaction)
	SetDefaults(d *domain.ScenarioDefaults)
	Defaults() *domain.ScenarioDefaults

	// Interpolation control. EnableInterpolation reports the resulting
	// state; enabling fails without an installed interpolator.
	SetInterpolator(in Interpolator)
	Interpolator() Interpolator
	EnableInterpolation(enable bool) bool
	IsInterpolationEnabled() bool

	// Data limiting. Enabling it marks the store as live-mode.
	SetDataLimiting(enable bool)
	DataLimiting() bool

	// Observers.
	AddListener(l Listener)
	RemoveListener(l Listener)
	AddScenarioListener(l ScenarioListener)
	RemoveScenarioListener(l ScenarioListener)
	AddNewUpdatesListener(l NewUpdatesListener)
	RemoveNewUpdatesListener(l NewUpdatesListener)
}
