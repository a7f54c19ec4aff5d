package core

import (
	"trackstore/pkg/domain"
)

// DataStoreProxy wraps a DataStore behind a stable handle so long-lived
// holders survive a store swap, for example when a new scenario file is
// loaded. Observers register through the proxy; Reset carries them, along
// with the interpolator and limiting settings, onto the replacement store.
type DataStoreProxy struct {
	ds DataStore

	listeners           []Listener
	scenarioListeners   []ScenarioListener
	newUpdatesListeners []NewUpdatesListener
}

// NewDataStoreProxy wraps ds. ds must not be nil.
func NewDataStoreProxy(ds DataStore) *DataStoreProxy {
	return &DataStoreProxy{ds: ds}
}

// Reset replaces the wrapped store. Observers registered through the proxy
// move to the replacement, as do the interpolator, interpolation flag,
// data limiting flag, and preference defaults. The old store is left
// without the proxy's observers. A nil replacement is ignored.
func (p *DataStoreProxy) Reset(ds DataStore) {
	if ds == nil || ds == p.ds {
		return
	}
	old := p.ds
	for _, l := range p.listeners {
		old.RemoveListener(l)
		ds.AddListener(l)
	}
	for _, l := range p.scenarioListeners {
		old.RemoveScenarioListener(l)
		ds.AddScenarioListener(l)
	}
	for _, l := range p.newUpdatesListeners {
		old.RemoveNewUpdatesListener(l)
		ds.AddNewUpdatesListener(l)
	}
	ds.SetInterpolator(old.Interpolator())
	ds.EnableInterpolation(old.IsInterpolationEnabled())
	ds.SetDataLimiting(old.DataLimiting())
	ds.SetDefaults(old.Defaults())
	p.ds = ds
}

// Store returns the currently wrapped store.
func (p *DataStoreProxy) Store() DataStore { return p.ds }

func (p *DataStoreProxy) AddPlatform() (*domain.PlatformProperties, *Transaction) {
	return p.ds.AddPlatform()
}

func (p *DataStoreProxy) AddBeam(hostID domain.ObjectID) (*domain.BeamProperties, *Transaction, error) {
	return p.ds.AddBeam(hostID)
}

func (p *DataStoreProxy) AddGate(hostID domain.ObjectID) (*domain.GateProperties, *Transaction, error) {
	return p.ds.AddGate(hostID)
}

func (p *DataStoreProxy) AddLaser(hostID domain.ObjectID) (*domain.LaserProperties, *Transaction, error) {
	return p.ds.AddLaser(hostID)
}

func (p *DataStoreProxy) AddProjector(hostID domain.ObjectID) (*domain.ProjectorProperties, *Transaction, error) {
	return p.ds.AddProjector(hostID)
}

func (p *DataStoreProxy) AddLOBGroup(hostID domain.ObjectID) (*domain.LOBGroupProperties, *Transaction, error) {
	return p.ds.AddLOBGroup(hostID)
}

func (p *DataStoreProxy) AddCustomRendering(hostID domain.ObjectID) (*domain.CustomRenderingProperties, *Transaction, error) {
	return p.ds.AddCustomRendering(hostID)
}

func (p *DataStoreProxy) PlatformProperties(id domain.ObjectID) (*domain.PlatformProperties, error) {
	return p.ds.PlatformProperties(id)
}

func (p *DataStoreProxy) BeamProperties(id domain.ObjectID) (*domain.BeamProperties, error) {
	return p.ds.BeamProperties(id)
}

func (p *DataStoreProxy) GateProperties(id domain.ObjectID) (*domain.GateProperties, error) {
	return p.ds.GateProperties(id)
}

func (p *DataStoreProxy) LaserProperties(id domain.ObjectID) (*domain.LaserProperties, error) {
	return p.ds.LaserProperties(id)
}

func (p *DataStoreProxy) ProjectorProperties(id domain.ObjectID) (*domain.ProjectorProperties, error) {
	return p.ds.ProjectorProperties(id)
}

func (p *DataStoreProxy) LOBGroupProperties(id domain.ObjectID) (*domain.LOBGroupProperties, error) {
	return p.ds.LOBGroupProperties(id)
}

func (p *DataStoreProxy) CustomRenderingProperties(id domain.ObjectID) (*domain.CustomRenderingProperties, error) {
	return p.ds.CustomRenderingProperties(id)
}

func (p *DataStoreProxy) MutablePlatformProperties(id domain.ObjectID) (*domain.PlatformProperties, *Transaction, error) {
	return p.ds.MutablePlatformProperties(id)
}

func (p *DataStoreProxy) MutableBeamProperties(id domain.ObjectID) (*domain.BeamProperties, *Transaction, error) {
	return p.ds.MutableBeamProperties(id)
}

func (p *DataStoreProxy) MutableGateProperties(id domain.ObjectID) (*domain.GateProperties, *Transaction, error) {
	return p.ds.MutableGateProperties(id)
}

func (p *DataStoreProxy) MutableLaserProperties(id domain.ObjectID) (*domain.LaserProperties, *Transaction, error) {
	return p.ds.MutableLaserProperties(id)
}

func (p *DataStoreProxy) MutableProjectorProperties(id domain.ObjectID) (*domain.ProjectorProperties, *Transaction, error) {
	return p.ds.MutableProjectorProperties(id)
}

func (p *DataStoreProxy) MutableLOBGroupProperties(id domain.ObjectID) (*domain.LOBGroupProperties, *Transaction, error) {
	return p.ds.MutableLOBGroupProperties(id)
}

func (p *DataStoreProxy) MutableCustomRenderingProperties(id domain.ObjectID) (*domain.CustomRenderingProperties, *Transaction, error) {
	return p.ds.MutableCustomRenderingProperties(id)
}

func (p *DataStoreProxy) PlatformPrefs(id domain.ObjectID) (*domain.PlatformPrefs, error) {
	return p.ds.PlatformPrefs(id)
}

func (p *DataStoreProxy) BeamPrefs(id domain.ObjectID) (*domain.BeamPrefs, error) {
	return p.ds.BeamPrefs(id)
}

func (p *DataStoreProxy) GatePrefs(id domain.ObjectID) (*domain.GatePrefs, error) {
	return p.ds.GatePrefs(id)
}

func (p *DataStoreProxy) LaserPrefs(id domain.ObjectID) (*domain.LaserPrefs, error) {
	return p.ds.LaserPrefs(id)
}

func (p *DataStoreProxy) ProjectorPrefs(id domain.ObjectID) (*domain.ProjectorPrefs, error) {
	return p.ds.ProjectorPrefs(id)
}

func (p *DataStoreProxy) LOBGroupPrefs(id domain.ObjectID) (*domain.LOBGroupPrefs, error) {
	return p.ds.LOBGroupPrefs(id)
}

func (p *DataStoreProxy) CustomRenderingPrefs(id domain.ObjectID) (*domain.CustomRenderingPrefs, error) {
	return p.ds.CustomRenderingPrefs(id)
}

func (p *DataStoreProxy) MutablePlatformPrefs(id domain.ObjectID) (*domain.PlatformPrefs, *Transaction, error) {
	return p.ds.MutablePlatformPrefs(id)
}

func (p *DataStoreProxy) MutableBeamPrefs(id domain.ObjectID) (*domain.BeamPrefs, *Transaction, error) {
	return p.ds.MutableBeamPrefs(id)
}

func (p *DataStoreProxy) MutableGatePrefs(id domain.ObjectID) (*domain.GatePrefs, *Transaction, error) {
	return p.ds.MutableGatePrefs(id)
}

func (p *DataStoreProxy) MutableLaserPrefs(id domain.ObjectID) (*domain.LaserPrefs, *Transaction, error) {
	return p.ds.MutableLaserPrefs(id)
}

func (p *DataStoreProxy) MutableProjectorPrefs(id domain.ObjectID) (*domain.ProjectorPrefs, *Transaction, error) {
	return p.ds.MutableProjectorPrefs(id)
}

func (p *DataStoreProxy) MutableLOBGroupPrefs(id domain.ObjectID) (*domain.LOBGroupPrefs, *Transaction, error) {
	return p.ds.MutableLOBGroupPrefs(id)
}

func (p *DataStoreProxy) MutableCustomRenderingPrefs(id domain.ObjectID) (*domain.CustomRenderingPrefs, *Transaction, error) {
	return p.ds.MutableCustomRenderingPrefs(id)
}

func (p *DataStoreProxy) AddPlatformUpdate(id domain.ObjectID) (*domain.PlatformUpdate, *Transaction, error) {
	return p.ds.AddPlatformUpdate(id)
}

func (p *DataStoreProxy) AddBeamUpdate(id domain.ObjectID) (*domain.BeamUpdate, *Transaction, error) {
	return p.ds.AddBeamUpdate(id)
}

func (p *DataStoreProxy) AddGateUpdate(id domain.ObjectID) (*domain.GateUpdate, *Transaction, error) {
	return p.ds.AddGateUpdate(id)
}

func (p *DataStoreProxy) AddLaserUpdate(id domain.ObjectID) (*domain.LaserUpdate, *Transaction, error) {
	return p.ds.AddLaserUpdate(id)
}

func (p *DataStoreProxy) AddProjectorUpdate(id domain.ObjectID) (*domain.ProjectorUpdate, *Transaction, error) {
	return p.ds.AddProjectorUpdate(id)
}

func (p *DataStoreProxy) AddLOBGroupUpdate(id domain.ObjectID) (*domain.LOBGroupUpdate, *Transaction, error) {
	return p.ds.AddLOBGroupUpdate(id)
}

func (p *DataStoreProxy) AddPlatformCommand(id domain.ObjectID) (*domain.Command[domain.PlatformPrefs], *Transaction, error) {
	return p.ds.AddPlatformCommand(id)
}

func (p *DataStoreProxy) AddBeamCommand(id domain.ObjectID) (*domain.Command[domain.BeamPrefs], *Transaction, error) {
	return p.ds.AddBeamCommand(id)
}

func (p *DataStoreProxy) AddGateCommand(id domain.ObjectID) (*domain.Command[domain.GatePrefs], *Transaction, error) {
	return p.ds.AddGateCommand(id)
}

func (p *DataStoreProxy) AddLaserCommand(id domain.ObjectID) (*domain.Command[domain.LaserPrefs], *Transaction, error) {
	return p.ds.AddLaserCommand(id)
}

func (p *DataStoreProxy) AddProjectorCommand(id domain.ObjectID) (*domain.Command[domain.ProjectorPrefs], *Transaction, error) {
	return p.ds.AddProjectorCommand(id)
}

func (p *DataStoreProxy) AddLOBGroupCommand(id domain.ObjectID) (*domain.Command[domain.LOBGroupPrefs], *Transaction, error) {
	return p.ds.AddLOBGroupCommand(id)
}

func (p *DataStoreProxy) AddCustomRenderingCommand(id domain.ObjectID) (*domain.Command[domain.CustomRenderingPrefs], *Transaction, error) {
	return p.ds.AddCustomRenderingCommand(id)
}

func (p *DataStoreProxy) PlatformUpdates(id domain.ObjectID) *UpdateSlice[*domain.PlatformUpdate] {
	return p.ds.PlatformUpdates(id)
}

func (p *DataStoreProxy) BeamUpdates(id domain.ObjectID) *UpdateSlice[*domain.BeamUpdate] {
	return p.ds.BeamUpdates(id)
}

func (p *DataStoreProxy) GateUpdates(id domain.ObjectID) *UpdateSlice[*domain.GateUpdate] {
	return p.ds.GateUpdates(id)
}

func (p *DataStoreProxy) LaserUpdates(id domain.ObjectID) *UpdateSlice[*domain.LaserUpdate] {
	return p.ds.LaserUpdates(id)
}

func (p *DataStoreProxy) ProjectorUpdates(id domain.ObjectID) *UpdateSlice[*domain.ProjectorUpdate] {
	return p.ds.ProjectorUpdates(id)
}

func (p *DataStoreProxy) LOBGroupUpdates(id domain.ObjectID) *UpdateSlice[*domain.LOBGroupUpdate] {
	return p.ds.LOBGroupUpdates(id)
}

func (p *DataStoreProxy) PlatformCommands(id domain.ObjectID) *CommandSlice[domain.PlatformPrefs, *domain.PlatformPrefs] {
	return p.ds.PlatformCommands(id)
}

func (p *DataStoreProxy) BeamCommands(id domain.ObjectID) *CommandSlice[domain.BeamPrefs, *domain.BeamPrefs] {
	return p.ds.BeamCommands(id)
}

func (p *DataStoreProxy) GateCommands(id domain.ObjectID) *CommandSlice[domain.GatePrefs, *domain.GatePrefs] {
	return p.ds.GateCommands(id)
}

func (p *DataStoreProxy) LaserCommands(id domain.ObjectID) *CommandSlice[domain.LaserPrefs, *domain.LaserPrefs] {
	return p.ds.LaserCommands(id)
}

func (p *DataStoreProxy) ProjectorCommands(id domain.ObjectID) *CommandSlice[domain.ProjectorPrefs, *domain.ProjectorPrefs] {
	return p.ds.ProjectorCommands(id)
}

func (p *DataStoreProxy) LOBGroupCommands(id domain.ObjectID) *CommandSlice[domain.LOBGroupPrefs, *domain.LOBGroupPrefs] {
	return p.ds.LOBGroupCommands(id)
}

func (p *DataStoreProxy) CustomRenderingCommands(id domain.ObjectID) *CommandSlice[domain.CustomRenderingPrefs, *domain.CustomRenderingPrefs] {
	return p.ds.CustomRenderingCommands(id)
}

func (p *DataStoreProxy) AddGenericData(id domain.ObjectID) (*domain.GenericData, *Transaction, error) {
	return p.ds.AddGenericData(id)
}

func (p *DataStoreProxy) AddCategoryData(id domain.ObjectID) (*domain.CategoryData, *Transaction, error) {
	return p.ds.AddCategoryData(id)
}

func (p *DataStoreProxy) GenericData(id domain.ObjectID) *GenericDataSlice {
	return p.ds.GenericData(id)
}

func (p *DataStoreProxy) CategoryData(id domain.ObjectID) *CategoryDataSlice {
	return p.ds.CategoryData(id)
}

func (p *DataStoreProxy) RemoveGenericDataTag(id domain.ObjectID, tag string) error {
	return p.ds.RemoveGenericDataTag(id, tag)
}

func (p *DataStoreProxy) RemoveCategoryDataPoint(id domain.ObjectID, name string, t float64) error {
	return p.ds.RemoveCategoryDataPoint(id, name, t)
}

func (p *DataStoreProxy) Update(t float64) { p.ds.Update(t) }

func (p *DataStoreProxy) LastUpdateTime() float64 { return p.ds.LastUpdateTime() }

func (p *DataStoreProxy) TimeBounds(id domain.ObjectID) (first, last float64) {
	return p.ds.TimeBounds(id)
}

func (p *DataStoreProxy) Flush(id domain.ObjectID) error { return p.ds.Flush(id) }

func (p *DataStoreProxy) FlushTimeRange(id domain.ObjectID, start, end float64) error {
	return p.ds.FlushTimeRange(id, start, end)
}

func (p *DataStoreProxy) RemoveEntity(id domain.ObjectID) error { return p.ds.RemoveEntity(id) }

func (p *DataStoreProxy) Clear() { p.ds.Clear() }

func (p *DataStoreProxy) IDList(mask domain.ObjectType) []domain.ObjectID {
	return p.ds.IDList(mask)
}

func (p *DataStoreProxy) IDsByName(name string, mask domain.ObjectType) []domain.ObjectID {
	return p.ds.IDsByName(name, mask)
}

func (p *DataStoreProxy) IDsByOriginalID(originalID uint64, mask domain.ObjectType) []domain.ObjectID {
	return p.ds.IDsByOriginalID(originalID, mask)
}

func (p *DataStoreProxy) IDsForHost(hostID domain.ObjectID, mask domain.ObjectType) []domain.ObjectID {
	return p.ds.IDsForHost(hostID, mask)
}

func (p *DataStoreProxy) ObjectTypeOf(id domain.ObjectID) domain.ObjectType {
	return p.ds.ObjectTypeOf(id)
}

func (p *DataStoreProxy) HostID(id domain.ObjectID) domain.ObjectID { return p.ds.HostID(id) }

func (p *DataStoreProxy) EntityName(id domain.ObjectID) string { return p.ds.EntityName(id) }

func (p *DataStoreProxy) ScenarioProperties() domain.ScenarioProperties {
	return p.ds.ScenarioProperties()
}

func (p *DataStoreProxy) MutableScenarioProperties() (*domain.ScenarioProperties, *Transaction) {
	return p.ds.MutableScenarioProperties()
}

func (p *DataStoreProxy) SetDefaults(d *domain.ScenarioDefaults) { p.ds.SetDefaults(d) }

func (p *DataStoreProxy) Defaults() *domain.ScenarioDefaults { return p.ds.Defaults() }

func (p *DataStoreProxy) SetInterpolator(in Interpolator) { p.ds.SetInterpolator(in) }

func (p *DataStoreProxy) Interpolator() Interpolator { return p.ds.Interpolator() }

func (p *DataStoreProxy) EnableInterpolation(enable bool) bool {
	return p.ds.EnableInterpolation(enable)
}

func (p *DataStoreProxy) IsInterpolationEnabled() bool { return p.ds.IsInterpolationEnabled() }

func (p *DataStoreProxy) SetDataLimiting(enable bool) { p.ds.SetDataLimiting(enable) }

func (p *DataStoreProxy) DataLimiting() bool { return p.ds.DataLimiting() }

// AddListener registers a store observer through the proxy so it follows
// a Reset onto the replacement store.
func (p *DataStoreProxy) AddListener(l Listener) {
	p.listeners = append(p.listeners, l)
	p.ds.AddListener(l)
}

// RemoveListener unregisters a store observer.
func (p *DataStoreProxy) RemoveListener(l Listener) {
	for i, have := range p.listeners {
		if have == l {
			p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
			break
		}
	}
	p.ds.RemoveListener(l)
}

// AddScenarioListener registers a scenario observer through the proxy.
func (p *DataStoreProxy) AddScenarioListener(l ScenarioListener) {
	p.scenarioListeners = append(p.scenarioListeners, l)
	p.ds.AddScenarioListener(l)
}

// RemoveScenarioListener unregisters a scenario observer.
func (p *DataStoreProxy) RemoveScenarioListener(l ScenarioListener) {
	for i, have := range p.scenarioListeners {
		if have == l {
			p.scenarioListeners = append(p.scenarioListeners[:i], p.scenarioListeners[i+1:]...)
			break
		}
	}
	p.ds.RemoveScenarioListener(l)
}

// AddNewUpdatesListener registers a data arrival observer through the
// proxy.
func (p *DataStoreProxy) AddNewUpdatesListener(l NewUpdatesListener) {
	p.newUpdatesListeners = append(p.newUpdatesListeners, l)
	p.ds.AddNewUpdatesListener(l)
}

// RemoveNewUpdatesListener unregisters a data arrival observer.
func (p *DataStoreProxy) RemoveNewUpdatesListener(l NewUpdatesListener) {
	for i, have := range p.newUpdatesListeners {
		if have == l {
			p.newUpdatesListeners = append(p.newUpdatesListeners[:i], p.newUpdatesListeners[i+1:]...)
			break
		}
	}
	p.ds.RemoveNewUpdatesListener(l)
}

var _ DataStore = (*DataStoreProxy)(nil)
var _ DataStore = (*MemoryDataStore)(nil)
