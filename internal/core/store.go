package core

import (
	"context"
	"math"
	"reflect"
	"sort"
	"time"

	"go.uber.org/zap"

	"trackstore/pkg/domain"
)

// entity entries bundle everything the store keeps per entity besides the
// generic and category data, which live in id-keyed maps shared by all
// types.

type platformEntry struct {
	props    *domain.PlatformProperties
	prefs    *domain.PlatformPrefs
	updates  *UpdateSlice[*domain.PlatformUpdate]
	commands *CommandSlice[domain.PlatformPrefs, *domain.PlatformPrefs]
}

type beamEntry struct {
	props    *domain.BeamProperties
	prefs    *domain.BeamPrefs
	updates  *UpdateSlice[*domain.BeamUpdate]
	commands *CommandSlice[domain.BeamPrefs, *domain.BeamPrefs]
}

type gateEntry struct {
	props    *domain.GateProperties
	prefs    *domain.GatePrefs
	updates  *UpdateSlice[*domain.GateUpdate]
	commands *CommandSlice[domain.GatePrefs, *domain.GatePrefs]
}

type laserEntry struct {
	props    *domain.LaserProperties
	prefs    *domain.LaserPrefs
	updates  *UpdateSlice[*domain.LaserUpdate]
	commands *CommandSlice[domain.LaserPrefs, *domain.LaserPrefs]
}

type projectorEntry struct {
	props    *domain.ProjectorProperties
	prefs    *domain.ProjectorPrefs
	updates  *UpdateSlice[*domain.ProjectorUpdate]
	commands *CommandSlice[domain.ProjectorPrefs, *domain.ProjectorPrefs]
}

type lobGroupEntry struct {
	props    *domain.LOBGroupProperties
	prefs    *domain.LOBGroupPrefs
	updates  *UpdateSlice[*domain.LOBGroupUpdate]
	commands *CommandSlice[domain.LOBGroupPrefs, *domain.LOBGroupPrefs]
}

type customRenderingEntry struct {
	props    *domain.CustomRenderingProperties
	prefs    *domain.CustomRenderingPrefs
	commands *CommandSlice[domain.CustomRenderingPrefs, *domain.CustomRenderingPrefs]
}

// MemoryDataStore is the in-memory implementation of DataStore: a
// time-indexed store of simulation entities, their preference timelines,
// and their free-form annotations, driven by an explicit Update clock.
//
// The store is not safe for concurrent use; the owning application
// serializes access. Listener callbacks run synchronously on the mutating
// goroutine and may re-enter the store.
type MemoryDataStore struct {
	platforms        map[domain.ObjectID]*platformEntry
	beams            map[domain.ObjectID]*beamEntry
	gates            map[domain.ObjectID]*gateEntry
	lasers           map[domain.ObjectID]*laserEntry
	projectors       map[domain.ObjectID]*projectorEntry
	lobGroups        map[domain.ObjectID]*lobGroupEntry
	customRenderings map[domain.ObjectID]*customRenderingEntry

	// entityTypes indexes every live id to its type for O(1) dispatch.
	entityTypes map[domain.ObjectID]domain.ObjectType

	// genericData and categoryData are keyed by entity id; genericData also
	// holds the scenario-scoped slice under ScenarioID.
	genericData  map[domain.ObjectID]*GenericDataSlice
	categoryData map[domain.ObjectID]*CategoryDataSlice

	// names maps each resolved display name to the ids carrying it.
	names map[string]map[domain.ObjectID]domain.ObjectType

	properties domain.ScenarioProperties
	defaults   *domain.ScenarioDefaults

	nextID         uint64
	lastUpdateTime float64
	// hasChanged is set by every mutation; a repeated Update at the same
	// time with no new data is a no-op.
	hasChanged bool

	interpolator         Interpolator
	interpolationEnabled bool

	// dataLimiting marks the store as live-mode: history is pruned on
	// ingest and entities never expire off the end of their data.
	dataLimiting bool

	listeners           listenerList
	scenarioListeners   []ScenarioListener
	newUpdatesListeners []NewUpdatesListener

	log     *zap.SugaredLogger
	metrics MetricsRecorder
}

// Option configures a MemoryDataStore.
type Option func(*MemoryDataStore)

// WithLogger installs a logger; the default discards everything.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *MemoryDataStore) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics installs a metrics recorder; the default discards everything.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *MemoryDataStore) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithDefaults installs the initial preferences granted to new entities.
func WithDefaults(d *domain.ScenarioDefaults) Option {
	return func(s *MemoryDataStore) { s.defaults = d.Clone() }
}

// WithDataLimiting sets the initial live-mode flag.
func WithDataLimiting(enable bool) Option {
	return func(s *MemoryDataStore) { s.dataLimiting = enable }
}

// NewMemoryDataStore returns an empty store.
func NewMemoryDataStore(opts ...Option) *MemoryDataStore {
	s := &MemoryDataStore{
		platforms:        make(map[domain.ObjectID]*platformEntry),
		beams:            make(map[domain.ObjectID]*beamEntry),
		gates:            make(map[domain.ObjectID]*gateEntry),
		lasers:           make(map[domain.ObjectID]*laserEntry),
		projectors:       make(map[domain.ObjectID]*projectorEntry),
		lobGroups:        make(map[domain.ObjectID]*lobGroupEntry),
		customRenderings: make(map[domain.ObjectID]*customRenderingEntry),
		entityTypes:      make(map[domain.ObjectID]domain.ObjectType),
		genericData:      make(map[domain.ObjectID]*GenericDataSlice),
		categoryData:     make(map[domain.ObjectID]*CategoryDataSlice),
		names:            make(map[string]map[domain.ObjectID]domain.ObjectType),
		lastUpdateTime:   -math.MaxFloat64,
		log:              zap.NewNop().Sugar(),
		metrics:          NoopMetricsRecorder{},
	}
	s.genericData[domain.ScenarioID] = newGenericDataSlice()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryDataStore) genUniqueID() domain.ObjectID {
	s.nextID++
	return domain.ObjectID(s.nextID)
}

func sortedIDs[V any](m map[domain.ObjectID]V) []domain.ObjectID {
	out := make([]domain.ObjectID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// --- name cache ---

// rawName is the cache key for name lookups: the Name field alone. Aliases
// never participate, even when UseAlias is set.
func rawName(c *domain.CommonPrefs) string {
	if c == nil || c.Name == nil {
		return ""
	}
	return *c.Name
}

func (s *MemoryDataStore) cacheName(id domain.ObjectID, ot domain.ObjectType, name string) {
	if name == "" {
		return
	}
	byID, ok := s.names[name]
	if !ok {
		byID = make(map[domain.ObjectID]domain.ObjectType)
		s.names[name] = byID
	}
	byID[id] = ot
}

func (s *MemoryDataStore) uncacheName(id domain.ObjectID, name string) {
	if name == "" {
		return
	}
	if byID, ok := s.names[name]; ok {
		delete(byID, id)
		if len(byID) == 0 {
			delete(s.names, name)
		}
	}
}

// --- scenario settings ---

// ScenarioProperties returns a copy of the scenario-wide settings.
func (s *MemoryDataStore) ScenarioProperties() domain.ScenarioProperties {
	return *s.properties.Clone()
}

// MutableScenarioProperties stages an edit of the scenario settings.
// Scenario listeners are notified on release.
func (s *MemoryDataStore) MutableScenarioProperties() (*domain.ScenarioProperties, *Transaction) {
	staged := s.properties.Clone()
	txn := newTransaction(func() {
		s.properties = *staged.Clone()
		s.hasChanged = true
	}, func() {
		snapshot := make([]ScenarioListener, len(s.scenarioListeners))
		copy(snapshot, s.scenarioListeners)
		for _, l := range snapshot {
			l.OnScenarioPropertiesChange(s)
		}
	})
	return staged, txn
}

// SetDefaults replaces the initial preferences granted to new entities.
func (s *MemoryDataStore) SetDefaults(d *domain.ScenarioDefaults) {
	s.defaults = d.Clone()
}

// Defaults returns a copy of the entity preference defaults.
func (s *MemoryDataStore) Defaults() *domain.ScenarioDefaults {
	return s.defaults.Clone()
}

// --- interpolation ---

// SetInterpolator installs the interpolation strategy. Installing nil
// disables interpolation.
func (s *MemoryDataStore) SetInterpolator(in Interpolator) {
	s.interpolator = in
	if in == nil {
		s.interpolationEnabled = false
	}
	s.hasChanged = true
}

// Interpolator returns the installed interpolation strategy.
func (s *MemoryDataStore) Interpolator() Interpolator { return s.interpolator }

// EnableInterpolation toggles interpolation and reports the resulting
// state. Enabling without an installed interpolator fails.
func (s *MemoryDataStore) EnableInterpolation(enable bool) bool {
	if enable && s.interpolator == nil {
		return s.interpolationEnabled
	}
	if s.interpolationEnabled != enable {
		s.interpolationEnabled = enable
		s.hasChanged = true
	}
	return s.interpolationEnabled
}

// IsInterpolationEnabled reports whether resolved records may be blended.
func (s *MemoryDataStore) IsInterpolationEnabled() bool { return s.interpolationEnabled }

// --- data limiting ---

// SetDataLimiting toggles live-mode history pruning.
func (s *MemoryDataStore) SetDataLimiting(enable bool) { s.dataLimiting = enable }

// DataLimiting reports whether the store prunes history on ingest.
func (s *MemoryDataStore) DataLimiting() bool { return s.dataLimiting }

// limitable is anything data limiting can prune.
type limitable interface {
	limitByPoints(n uint32) int
	limitByTime(window float64) int
}

// dataLimit prunes items per the entity's limits, falling back to the
// scenario-wide limits. Static entities are exempt.
func (s *MemoryDataStore) dataLimit(common *domain.CommonPrefs, static bool, items ...limitable) {
	if !s.dataLimiting || static {
		return
	}
	points := s.properties.DataLimitPoints
	if common != nil && common.DataLimitPoints != nil {
		points = *common.DataLimitPoints
	}
	window := s.properties.DataLimitTime
	if common != nil && common.DataLimitTime != nil {
		window = *common.DataLimitTime
	}
	pruned := 0
	for _, item := range items {
		if points > 0 {
			pruned += item.limitByPoints(points)
		}
		if window > 0 {
			pruned += item.limitByTime(window)
		}
	}
	if pruned > 0 {
		s.metrics.AddPrunedPoints(pruned)
	}
}

// --- observers ---

// AddListener registers a store observer.
func (s *MemoryDataStore) AddListener(l Listener) { s.listeners.add(l) }

// RemoveListener unregisters a store observer. Removal from inside a
// callback is allowed; the listener receives nothing further from the
// dispatch in progress.
func (s *MemoryDataStore) RemoveListener(l Listener) { s.listeners.remove(l) }

// AddScenarioListener registers an observer of scenario property edits.
func (s *MemoryDataStore) AddScenarioListener(l ScenarioListener) {
	s.scenarioListeners = append(s.scenarioListeners, l)
}

// RemoveScenarioListener unregisters a scenario observer.
func (s *MemoryDataStore) RemoveScenarioListener(l ScenarioListener) {
	for i, have := range s.scenarioListeners {
		if have == l {
			s.scenarioListeners = append(s.scenarioListeners[:i], s.scenarioListeners[i+1:]...)
			return
		}
	}
}

// AddNewUpdatesListener registers an observer of individual data arrivals.
func (s *MemoryDataStore) AddNewUpdatesListener(l NewUpdatesListener) {
	s.newUpdatesListeners = append(s.newUpdatesListeners, l)
}

// RemoveNewUpdatesListener unregisters a data arrival observer.
func (s *MemoryDataStore) RemoveNewUpdatesListener(l NewUpdatesListener) {
	for i, have := range s.newUpdatesListeners {
		if have == l {
			s.newUpdatesListeners = append(s.newUpdatesListeners[:i], s.newUpdatesListeners[i+1:]...)
			return
		}
	}
}

func (s *MemoryDataStore) notifyEntityUpdate(id domain.ObjectID, t float64) {
	snapshot := make([]NewUpdatesListener, len(s.newUpdatesListeners))
	copy(snapshot, s.newUpdatesListeners)
	for _, l := range snapshot {
		l.OnEntityUpdate(s, id, t)
	}
}

func (s *MemoryDataStore) notifyNewUpdatesFlush(id domain.ObjectID) {
	snapshot := make([]NewUpdatesListener, len(s.newUpdatesListeners))
	copy(snapshot, s.newUpdatesListeners)
	for _, l := range snapshot {
		l.OnFlush(s, id)
	}
}

// --- update pipeline ---

type replayResult struct {
	prefsChanged bool
	nameChanged  bool
	oldName      string
	newName      string
}

// replayCommands replays an entity's commands onto its prefs for the move
// to t, reporting whether the resolved prefs or name changed.
func replayCommands[P any, PP prefsPtr[P]](t float64, commands *CommandSlice[P, PP], prefs PP) replayResult {
	before := prefs.Clone()
	oldName := rawName(prefs.CommonPrefs())
	commands.update(prefs, t)
	newName := rawName(prefs.CommonPrefs())
	return replayResult{
		prefsChanged: commands.HasChanged() && !reflect.DeepEqual(before, (*P)(prefs)),
		nameChanged:  oldName != newName,
		oldName:      oldName,
		newName:      newName,
	}
}

// replayAndResolve runs one entity through the update pass: command replay,
// then update resolution with data-draw gating and file-mode expiry.
func replayAndResolve[U timedPtr, P any, PP prefsPtr[P]](
	t float64,
	updates *UpdateSlice[U],
	commands *CommandSlice[P, PP],
	prefs PP,
	interp interpolateFn[U],
	fileMode bool,
) replayResult {
	res := replayCommands(t, commands, prefs)

	if !prefs.CommonPrefs().DataDrawEnabled() {
		updates.resolveEmpty()
		return res
	}
	if fileMode && updates.NumItems() > 0 && !updates.isStatic() &&
		(t < updates.FirstTime() || t > updates.LastTime()) {
		updates.resolveEmpty()
		return res
	}
	updates.resolve(t, interp)
	return res
}

func (s *MemoryDataStore) applyReplayResult(id domain.ObjectID, ot domain.ObjectType, res replayResult) {
	if res.nameChanged {
		s.uncacheName(id, res.oldName)
		s.cacheName(id, ot, res.newName)
		s.listeners.invoke(func(l Listener) { l.OnNameChange(s, id) })
	}
	if res.prefsChanged {
		s.listeners.invoke(func(l Listener) { l.OnPrefsChange(s, id) })
	}
}

func boolOrTrue(p *bool) bool { return p == nil || *p }

func (s *MemoryDataStore) updatePlatforms(t float64) {
	fileMode := !s.dataLimiting
	for _, id := range sortedIDs(s.platforms) {
		e := s.platforms[id]
		var interp interpolateFn[*domain.PlatformUpdate]
		if s.interpolationEnabled && s.interpolator != nil && e.prefs.InterpolateEnabled() {
			in := s.interpolator
			interp = func(a, b *domain.PlatformUpdate, tt float64) *domain.PlatformUpdate {
				return in.InterpolatePlatform(a, b, tt)
			}
		}
		res := replayAndResolve(t, e.updates, e.commands, e.prefs, interp, fileMode)
		s.applyReplayResult(id, domain.Platform, res)
	}
}

func (s *MemoryDataStore) updateBeams(t float64) {
	fileMode := !s.dataLimiting
	for _, id := range sortedIDs(s.beams) {
		e := s.beams[id]
		var interp interpolateFn[*domain.BeamUpdate]
		if s.interpolationEnabled && s.interpolator != nil && boolOrTrue(e.prefs.InterpolateBeamPos) {
			in := s.interpolator
			interp = func(a, b *domain.BeamUpdate, tt float64) *domain.BeamUpdate {
				return in.InterpolateBeam(a, b, tt)
			}
		}
		res := replayAndResolve(t, e.updates, e.commands, e.prefs, interp, fileMode)
		s.applyReplayResult(id, domain.Beam, res)
	}
}

func (s *MemoryDataStore) updateGates(t float64) {
	fileMode := !s.dataLimiting
	for _, id := range sortedIDs(s.gates) {
		e := s.gates[id]
		var interp interpolateFn[*domain.GateUpdate]
		if s.interpolationEnabled && s.interpolator != nil && boolOrTrue(e.prefs.InterpolateGatePos) {
			in := s.interpolator
			interp = func(a, b *domain.GateUpdate, tt float64) *domain.GateUpdate {
				return in.InterpolateGate(a, b, tt)
			}
		}
		res := replayAndResolve(t, e.updates, e.commands, e.prefs, interp, fileMode)
		s.applyReplayResult(id, domain.Gate, res)
	}
}

func (s *MemoryDataStore) updateLasers(t float64) {
	fileMode := !s.dataLimiting
	for _, id := range sortedIDs(s.lasers) {
		e := s.lasers[id]
		var interp interpolateFn[*domain.LaserUpdate]
		if s.interpolationEnabled && s.interpolator != nil {
			in := s.interpolator
			interp = func(a, b *domain.LaserUpdate, tt float64) *domain.LaserUpdate {
				return in.InterpolateLaser(a, b, tt)
			}
		}
		res := replayAndResolve(t, e.updates, e.commands, e.prefs, interp, fileMode)
		s.applyReplayResult(id, domain.Laser, res)
	}
}

func (s *MemoryDataStore) updateProjectors(t float64) {
	fileMode := !s.dataLimiting
	for _, id := range sortedIDs(s.projectors) {
		e := s.projectors[id]
		var interp interpolateFn[*domain.ProjectorUpdate]
		if s.interpolationEnabled && s.interpolator != nil && boolOrTrue(e.prefs.InterpolateFOV) {
			in := s.interpolator
			interp = func(a, b *domain.ProjectorUpdate, tt float64) *domain.ProjectorUpdate {
				return in.InterpolateProjector(a, b, tt)
			}
		}
		res := replayAndResolve(t, e.updates, e.commands, e.prefs, interp, fileMode)
		s.applyReplayResult(id, domain.Projector, res)
	}
}

func (s *MemoryDataStore) updateLOBGroups(t float64) {
	fileMode := !s.dataLimiting
	for _, id := range sortedIDs(s.lobGroups) {
		e := s.lobGroups[id]
		// LOB groups never interpolate.
		res := replayAndResolve[*domain.LOBGroupUpdate](t, e.updates, e.commands, e.prefs, nil, fileMode)
		s.applyReplayResult(id, domain.LOBGroup, res)
	}
}

func (s *MemoryDataStore) updateCustomRenderings(t float64) {
	for _, id := range sortedIDs(s.customRenderings) {
		e := s.customRenderings[id]
		res := replayCommands(t, e.commands, e.prefs)
		s.applyReplayResult(id, domain.CustomRendering, res)
	}
}

// Update moves the store clock to t: commands replay onto prefs, every
// entity's current update is re-resolved, and generic and category values
// are recomputed. Calling Update again at the same time with no intervening
// mutation is a no-op.
//
// Notification order is deterministic: per-entity name and prefs changes in
// ascending id order during the pass, then category data changes in
// ascending id order, then OnTimeChange last, after all resolved state has
// landed.
func (s *MemoryDataStore) Update(t float64) {
	if !s.hasChanged && t == s.lastUpdateTime {
		return
	}
	start := time.Now()

	s.updatePlatforms(t)
	s.updateBeams(t)
	s.updateGates(t)
	s.updateLasers(t)
	s.updateProjectors(t)
	s.updateLOBGroups(t)
	s.updateCustomRenderings(t)

	for _, id := range sortedIDs(s.genericData) {
		s.genericData[id].update(t)
	}
	var categoryChanged []domain.ObjectID
	for _, id := range sortedIDs(s.categoryData) {
		if s.categoryData[id].update(t) {
			categoryChanged = append(categoryChanged, id)
		}
	}

	s.lastUpdateTime = t
	s.hasChanged = false

	for _, id := range categoryChanged {
		ot, ok := s.entityTypes[id]
		if !ok {
			continue
		}
		s.listeners.invoke(func(l Listener) { l.OnCategoryDataChange(s, id, ot) })
	}
	s.listeners.invoke(func(l Listener) { l.OnTimeChange(s) })
	s.metrics.Observe(context.Background(), "update", true, time.Since(start))
}

// LastUpdateTime returns the time of the last completed update pass.
func (s *MemoryDataStore) LastUpdateTime() float64 { return s.lastUpdateTime }

// --- time bounds ---

func updateBoundsOf[U timedPtr](sl *UpdateSlice[U], first, last *float64) {
	if sl == nil || sl.NumItems() == 0 || sl.isStatic() {
		return
	}
	idx := sl.UpperBound(domain.StaticTime)
	if idx >= sl.NumItems() {
		return
	}
	if f := sl.At(idx).Timestamp(); f < *first {
		*first = f
	}
	if l := sl.LastTime(); l > *last {
		*last = l
	}
}

func commandBoundsOf[P any, PP prefsPtr[P]](cs *CommandSlice[P, PP], first, last *float64) {
	if cs == nil || cs.NumItems() == 0 {
		return
	}
	if f := cs.FirstTime(); f > domain.StaticTime && f < *first {
		*first = f
	}
	if l := cs.LastTime(); l > domain.StaticTime && l > *last {
		*last = l
	}
}

// TimeBounds returns the earliest and latest data times, excluding static
// records. Id 0 spans the whole store; a non-zero id reports the bounds of
// that entity's update slice alone. Unknown ids, static entities, and
// entities without updates report (+MaxFloat64, -MaxFloat64).
func (s *MemoryDataStore) TimeBounds(id domain.ObjectID) (first, last float64) {
	first = math.MaxFloat64
	last = -math.MaxFloat64
	if id != domain.ScenarioID {
		switch s.entityTypes[id] {
		case domain.Platform:
			updateBoundsOf(s.platforms[id].updates, &first, &last)
		case domain.Beam:
			updateBoundsOf(s.beams[id].updates, &first, &last)
		case domain.Gate:
			updateBoundsOf(s.gates[id].updates, &first, &last)
		case domain.Laser:
			updateBoundsOf(s.lasers[id].updates, &first, &last)
		case domain.Projector:
			updateBoundsOf(s.projectors[id].updates, &first, &last)
		case domain.LOBGroup:
			updateBoundsOf(s.lobGroups[id].updates, &first, &last)
		}
		return first, last
	}
	for _, e := range s.platforms {
		updateBoundsOf(e.updates, &first, &last)
		commandBoundsOf(e.commands, &first, &last)
	}
	for _, e := range s.beams {
		updateBoundsOf(e.updates, &first, &last)
		commandBoundsOf(e.commands, &first, &last)
	}
	for _, e := range s.gates {
		updateBoundsOf(e.updates, &first, &last)
		commandBoundsOf(e.commands, &first, &last)
	}
	for _, e := range s.lasers {
		updateBoundsOf(e.updates, &first, &last)
		commandBoundsOf(e.commands, &first, &last)
	}
	for _, e := range s.projectors {
		updateBoundsOf(e.updates, &first, &last)
		commandBoundsOf(e.commands, &first, &last)
	}
	for _, e := range s.lobGroups {
		updateBoundsOf(e.updates, &first, &last)
		commandBoundsOf(e.commands, &first, &last)
	}
	for _, e := range s.customRenderings {
		commandBoundsOf(e.commands, &first, &last)
	}
	for _, gd := range s.genericData {
		if gd.NumItems() == 0 {
			continue
		}
		if f := gd.FirstTime(); f > domain.StaticTime && f < first {
			first = f
		}
		if l := gd.LastTime(); l > domain.StaticTime && l > last {
			last = l
		}
	}
	for _, cd := range s.categoryData {
		if cd.NumItems() == 0 {
			continue
		}
		if f := cd.FirstTime(); f > domain.StaticTime && f < first {
			first = f
		}
		if l := cd.LastTime(); l > domain.StaticTime && l > last {
			last = l
		}
	}
	return first, last
}

// --- flush ---

func (s *MemoryDataStore) flushEntity(id domain.ObjectID, ot domain.ObjectType) int {
	pruned := 0
	switch ot {
	case domain.Platform:
		e := s.platforms[id]
		pruned += e.updates.flush(true)
		pruned += e.commands.flush()
	case domain.Beam:
		e := s.beams[id]
		pruned += e.updates.flush(true)
		pruned += e.commands.flush()
	case domain.Gate:
		e := s.gates[id]
		pruned += e.updates.flush(true)
		pruned += e.commands.flush()
	case domain.Laser:
		e := s.lasers[id]
		pruned += e.updates.flush(true)
		pruned += e.commands.flush()
	case domain.Projector:
		e := s.projectors[id]
		pruned += e.updates.flush(true)
		pruned += e.commands.flush()
	case domain.LOBGroup:
		e := s.lobGroups[id]
		pruned += e.updates.flush(true)
		pruned += e.commands.flush()
	case domain.CustomRendering:
		pruned += s.customRenderings[id].commands.flush()
	}
	if gd, ok := s.genericData[id]; ok {
		pruned += gd.flush()
	}
	if cd, ok := s.categoryData[id]; ok {
		pruned += cd.flush(true)
	}
	return pruned
}

// Flush discards an entity's stored data: updates, commands, generic and
// category data. A sole static update and static category assignments
// survive so the entity keeps its identity. Flushing ScenarioID flushes
// every entity plus the scenario generic data.
func (s *MemoryDataStore) Flush(id domain.ObjectID) error {
	pruned := 0
	if id == domain.ScenarioID {
		for eid, ot := range s.entityTypes {
			pruned += s.flushEntity(eid, ot)
		}
		pruned += s.genericData[domain.ScenarioID].flush()
	} else {
		ot, ok := s.entityTypes[id]
		if !ok {
			return entityNotFound(uint64(id))
		}
		pruned += s.flushEntity(id, ot)
	}
	s.hasChanged = true
	if pruned > 0 {
		s.metrics.AddPrunedPoints(pruned)
	}
	s.log.Debugw("flushed", "id", id, "points", pruned)
	s.listeners.invoke(func(l Listener) { l.OnFlush(s, id) })
	s.notifyNewUpdatesFlush(id)
	return nil
}

func (s *MemoryDataStore) flushEntityRange(id domain.ObjectID, ot domain.ObjectType, start, end float64) int {
	pruned := 0
	switch ot {
	case domain.Platform:
		e := s.platforms[id]
		pruned += e.updates.flushRange(start, end)
		pruned += e.commands.flushRange(start, end)
	case domain.Beam:
		e := s.beams[id]
		pruned += e.updates.flushRange(start, end)
		pruned += e.commands.flushRange(start, end)
	case domain.Gate:
		e := s.gates[id]
		pruned += e.updates.flushRange(start, end)
		pruned += e.commands.flushRange(start, end)
	case domain.Laser:
		e := s.lasers[id]
		pruned += e.updates.flushRange(start, end)
		pruned += e.commands.flushRange(start, end)
	case domain.Projector:
		e := s.projectors[id]
		pruned += e.updates.flushRange(start, end)
		pruned += e.commands.flushRange(start, end)
	case domain.LOBGroup:
		e := s.lobGroups[id]
		pruned += e.updates.flushRange(start, end)
		pruned += e.commands.flushRange(start, end)
	case domain.CustomRendering:
		pruned += s.customRenderings[id].commands.flushRange(start, end)
	}
	if gd, ok := s.genericData[id]; ok {
		pruned += gd.flushRange(start, end)
	}
	if cd, ok := s.categoryData[id]; ok {
		pruned += cd.flushRange(start, end)
	}
	return pruned
}

// FlushTimeRange discards an entity's stored data with times in the
// half-open interval [start, end). Flushing ScenarioID covers every entity
// plus the scenario generic data.
func (s *MemoryDataStore) FlushTimeRange(id domain.ObjectID, start, end float64) error {
	pruned := 0
	if id == domain.ScenarioID {
		for eid, ot := range s.entityTypes {
			pruned += s.flushEntityRange(eid, ot, start, end)
		}
		pruned += s.genericData[domain.ScenarioID].flushRange(start, end)
	} else {
		ot, ok := s.entityTypes[id]
		if !ok {
			return entityNotFound(uint64(id))
		}
		pruned += s.flushEntityRange(id, ot, start, end)
	}
	s.hasChanged = true
	if pruned > 0 {
		s.metrics.AddPrunedPoints(pruned)
	}
	s.listeners.invoke(func(l Listener) { l.OnFlush(s, id) })
	s.notifyNewUpdatesFlush(id)
	return nil
}

// --- removal ---

// RemoveEntity removes an entity and, recursively, everything hosted on it.
// OnRemoveEntity fires before state is discarded so callbacks can still
// query the doomed entity.
func (s *MemoryDataStore) RemoveEntity(id domain.ObjectID) error {
	ot, ok := s.entityTypes[id]
	if !ok {
		return entityNotFound(uint64(id))
	}
	s.removeEntity(id, ot)
	return nil
}

func (s *MemoryDataStore) removeEntity(id domain.ObjectID, ot domain.ObjectType) {
	s.listeners.invoke(func(l Listener) { l.OnRemoveEntity(s, id, ot) })
	// A callback may have beaten us to the removal.
	if _, ok := s.entityTypes[id]; !ok {
		return
	}
	for _, childID := range s.IDsForHost(id, domain.All) {
		if childType, ok := s.entityTypes[childID]; ok {
			s.removeEntity(childID, childType)
		}
	}
	switch ot {
	case domain.Platform:
		s.uncacheName(id, rawName(&s.platforms[id].prefs.Common))
		delete(s.platforms, id)
		s.metrics.SetEntityCount(ot, len(s.platforms))
	case domain.Beam:
		s.uncacheName(id, rawName(&s.beams[id].prefs.Common))
		delete(s.beams, id)
		s.metrics.SetEntityCount(ot, len(s.beams))
	case domain.Gate:
		s.uncacheName(id, rawName(&s.gates[id].prefs.Common))
		delete(s.gates, id)
		s.metrics.SetEntityCount(ot, len(s.gates))
	case domain.Laser:
		s.uncacheName(id, rawName(&s.lasers[id].prefs.Common))
		delete(s.lasers, id)
		s.metrics.SetEntityCount(ot, len(s.lasers))
	case domain.Projector:
		s.uncacheName(id, rawName(&s.projectors[id].prefs.Common))
		delete(s.projectors, id)
		s.metrics.SetEntityCount(ot, len(s.projectors))
	case domain.LOBGroup:
		s.uncacheName(id, rawName(&s.lobGroups[id].prefs.Common))
		delete(s.lobGroups, id)
		s.metrics.SetEntityCount(ot, len(s.lobGroups))
	case domain.CustomRendering:
		s.uncacheName(id, rawName(&s.customRenderings[id].prefs.Common))
		delete(s.customRenderings, id)
		s.metrics.SetEntityCount(ot, len(s.customRenderings))
	}
	delete(s.entityTypes, id)
	delete(s.genericData, id)
	delete(s.categoryData, id)
	s.hasChanged = true
	s.log.Debugw("entity removed", "id", id, "type", ot.String())
}

// Clear deletes the whole scenario: every entity, all scenario data, and
// the scenario properties. Assigned ids are not reused. OnScenarioDelete
// fires after the store is empty.
func (s *MemoryDataStore) Clear() {
	s.platforms = make(map[domain.ObjectID]*platformEntry)
	s.beams = make(map[domain.ObjectID]*beamEntry)
	s.gates = make(map[domain.ObjectID]*gateEntry)
	s.lasers = make(map[domain.ObjectID]*laserEntry)
	s.projectors = make(map[domain.ObjectID]*projectorEntry)
	s.lobGroups = make(map[domain.ObjectID]*lobGroupEntry)
	s.customRenderings = make(map[domain.ObjectID]*customRenderingEntry)
	s.entityTypes = make(map[domain.ObjectID]domain.ObjectType)
	s.genericData = make(map[domain.ObjectID]*GenericDataSlice)
	s.genericData[domain.ScenarioID] = newGenericDataSlice()
	s.categoryData = make(map[domain.ObjectID]*CategoryDataSlice)
	s.names = make(map[string]map[domain.ObjectID]domain.ObjectType)
	s.properties = domain.ScenarioProperties{}
	s.hasChanged = true
	for _, ot := range []domain.ObjectType{
		domain.Platform, domain.Beam, domain.Gate, domain.Laser,
		domain.Projector, domain.LOBGroup, domain.CustomRendering,
	} {
		s.metrics.SetEntityCount(ot, 0)
	}
	s.log.Infow("scenario cleared")
	s.listeners.invoke(func(l Listener) { l.OnScenarioDelete(s) })
}

// --- lookup ---

// ObjectTypeOf returns the entity's type, or None for an unknown id.
func (s *MemoryDataStore) ObjectTypeOf(id domain.ObjectID) domain.ObjectType {
	return s.entityTypes[id]
}

// IDList returns the ids of every live entity matching the type mask, in
// ascending order.
func (s *MemoryDataStore) IDList(mask domain.ObjectType) []domain.ObjectID {
	out := make([]domain.ObjectID, 0, len(s.entityTypes))
	for id, ot := range s.entityTypes {
		if mask&ot != 0 {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IDsByName returns the ids whose Name field exactly equals name and whose
// type matches the mask, in ascending order. Aliases are never matched.
func (s *MemoryDataStore) IDsByName(name string, mask domain.ObjectType) []domain.ObjectID {
	byID, ok := s.names[name]
	if !ok {
		return nil
	}
	out := make([]domain.ObjectID, 0, len(byID))
	for id, ot := range byID {
		if mask&ot != 0 {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IDsByOriginalID returns the ids whose properties carry the given source
// identifier and whose type matches the mask, in ascending order.
func (s *MemoryDataStore) IDsByOriginalID(originalID uint64, mask domain.ObjectType) []domain.ObjectID {
	var out []domain.ObjectID
	for id, ot := range s.entityTypes {
		if mask&ot == 0 {
			continue
		}
		if s.originalIDOf(id, ot) == originalID {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *MemoryDataStore) originalIDOf(id domain.ObjectID, ot domain.ObjectType) uint64 {
	switch ot {
	case domain.Platform:
		return s.platforms[id].props.OriginalID
	case domain.Beam:
		return s.beams[id].props.OriginalID
	case domain.Gate:
		return s.gates[id].props.OriginalID
	case domain.Laser:
		return s.lasers[id].props.OriginalID
	case domain.Projector:
		return s.projectors[id].props.OriginalID
	case domain.LOBGroup:
		return s.lobGroups[id].props.OriginalID
	case domain.CustomRendering:
		return s.customRenderings[id].props.OriginalID
	}
	return 0
}

// HostID returns the id of the entity hosting id, or ScenarioID for
// platforms and unknown ids.
func (s *MemoryDataStore) HostID(id domain.ObjectID) domain.ObjectID {
	switch s.entityTypes[id] {
	case domain.Beam:
		return s.beams[id].props.HostID
	case domain.Gate:
		return s.gates[id].props.HostID
	case domain.Laser:
		return s.lasers[id].props.HostID
	case domain.Projector:
		return s.projectors[id].props.HostID
	case domain.LOBGroup:
		return s.lobGroups[id].props.HostID
	case domain.CustomRendering:
		return s.customRenderings[id].props.HostID
	}
	return domain.ScenarioID
}

// IDsForHost returns the ids of entities hosted directly on hostID matching
// the type mask, in ascending order.
func (s *MemoryDataStore) IDsForHost(hostID domain.ObjectID, mask domain.ObjectType) []domain.ObjectID {
	var out []domain.ObjectID
	if mask.Has(domain.Beam) {
		for id, e := range s.beams {
			if e.props.HostID == hostID {
				out = append(out, id)
			}
		}
	}
	if mask.Has(domain.Gate) {
		for id, e := range s.gates {
			if e.props.HostID == hostID {
				out = append(out, id)
			}
		}
	}
	if mask.Has(domain.Laser) {
		for id, e := range s.lasers {
			if e.props.HostID == hostID {
				out = append(out, id)
			}
		}
	}
	if mask.Has(domain.Projector) {
		for id, e := range s.projectors {
			if e.props.HostID == hostID {
				out = append(out, id)
			}
		}
	}
	if mask.Has(domain.LOBGroup) {
		for id, e := range s.lobGroups {
			if e.props.HostID == hostID {
				out = append(out, id)
			}
		}
	}
	if mask.Has(domain.CustomRendering) {
		for id, e := range s.customRenderings {
			if e.props.HostID == hostID {
				out = append(out, id)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// EntityName returns the entity's resolved display name, or "" for an
// unknown id.
func (s *MemoryDataStore) EntityName(id domain.ObjectID) string {
	switch s.entityTypes[id] {
	case domain.Platform:
		return s.platforms[id].prefs.Common.DisplayName()
	case domain.Beam:
		return s.beams[id].prefs.Common.DisplayName()
	case domain.Gate:
		return s.gates[id].prefs.Common.DisplayName()
	case domain.Laser:
		return s.lasers[id].prefs.Common.DisplayName()
	case domain.Projector:
		return s.projectors[id].prefs.Common.DisplayName()
	case domain.LOBGroup:
		return s.lobGroups[id].prefs.Common.DisplayName()
	case domain.CustomRendering:
		return s.customRenderings[id].prefs.Common.DisplayName()
	}
	return ""
}
