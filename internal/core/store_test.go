package core

import (
	"math"
	"testing"

	"trackstore/pkg/domain"
	"trackstore/pkg/geodesy"
)

type recordingListener struct {
	BaseListener
	added           int
	removed         int
	removedIDs      []domain.ObjectID
	prefsChanges    int
	nameChanges     int
	timeChanges     int
	categoryChanges int
	flushes         int
	scenarioDeletes int
}

func (l *recordingListener) OnAddEntity(_ DataStore, _ domain.ObjectID, _ domain.ObjectType) {
	l.added++
}

func (l *recordingListener) OnRemoveEntity(_ DataStore, id domain.ObjectID, _ domain.ObjectType) {
	l.removed++
	l.removedIDs = append(l.removedIDs, id)
}

func (l *recordingListener) OnPrefsChange(_ DataStore, _ domain.ObjectID) { l.prefsChanges++ }
func (l *recordingListener) OnNameChange(_ DataStore, _ domain.ObjectID)  { l.nameChanges++ }
func (l *recordingListener) OnTimeChange(_ DataStore)                     { l.timeChanges++ }
func (l *recordingListener) OnCategoryDataChange(_ DataStore, _ domain.ObjectID, _ domain.ObjectType) {
	l.categoryChanges++
}
func (l *recordingListener) OnFlush(_ DataStore, _ domain.ObjectID) { l.flushes++ }
func (l *recordingListener) OnScenarioDelete(_ DataStore)           { l.scenarioDeletes++ }

func newPlatform(t *testing.T, s *MemoryDataStore, name string) domain.ObjectID {
	t.Helper()
	props, txn := s.AddPlatform()
	id := props.ID
	txn.Complete()
	if name != "" {
		prefs, ptxn, err := s.MutablePlatformPrefs(id)
		if err != nil {
			t.Fatalf("mutable prefs: %v", err)
		}
		prefs.Common.Name = strp(name)
		ptxn.Complete()
	}
	return id
}

func appendPlatformUpdate(t *testing.T, s *MemoryDataStore, id domain.ObjectID, at, lon float64) {
	t.Helper()
	u, txn, err := s.AddPlatformUpdate(id)
	if err != nil {
		t.Fatalf("add update: %v", err)
	}
	u.Time = at
	u.Position = geodesy.GeodeticToECEF(geodesy.LLA{Lat: 0.5, Lon: lon, Alt: 1000})
	txn.Complete()
}

func TestStoreEntityLifecycle(t *testing.T) {
	s := NewMemoryDataStore()
	rec := &recordingListener{}
	s.AddListener(rec)

	id := newPlatform(t, s, "tanker")
	if rec.added != 1 {
		t.Fatalf("expected one add notification, got %d", rec.added)
	}
	if got := s.ObjectTypeOf(id); got != domain.Platform {
		t.Fatalf("expected platform type, got %v", got)
	}
	if got := s.EntityName(id); got != "tanker" {
		t.Fatalf("expected name tanker, got %q", got)
	}
	if ids := s.IDsByName("tanker", domain.All); len(ids) != 1 || ids[0] != id {
		t.Fatalf("name lookup failed: %v", ids)
	}

	if err := s.RemoveEntity(id); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if rec.removed != 1 {
		t.Fatalf("expected one remove notification, got %d", rec.removed)
	}
	if len(s.IDList(domain.All)) != 0 {
		t.Fatalf("expected empty store")
	}
	if err := s.RemoveEntity(id); err == nil {
		t.Fatalf("removing a removed entity should fail")
	}
}

func TestStoreHostValidation(t *testing.T) {
	s := NewMemoryDataStore()
	platformID := newPlatform(t, s, "")

	if _, _, err := s.AddBeam(9999); err == nil {
		t.Fatalf("beam on unknown host should fail")
	}
	if _, _, err := s.AddGate(platformID); err == nil {
		t.Fatalf("gate hosted on a platform should fail")
	}

	beamProps, txn, err := s.AddBeam(platformID)
	if err != nil {
		t.Fatalf("add beam: %v", err)
	}
	txn.Complete()
	if _, _, err := s.AddGate(beamProps.ID); err != nil {
		t.Fatalf("gate on beam: %v", err)
	}
	if _, _, err := s.AddProjector(beamProps.ID); err != nil {
		t.Fatalf("projector may host on a beam: %v", err)
	}
	if got := s.HostID(beamProps.ID); got != platformID {
		t.Fatalf("expected host %v, got %v", platformID, got)
	}
}

func TestStoreRemoveCascadesToHostedEntities(t *testing.T) {
	s := NewMemoryDataStore()
	rec := &recordingListener{}
	s.AddListener(rec)

	platformID := newPlatform(t, s, "")
	beamProps, txn, _ := s.AddBeam(platformID)
	txn.Complete()
	gateProps, txn2, _ := s.AddGate(beamProps.ID)
	txn2.Complete()

	if err := s.RemoveEntity(platformID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if rec.removed != 3 {
		t.Fatalf("expected cascade to remove 3 entities, got %d", rec.removed)
	}
	if s.ObjectTypeOf(gateProps.ID) != domain.None {
		t.Fatalf("gate should be gone with its host chain")
	}
}

func TestStoreUpdateInterpolation(t *testing.T) {
	s := NewMemoryDataStore()
	id := newPlatform(t, s, "")
	for i := 0; i < 3; i++ {
		appendPlatformUpdate(t, s, id, float64(i), 0.001*float64(i))
	}
	s.SetInterpolator(NewLinearInterpolator())
	if !s.EnableInterpolation(true) {
		t.Fatalf("enable interpolation failed")
	}

	s.Update(1.5)
	sl := s.PlatformUpdates(id)
	cur := sl.Current()
	if cur == nil || cur.Time != 1.5 || !sl.IsInterpolated() {
		t.Fatalf("expected interpolated record at t=1.5, got %+v", cur)
	}
	lla := geodesy.ECEFToGeodetic(cur.Position)
	if math.Abs(lla.Lon-0.0015) > 1e-7 {
		t.Fatalf("expected blended longitude 0.0015, got %v", lla.Lon)
	}

	s.EnableInterpolation(false)
	s.Update(1.5)
	cur = sl.Current()
	if cur == nil || cur.Time != 1 {
		t.Fatalf("without interpolation expected hold at t=1, got %+v", cur)
	}
}

func TestStoreUpdateIdempotence(t *testing.T) {
	s := NewMemoryDataStore()
	id := newPlatform(t, s, "")
	appendPlatformUpdate(t, s, id, 0, 0)

	rec := &recordingListener{}
	s.AddListener(rec)

	s.Update(0)
	if rec.timeChanges != 1 {
		t.Fatalf("expected one time-change, got %d", rec.timeChanges)
	}
	s.Update(0)
	if rec.timeChanges != 1 {
		t.Fatalf("repeat update with no new data must be a no-op, got %d", rec.timeChanges)
	}

	appendPlatformUpdate(t, s, id, 1, 0.001)
	s.Update(0)
	if rec.timeChanges != 2 {
		t.Fatalf("new data must re-arm the update pass, got %d", rec.timeChanges)
	}
}

func TestStoreCommandReplayRenames(t *testing.T) {
	s := NewMemoryDataStore()
	rec := &recordingListener{}
	s.AddListener(rec)
	id := newPlatform(t, s, "")
	appendPlatformUpdate(t, s, id, 0, 0)

	cmd, txn, err := s.AddPlatformCommand(id)
	if err != nil {
		t.Fatalf("add command: %v", err)
	}
	cmd.Time = 2
	cmd.Prefs = &domain.PlatformPrefs{Common: domain.CommonPrefs{Name: strp("raven")}}
	txn.Complete()

	clear, txn2, err := s.AddPlatformCommand(id)
	if err != nil {
		t.Fatalf("add clear command: %v", err)
	}
	clear.Time = 5
	clear.Prefs = &domain.PlatformPrefs{Common: domain.CommonPrefs{Name: strp("")}}
	clear.Clear = true
	txn2.Complete()

	s.Update(3)
	if got := s.EntityName(id); got != "raven" {
		t.Fatalf("expected command to set name raven, got %q", got)
	}
	if ids := s.IDsByName("raven", domain.Platform); len(ids) != 1 {
		t.Fatalf("renamed entity must be findable by name: %v", ids)
	}
	if rec.nameChanges != 1 {
		t.Fatalf("expected one name-change, got %d", rec.nameChanges)
	}

	s.Update(6)
	if got := s.EntityName(id); got != "" {
		t.Fatalf("clear command should unset the name, got %q", got)
	}
	if rec.nameChanges != 2 {
		t.Fatalf("expected a second name-change, got %d", rec.nameChanges)
	}
}

func TestStoreDataDrawGatesResolution(t *testing.T) {
	s := NewMemoryDataStore()
	id := newPlatform(t, s, "")
	appendPlatformUpdate(t, s, id, 0, 0)

	prefs, txn, _ := s.MutablePlatformPrefs(id)
	prefs.Common.DataDraw = boolp(false)
	txn.Complete()

	s.Update(0)
	if cur := s.PlatformUpdates(id).Current(); cur != nil {
		t.Fatalf("data-draw off must leave no current record, got %+v", cur)
	}
}

func TestStoreFileModeExpiry(t *testing.T) {
	s := NewMemoryDataStore() // data limiting off = file mode
	id := newPlatform(t, s, "")
	appendPlatformUpdate(t, s, id, 0, 0)
	appendPlatformUpdate(t, s, id, 2, 0.001)

	s.Update(5)
	if cur := s.PlatformUpdates(id).Current(); cur != nil {
		t.Fatalf("entity past its data range must expire in file mode, got %+v", cur)
	}

	s.Update(1)
	if cur := s.PlatformUpdates(id).Current(); cur == nil {
		t.Fatalf("entity inside its data range must resolve")
	}
}

func TestStoreDataLimiting(t *testing.T) {
	s := NewMemoryDataStore(WithDataLimiting(true))
	id := newPlatform(t, s, "")

	prefs, txn, _ := s.MutablePlatformPrefs(id)
	prefs.Common.DataLimitPoints = u32p(2)
	txn.Complete()

	for i := 0; i < 5; i++ {
		appendPlatformUpdate(t, s, id, float64(i), 0)
	}
	if got := s.PlatformUpdates(id).NumItems(); got != 2 {
		t.Fatalf("expected retention of 2 points, got %d", got)
	}
	if first := s.PlatformUpdates(id).FirstTime(); first != 3 {
		t.Fatalf("the newest points must survive, first now %v", first)
	}
}

func TestStoreScenarioWideLimitFallback(t *testing.T) {
	s := NewMemoryDataStore(WithDataLimiting(true))
	props, txn := s.MutableScenarioProperties()
	props.DataLimitPoints = 3
	txn.Complete()

	id := newPlatform(t, s, "")
	for i := 0; i < 6; i++ {
		appendPlatformUpdate(t, s, id, float64(i), 0)
	}
	if got := s.PlatformUpdates(id).NumItems(); got != 3 {
		t.Fatalf("expected scenario-wide cap of 3, got %d", got)
	}
}

func TestStoreStaticEntityExemptFromLimiting(t *testing.T) {
	s := NewMemoryDataStore(WithDataLimiting(true))
	props, txn := s.MutableScenarioProperties()
	props.DataLimitPoints = 1
	txn.Complete()

	id := newPlatform(t, s, "")
	appendPlatformUpdate(t, s, id, domain.StaticTime, 0)
	if got := s.PlatformUpdates(id).NumItems(); got != 1 {
		t.Fatalf("static record must survive, got %d", got)
	}
}

func TestStoreFlush(t *testing.T) {
	s := NewMemoryDataStore()
	rec := &recordingListener{}
	s.AddListener(rec)
	id := newPlatform(t, s, "")
	for i := 0; i < 3; i++ {
		appendPlatformUpdate(t, s, id, float64(i), 0)
	}

	if err := s.Flush(id); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := s.PlatformUpdates(id).NumItems(); got != 0 {
		t.Fatalf("expected updates flushed, got %d", got)
	}
	if rec.flushes != 1 {
		t.Fatalf("expected one flush notification, got %d", rec.flushes)
	}
	if s.ObjectTypeOf(id) != domain.Platform {
		t.Fatalf("flush must not remove the entity")
	}

	if err := s.Flush(9999); err == nil {
		t.Fatalf("flushing an unknown id should fail")
	}
}

func TestStoreFlushTimeRange(t *testing.T) {
	s := NewMemoryDataStore()
	id := newPlatform(t, s, "")
	for i := 0; i < 5; i++ {
		appendPlatformUpdate(t, s, id, float64(i), 0)
	}

	if err := s.FlushTimeRange(id, 1, 3); err != nil {
		t.Fatalf("flush range: %v", err)
	}
	sl := s.PlatformUpdates(id)
	if sl.NumItems() != 3 {
		t.Fatalf("expected [1,3) flushed leaving 3 points, got %d", sl.NumItems())
	}
	if sl.At(1).Time != 3 {
		t.Fatalf("expected t=3 to survive the half-open range")
	}
}

func TestStoreTimeBounds(t *testing.T) {
	s := NewMemoryDataStore()
	first, last := s.TimeBounds(domain.ScenarioID)
	if first != math.MaxFloat64 || last != -math.MaxFloat64 {
		t.Fatalf("empty store bounds wrong: %v %v", first, last)
	}

	staticID := newPlatform(t, s, "")
	appendPlatformUpdate(t, s, staticID, domain.StaticTime, 0)

	id := newPlatform(t, s, "")
	appendPlatformUpdate(t, s, id, 2, 0)
	appendPlatformUpdate(t, s, id, 7, 0)

	first, last = s.TimeBounds(domain.ScenarioID)
	if first != 2 || last != 7 {
		t.Fatalf("static records must not widen bounds: got %v %v", first, last)
	}
}

func TestStoreTimeBoundsPerEntity(t *testing.T) {
	s := NewMemoryDataStore()
	a := newPlatform(t, s, "")
	appendPlatformUpdate(t, s, a, 2, 0)
	appendPlatformUpdate(t, s, a, 7, 0)
	b := newPlatform(t, s, "")
	appendPlatformUpdate(t, s, b, 10, 0)

	first, last := s.TimeBounds(a)
	if first != 2 || last != 7 {
		t.Fatalf("entity bounds must cover only its own updates: got %v %v", first, last)
	}
	first, last = s.TimeBounds(b)
	if first != 10 || last != 10 {
		t.Fatalf("single-point entity bounds wrong: got %v %v", first, last)
	}

	staticID := newPlatform(t, s, "")
	appendPlatformUpdate(t, s, staticID, domain.StaticTime, 0)
	first, last = s.TimeBounds(staticID)
	if first != math.MaxFloat64 || last != -math.MaxFloat64 {
		t.Fatalf("static entity must report empty bounds: got %v %v", first, last)
	}

	first, last = s.TimeBounds(9999)
	if first != math.MaxFloat64 || last != -math.MaxFloat64 {
		t.Fatalf("unknown id must report empty bounds: got %v %v", first, last)
	}
}

func TestStoreClear(t *testing.T) {
	s := NewMemoryDataStore()
	rec := &recordingListener{}
	s.AddListener(rec)
	firstID := newPlatform(t, s, "one")

	s.Clear()
	if rec.scenarioDeletes != 1 {
		t.Fatalf("expected scenario-delete notification, got %d", rec.scenarioDeletes)
	}
	if len(s.IDList(domain.All)) != 0 {
		t.Fatalf("expected empty store after clear")
	}

	// Ids are never reused across a clear.
	secondID := newPlatform(t, s, "two")
	if secondID == firstID {
		t.Fatalf("id %v reused after clear", secondID)
	}
}

func TestStorePrefsTransactionNotifications(t *testing.T) {
	s := NewMemoryDataStore()
	rec := &recordingListener{}
	s.AddListener(rec)
	id := newPlatform(t, s, "before")

	prefs, txn, _ := s.MutablePlatformPrefs(id)
	prefs.Common.Name = strp("after")
	prefs.Icon = strp("jet")
	txn.Complete()

	if rec.nameChanges != 2 { // one from creation naming, one now
		t.Fatalf("expected name-change notifications, got %d", rec.nameChanges)
	}
	if rec.prefsChanges < 2 {
		t.Fatalf("expected prefs-change notifications, got %d", rec.prefsChanges)
	}
	if ids := s.IDsByName("before", domain.All); len(ids) != 0 {
		t.Fatalf("old name must leave the cache: %v", ids)
	}
	if ids := s.IDsByName("after", domain.All); len(ids) != 1 {
		t.Fatalf("new name must enter the cache: %v", ids)
	}

	// A committed transaction with no actual edits notifies nothing.
	before := rec.prefsChanges
	_, txn2, _ := s.MutablePlatformPrefs(id)
	txn2.Complete()
	if rec.prefsChanges != before {
		t.Fatalf("no-op prefs transaction should not notify")
	}
}

func TestStoreReleaseWithoutCommitAbandonsChanges(t *testing.T) {
	s := NewMemoryDataStore()
	id := newPlatform(t, s, "keep")

	prefs, txn, _ := s.MutablePlatformPrefs(id)
	prefs.Common.Name = strp("discard")
	txn.Release()

	if got := s.EntityName(id); got != "keep" {
		t.Fatalf("released transaction must not publish, got %q", got)
	}
}

func TestStoreGenericData(t *testing.T) {
	s := NewMemoryDataStore()
	id := newPlatform(t, s, "")

	g, txn, err := s.AddGenericData(id)
	if err != nil {
		t.Fatalf("add generic data: %v", err)
	}
	g.Time = 1
	g.Entries = []domain.GenericDataEntry{{Tag: "fuel", Value: "full"}}
	txn.Complete()

	// ScenarioID holds scenario-scoped annotations.
	sg, stxn, err := s.AddGenericData(domain.ScenarioID)
	if err != nil {
		t.Fatalf("add scenario generic data: %v", err)
	}
	sg.Time = 0
	sg.Entries = []domain.GenericDataEntry{{Tag: "weather", Value: "clear"}}
	stxn.Complete()

	if got := s.GenericData(id).ValuesAt(2); len(got) != 1 || got[0].Value != "full" {
		t.Fatalf("entity generic data wrong: %+v", got)
	}
	if got := s.GenericData(domain.ScenarioID).ValuesAt(2); len(got) != 1 || got[0].Tag != "weather" {
		t.Fatalf("scenario generic data wrong: %+v", got)
	}

	if err := s.RemoveGenericDataTag(id, "fuel"); err != nil {
		t.Fatalf("remove tag: %v", err)
	}
	if got := s.GenericData(id).Tags(); len(got) != 0 {
		t.Fatalf("expected tag removed, got %v", got)
	}
}

func TestStoreCategoryDataNotifications(t *testing.T) {
	s := NewMemoryDataStore()
	rec := &recordingListener{}
	s.AddListener(rec)
	id := newPlatform(t, s, "")

	c, txn, err := s.AddCategoryData(id)
	if err != nil {
		t.Fatalf("add category data: %v", err)
	}
	c.Time = 0
	c.Entries = []domain.CategoryDataEntry{{Name: "affinity", Value: "friendly"}}
	txn.Complete()

	c2, txn2, _ := s.AddCategoryData(id)
	c2.Time = 5
	c2.Entries = []domain.CategoryDataEntry{{Name: "affinity", Value: "hostile"}}
	txn2.Complete()

	s.Update(1)
	if rec.categoryChanges != 1 {
		t.Fatalf("expected category-change at first resolution, got %d", rec.categoryChanges)
	}
	s.Update(2)
	if rec.categoryChanges != 1 {
		t.Fatalf("no category transition between t=1 and t=2, got %d", rec.categoryChanges)
	}
	s.Update(5)
	if rec.categoryChanges != 2 {
		t.Fatalf("expected category-change at the transition, got %d", rec.categoryChanges)
	}

	if err := s.RemoveCategoryDataPoint(id, "affinity", 5); err != nil {
		t.Fatalf("remove point: %v", err)
	}
	if got := s.CategoryData(id).ValuesAt(10); got[0].Value != "friendly" {
		t.Fatalf("expected fallback after point removal, got %+v", got)
	}
}

type orderListener struct {
	BaseListener
	events []string
}

func (l *orderListener) OnTimeChange(_ DataStore) { l.events = append(l.events, "time") }
func (l *orderListener) OnCategoryDataChange(_ DataStore, _ domain.ObjectID, _ domain.ObjectType) {
	l.events = append(l.events, "category")
}

func TestStoreUpdateNotificationOrder(t *testing.T) {
	s := NewMemoryDataStore()
	id := newPlatform(t, s, "")
	c, txn, err := s.AddCategoryData(id)
	if err != nil {
		t.Fatalf("add category data: %v", err)
	}
	c.Time = 0
	c.Entries = []domain.CategoryDataEntry{{Name: "affinity", Value: "friendly"}}
	txn.Complete()

	ol := &orderListener{}
	s.AddListener(ol)

	// Category changes land before the time change, so a time-change
	// callback sees fully resolved category state.
	s.Update(1)
	if len(ol.events) != 2 || ol.events[0] != "category" || ol.events[1] != "time" {
		t.Fatalf("notification order wrong: %v", ol.events)
	}
}

func TestStoreAccessorsRejectWrongType(t *testing.T) {
	s := NewMemoryDataStore()
	platformID := newPlatform(t, s, "")

	if _, err := s.BeamPrefs(platformID); err == nil {
		t.Fatalf("beam accessor on a platform id should fail")
	}
	if sl := s.BeamUpdates(platformID); sl != nil {
		t.Fatalf("slice accessor on mismatched type must return nil")
	}
	if _, err := s.PlatformProperties(9999); err == nil {
		t.Fatalf("unknown id should fail")
	}
}

func TestStoreDefaultsApplyToNewEntities(t *testing.T) {
	defaults := &domain.ScenarioDefaults{
		Platform: &domain.PlatformPrefs{Icon: strp("jet"), Common: domain.CommonPrefs{Name: strp("unnamed")}},
	}
	s := NewMemoryDataStore(WithDefaults(defaults))

	props, txn := s.AddPlatform()
	txn.Complete()
	prefs, err := s.PlatformPrefs(props.ID)
	if err != nil {
		t.Fatalf("prefs: %v", err)
	}
	if prefs.Icon == nil || *prefs.Icon != "jet" {
		t.Fatalf("expected default icon, got %+v", prefs.Icon)
	}
	if s.EntityName(props.ID) != "unnamed" {
		t.Fatalf("expected default name applied, got %q", s.EntityName(props.ID))
	}
}
