package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/keypulse/pkg/api"
	"gitlab.com/tinyland/lab/keypulse/pkg/cache"
	"gitlab.com/tinyland/lab/keypulse/pkg/config"
	"gitlab.com/tinyland/lab/keypulse/pkg/localdb"
	"gitlab.com/tinyland/lab/keypulse/pkg/period"
	"gitlab.com/tinyland/lab/keypulse/pkg/physics"
	"gitlab.com/tinyland/lab/keypulse/pkg/realtime"
)

const (
	renderInterval = 250 * time.Millisecond
	fetchTimeout   = 15 * time.Second

	// Fetch sources. Each has its own generation counter and error slot
	// so one failing endpoint never blanks the others.
	SourceUser      = "user"
	SourcePulses    = "pulses"
	SourceComputers = "computers"
	SourceHeatmap   = "heatmap"
	SourceApps      = "apps"
	SourceNetwork   = "network"
)

// Options wires the model's collaborators. Nil fields disable the
// matching feature: no Web client means local mode, no Monitor means no
// live telemetry, no Store means cold starts.
type Options struct {
	Config  *config.Config
	Log     *slog.Logger
	Web     *api.Client
	Local   *api.LocalClient
	Monitor *realtime.Monitor
	Store   *cache.Store
	InputDB *localdb.DB
	Pages   []Page

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Model is the root bubbletea model.
type Model struct {
	cfg *config.Config
	log *slog.Logger

	web     *api.Client
	local   *api.LocalClient
	monitor *realtime.Monitor
	store   *cache.Store
	inputDB *localdb.DB

	pages  []Page
	active int
	modal  Modal

	width, height int

	// One period per page; cycling on one tab leaves the others alone.
	periods     []period.Period
	customRange *period.DateRange

	estimator *physics.Estimator
	profile   int
	metric    bool

	live        realtime.Event
	liveSeen    time.Time
	liveSeeded  bool
	liveSession uint64

	lastUnpulsedKeys   int64
	lastUnpulsedClicks int64

	user         *api.UserStats
	userErr      error
	userAt       time.Time
	pulses       []api.Pulse
	pulsesErr    error
	computers    []api.Computer
	computersErr error
	heatmap      map[string]int64
	heatmapErr   error
	apps         []localdb.AppStat
	appsErr      error
	network      []localdb.NetworkStat
	networkErr   error

	generation map[string]uint64
	inFlight   map[string]bool

	lastRefresh time.Time
	status      string
	now         func() time.Time
}

// New builds the root model and warm-starts it from the cache.
func New(opts Options) *Model {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	pages := opts.Pages
	if pages == nil {
		pages = OrderedPages()
	}

	m := &Model{
		cfg:        opts.Config,
		log:        opts.Log,
		web:        opts.Web,
		local:      opts.Local,
		monitor:    opts.Monitor,
		store:      opts.Store,
		inputDB:    opts.InputDB,
		pages:      pages,
		periods:    make([]period.Period, len(pages)),
		estimator:  physics.NewEstimator(opts.Now(), physics.DefaultHistory),
		generation: make(map[string]uint64),
		inFlight:   make(map[string]bool),
		now:        opts.Now,
		metric:     opts.Config.Physics.MetricUnits,
	}
	for i, p := range physics.Profiles() {
		if p.Name == opts.Config.Physics.SwitchProfile {
			m.profile = i
		}
	}
	m.warmStart()
	return m
}

// warmStart seeds the model from cached payloads so the first paint has
// data while the real fetches run.
func (m *Model) warmStart() {
	if m.store == nil {
		return
	}
	if user, ok := cache.GetTyped[*api.UserStats](m.store, SourceUser); ok {
		m.user = user
	}
	if pulses, ok := cache.GetTyped[[]api.Pulse](m.store, SourcePulses); ok {
		m.pulses = pulses
	}
	if computers, ok := cache.GetTyped[[]api.Computer](m.store, SourceComputers); ok {
		m.computers = computers
	}
}

// Init starts the render ticker, the first fetches, and the realtime
// pump.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd(renderInterval)}
	cmds = append(cmds, m.RefreshCmd())
	if m.monitor != nil {
		cmds = append(cmds, m.waitRealtime())
	}
	m.lastRefresh = m.now()
	return tea.Batch(cmds...)
}

// Update is the single event dispatcher.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case TickEvent:
		m.estimator.Tick(msg.Time, m.Profile())
		var refresh tea.Cmd
		if interval := m.cfg.General.RefreshRate.Duration; interval > 0 &&
			msg.Time.Sub(m.lastRefresh) >= interval {
			m.lastRefresh = msg.Time
			refresh = m.RefreshCmd()
		}
		return m, tea.Batch(TickCmd(renderInterval), refresh)

	case RealtimeEvent:
		m.applyRealtime(msg.Event)
		return m, m.waitRealtime()

	case realtimeClosed:
		return m, nil

	case DataUpdateEvent:
		m.applyData(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey routes keys: open modal first, then global chrome, then the
// active page.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		return m, m.modal.Handle(m, msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "right":
		m.SwitchPage(1)
		return m, nil
	case "shift+tab", "left":
		m.SwitchPage(-1)
		return m, nil
	case "t":
		return m, m.CyclePeriod(1)
	case "T":
		return m, m.CyclePeriod(-1)
	case "d":
		m.OpenDatePicker()
		return m, nil
	case "/":
		// Jump straight to Custom and start a fresh selection; any
		// previously confirmed range is discarded.
		m.periods[m.active] = period.Custom
		m.customRange = nil
		m.OpenDatePicker()
		return m, nil
	case "enter":
		// Re-open the picker seeded with the existing range when the
		// active period is already Custom.
		if m.ActivePeriod() == period.Custom {
			m.OpenDatePicker()
			return m, nil
		}
	case "r":
		m.lastRefresh = m.now()
		return m, m.RefreshCmd()
	}

	if n := pageDigit(msg.String()); n >= 0 && n < len(m.pages) {
		m.active = n
		return m, nil
	}

	if len(m.pages) > 0 && m.pages[m.active].HandleKey(m, msg) {
		return m, nil
	}
	return m, nil
}

func pageDigit(s string) int {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '1')
	}
	return -1
}

// SwitchPage moves the active tab by delta, wrapping.
func (m *Model) SwitchPage(delta int) {
	if len(m.pages) == 0 {
		return
	}
	n := len(m.pages)
	m.active = ((m.active+delta)%n + n) % n
}

// CyclePeriod steps the active page's period through the fixed ring and
// refetches range-scoped data.
func (m *Model) CyclePeriod(delta int) tea.Cmd {
	if len(m.periods) == 0 {
		return nil
	}
	p := m.periods[m.active]
	if delta >= 0 {
		p = p.Next()
	} else {
		p = p.Prev()
	}
	m.periods[m.active] = p
	if p == period.Custom && m.customRange == nil {
		// Nothing to fetch until the picker confirms a range.
		return nil
	}
	return m.fetchRangedCmd()
}

// ActivePeriod is the period selected on the current tab.
func (m *Model) ActivePeriod() period.Period {
	if len(m.periods) == 0 {
		return period.Today
	}
	return m.periods[m.active]
}

// CustomRange is the confirmed picker range, nil when never set.
func (m *Model) CustomRange() *period.DateRange { return m.customRange }

// PeriodFilter is the wire filter string for the active period.
func (m *Model) PeriodFilter() string {
	return m.ActivePeriod().FilterString(m.customRange)
}

// applyRealtime folds one status update into the physics estimator and
// the live view state. The first frame of each session carries the
// client's accumulated unpulsed backlog, not typing that happened now:
// it only seeds the delta baseline. Deltas start with the second frame
// of the session.
func (m *Model) applyRealtime(ev realtime.Event) {
	if m.liveSeeded && m.liveSession == ev.Session {
		keyDelta := ev.UnpulsedKeys - m.lastUnpulsedKeys
		clickDelta := ev.UnpulsedClicks - m.lastUnpulsedClicks
		m.estimator.Observe(keyDelta, clickDelta)
	}
	m.liveSeeded = true
	m.liveSession = ev.Session
	m.lastUnpulsedKeys = ev.UnpulsedKeys
	m.lastUnpulsedClicks = ev.UnpulsedClicks
	m.live = ev
	m.liveSeen = m.now()
}

// applyData folds a fetch result into the model. Stale generations are
// discarded: a newer request for the same source is already in flight
// or has already landed.
func (m *Model) applyData(ev DataUpdateEvent) {
	if ev.Generation != m.generation[ev.Source] {
		m.log.Debug("discarding stale fetch", "source", ev.Source,
			"generation", ev.Generation, "current", m.generation[ev.Source])
		return
	}
	m.inFlight[ev.Source] = false

	switch ev.Source {
	case SourceUser:
		if ev.Err != nil {
			m.userErr = ev.Err
			break
		}
		m.user, m.userErr = ev.Data.(*api.UserStats), nil
		m.userAt = ev.Timestamp
		m.cachePut(SourceUser, m.user)
	case SourcePulses:
		if ev.Err != nil {
			m.pulsesErr = ev.Err
			break
		}
		m.pulses, m.pulsesErr = ev.Data.([]api.Pulse), nil
		m.cachePut(SourcePulses, m.pulses)
	case SourceComputers:
		if ev.Err != nil {
			m.computersErr = ev.Err
			break
		}
		m.computers, m.computersErr = ev.Data.([]api.Computer), nil
		m.cachePut(SourceComputers, m.computers)
	case SourceHeatmap:
		if ev.Err != nil {
			m.heatmapErr = ev.Err
			break
		}
		m.heatmap, m.heatmapErr = ev.Data.(map[string]int64), nil
	case SourceApps:
		if ev.Err != nil {
			m.appsErr = ev.Err
			break
		}
		m.apps, m.appsErr = ev.Data.([]localdb.AppStat), nil
	case SourceNetwork:
		if ev.Err != nil {
			m.networkErr = ev.Err
			break
		}
		m.network, m.networkErr = ev.Data.([]localdb.NetworkStat), nil
	}
}

func (m *Model) cachePut(key string, value any) {
	if m.store == nil {
		return
	}
	if err := cache.PutTyped(m.store, key, value); err != nil {
		m.log.Warn("cache write failed", "key", key, "error", err)
	}
}

// RefreshCmd starts fetches for every source that is not already in
// flight.
func (m *Model) RefreshCmd() tea.Cmd {
	cmds := []tea.Cmd{m.fetchCmd(SourceUser)}
	if m.web != nil {
		cmds = append(cmds, m.fetchCmd(SourcePulses), m.fetchCmd(SourceComputers))
	}
	if m.inputDB != nil {
		cmds = append(cmds, m.fetchCmd(SourceHeatmap),
			m.fetchCmd(SourceApps), m.fetchCmd(SourceNetwork))
	}
	return tea.Batch(cmds...)
}

// RangedSource is implemented by pages whose data source is scoped by
// the selected period. Period changes refetch only the owning page's
// source.
type RangedSource interface {
	RangedSource() string
}

// fetchRangedCmd refetches the active page's period-scoped source, if
// it has one.
func (m *Model) fetchRangedCmd() tea.Cmd {
	if len(m.pages) == 0 {
		return nil
	}
	rs, ok := m.pages[m.active].(RangedSource)
	if !ok {
		return nil
	}
	switch rs.RangedSource() {
	case SourcePulses:
		if m.web != nil {
			return m.fetchCmd(SourcePulses)
		}
	case SourceHeatmap, SourceApps, SourceNetwork:
		if m.inputDB != nil {
			return m.fetchCmd(rs.RangedSource())
		}
	}
	return nil
}

// fetchCmd starts one async fetch. Coalescing: a source with a request
// in flight is skipped; the generation stamp lets applyData drop
// results that were superseded by a later request.
func (m *Model) fetchCmd(source string) tea.Cmd {
	if m.inFlight[source] {
		return nil
	}
	fn := m.fetcher(source)
	if fn == nil {
		return nil
	}
	m.inFlight[source] = true
	m.generation[source]++
	gen := m.generation[source]

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		data, err := fn(ctx)
		return DataUpdateEvent{
			Source:     source,
			Generation: gen,
			Data:       data,
			Err:        err,
			Timestamp:  time.Now(),
		}
	}
}

func (m *Model) fetcher(source string) func(context.Context) (interface{}, error) {
	filter := m.PeriodFilter()
	switch source {
	case SourceUser:
		if m.web != nil {
			return func(ctx context.Context) (interface{}, error) { return m.web.User(ctx) }
		}
		if m.local != nil {
			return func(ctx context.Context) (interface{}, error) { return m.local.AccountTotals(ctx) }
		}
	case SourcePulses:
		if m.web != nil {
			return func(ctx context.Context) (interface{}, error) {
				return m.web.Pulses(ctx, filter, 100)
			}
		}
	case SourceComputers:
		if m.web != nil {
			return func(ctx context.Context) (interface{}, error) { return m.web.Computers(ctx) }
		}
	case SourceHeatmap:
		if m.inputDB != nil {
			r := m.activeBounds()
			return func(ctx context.Context) (interface{}, error) {
				return m.inputDB.KeyFrequencies(ctx, r)
			}
		}
	case SourceApps:
		if m.inputDB != nil {
			r := m.activeBounds()
			return func(ctx context.Context) (interface{}, error) {
				return m.inputDB.AppStats(ctx, r)
			}
		}
	case SourceNetwork:
		if m.inputDB != nil {
			r := m.activeBounds()
			return func(ctx context.Context) (interface{}, error) {
				return m.inputDB.NetworkStats(ctx, r)
			}
		}
	}
	return nil
}

// activeBounds resolves the active period to concrete day bounds, nil
// for all time.
func (m *Model) activeBounds() *period.DateRange {
	if bounds, ok := m.ActivePeriod().Bounds(m.now(), m.customRange); ok {
		return &bounds
	}
	return nil
}

func (m *Model) waitRealtime() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.monitor.Events()
		if !ok {
			return realtimeClosed{}
		}
		return RealtimeEvent{Event: ev}
	}
}

// Pulse asks the client to upload now. Acknowledgement is optimistic:
// the request is fire-and-forget, and the eventual counter reset shows
// up on the realtime stream.
func (m *Model) Pulse() {
	m.status = "pulse requested"
	if m.monitor != nil {
		m.monitor.Pulse()
	}
	if local := m.local; local != nil {
		log := m.log
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
			defer cancel()
			if err := local.TriggerPulse(ctx); err != nil {
				log.Debug("local pulse trigger failed", "error", err)
			}
		}()
	}
}

// FetchState is the lifecycle of one data source. Failed sources retain
// their last good payload; pages render stale data with the failure
// reason alongside.
type FetchState int

const (
	FetchIdle FetchState = iota
	FetchLoading
	FetchReady
	FetchFailed
)

// SourceState reports where a source is in its fetch lifecycle.
func (m *Model) SourceState(source string) FetchState {
	if m.inFlight[source] {
		return FetchLoading
	}
	var err error
	var hasData bool
	switch source {
	case SourceUser:
		err, hasData = m.userErr, m.user != nil
	case SourcePulses:
		err, hasData = m.pulsesErr, m.pulses != nil
	case SourceComputers:
		err, hasData = m.computersErr, m.computers != nil
	case SourceHeatmap:
		err, hasData = m.heatmapErr, m.heatmap != nil
	case SourceApps:
		err, hasData = m.appsErr, m.apps != nil
	case SourceNetwork:
		err, hasData = m.networkErr, m.network != nil
	}
	switch {
	case err != nil:
		return FetchFailed
	case hasData:
		return FetchReady
	default:
		return FetchIdle
	}
}

// Accessors used by pages.

func (m *Model) Config() *config.Config         { return m.cfg }
func (m *Model) Log() *slog.Logger              { return m.log }
func (m *Model) User() *api.UserStats           { return m.user }
func (m *Model) UserErr() error                 { return m.userErr }
func (m *Model) UserFetchedAt() time.Time       { return m.userAt }
func (m *Model) Pulses() []api.Pulse            { return m.pulses }
func (m *Model) PulsesErr() error               { return m.pulsesErr }
func (m *Model) Computers() []api.Computer      { return m.computers }
func (m *Model) ComputersErr() error            { return m.computersErr }
func (m *Model) Heatmap() map[string]int64      { return m.heatmap }
func (m *Model) HeatmapErr() error              { return m.heatmapErr }
func (m *Model) AppStats() []localdb.AppStat    { return m.apps }
func (m *Model) AppStatsErr() error             { return m.appsErr }
func (m *Model) Network() []localdb.NetworkStat { return m.network }
func (m *Model) NetworkErr() error              { return m.networkErr }
func (m *Model) Live() realtime.Event           { return m.live }
func (m *Model) LiveSeen() time.Time            { return m.liveSeen }
func (m *Model) Estimator() *physics.Estimator  { return m.estimator }
func (m *Model) MetricUnits() bool              { return m.metric }
func (m *Model) Now() time.Time                 { return m.now() }
func (m *Model) WebMode() bool                  { return m.web != nil }

// Profile is the active switch profile.
func (m *Model) Profile() physics.Profile { return physics.ProfileAt(m.profile) }

// CycleProfile advances to the next switch profile; counters carry over
// and derived figures recompute on the next tick.
func (m *Model) CycleProfile() { m.profile = physics.NextProfile(m.profile) }

// ToggleUnits flips between metric and imperial presentation.
func (m *Model) ToggleUnits() { m.metric = !m.metric }

// LiveConnected reports whether a status update arrived recently.
func (m *Model) LiveConnected() bool {
	return !m.liveSeen.IsZero() && m.now().Sub(m.liveSeen) < 10*time.Second
}

// SetStatus replaces the status-bar message.
func (m *Model) SetStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
}
