package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/catalog"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/search"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/session"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/ticker"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/tui/components"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/tui/styles"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/view"
)

// ApplicationState represents the current input mode of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateSearching
	StateHelp
)

// Board selects which catalog is shown
type Board int

const (
	BoardAnime Board = iota
	BoardMarket
)

func (b Board) String() string {
	if b == BoardMarket {
		return "Market"
	}
	return "Anime"
}

const (
	// HomeLimit is the number of items on the home "Popular" grid
	HomeLimit = 10
	// RelatedLimit caps the related list in the detail view
	RelatedLimit = 5

	volumeStep = 10
	seekStep   = 10 * time.Second

	defaultSearchDebounce = 350 * time.Millisecond

	// Header, search bar and footer
	ChromeHeight = 5
)

// Options wires the model to its services
type Options struct {
	Anime     *catalog.Service
	Market    *catalog.Service
	Trailers  *catalog.TrailerService
	Session   *session.Store
	Simulator *ticker.Simulator

	TickPeriod     time.Duration
	SearchDebounce time.Duration
	StartView      view.Kind
	StartBoard     Board

	Context context.Context
	Logger  *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	boards   [2]*catalog.Service
	Trailers *catalog.TrailerService
	Session  *session.Store
	sim      *ticker.Simulator
	logger   *slog.Logger

	// Catalog state
	Board       Board
	Nav         view.State
	Items       []*domain.Item
	Display     []*domain.Item
	Query       string
	Category    string
	SortField   search.SortField
	SortDir     search.SortDirection
	Suggestions []string
	Loading     bool
	LoadFailed  bool

	// Async bookkeeping
	ctx          context.Context
	tracker      *catalog.Tracker
	searchSeq    uint64
	playbackSeq  uint64
	tickHandle   *ticker.Handle
	tickPeriod   time.Duration
	debounce     time.Duration
	relatedIndex int

	// UI components
	Grid        components.CardGrid
	SearchInput textinput.Model
	Spinner     spinner.Model
	AuthForm    components.AuthForm
	GenrePicker components.GenrePicker
	SortModal   components.SortModal

	// Dimensions
	Width  int
	Height int

	// Status bar
	StatusMsg   string
	StatusIsErr bool
}

// NewModel creates a new application model. The persisted session, if any,
// is restored here so the first frame already shows the signed-in user.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	debounce := opts.SearchDebounce
	if debounce <= 0 {
		debounce = defaultSearchDebounce
	}
	period := opts.TickPeriod
	if period <= 0 {
		period = ticker.DefaultPeriod
	}
	sim := opts.Simulator
	if sim == nil {
		sim = ticker.NewSimulator(ticker.DefaultPriceJitter, ticker.DefaultChangeJitter)
	}

	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "Search titles..."
	input.PromptStyle = styles.InputPromptStyle
	input.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.SpinnerStyle

	m := Model{
		State:       StateBrowsing,
		boards:      [2]*catalog.Service{opts.Anime, opts.Market},
		Trailers:    opts.Trailers,
		Session:     opts.Session,
		sim:         sim,
		logger:      logger,
		Board:       opts.StartBoard,
		Nav:         view.New(),
		Category:    domain.CategoryAll,
		ctx:         ctx,
		tracker:     &catalog.Tracker{},
		tickPeriod:  period,
		debounce:    debounce,
		Grid:        components.NewCardGrid(),
		SearchInput: input,
		Spinner:     sp,
		AuthForm:    components.NewAuthForm(),
		GenrePicker: components.NewGenrePicker(),
		SortModal:   components.NewSortModal(),
		Loading:     true,
	}
	if m.service() == nil {
		m.Board = BoardAnime
	}
	if opts.StartView == view.Catalog {
		m.Nav.ShowCatalog()
	}
	if m.Session != nil {
		m.Session.Restore()
		m.Grid.SetFavoriteFunc(m.Session.IsFavorite)
	}
	return m
}

// Init starts the spinner and the first catalog fetch
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, m.fetch())
}

// Shutdown releases background resources: the price ticker and any
// in-flight fetch. Safe to call more than once.
func (m Model) Shutdown() {
	m.stopTicker()
	m.tracker.Cancel()
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case ItemsLoadedMsg:
		return m.handleItemsLoaded(msg)

	case SearchDebounceMsg:
		if msg.Seq != m.searchSeq || m.service() == nil || !m.service().Remote() {
			return m, nil
		}
		return m, m.fetch()

	case PriceTickMsg:
		if msg.handle == nil || msg.handle != m.tickHandle {
			return m, nil
		}
		m.sim.Perturb(m.Items)
		return m, WaitForTickCmd(m.tickHandle)

	case PlaybackTickMsg:
		if msg.Seq != m.playbackSeq || m.Nav.Active != view.Detail || !m.Nav.Playback.Playing {
			return m, nil
		}
		m.Nav.Advance(time.Second)
		return m, PlaybackTickCmd(m.playbackSeq)

	case TrailerLaunchedMsg:
		return m, m.setStatus("Trailer opened: "+msg.Title, false)

	case ErrMsg:
		m.logger.Warn("tui error", "context", msg.Context, "error", msg.Err)
		return m, m.setStatus(msg.Error(), true)

	case StatusMsg:
		return m, m.setStatus(msg.Message, msg.IsError)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Forward remaining messages (cursor blink etc.) to focused inputs
	var cmd tea.Cmd
	switch {
	case m.AuthForm.IsVisible():
		m.AuthForm, cmd, _ = m.AuthForm.Update(msg)
	case m.GenrePicker.IsVisible():
		m.GenrePicker, cmd, _ = m.GenrePicker.Update(msg)
	case m.State == StateSearching:
		m.SearchInput, cmd = m.SearchInput.Update(msg)
	}
	return m, cmd
}

// handleItemsLoaded applies a fetch result if it is still the latest one
func (m Model) handleItemsLoaded(msg ItemsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Board != m.Board || !m.tracker.Accept(msg.Seq) {
		m.logger.Debug("discarding superseded fetch result",
			"seq", msg.Seq, "latest", m.tracker.Latest(), "query", msg.Query)
		return m, nil
	}
	m.tracker.Done(msg.Seq)

	m.Loading = false
	m.LoadFailed = msg.Failed
	m.Items = msg.Items
	m.refreshDisplay()

	var cmds []tea.Cmd
	if msg.Failed {
		cmds = append(cmds, m.setStatus("Catalog unavailable, press r to retry", true))
	}
	if m.Board == BoardMarket && m.tickHandle == nil {
		m.tickHandle = ticker.Start(m.tickPeriod, nil)
		m.logger.Debug("price ticker started", "period", m.tickPeriod)
		cmds = append(cmds, WaitForTickCmd(m.tickHandle))
	}
	return m, tea.Batch(cmds...)
}

// service returns the catalog service of the active board
func (m Model) service() *catalog.Service {
	return m.boards[m.Board]
}

// fetch starts a catalog load for the active board, superseding any
// in-flight one. Local sources always load everything and filter in
// memory; remote sources receive the query and category.
func (m *Model) fetch() tea.Cmd {
	svc := m.service()
	if svc == nil {
		return nil
	}
	query, category := "", domain.CategoryAll
	if svc.Remote() {
		query, category = m.Query, m.Category
	}
	seq, ctx := m.tracker.Begin(m.ctx)
	m.Loading = true
	return FetchItemsCmd(ctx, svc, seq, m.Board, query, category)
}

// refreshDisplay rebuilds the display list from the loaded items
func (m *Model) refreshDisplay() {
	svc := m.service()
	if svc == nil {
		return
	}
	list := svc.Display(m.Items, m.Query, m.Category)
	m.Display = search.Sort(list, m.SortField, m.SortDir)

	m.Suggestions = nil
	if len(m.Display) == 0 && m.Query != "" && !svc.Remote() {
		m.Suggestions = search.Suggest(m.Query, m.Items, 3)
	}

	if m.Nav.Active == view.Detail {
		if _, ok := m.Nav.Resolve(m.Display); !ok {
			m.playbackSeq++
		}
	}
	m.syncGrid()
}

// syncGrid points the card grid at what the active view shows
func (m *Model) syncGrid() {
	items := m.Display
	if m.Nav.Active == view.Home && len(items) > HomeLimit {
		items = items[:HomeLimit]
	}
	m.Grid.SetItems(items)
	m.Grid.SetQuery(m.Query)
}

// switchBoard swaps between the anime catalog and the market board.
// The in-flight fetch is cancelled and the ticker only runs on the market.
func (m *Model) switchBoard() tea.Cmd {
	next := BoardMarket
	if m.Board == BoardMarket {
		next = BoardAnime
	}
	if m.boards[next] == nil {
		return nil
	}
	m.tracker.Cancel()
	m.stopTicker()
	m.playbackSeq++

	m.Board = next
	m.Items = nil
	m.Display = nil
	m.Suggestions = nil
	m.Query = ""
	m.Category = domain.CategoryAll
	m.SortField = search.SortDefault
	m.SortDir = search.DefaultDirection(search.SortDefault)
	m.LoadFailed = false
	m.SearchInput.SetValue("")
	if m.Nav.Active == view.Detail {
		m.Nav.Close()
	}
	m.syncGrid()
	return m.fetch()
}

func (m *Model) stopTicker() {
	if m.tickHandle == nil {
		return
	}
	m.tickHandle.Stop()
	m.tickHandle = nil
	m.logger.Debug("price ticker stopped")
}

// applyQuery reacts to a changed search query. Local boards refilter at
// once; remote boards debounce and refetch.
func (m *Model) applyQuery(query string) tea.Cmd {
	if query == m.Query {
		return nil
	}
	m.Query = query
	svc := m.service()
	if svc == nil {
		return nil
	}
	if !svc.Remote() {
		m.refreshDisplay()
		return nil
	}
	m.searchSeq++
	return DebounceCmd(m.searchSeq, query, m.debounce)
}

// applyCategory switches the genre filter
func (m *Model) applyCategory(category string) tea.Cmd {
	m.Category = category
	svc := m.service()
	if svc == nil {
		return nil
	}
	if !svc.Remote() {
		m.refreshDisplay()
		return nil
	}
	return m.fetch()
}

// openDetail enters the detail view for the given item
func (m *Model) openDetail(item *domain.Item) tea.Cmd {
	if item == nil {
		return nil
	}
	m.playbackSeq++
	m.relatedIndex = 0
	if err := m.Nav.Open(item.ID, m.Display); err != nil {
		m.syncGrid()
		return m.setStatus("Item is no longer available", true)
	}
	return nil
}

// selectedItem returns the item a key action applies to
func (m *Model) selectedItem() *domain.Item {
	if m.Nav.Active == view.Detail {
		item, _ := m.Nav.Resolve(m.Display)
		return item
	}
	return m.Grid.Selected()
}

// toggleFavorite flips the favorite flag of the current item. Without a
// session the sign-in form is shown instead.
func (m *Model) toggleFavorite() tea.Cmd {
	item := m.selectedItem()
	if item == nil || m.Session == nil {
		return nil
	}
	on, err := m.Session.ToggleFavorite(item.ID)
	if err != nil {
		m.AuthForm.Show(components.ModeSignIn)
		m.AuthForm.SetError("Sign in to save favorites")
		return nil
	}
	if on {
		return m.setStatus("Added to favorites: "+item.Title, false)
	}
	return m.setStatus("Removed from favorites: "+item.Title, false)
}

// submitAuth signs in or registers with the submitted form
func (m *Model) submitAuth(sub components.AuthSubmission) tea.Cmd {
	if m.Session == nil {
		m.AuthForm.Hide()
		return nil
	}
	var (
		sess *domain.Session
		err  error
	)
	if sub.Mode == components.ModeRegister {
		sess, err = m.Session.Register(sub.Email, sub.Username, sub.Password)
	} else {
		sess, err = m.Session.SignIn(sub.Email, sub.Password)
	}
	if err != nil {
		m.AuthForm.SetError(err.Error())
		return nil
	}
	m.AuthForm.Reset()
	m.AuthForm.Hide()
	return m.setStatus("Signed in as "+sess.Username, false)
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	if isErr {
		return ClearStatusCmd(5 * time.Second)
	}
	return ClearStatusCmd(3 * time.Second)
}

// updateLayout sizes components to the window
func (m *Model) updateLayout() {
	m.Grid.SetSize(m.Width-2, max(m.Height-ChromeHeight, 0))
	m.SearchInput.Width = max(m.Width/2, 20)
}
