package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/catalog"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/catalog/jikan"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/config"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/domain"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/log"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/player"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/session"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/store"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/ticker"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/tui"
	"github.com/pr-poehali-dev/crypto-exchange-tracker/internal/view"
)

// Version is set at build time via -ldflags
var Version = "dev"

// listTimeout bounds the non-interactive catalog fetch
const listTimeout = 30 * time.Second

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("aniverse %s\n", Version)
		return
	}

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: aniverse [flags] [command]

Commands:
  (none)        start the terminal UI
  login         sign in and remember the session
  logout        forget the saved session
  list [query]  print the catalog, optionally filtered

Flags:
`)
	flag.PrintDefaults()
}

// app holds everything wired from configuration
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	slot     *store.Store
	sessions *session.Store
	anime    *catalog.Service
	market   *catalog.Service
}

func run(args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, closeLog, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("starting aniverse", "version", Version, "source", cfg.Source.Mode)

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := ""
	if len(args) > 0 {
		cmd = args[0]
	}

	switch cmd {
	case "login":
		return a.login(os.Stdin, os.Stdout)
	case "logout":
		a.sessions.SignOut()
		fmt.Println("Signed out.")
		return nil
	case "list":
		return a.list(ctx, os.Stdout, strings.Join(args[1:], " "))
	case "":
		// Piped output gets the plain listing instead of the TUI
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return a.list(ctx, os.Stdout, "")
		}
		return a.runTUI(ctx)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	slot, err := store.Open(cfg.Store.Path, store.DefaultBucket)
	if err != nil {
		// Sessions still work for this run, they just won't survive it
		logger.Warn("session store unavailable, using memory only", "path", cfg.Store.Path, "error", err)
		fmt.Fprintf(os.Stderr, "Warning: %v (sessions will not be saved)\n", err)
		slot = store.Memory()
	}

	var animeSource domain.ItemSource = catalog.NewAnimeSource()
	if cfg.Source.Mode.Remote() {
		animeSource = jikan.NewClient(jikan.Options{
			BaseURL:   cfg.Source.BaseURL,
			Limit:     cfg.Source.Limit,
			Timeout:   cfg.Source.Timeout,
			RateLimit: cfg.Source.RateLimit,
			Logger:    log.For(logger, "jikan"),
		})
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		slot:     slot,
		sessions: session.NewStore(slot, log.For(logger, "session")),
		anime:    catalog.NewService(animeSource, cfg.Source.Mode.Remote(), catalog.Genres, log.For(logger, "catalog")),
		market:   catalog.NewService(catalog.NewMarketSource(), false, catalog.MarketCategories, log.For(logger, "market")),
	}, nil
}

func (a *app) close() {
	if err := a.slot.Close(); err != nil {
		a.logger.Warn("failed to close session store", "error", err)
	}
}

// service returns the catalog the configured mode starts on
func (a *app) service() *catalog.Service {
	if a.cfg.Source.Mode == config.SourceMarket {
		return a.market
	}
	return a.anime
}

func (a *app) runTUI(ctx context.Context) error {
	launcher := player.NewLauncher(a.cfg.Player.Command, a.cfg.Player.Args, a.cfg.Player.StartFlag, log.For(a.logger, "player"))

	board := tui.BoardAnime
	if a.cfg.Source.Mode == config.SourceMarket {
		board = tui.BoardMarket
	}

	model := tui.NewModel(tui.Options{
		Anime:          a.anime,
		Market:         a.market,
		Trailers:       catalog.NewTrailerService(launcher, a.logger),
		Session:        a.sessions,
		Simulator:      ticker.NewSimulator(a.cfg.Ticker.PriceJitter, a.cfg.Ticker.ChangeJitter),
		TickPeriod:     a.cfg.Ticker.Period,
		SearchDebounce: a.cfg.UI.SearchDebounce,
		StartView:      view.ParseKind(a.cfg.UI.DefaultView),
		StartBoard:     board,
		Context:        ctx,
		Logger:         log.For(a.logger, "tui"),
	})

	// Run the TUI
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	a.logger.Info("starting TUI")

	final, err := p.Run()
	if m, ok := final.(tui.Model); ok {
		m.Shutdown()
	} else {
		model.Shutdown()
	}
	if err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}

// login prompts for credentials and persists the session
func (a *app) login(in *os.File, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "Email: ")
	email, err := reader.ReadString('\n')
	if err != nil && email == "" {
		return fmt.Errorf("failed to read email: %w", err)
	}

	fmt.Fprint(out, "Password: ")
	var password string
	if term.IsTerminal(int(in.Fd())) {
		raw, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = string(raw)
	} else {
		line, _ := reader.ReadString('\n')
		password = strings.TrimSpace(line)
	}

	sess, err := a.sessions.SignIn(email, password)
	if err != nil {
		return err
	}
	if !a.slot.Persistent() {
		fmt.Fprintln(out, "Note: session store is memory only, sign-in will not be remembered.")
	}
	fmt.Fprintf(out, "✓ Signed in as %s\n", sess.Username)
	return nil
}

// list prints the catalog as a table
func (a *app) list(ctx context.Context, out io.Writer, query string) error {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	svc := a.service()
	res := svc.Fetch(ctx, query, domain.CategoryAll)
	if res.Failed {
		return fmt.Errorf("catalog unavailable: %w", domain.ErrSourceUnavailable)
	}
	items := svc.Display(res.Items, query, domain.CategoryAll)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, item := range items {
		if item.Quote != nil {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.NativeTitle, item.Title, item.FormattedPrice(), item.FormattedChange())
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", item.Title, item.FormattedYear(), item.FormattedScore(), strings.Join(item.Tags, ", "))
	}
	return w.Flush()
}
