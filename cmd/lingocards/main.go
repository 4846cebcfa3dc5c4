/*
Lingocards keeps one deck of bilingual flashcards per study language.

Usage:

	lingocards [flags] [command] [arguments]

Without a command it starts the interactive shell. Settings come from a YAML
config file, a .env file and LINGOCARDS_ environment variables, in that
order, and flags override all of them.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/kpauljoseph/lingocards/internal/cardstore"
	"github.com/kpauljoseph/lingocards/internal/config"
	"github.com/kpauljoseph/lingocards/internal/language"
	"github.com/kpauljoseph/lingocards/internal/storage"
	"github.com/kpauljoseph/lingocards/internal/storage/backends"
	"github.com/kpauljoseph/lingocards/internal/translations"
	"github.com/kpauljoseph/lingocards/pkg/logger"
)

// app is what every command runs against. Storage is opened on first use
// so commands like help and version work without it.
type app struct {
	cfg  *config.Config
	log  *logger.Logger
	lang language.Code
	// yes skips confirmation prompts
	yes  bool
	args []string

	in  io.Reader
	out io.Writer

	slots      storage.SlotStore
	store      *cardstore.Store
	translator *translations.Translator
}

func main() {
	configPath := flag.String("config", "lingocards.yaml", "path to config file")
	envPath := flag.String("env", ".env", "path to .env file (optional)")
	lang := flag.String("lang", "", "language to study: es or zh (overrides config)")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	debug := flag.Bool("debug", false, "enable debug mode with trace logging")
	yes := flag.Bool("yes", false, "answer yes to confirmation prompts")
	flag.Usage = func() {
		printUsage(flag.CommandLine.Output())
	}
	flag.Parse()

	log := logger.New(logger.WithPrefix("[lingocards] "))

	if err := config.LoadDotEnv(*envPath); err != nil {
		log.Fatal("Error loading environment: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Error loading config: %v", err)
	}

	log.SetVerbose(*verbose || cfg.Log.Verbose)
	if *debug || cfg.Log.Debug {
		log.SetLevel(logger.LevelTrace)
		log.SetVerbose(true)
	}
	log.Debug("Verbose logging enabled")

	if *lang != "" {
		cfg.DefaultLanguage = *lang
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("%v", err)
	}
	code, err := cfg.Language()
	if err != nil {
		log.Fatal("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{
		cfg:  cfg,
		log:  log,
		lang: code,
		yes:  *yes,
		in:   os.Stdin,
		out:  os.Stdout,
	}

	name := cmdShell
	if flag.NArg() > 0 {
		name = flag.Arg(0)
		a.args = flag.Args()[1:]
	}

	err = lookupCommand(name).Run(ctx, a)
	if closeErr := a.close(); closeErr != nil {
		log.Warn("Error closing storage: %v", closeErr)
	}
	if err != nil {
		log.Fatal("%s: %v", name, err)
	}
}

func (a *app) cards(ctx context.Context) (*cardstore.Store, error) {
	if a.store != nil {
		return a.store, nil
	}

	slots, err := backends.Open(ctx, a.cfg.Storage, a.log)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", a.cfg.Storage.Backend, err)
	}

	store, err := cardstore.New(slots,
		cardstore.WithNamespace(storage.Namespace{Prefix: a.cfg.Storage.Prefix}),
		cardstore.WithLogger(a.log),
	)
	if err != nil {
		slots.Close()
		return nil, err
	}

	a.slots = slots
	a.store = store
	return store, nil
}

func (a *app) translate() (*translations.Translator, error) {
	if a.translator != nil {
		return a.translator, nil
	}
	t, err := translations.New()
	if err != nil {
		return nil, err
	}
	a.translator = t
	return t, nil
}

func (a *app) close() error {
	if a.slots == nil {
		return nil
	}
	err := a.slots.Close()
	a.slots = nil
	a.store = nil
	return err
}
