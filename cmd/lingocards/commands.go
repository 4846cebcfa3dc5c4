package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kpauljoseph/lingocards/internal/anki"
	"github.com/kpauljoseph/lingocards/internal/cardstore"
	"github.com/kpauljoseph/lingocards/internal/deckfile"
	"github.com/kpauljoseph/lingocards/internal/language"
	"github.com/kpauljoseph/lingocards/internal/scanner"
	"github.com/kpauljoseph/lingocards/internal/session"
	"github.com/kpauljoseph/lingocards/internal/shell"
	"github.com/kpauljoseph/lingocards/pkg/models"
	"github.com/kpauljoseph/lingocards/pkg/version"
)

type Command interface {
	Run(ctx context.Context, a *app) error
}

type CommandFunc func(ctx context.Context, a *app) error

func (f CommandFunc) Run(ctx context.Context, a *app) error {
	return f(ctx, a)
}

const (
	cmdShell   = "shell"
	cmdList    = "list"
	cmdAdd     = "add"
	cmdRemove  = "remove"
	cmdClear   = "clear"
	cmdSamples = "samples"
	cmdReset   = "reset"
	cmdImport  = "import"
	cmdExport  = "export"
	cmdMigrate = "migrate"
	cmdAnki    = "anki"
	cmdVersion = "version"
	cmdHelp    = "help"
)

var errUsage = errors.New("wrong arguments")

var commands = map[string]Command{
	cmdShell:   CommandFunc(runShell),
	cmdList:    CommandFunc(listCards),
	cmdAdd:     CommandFunc(addCard),
	cmdRemove:  CommandFunc(removeCard),
	cmdClear:   CommandFunc(clearCards),
	cmdSamples: CommandFunc(printSamples),
	cmdReset:   CommandFunc(resetCards),
	cmdImport:  CommandFunc(importDecks),
	cmdExport:  CommandFunc(exportDeck),
	cmdMigrate: CommandFunc(migrateLegacy),
	cmdAnki:    CommandFunc(exportToAnki),
	cmdVersion: CommandFunc(printVersion),
	cmdHelp:    CommandFunc(printHelp),
}

// Gets list of available commands
func availableCommands() []string {
	return []string{
		cmdShell, cmdList, cmdAdd, cmdRemove, cmdClear, cmdSamples, cmdReset,
		cmdImport, cmdExport, cmdMigrate, cmdAnki, cmdVersion, cmdHelp,
	}
}

func lookupCommand(name string) Command {
	if cmd, ok := commands[strings.ToLower(name)]; ok {
		return cmd
	}
	return unrecognisedCommand(name)
}

func unrecognisedCommand(name string) CommandFunc {
	return func(context.Context, *app) error {
		return fmt.Errorf("command %q not recognised, must be one of: %s", name, strings.Join(availableCommands(), ", "))
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: lingocards [flags] [command] [arguments]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "  shell                     interactive shell (default)\n")
	fmt.Fprintf(w, "  list                      print the cards\n")
	fmt.Fprintf(w, "  add <english> <target>    add a card\n")
	fmt.Fprintf(w, "  remove <n>                delete card n\n")
	fmt.Fprintf(w, "  clear                     delete every card\n")
	fmt.Fprintf(w, "  samples                   print the built-in sample cards\n")
	fmt.Fprintf(w, "  reset                     forget saved cards so the samples come back\n")
	fmt.Fprintf(w, "  import <dir>              append cards from <lang>.json files under dir\n")
	fmt.Fprintf(w, "  export <file>             write the cards to a JSON file\n")
	fmt.Fprintf(w, "  migrate                   copy cards saved by the old cards_<lang> format\n")
	fmt.Fprintf(w, "  anki                      send the cards to Anki through AnkiConnect\n")
	fmt.Fprintf(w, "  version                   print version information\n")
	fmt.Fprintf(w, "  help                      print this help\n\n")
	fmt.Fprintf(w, "Flags:\n")
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
}

func printHelp(_ context.Context, a *app) error {
	printUsage(a.out)
	return nil
}

func printVersion(_ context.Context, a *app) error {
	fmt.Fprint(a.out, version.GetDetailedVersionInfo())
	return nil
}

func runShell(ctx context.Context, a *app) error {
	store, err := a.cards(ctx)
	if err != nil {
		return err
	}
	translator, err := a.translate()
	if err != nil {
		return err
	}

	selector, err := language.NewSelector(a.lang)
	if err != nil {
		return err
	}
	sess, err := session.New(ctx, store, selector, a.log)
	if err != nil {
		return err
	}
	defer sess.Close()

	return shell.New(sess, translator, a.in, a.out, a.log).Run(ctx)
}

func listCards(ctx context.Context, a *app) error {
	store, err := a.cards(ctx)
	if err != nil {
		return err
	}

	cards, err := store.Fetch(ctx, a.lang)
	if err != nil {
		a.log.Debug("Showing samples: %v", err)
		cards = cardstore.Samples(a.lang)
	}
	printCards(a.out, cards)
	return nil
}

func printCards(w io.Writer, cards models.Collection) {
	for i, card := range cards {
		fmt.Fprintf(w, "%3d. %s | %s\n", i+1, card.Front, card.Back)
	}
}

func addCard(ctx context.Context, a *app) error {
	if len(a.args) != 2 {
		return fmt.Errorf("%w: add <english> <target>", errUsage)
	}
	front, back := a.args[0], a.args[1]
	if err := cardstore.Validate(front, back); err != nil {
		return err
	}

	store, err := a.cards(ctx)
	if err != nil {
		return err
	}
	cards := cardstore.Add(store.Load(ctx, a.lang), front, back)
	if err := store.Persist(ctx, a.lang, cards); err != nil {
		return err
	}
	a.log.Info("Added card %d to %s", len(cards), a.lang.DisplayName())
	return nil
}

func removeCard(ctx context.Context, a *app) error {
	if len(a.args) != 1 {
		return fmt.Errorf("%w: remove <n>", errUsage)
	}
	number, err := strconv.Atoi(a.args[0])
	if err != nil {
		return fmt.Errorf("%w: remove <n>: %v", errUsage, err)
	}

	store, err := a.cards(ctx)
	if err != nil {
		return err
	}
	cards := store.Load(ctx, a.lang)
	if number < 1 || number > len(cards) {
		return fmt.Errorf("%w: %d of %d", session.ErrIndexOutOfRange, number, len(cards))
	}
	cards = cardstore.Remove(cards, number-1)
	if err := store.Persist(ctx, a.lang, cards); err != nil {
		return err
	}
	a.log.Info("Removed card %d from %s, %d left", number, a.lang.DisplayName(), len(cards))
	return nil
}

func clearCards(ctx context.Context, a *app) error {
	store, err := a.cards(ctx)
	if err != nil {
		return err
	}
	translator, err := a.translate()
	if err != nil {
		return err
	}

	selector, err := language.NewSelector(a.lang)
	if err != nil {
		return err
	}
	sess, err := session.New(ctx, store, selector, a.log)
	if err != nil {
		return err
	}
	defer sess.Close()

	var confirm session.Confirmer = session.AlwaysConfirm
	if !a.yes {
		confirm = shell.New(sess, translator, a.in, a.out, a.log)
	}

	if !sess.Clear(ctx, confirm) {
		a.log.Info("Nothing was deleted")
		return nil
	}
	if sess.Unsaved() {
		return fmt.Errorf("cleared %s but could not save", a.lang.DisplayName())
	}
	a.log.Info("Cleared all %s cards", a.lang.DisplayName())
	return nil
}

func printSamples(_ context.Context, a *app) error {
	printCards(a.out, cardstore.Samples(a.lang))
	return nil
}

func resetCards(ctx context.Context, a *app) error {
	if !a.yes {
		return fmt.Errorf("%w: reset deletes the saved %s cards, run again with -yes", errUsage, a.lang.DisplayName())
	}
	store, err := a.cards(ctx)
	if err != nil {
		return err
	}
	if err := store.Forget(ctx, a.lang); err != nil {
		return err
	}
	a.log.Info("Forgot saved %s cards, the samples are back", a.lang.DisplayName())
	return nil
}

func importDecks(ctx context.Context, a *app) error {
	if len(a.args) != 1 {
		return fmt.Errorf("%w: import <dir>", errUsage)
	}

	store, err := a.cards(ctx)
	if err != nil {
		return err
	}

	decks, err := scanner.New(a.log).FindDeckFiles(ctx, a.args[0])
	if err != nil {
		return err
	}
	a.log.Info("Found %d deck files to import", len(decks))

	var failed int
	for _, deck := range decks {
		incoming, err := deckfile.Read(deck.AbsolutePath)
		if err != nil {
			a.log.Warn("Skipping %s: %v", deck.RelativePath, err)
			failed++
			continue
		}

		merged, added := deckfile.Merge(store.Load(ctx, deck.Language), incoming)
		if added == 0 {
			a.log.Info("%s: nothing new", deck.RelativePath)
			continue
		}
		if err := store.Persist(ctx, deck.Language, merged); err != nil {
			a.log.Warn("Could not save %s: %v", deck.RelativePath, err)
			failed++
			continue
		}
		a.log.Info("%s: added %d %s cards", deck.RelativePath, added, deck.Language.DisplayName())
	}

	if failed > 0 {
		return fmt.Errorf("failed to import %d out of %d deck files", failed, len(decks))
	}
	return nil
}

func exportDeck(ctx context.Context, a *app) error {
	if len(a.args) != 1 {
		return fmt.Errorf("%w: export <file>", errUsage)
	}
	store, err := a.cards(ctx)
	if err != nil {
		return err
	}

	cards := store.Load(ctx, a.lang)
	if err := deckfile.Write(a.args[0], cards); err != nil {
		return err
	}
	a.log.Info("Wrote %d %s cards to %s", len(cards), a.lang.DisplayName(), a.args[0])
	return nil
}

func migrateLegacy(ctx context.Context, a *app) error {
	store, err := a.cards(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, code := range language.Supported() {
		copied, err := store.Migrate(ctx, code)
		switch {
		case err != nil:
			a.log.Warn("Not migrating %s: %v", code.DisplayName(), err)
			errs = append(errs, err)
		case copied:
			a.log.Info("Migrated saved %s cards", code.DisplayName())
		default:
			a.log.Debug("Nothing to migrate for %s", code.DisplayName())
		}
	}
	return errors.Join(errs...)
}

func exportToAnki(ctx context.Context, a *app) error {
	store, err := a.cards(ctx)
	if err != nil {
		return err
	}

	ankiService := anki.NewService(a.log, anki.WithURL(a.cfg.Anki.URL))

	a.log.Debug("Checking Anki connection...")
	if err := ankiService.CheckConnection(ctx); err != nil {
		return err
	}
	a.log.Info("Successfully connected to Anki")

	deckName := anki.DeckName(a.cfg.Anki.RootDeck, a.lang)
	if err := ankiService.CreateDeck(ctx, deckName); err != nil {
		return fmt.Errorf("failed to create deck %s: %w", deckName, err)
	}

	report, err := ankiService.ExportCollection(ctx, deckName, a.lang, store.Load(ctx, a.lang))
	a.log.Info("Anki deck %s: %d added, %d already there, %d failed", deckName, report.Added, report.Skipped, report.Failed)
	return err
}
