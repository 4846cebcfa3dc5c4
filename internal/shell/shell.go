// Package shell is the interactive line interface over a session.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kpauljoseph/lingocards/internal/cardstore"
	"github.com/kpauljoseph/lingocards/internal/language"
	"github.com/kpauljoseph/lingocards/internal/session"
	"github.com/kpauljoseph/lingocards/internal/translations"
	"github.com/kpauljoseph/lingocards/pkg/logger"
)

const (
	cmdList  = "list"
	cmdAdd   = "add"
	cmdEdit  = "edit"
	cmdDel   = "del"
	cmdFlip  = "flip"
	cmdClear = "clear"
	cmdLang  = "lang"
	cmdHelp  = "help"
	cmdQuit  = "quit"
)

const pairSeparator = "|"

type Shell struct {
	session    *session.Session
	translator *translations.Translator
	in         *bufio.Scanner
	out        io.Writer
	logger     *logger.Logger
}

func New(sess *session.Session, translator *translations.Translator, in io.Reader, out io.Writer, log *logger.Logger) *Shell {
	if log == nil {
		log = logger.Discard()
	}
	return &Shell{
		session:    sess,
		translator: translator,
		in:         bufio.NewScanner(in),
		out:        out,
		logger:     log,
	}
}

// Run reads commands until quit, end of input or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	s.println(s.t("AppTitle", nil))
	s.status()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(s.out, "[%s]> ", s.session.Language())

		line, ok := s.readLine()
		if !ok {
			s.println("")
			break
		}
		if !s.Execute(ctx, line) {
			return nil
		}
	}

	if err := s.in.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	s.println(s.t("Goodbye", nil))
	return nil
}

// Execute runs one command line and reports whether the shell should keep
// going.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	name, args := splitCommand(line)
	s.logger.Trace("Command %q args %q", name, args)

	switch name {
	case "":
	case cmdList, "ls":
		s.list()
	case cmdAdd:
		s.add(ctx, args)
	case cmdEdit:
		s.edit(ctx, args)
	case cmdDel, "rm", "remove":
		s.remove(ctx, args)
	case cmdFlip:
		s.flip(args)
	case cmdClear:
		s.clear(ctx)
	case cmdLang:
		s.lang(ctx, args)
	case cmdHelp, "?":
		s.println(s.t("Help", nil))
	case cmdQuit, "exit", "q":
		s.println(s.t("Goodbye", nil))
		return false
	default:
		s.println(s.t("UnknownCommand", map[string]any{"Command": name}))
	}
	return true
}

// Confirm asks on the shell's own input. Anything but yes declines.
func (s *Shell) Confirm(_ context.Context, count int) bool {
	fmt.Fprint(s.out, s.translator.N(s.session.Language(), "ConfirmClear", count, nil))
	answer, ok := s.readLine()
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (s *Shell) status() {
	code := s.session.Language()
	s.println(fmt.Sprintf("%s (%s)",
		s.t("Studying", map[string]any{"Language": code.DisplayName()}),
		s.translator.N(code, "CardCount", s.session.Len(), nil)))
}

func (s *Shell) list() {
	cards := s.session.Cards()
	if len(cards) == 0 {
		s.println(s.t("NoCards", nil))
		return
	}
	s.status()
	for i, card := range cards {
		face := card.Front
		if s.session.Flipped(i) {
			face = card.Back
		}
		s.println(fmt.Sprintf("%3d. %s", i+1, face))
	}
}

func (s *Shell) add(ctx context.Context, args string) {
	front, back, ok := splitPair(args)
	if !ok {
		s.usage("add <english> | <translation>")
		return
	}
	if err := s.session.Add(ctx, front, back); err != nil {
		s.showError(err, 0)
		return
	}
	s.println(s.t("CardAdded", map[string]any{"Number": s.session.Len()}))
	s.warnUnsaved()
}

func (s *Shell) edit(ctx context.Context, args string) {
	numArg, rest, _ := strings.Cut(strings.TrimSpace(args), " ")
	number, err := strconv.Atoi(numArg)
	front, back, ok := splitPair(rest)
	if err != nil || !ok {
		s.usage("edit <n> <english> | <translation>")
		return
	}
	if err := s.session.Replace(ctx, number-1, front, back); err != nil {
		s.showError(err, number)
		return
	}
	s.println(s.t("CardUpdated", map[string]any{"Number": number}))
	s.warnUnsaved()
}

func (s *Shell) remove(ctx context.Context, args string) {
	number, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		s.usage("del <n>")
		return
	}
	if err := s.session.Remove(ctx, number-1); err != nil {
		s.showError(err, number)
		return
	}
	s.println(s.t("CardRemoved", map[string]any{"Number": number}))
	s.warnUnsaved()
}

func (s *Shell) flip(args string) {
	number, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		s.usage("flip <n>")
		return
	}
	showingBack, err := s.session.Flip(number - 1)
	if err != nil {
		s.showError(err, number)
		return
	}
	card := s.session.Cards()[number-1]
	face := card.Front
	if showingBack {
		face = card.Back
	}
	s.println(fmt.Sprintf("%3d. %s", number, face))
}

func (s *Shell) clear(ctx context.Context) {
	if !s.session.Clear(ctx, s) {
		s.println(s.t("ClearCancelled", nil))
		return
	}
	s.println(s.t("CardsCleared", nil))
	s.warnUnsaved()
}

func (s *Shell) lang(ctx context.Context, args string) {
	arg := strings.TrimSpace(args)
	if arg == "" {
		s.session.ToggleLanguage(ctx)
	} else {
		code, err := language.Parse(arg)
		if err != nil {
			s.println(s.t("UnknownLanguage", map[string]any{
				"Code":    arg,
				"Choices": choices(),
			}))
			return
		}
		if err := s.session.SetLanguage(ctx, code); err != nil {
			s.showError(err, 0)
			return
		}
	}
	s.println(s.t("LanguageSwitched", map[string]any{"Language": s.session.Language().DisplayName()}))
	s.status()
}

func (s *Shell) showError(err error, number int) {
	switch {
	case errors.Is(err, cardstore.ErrEmptyFront):
		s.println(s.t("EmptyFront", nil))
	case errors.Is(err, cardstore.ErrEmptyBack):
		s.println(s.t("EmptyBack", nil))
	case errors.Is(err, session.ErrIndexOutOfRange):
		s.println(s.t("NoSuchCard", map[string]any{"Number": number}))
	default:
		s.logger.Warn("Command failed: %v", err)
		s.println(err.Error())
	}
}

func (s *Shell) warnUnsaved() {
	if s.session.Unsaved() {
		s.println(s.t("NotSaved", nil))
	}
}

func (s *Shell) usage(usage string) {
	s.println(s.t("Usage", map[string]any{"Usage": usage}))
}

func (s *Shell) t(id string, data map[string]any) string {
	return s.translator.T(s.session.Language(), id, data)
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}

func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func splitCommand(line string) (string, string) {
	line = strings.TrimSpace(line)
	name, args, _ := strings.Cut(line, " ")
	return strings.ToLower(name), args
}

// splitPair parses "<front> | <back>". Blank sides are passed on so the
// session can name the missing one.
func splitPair(args string) (string, string, bool) {
	front, back, ok := strings.Cut(args, pairSeparator)
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(front), strings.TrimSpace(back), true
}

func choices() string {
	var codes []string
	for _, code := range language.Supported() {
		codes = append(codes, code.String())
	}
	return strings.Join(codes, ", ")
}
