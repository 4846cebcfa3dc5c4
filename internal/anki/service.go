package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kpauljoseph/lingocards/internal/language"
	"github.com/kpauljoseph/lingocards/pkg/logger"
	"github.com/kpauljoseph/lingocards/pkg/models"
	"github.com/kpauljoseph/lingocards/pkg/utils"
)

const (
	DefaultAnkiConnectURL = "http://localhost:8765"
	LingocardsModelName   = "Lingocards"
	MaxRetries            = 3
	RetryDelay            = 500 * time.Millisecond
)

type Service struct {
	ankiConnectURL string
	client         *http.Client
	retryDelay     time.Duration
	logger         *logger.Logger
}

type Option func(*Service)

func WithURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.ankiConnectURL = url
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.client = client
	}
}

func WithRetryDelay(d time.Duration) Option {
	return func(s *Service) {
		s.retryDelay = d
	}
}

type AnkiConnectRequest struct {
	Action  string      `json:"action"`
	Version int         `json:"version"`
	Params  interface{} `json:"params"`
}

type Note struct {
	DeckName  string                 `json:"deckName"`
	ModelName string                 `json:"modelName"`
	Fields    map[string]string      `json:"fields"`
	Options   map[string]interface{} `json:"options"`
	Tags      []string               `json:"tags"`
}

// Report summarises one ExportCollection run.
type Report struct {
	Added   int
	Skipped int
	Failed  int
}

func (r Report) Total() int {
	return r.Added + r.Skipped + r.Failed
}

func NewService(logger *logger.Logger, options ...Option) *Service {
	s := &Service{
		ankiConnectURL: DefaultAnkiConnectURL,
		client:         &http.Client{Timeout: 10 * time.Second},
		retryDelay:     RetryDelay,
		logger:         logger,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *Service) ensureModelExists(ctx context.Context) error {
	request := AnkiConnectRequest{
		Action:  "modelNames",
		Version: ANKI_CONNECT_VERSION,
		Params:  map[string]interface{}{},
	}

	result, err := s.sendRequest(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to get models: %w", err)
	}

	var modelNames []string
	if err := json.Unmarshal(result, &modelNames); err != nil {
		return fmt.Errorf("failed to parse model names: %w", err)
	}

	for _, name := range modelNames {
		if name == LingocardsModelName {
			s.logger.Debug("Lingocards model already exists")
			return nil
		}
	}

	createRequest := AnkiConnectRequest{
		Action:  "createModel",
		Version: ANKI_CONNECT_VERSION,
		Params: map[string]interface{}{
			"modelName": LingocardsModelName,
			"inOrderFields": []string{
				"Front",
				"Back",
				"Hash",
			},
			"css": `.card {
                font-family: arial;
                font-size: 24px;
                text-align: center;
                color: black;
                background-color: white;
            }
            .hash { display: none; }`,
			"cardTemplates": []map[string]interface{}{
				{
					"Name": "Recognition",
					"Front": `{{Front}}
                        <div class="hash">{{Hash}}</div>`,
					"Back": `{{FrontSide}}
                        <hr id="answer">
                        {{Back}}`,
				},
			},
		},
	}

	if _, err := s.sendRequest(ctx, createRequest); err != nil {
		return fmt.Errorf("failed to create model: %w", err)
	}

	s.logger.Info("Created Lingocards model")
	return nil
}

func (s *Service) CheckConnection(ctx context.Context) error {
	request := AnkiConnectRequest{
		Action:  "version",
		Version: ANKI_CONNECT_VERSION,
		Params:  map[string]interface{}{},
	}

	if _, err := s.sendRequest(ctx, request); err != nil {
		s.logger.Info("Error sending request to Anki: %v", err)
		return fmt.Errorf("could not connect to Anki at %s. Please ensure:\n"+
			"1. Anki is running https://apps.ankiweb.net/#download\n"+
			"2. AnkiConnect add-on is installed (code: 2055492159) https://ankiweb.net/shared/info/2055492159\n"+
			"3. Anki has been restarted after installing AnkiConnect", s.ankiConnectURL)
	}

	return nil
}

func (s *Service) CreateDeck(ctx context.Context, deckName string) error {
	s.logger.Info("Creating deck: %s", deckName)
	request := AnkiConnectRequest{
		Action:  "createDeck",
		Version: ANKI_CONNECT_VERSION,
		Params: map[string]string{
			"deck": deckName,
		},
	}

	_, err := s.sendRequest(ctx, request)
	return err
}

func (s *Service) findExistingNoteByHash(ctx context.Context, hash string) (int, error) {
	request := AnkiConnectRequest{
		Action:  "findNotes",
		Version: ANKI_CONNECT_VERSION,
		Params: map[string]interface{}{
			"query": fmt.Sprintf("Hash:%s", hash),
		},
	}

	result, err := s.sendRequest(ctx, request)
	if err != nil {
		return 0, fmt.Errorf("failed to search notes: %w", err)
	}

	var noteIds []int
	if err := json.Unmarshal(result, &noteIds); err != nil {
		return 0, fmt.Errorf("failed to parse note IDs: %w", err)
	}

	if len(noteIds) > 0 {
		return noteIds[0], nil
	}

	return 0, nil
}

// addCard adds one card and reports whether it was new. The model must
// already exist.
func (s *Service) addCard(ctx context.Context, deckName string, lang language.Code, card models.Card) (bool, error) {
	contentHash := utils.CardHash(lang.String(), card.Front, card.Back)
	s.logger.Trace("Card %q / %q has hash %s", card.Front, card.Back, contentHash)

	existingNoteId, err := s.findExistingNoteByHash(ctx, contentHash)
	if err != nil {
		s.logger.Debug("Warning: failed to check for existing note: %v", err)
	} else if existingNoteId != 0 {
		s.logger.Debug("Skipping duplicate card with hash: %s", contentHash)
		return false, nil
	}

	note := Note{
		DeckName:  deckName,
		ModelName: LingocardsModelName,
		Fields: map[string]string{
			"Front": card.Front,
			"Back":  card.Back,
			"Hash":  contentHash,
		},
		Options: map[string]interface{}{
			"allowDuplicate": false,
		},
		Tags: []string{"lingocards", "lingocards_" + lang.String(), deckTag(deckName)},
	}

	request := AnkiConnectRequest{
		Action:  "addNote",
		Version: ANKI_CONNECT_VERSION,
		Params: map[string]interface{}{
			"note": note,
		},
	}

	if _, err := s.sendRequest(ctx, request); err != nil {
		return false, fmt.Errorf("failed to add note: %w", err)
	}
	return true, nil
}

// ExportCollection pushes every card of c into deckName. Cards already in
// Anki are skipped. Individual failures are counted and reported as one
// error at the end.
func (s *Service) ExportCollection(ctx context.Context, deckName string, lang language.Code, c models.Collection) (Report, error) {
	var report Report

	if err := s.ensureModelExists(ctx); err != nil {
		return report, fmt.Errorf("failed to ensure model exists: %w", err)
	}

	for _, card := range c {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		added, err := s.addCard(ctx, deckName, lang, card)
		switch {
		case err != nil:
			s.logger.Debug("Error adding card %q: %v", card.Front, err)
			report.Failed++
		case added:
			report.Added++
		default:
			report.Skipped++
		}
	}

	s.logger.Debug("Export to %s: %d added, %d skipped, %d failed", deckName, report.Added, report.Skipped, report.Failed)

	if report.Failed > 0 {
		return report, fmt.Errorf("failed to add %d out of %d cards", report.Failed, len(c))
	}
	return report, nil
}

func (s *Service) sendRequest(ctx context.Context, req AnkiConnectRequest) (json.RawMessage, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		if attempt > 0 {
			s.logger.Info("Retrying request (attempt %d/%d)...", attempt+1, MaxRetries)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.retryDelay):
			}
		}

		result, err := s.post(ctx, reqBody)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}

	return nil, fmt.Errorf("after %d attempts: %w", MaxRetries, lastErr)
}

func (s *Service) post(ctx context.Context, body []byte) (json.RawMessage, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.ankiConnectURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result struct {
		Error  *string         `json:"error"`
		Result json.RawMessage `json:"result"`
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if result.Error != nil {
		return nil, fmt.Errorf("anki error: %s", *result.Error)
	}

	return result.Result, nil
}
