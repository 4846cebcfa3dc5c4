package anki_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/lingocards/internal/anki"
	"github.com/kpauljoseph/lingocards/internal/language"
	"github.com/kpauljoseph/lingocards/pkg/logger"
	"github.com/kpauljoseph/lingocards/pkg/models"
)

// fakeAnki answers the AnkiConnect actions the service uses.
type fakeAnki struct {
	mu        sync.Mutex
	models    []string
	decks     []string
	notes     map[string]anki.Note
	actions   []string
	failAdds  int
	failFirst int
}

func newFakeAnki() *fakeAnki {
	return &fakeAnki{notes: map[string]anki.Note{}}
}

func (f *fakeAnki) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer GinkgoRecover()
	f.mu.Lock()
	defer f.mu.Unlock()

	var req struct {
		Action string          `json:"action"`
		Params json.RawMessage `json:"params"`
	}
	Expect(json.NewDecoder(r.Body).Decode(&req)).To(Succeed())
	f.actions = append(f.actions, req.Action)

	reply := func(result interface{}, errMsg string) {
		resp := map[string]interface{}{"result": result, "error": nil}
		if errMsg != "" {
			resp["error"] = errMsg
		}
		Expect(json.NewEncoder(w).Encode(resp)).To(Succeed())
	}

	if f.failFirst > 0 {
		f.failFirst--
		reply(nil, "collection is not available")
		return
	}

	switch req.Action {
	case "version":
		reply(6, "")
	case "modelNames":
		reply(f.models, "")
	case "createModel":
		var p struct {
			ModelName string `json:"modelName"`
		}
		Expect(json.Unmarshal(req.Params, &p)).To(Succeed())
		f.models = append(f.models, p.ModelName)
		reply(map[string]interface{}{}, "")
	case "createDeck":
		var p struct {
			Deck string `json:"deck"`
		}
		Expect(json.Unmarshal(req.Params, &p)).To(Succeed())
		f.decks = append(f.decks, p.Deck)
		reply(1, "")
	case "findNotes":
		var p struct {
			Query string `json:"query"`
		}
		Expect(json.Unmarshal(req.Params, &p)).To(Succeed())
		if _, ok := f.notes[strings.TrimPrefix(p.Query, "Hash:")]; ok {
			reply([]int{42}, "")
			return
		}
		reply([]int{}, "")
	case "addNote":
		if f.failAdds > 0 {
			f.failAdds--
			reply(nil, "cannot create note")
			return
		}
		var p struct {
			Note anki.Note `json:"note"`
		}
		Expect(json.Unmarshal(req.Params, &p)).To(Succeed())
		f.notes[p.Note.Fields["Hash"]] = p.Note
		reply(len(f.notes), "")
	default:
		reply(nil, "unsupported action")
	}
}

func (f *fakeAnki) count(action string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, a := range f.actions {
		if a == action {
			n++
		}
	}
	return n
}

var _ = Describe("Service", func() {
	var (
		fake    *fakeAnki
		server  *httptest.Server
		service *anki.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		fake = newFakeAnki()
		server = httptest.NewServer(fake)
		ctx = context.Background()

		testLogger := logger.New(
			logger.WithOutput(GinkgoWriter),
			logger.WithPrefix("[test] "),
			logger.WithLevel(logger.LevelTrace),
		)
		service = anki.NewService(testLogger, anki.WithURL(server.URL), anki.WithRetryDelay(0))
	})

	AfterEach(func() {
		server.Close()
	})

	It("should connect to a running AnkiConnect", func() {
		Expect(service.CheckConnection(ctx)).To(Succeed())
	})

	It("should explain how to fix a missing AnkiConnect", func() {
		server.Close()
		err := service.CheckConnection(ctx)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("AnkiConnect add-on is installed"))
	})

	It("should create decks", func() {
		Expect(service.CreateDeck(ctx, "Lingocards::Español")).To(Succeed())
		Expect(fake.decks).To(ConsistOf("Lingocards::Español"))
	})

	It("should retry transient AnkiConnect errors", func() {
		fake.failFirst = anki.MaxRetries - 1
		Expect(service.CheckConnection(ctx)).To(Succeed())
		Expect(fake.count("version")).To(Equal(anki.MaxRetries))
	})

	It("should give up after MaxRetries", func() {
		fake.failFirst = anki.MaxRetries
		Expect(service.CreateDeck(ctx, "x")).To(MatchError(ContainSubstring("after 3 attempts")))
	})

	Context("exporting a collection", func() {
		cards := models.Collection{
			{Front: "Hello", Back: "Hola"},
			{Front: "Dog", Back: "Perro"},
		}

		It("should create the model once and add every card", func() {
			report, err := service.ExportCollection(ctx, "Lingocards::Español", language.ES, cards)
			Expect(err).NotTo(HaveOccurred())
			Expect(report).To(Equal(anki.Report{Added: 2}))
			Expect(fake.models).To(ConsistOf(anki.LingocardsModelName))

			var fronts []string
			for _, note := range fake.notes {
				fronts = append(fronts, note.Fields["Front"])
				Expect(note.DeckName).To(Equal("Lingocards::Español"))
				Expect(note.Tags).To(ContainElements("lingocards", "lingocards_es", "Lingocards_Español"))
			}
			Expect(fronts).To(ConsistOf("Hello", "Dog"))

			_, err = service.ExportCollection(ctx, "Lingocards::Español", language.ES, cards)
			Expect(err).NotTo(HaveOccurred())
			Expect(fake.count("createModel")).To(Equal(1))
		})

		It("should skip cards already in Anki", func() {
			_, err := service.ExportCollection(ctx, "Deck", language.ES, cards[:1])
			Expect(err).NotTo(HaveOccurred())

			report, err := service.ExportCollection(ctx, "Deck", language.ES, cards)
			Expect(err).NotTo(HaveOccurred())
			Expect(report).To(Equal(anki.Report{Added: 1, Skipped: 1}))
			Expect(report.Total()).To(Equal(2))
		})

		It("should treat the same text in another language as a new card", func() {
			_, err := service.ExportCollection(ctx, "Deck", language.ES, cards[:1])
			Expect(err).NotTo(HaveOccurred())

			report, err := service.ExportCollection(ctx, "Deck", language.ZH, cards[:1])
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Added).To(Equal(1))
		})

		It("should count failed cards and keep going", func() {
			fake.failAdds = anki.MaxRetries

			report, err := service.ExportCollection(ctx, "Deck", language.ES, cards)
			Expect(err).To(MatchError("failed to add 1 out of 2 cards"))
			Expect(report).To(Equal(anki.Report{Added: 1, Failed: 1}))
		})

		It("should stop when the context is cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			_, err := service.ExportCollection(cancelled, "Deck", language.ES, cards)
			Expect(err).To(MatchError(context.Canceled))
		})
	})
})

var _ = Describe("DeckName", func() {
	It("should nest the language under the root deck", func() {
		Expect(anki.DeckName("Lingocards", language.ES)).To(Equal("Lingocards::Español"))
		Expect(anki.DeckName("Study::Lang", language.ZH)).To(Equal("Study::Lang::中文"))
	})

	It("should use the language alone without a root", func() {
		Expect(anki.DeckName("  ", language.ES)).To(Equal("Español"))
	})
})
