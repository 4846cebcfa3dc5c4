package deckfile_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/lingocards/internal/cardstore"
	"github.com/kpauljoseph/lingocards/internal/deckfile"
	"github.com/kpauljoseph/lingocards/pkg/models"
)

var _ = Describe("Deck files", func() {
	var testDir string

	BeforeEach(func() {
		var err error
		testDir, err = os.MkdirTemp("", "deckfile-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(testDir)
	})

	It("should write and read back a deck", func() {
		path := filepath.Join(testDir, "out", "es.json")
		cards := models.Collection{{Front: "Dog", Back: "Perro"}}

		Expect(deckfile.Write(path, cards)).To(Succeed())

		read, err := deckfile.Read(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(read).To(Equal(cards))

		entries, err := os.ReadDir(filepath.Dir(path))
		Expect(err).NotTo(HaveOccurred())
		Expect(entries).To(HaveLen(1))
	})

	It("should reject files outside the schema", func() {
		path := filepath.Join(testDir, "zh.json")
		Expect(os.WriteFile(path, []byte(`{"cards":[]}`), 0644)).To(Succeed())

		_, err := deckfile.Read(path)
		Expect(err).To(MatchError(cardstore.ErrSchema))
	})

	It("should report missing files", func() {
		_, err := deckfile.Read(filepath.Join(testDir, "missing.json"))
		Expect(err).To(MatchError(os.ErrNotExist))
	})

	Context("Merge", func() {
		It("should append new cards and skip exact duplicates", func() {
			current := cardstore.Samples("es")
			incoming := models.Collection{
				{Front: "Hello", Back: "Hola"},
				{Front: "Dog", Back: "Perro"},
				{Front: "Dog", Back: "Perro"},
			}

			merged, added := deckfile.Merge(current, incoming)
			Expect(added).To(Equal(1))
			Expect(merged).To(HaveLen(6))
			Expect(merged[5]).To(Equal(models.Card{Front: "Dog", Back: "Perro"}))
			Expect(current).To(HaveLen(5))
		})

		It("should skip blank cards", func() {
			merged, added := deckfile.Merge(nil, models.Collection{{Front: " ", Back: "x"}})
			Expect(added).To(BeZero())
			Expect(merged).To(BeEmpty())
		})
	})
})
