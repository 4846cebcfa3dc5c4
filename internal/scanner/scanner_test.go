package scanner_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/lingocards/internal/language"
	"github.com/kpauljoseph/lingocards/internal/scanner"
	"github.com/kpauljoseph/lingocards/pkg/logger"
)

var _ = Describe("Scanner", func() {
	var (
		testDir    string
		testLogger *logger.Logger
		ctx        context.Context
	)

	BeforeEach(func() {
		var err error
		testDir, err = os.MkdirTemp("", "scanner-test-*")
		Expect(err).NotTo(HaveOccurred())

		testLogger = logger.New(
			logger.WithOutput(GinkgoWriter),
			logger.WithPrefix("[test] "),
			logger.WithLevel(logger.LevelTrace),
		)
		ctx = context.Background()
	})

	AfterEach(func() {
		os.RemoveAll(testDir)
	})

	Context("when scanning an empty directory", func() {
		It("should return an error", func() {
			s := scanner.New(testLogger)
			_, err := s.FindDeckFiles(ctx, testDir)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("no deck files found"))
		})
	})

	Context("when scanning a directory with decks", func() {
		BeforeEach(func() {
			for _, name := range []string{"es.json", "zh.json", "fr.json", "notes.txt", "es.txt"} {
				err := os.WriteFile(filepath.Join(testDir, name), []byte("[]"), 0644)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("should find only decks of supported languages", func() {
			s := scanner.New(testLogger)
			decks, err := s.FindDeckFiles(ctx, testDir)

			Expect(err).NotTo(HaveOccurred())
			Expect(decks).To(HaveLen(2))
			Expect(decks[0].RelativePath).To(Equal("es.json"))
			Expect(decks[0].Language).To(Equal(language.ES))
			Expect(decks[1].Language).To(Equal(language.ZH))
			Expect(filepath.IsAbs(decks[0].AbsolutePath)).To(BeTrue())
		})
	})

	Context("when scanning nested directories", func() {
		BeforeEach(func() {
			nestedDir := filepath.Join(testDir, "unit2")
			err := os.MkdirAll(nestedDir, 0755)
			Expect(err).NotTo(HaveOccurred())

			files := []string{
				filepath.Join(testDir, "ZH.JSON"),
				filepath.Join(nestedDir, "es.json"),
			}

			for _, file := range files {
				err := os.WriteFile(file, []byte("[]"), 0644)
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("should find decks in all subdirectories", func() {
			s := scanner.New(testLogger)
			decks, err := s.FindDeckFiles(ctx, testDir)

			Expect(err).NotTo(HaveOccurred())
			Expect(decks).To(HaveLen(2))

			var paths []string
			for _, deck := range decks {
				paths = append(paths, deck.RelativePath)
			}
			Expect(paths).To(ConsistOf("ZH.JSON", filepath.Join("unit2", "es.json")))
		})
	})

	Context("when context is cancelled", func() {
		It("should stop scanning", func() {
			deepDir := filepath.Join(testDir, "deep", "deeper", "deepest")
			err := os.MkdirAll(deepDir, 0755)
			Expect(err).NotTo(HaveOccurred())

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			s := scanner.New(testLogger)
			_, err = s.FindDeckFiles(ctx, testDir)

			Expect(err).To(Equal(context.Canceled))
		})
	})
})
