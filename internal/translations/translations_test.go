package translations_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/lingocards/internal/language"
	"github.com/kpauljoseph/lingocards/internal/translations"
)

var _ = Describe("Translator", func() {
	var translator *translations.Translator

	BeforeEach(func() {
		var err error
		translator, err = translations.New()
		Expect(err).NotTo(HaveOccurred())
	})

	It("should load English and every card language", func() {
		Expect(translator.Languages()).To(ConsistOf("en", "es", "zh"))
	})

	It("should translate the title into each language", func() {
		Expect(translator.T(language.ES, "AppTitle", nil)).To(Equal("Tarjetas Bilingües"))
		Expect(translator.T(language.ZH, "AppTitle", nil)).To(Equal("双语闪卡"))
	})

	It("should fall back to English for other languages", func() {
		Expect(translator.T("fr", "AppTitle", nil)).To(Equal("Bilingual Flashcards"))
	})

	It("should fill in template data", func() {
		Expect(translator.T(language.ES, "CardAdded", map[string]any{"Number": 6})).To(Equal("Tarjeta 6 añadida."))
	})

	It("should pick plural forms", func() {
		Expect(translator.N(language.ES, "CardCount", 1, nil)).To(Equal("1 tarjeta"))
		Expect(translator.N(language.ES, "CardCount", 5, nil)).To(Equal("5 tarjetas"))
		Expect(translator.N(language.ZH, "CardCount", 1, nil)).To(Equal("1 张卡片"))
	})

	It("should return unknown message ids unchanged", func() {
		Expect(translator.T(language.ES, "NoSuchMessage", nil)).To(Equal("NoSuchMessage"))
	})
})
