package models_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/lingocards/pkg/models"
)

var _ = Describe("Card Models", func() {
	Context("Card", func() {
		It("should treat whitespace-only sides as blank", func() {
			Expect(models.Card{Front: "  ", Back: "Hola"}.Blank()).To(BeTrue())
			Expect(models.Card{Front: "Hello", Back: "\t\n"}.Blank()).To(BeTrue())
			Expect(models.Card{Front: " Hello ", Back: "Hola"}.Blank()).To(BeFalse())
		})
	})

	Context("Collection", func() {
		It("should clone into an independent slice", func() {
			original := models.Collection{{Front: "Hello", Back: "Hola"}}
			clone := original.Clone()
			clone[0].Back = "Adiós"

			Expect(original[0].Back).To(Equal("Hola"))
		})

		It("should clone nil into an empty collection", func() {
			var nilCollection models.Collection
			clone := nilCollection.Clone()

			Expect(clone).NotTo(BeNil())
			Expect(clone).To(BeEmpty())
		})

		It("should compare by value and order", func() {
			a := models.Collection{{Front: "Hello", Back: "Hola"}, {Front: "Water", Back: "Agua"}}
			b := models.Collection{{Front: "Hello", Back: "Hola"}, {Front: "Water", Back: "Agua"}}
			reversed := models.Collection{{Front: "Water", Back: "Agua"}, {Front: "Hello", Back: "Hola"}}

			Expect(a.Equal(b)).To(BeTrue())
			Expect(a.Equal(reversed)).To(BeFalse())
			Expect(a.Equal(a[:1])).To(BeFalse())
			Expect(a.Len()).To(Equal(2))
		})
	})
})
