package cardstore_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/lingocards/internal/cardstore"
	"github.com/kpauljoseph/lingocards/internal/language"
	"github.com/kpauljoseph/lingocards/pkg/models"
)

func collectionOf(n int) models.Collection {
	c := make(models.Collection, 0, n)
	for i := 0; i < n; i++ {
		c = append(c, models.Card{Front: fmt.Sprintf("front-%d", i), Back: fmt.Sprintf("back-%d", i)})
	}
	return c
}

var _ = Describe("Collection operations", func() {
	Context("Validate", func() {
		It("should name the empty side", func() {
			Expect(cardstore.Validate(" ", "Hola")).To(MatchError(cardstore.ErrEmptyFront))
			Expect(cardstore.Validate("Hello", "\t")).To(MatchError(cardstore.ErrEmptyBack))
			Expect(cardstore.Validate("Hello", "Hola")).To(Succeed())
		})

		It("should return a ValidationError", func() {
			var validationErr *cardstore.ValidationError
			Expect(cardstore.Validate("", "")).To(BeAssignableToTypeOf(validationErr))
		})
	})

	Context("Add", func() {
		It("should append exactly one card at the end for any size", func() {
			for n := 0; n < 6; n++ {
				before := collectionOf(n)
				after := cardstore.Add(before, "Dog", "Perro")

				Expect(after).To(HaveLen(n + 1))
				Expect(after[n]).To(Equal(models.Card{Front: "Dog", Back: "Perro"}))
				Expect(after[:n]).To(Equal(before))
			}
		})

		It("should keep text exactly as entered", func() {
			after := cardstore.Add(nil, "  Dog ", " Perro")
			Expect(after).To(Equal(models.Collection{{Front: "  Dog ", Back: " Perro"}}))
		})

		It("should not modify the input even when it has spare capacity", func() {
			before := make(models.Collection, 1, 4)
			before[0] = models.Card{Front: "Hello", Back: "Hola"}

			first := cardstore.Add(before, "Dog", "Perro")
			second := cardstore.Add(before, "Cat", "Gato")

			Expect(before).To(HaveLen(1))
			Expect(first[1].Front).To(Equal("Dog"))
			Expect(second[1].Front).To(Equal("Cat"))
		})

		DescribeTable("should leave the collection unchanged for blank text",
			func(front, back string) {
				before := cardstore.Samples(language.ES)
				after := cardstore.Add(before, front, back)
				Expect(after).To(Equal(before))
			},
			Entry("empty front", "", "Perro"),
			Entry("empty back", "Dog", ""),
			Entry("whitespace front", "   ", "Perro"),
			Entry("whitespace back", "Dog", "\t\n "),
			Entry("both empty", "", ""),
		)
	})

	Context("Remove", func() {
		It("should drop exactly the card at every valid index", func() {
			before := collectionOf(5)
			for i := range before {
				after := cardstore.Remove(before, i)

				Expect(after).To(HaveLen(4))
				Expect(after).NotTo(ContainElement(before[i]))

				expected := append(append(models.Collection{}, before[:i]...), before[i+1:]...)
				Expect(after).To(Equal(expected))
			}
			Expect(before).To(Equal(collectionOf(5)))
		})

		It("should ignore out of range indices", func() {
			before := collectionOf(3)
			Expect(cardstore.Remove(before, -1)).To(Equal(before))
			Expect(cardstore.Remove(before, 3)).To(Equal(before))
			Expect(cardstore.Remove(nil, 0)).To(BeEmpty())
		})
	})

	Context("Replace", func() {
		It("should rewrite one card in place", func() {
			before := collectionOf(3)
			after := cardstore.Replace(before, 1, "Dog", "Perro")

			Expect(after).To(HaveLen(3))
			Expect(after[1]).To(Equal(models.Card{Front: "Dog", Back: "Perro"}))
			Expect(after[0]).To(Equal(before[0]))
			Expect(before[1].Front).To(Equal("front-1"))
		})

		It("should ignore blank text and bad indices", func() {
			before := collectionOf(2)
			Expect(cardstore.Replace(before, 0, "", "Perro")).To(Equal(before))
			Expect(cardstore.Replace(before, 2, "Dog", "Perro")).To(Equal(before))
		})
	})

	Context("Clear", func() {
		It("should return an empty collection every time", func() {
			once := cardstore.Clear(collectionOf(4))
			twice := cardstore.Clear(once)

			Expect(once).NotTo(BeNil())
			Expect(once).To(BeEmpty())
			Expect(twice).To(BeEmpty())
		})
	})

	Context("Samples", func() {
		It("should ship five cards per language", func() {
			for _, code := range language.Supported() {
				Expect(cardstore.Samples(code)).To(HaveLen(5))
			}
			Expect(cardstore.Samples(language.ES)[0]).To(Equal(models.Card{Front: "Hello", Back: "Hola"}))
			Expect(cardstore.Samples(language.ZH)[0]).To(Equal(models.Card{Front: "Hello", Back: "你好"}))
		})

		It("should hand out copies", func() {
			cards := cardstore.Samples(language.ES)
			cards[0].Back = "changed"
			Expect(cardstore.Samples(language.ES)[0].Back).To(Equal("Hola"))
		})

		It("should be empty for languages without samples", func() {
			Expect(cardstore.Samples("xx")).To(BeEmpty())
		})
	})
})
