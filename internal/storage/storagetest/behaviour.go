// Package storagetest holds the Ginkgo tests every SlotStore backend must pass.
package storagetest

import (
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/lingocards/internal/storage"
)

// SlotStoreBehaviour registers the shared backend tests. newStore is called
// before each test; the returned store is closed after it.
func SlotStoreBehaviour(newStore func() storage.SlotStore) {
	var (
		ctx   context.Context
		store storage.SlotStore
		key   string
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = newStore()
		// unique per test so shared servers don't leak state between runs
		key = fmt.Sprintf("flashcards_test%d", time.Now().UnixNano())
	})

	AfterEach(func() {
		if store != nil {
			_ = store.Delete(ctx, key)
			Expect(store.Close()).To(Succeed())
			store = nil
		}
	})

	It("should report a missing slot as not found", func() {
		value, found, err := store.Get(ctx, key)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())
		Expect(value).To(BeEmpty())
	})

	It("should return what was set", func() {
		payload := []byte(`[{"front":"Hello","back":"你好"}]`)
		Expect(store.Set(ctx, key, payload)).To(Succeed())

		value, found, err := store.Get(ctx, key)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(value).To(Equal(payload))
	})

	It("should overwrite on a second set", func() {
		Expect(store.Set(ctx, key, []byte(`[1]`))).To(Succeed())
		Expect(store.Set(ctx, key, []byte(`[]`))).To(Succeed())

		value, found, err := store.Get(ctx, key)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(string(value)).To(Equal(`[]`))
	})

	It("should distinguish an empty value from a missing one", func() {
		Expect(store.Set(ctx, key, []byte{})).To(Succeed())

		_, found, err := store.Get(ctx, key)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
	})

	It("should delete idempotently", func() {
		Expect(store.Set(ctx, key, []byte(`[]`))).To(Succeed())
		Expect(store.Delete(ctx, key)).To(Succeed())
		Expect(store.Delete(ctx, key)).To(Succeed())

		_, found, err := store.Get(ctx, key)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())
	})

	It("should refuse every call once closed", func() {
		closed := store
		store = nil
		Expect(closed.Close()).To(Succeed())

		errClosed := MatchError(storage.ErrClosed)
		_, _, err := closed.Get(ctx, key)
		Expect(err).To(errClosed)
		Expect(closed.Set(ctx, key, []byte(`[]`))).To(errClosed)
		Expect(closed.Delete(ctx, key)).To(errClosed)

		Expect(closed.Close()).To(Succeed(), "closing twice")
	})
}
