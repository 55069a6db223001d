package mmu

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/vmsim/vm"
)

func pageData(page int) []byte {
	data := make([]byte, vm.PageSize)
	for offset := range data {
		data[offset] = byte(page*7 + offset)
	}

	return data
}

func addr(page, offset int) vm.VAddr {
	return vm.VAddr(page*vm.PageSize + offset)
}

var _ = Describe("MMU", func() {
	var (
		mockCtrl   *gomock.Controller
		pageReader *MockPageReader
		c          *Comp
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		pageReader = NewMockPageReader(mockCtrl)

		c = MakeBuilder().
			WithNumFrames(2).
			WithTLBCapacity(16).
			WithPageReader(pageReader).
			Build()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should fault and load a page on first access", func() {
		pageReader.EXPECT().ReadPage(5).Return(pageData(5), nil)

		trans, err := c.Translate(addr(5, 20))

		Expect(err).ToNot(HaveOccurred())
		Expect(trans.PageFault).To(BeTrue())
		Expect(trans.TLBHit).To(BeFalse())
		Expect(trans.PAddr).To(Equal(uint32(0*vm.PageSize + 20)))
		Expect(trans.Value).To(Equal(int8(pageData(5)[20])))
	})

	It("should preserve the offset bits through translation", func() {
		pageReader.EXPECT().ReadPage(gomock.Any()).
			DoAndReturn(func(page int) ([]byte, error) {
				return pageData(page), nil
			}).AnyTimes()

		for _, a := range []vm.VAddr{0, 255, 256, 511, 1300} {
			trans, err := c.Translate(a)

			Expect(err).ToNot(HaveOccurred())
			Expect(int(trans.PAddr) % vm.PageSize).To(Equal(a.Offset()))
		}
	})

	It("should report the byte as a signed value", func() {
		pageReader.EXPECT().ReadPage(0).Return(pageData(0), nil)

		trans, err := c.Translate(addr(0, 200))

		Expect(err).ToNot(HaveOccurred())
		Expect(trans.Value).To(Equal(int8(-56)))
	})

	It("should not re-fault a resident page", func() {
		pageReader.EXPECT().ReadPage(5).Return(pageData(5), nil)

		first, err := c.Translate(addr(5, 0))
		Expect(err).ToNot(HaveOccurred())
		Expect(first.PageFault).To(BeTrue())

		second, err := c.Translate(addr(5, 100))
		Expect(err).ToNot(HaveOccurred())
		Expect(second.PageFault).To(BeFalse())
		Expect(second.TLBHit).To(BeTrue())
	})

	It("should hit the page table when the TLB entry was evicted", func() {
		c = MakeBuilder().
			WithNumFrames(4).
			WithTLBCapacity(1).
			WithPageReader(pageReader).
			Build()

		pageReader.EXPECT().ReadPage(1).Return(pageData(1), nil)
		pageReader.EXPECT().ReadPage(2).Return(pageData(2), nil)

		_, err := c.Translate(addr(1, 0))
		Expect(err).ToNot(HaveOccurred())

		_, err = c.Translate(addr(2, 0))
		Expect(err).ToNot(HaveOccurred())

		trans, err := c.Translate(addr(1, 0))
		Expect(err).ToNot(HaveOccurred())
		Expect(trans.TLBHit).To(BeFalse())
		Expect(trans.PageFault).To(BeFalse())

		stats := c.Stats()
		Expect(stats.PageFaults).To(Equal(uint64(2)))
		Expect(stats.TLBMisses).To(Equal(uint64(3)))
	})

	It("should evict the earliest-filled frame when memory is full", func() {
		pageReader.EXPECT().ReadPage(5).Return(pageData(5), nil)
		pageReader.EXPECT().ReadPage(9).Return(pageData(9), nil)
		pageReader.EXPECT().ReadPage(12).Return(pageData(12), nil)

		trans, err := c.Translate(addr(5, 0))
		Expect(err).ToNot(HaveOccurred())
		Expect(trans.PageFault).To(BeTrue())
		Expect(trans.PAddr).To(Equal(uint32(0)))

		trans, err = c.Translate(addr(9, 0))
		Expect(err).ToNot(HaveOccurred())
		Expect(trans.PageFault).To(BeTrue())
		Expect(trans.PAddr).To(Equal(uint32(1 * vm.PageSize)))

		trans, err = c.Translate(addr(5, 0))
		Expect(err).ToNot(HaveOccurred())
		Expect(trans.PageFault).To(BeFalse())

		trans, err = c.Translate(addr(12, 0))
		Expect(err).ToNot(HaveOccurred())
		Expect(trans.PageFault).To(BeTrue())
		Expect(trans.PAddr).To(Equal(uint32(0)))

		_, found := c.pageTable.Find(5)
		Expect(found).To(BeFalse())

		frame, found := c.pageTable.Find(9)
		Expect(found).To(BeTrue())
		Expect(frame).To(Equal(1))

		frame, found = c.pageTable.Find(12)
		Expect(found).To(BeTrue())
		Expect(frame).To(Equal(0))
	})

	It("should leave no stale mapping after an eviction", func() {
		pageReader.EXPECT().ReadPage(5).Return(pageData(5), nil).Times(2)
		pageReader.EXPECT().ReadPage(9).Return(pageData(9), nil)
		pageReader.EXPECT().ReadPage(12).Return(pageData(12), nil)

		_, err := c.Translate(addr(5, 0))
		Expect(err).ToNot(HaveOccurred())

		_, err = c.Translate(addr(9, 0))
		Expect(err).ToNot(HaveOccurred())

		_, err = c.Translate(addr(12, 0))
		Expect(err).ToNot(HaveOccurred())

		_, found := c.tlb.Lookup(5)
		Expect(found).To(BeFalse())

		trans, err := c.Translate(addr(5, 30))
		Expect(err).ToNot(HaveOccurred())
		Expect(trans.PageFault).To(BeTrue())
		Expect(trans.Value).To(Equal(int8(pageData(5)[30])))
	})

	It("should serve the loaded frame's bytes, not the victim's", func() {
		pageReader.EXPECT().ReadPage(5).Return(pageData(5), nil)
		pageReader.EXPECT().ReadPage(9).Return(pageData(9), nil)
		pageReader.EXPECT().ReadPage(12).Return(pageData(12), nil)

		_, err := c.Translate(addr(5, 0))
		Expect(err).ToNot(HaveOccurred())

		_, err = c.Translate(addr(9, 0))
		Expect(err).ToNot(HaveOccurred())

		trans, err := c.Translate(addr(12, 77))
		Expect(err).ToNot(HaveOccurred())
		Expect(trans.Value).To(Equal(int8(pageData(12)[77])))
	})

	It("should count exactly one of each counter pair per translation", func() {
		pageReader.EXPECT().ReadPage(5).Return(pageData(5), nil)

		_, err := c.Translate(addr(5, 0))
		Expect(err).ToNot(HaveOccurred())

		_, err = c.Translate(addr(5, 1))
		Expect(err).ToNot(HaveOccurred())

		stats := c.Stats()
		Expect(stats.Translations).To(Equal(uint64(2)))
		Expect(stats.TLBHits + stats.TLBMisses).To(Equal(stats.Translations))
		Expect(stats.PageFaults + stats.NoFaults).To(Equal(stats.Translations))
		Expect(stats.TLBHits).To(Equal(uint64(1)))
		Expect(stats.PageFaults).To(Equal(uint64(1)))
	})

	It("should propagate a backing store failure without counting", func() {
		pageReader.EXPECT().ReadPage(5).
			Return(nil, errors.New("page unavailable"))

		_, err := c.Translate(addr(5, 0))

		Expect(err).To(HaveOccurred())
		Expect(c.Stats().Translations).To(Equal(uint64(0)))
	})
})

var _ = Describe("Stats", func() {
	It("should compute rates", func() {
		stats := Stats{
			Translations: 8,
			TLBHits:      2,
			TLBMisses:    6,
			PageFaults:   4,
			NoFaults:     4,
		}

		Expect(stats.TLBHitRate()).To(Equal(0.25))
		Expect(stats.PageFaultRate()).To(Equal(0.5))
	})

	It("should report zero rates before any translation", func() {
		Expect(Stats{}.TLBHitRate()).To(Equal(0.0))
		Expect(Stats{}.PageFaultRate()).To(Equal(0.0))
	})
})
