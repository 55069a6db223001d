package tlb

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/vmsim/vm"
)

var _ = Describe("TLB", func() {
	var c *Comp

	BeforeEach(func() {
		c = MakeBuilder().WithCapacity(3).Build()
	})

	It("should miss when empty", func() {
		_, found := c.Lookup(5)

		Expect(found).To(BeFalse())
		Expect(c.Len()).To(Equal(0))
	})

	It("should hit after insert", func() {
		c.Insert(5, 2)

		frame, found := c.Lookup(5)

		Expect(found).To(BeTrue())
		Expect(frame).To(Equal(2))
	})

	It("should never exceed its capacity", func() {
		for page := 0; page < 10; page++ {
			c.Insert(vm.PageNum(page), page)
			Expect(c.Len()).To(BeNumerically("<=", c.Capacity()))
		}
	})

	It("should evict the earliest-inserted entry at capacity", func() {
		c.Insert(5, 0)
		c.Insert(9, 1)
		c.Insert(12, 2)

		c.Insert(30, 3)

		_, found := c.Lookup(5)
		Expect(found).To(BeFalse())

		frame, found := c.Lookup(9)
		Expect(found).To(BeTrue())
		Expect(frame).To(Equal(1))

		frame, found = c.Lookup(30)
		Expect(found).To(BeTrue())
		Expect(frame).To(Equal(3))
	})

	It("should evict strictly in insertion order", func() {
		c.Insert(5, 0)
		c.Insert(9, 1)
		c.Insert(12, 2)

		c.Insert(30, 3)
		c.Insert(31, 4)

		_, found := c.Lookup(9)
		Expect(found).To(BeFalse())

		_, found = c.Lookup(12)
		Expect(found).To(BeTrue())
	})

	It("should remove an entry on invalidate", func() {
		c.Insert(5, 0)
		c.Insert(9, 1)

		c.Invalidate(5)

		_, found := c.Lookup(5)
		Expect(found).To(BeFalse())
		Expect(c.Len()).To(Equal(1))
	})

	It("should treat invalidating an absent page as a no-op", func() {
		c.Insert(5, 0)

		c.Invalidate(12)
		c.Invalidate(12)

		Expect(c.Len()).To(Equal(1))
	})

	It("should free a slot when an entry is invalidated", func() {
		c.Insert(5, 0)
		c.Insert(9, 1)
		c.Insert(12, 2)

		c.Invalidate(5)
		c.Insert(30, 3)

		_, found := c.Lookup(9)
		Expect(found).To(BeTrue())

		_, found = c.Lookup(30)
		Expect(found).To(BeTrue())
	})

	It("should update the frame when reinserting a cached page", func() {
		c.Insert(5, 0)
		c.Insert(5, 7)

		frame, found := c.Lookup(5)
		Expect(found).To(BeTrue())
		Expect(frame).To(Equal(7))
		Expect(c.Len()).To(Equal(1))
	})
})
