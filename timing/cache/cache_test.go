package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/lanealu/timing/cache"
)

var _ = Describe("Cache", func() {
	var c *cache.Cache

	BeforeEach(func() {
		// Small cache for testing: 4KB, 4-way, 64B lines
		var err error
		c, err = cache.New(cache.Config{
			Size:          4 * 1024,
			Associativity: 4,
			BlockSize:     64,
			HitLatency:    1,
			MissLatency:   10,
		})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Read operations", func() {
		It("should miss on cold cache", func() {
			result := c.Access(0x1000, false)
			Expect(result.Hit).To(BeFalse())
			Expect(result.Latency).To(Equal(uint64(10)))

			stats := c.Stats()
			Expect(stats.Reads).To(Equal(uint64(1)))
			Expect(stats.Misses).To(Equal(uint64(1)))
			Expect(stats.Hits).To(Equal(uint64(0)))
		})

		It("should hit on cached data", func() {
			c.Access(0x1000, false)

			result := c.Access(0x1000, false)
			Expect(result.Hit).To(BeTrue())
			Expect(result.Latency).To(Equal(uint64(1)))
			Expect(c.Stats().HitRate()).To(BeNumerically("~", 0.5))
		})

		It("should hit on the second vector of the same line", func() {
			c.Access(0x1000, false)

			result := c.Access(0x1020, false)
			Expect(result.Hit).To(BeTrue())
			Expect(c.Contains(0x1000)).To(BeTrue())
		})
	})

	Describe("Write operations", func() {
		It("should allocate on write miss and mark the line dirty", func() {
			result := c.Access(0x2000, true)
			Expect(result.Hit).To(BeFalse())
			Expect(c.Contains(0x2000)).To(BeTrue())

			Expect(c.Flush()).To(Equal(uint64(1)))
			Expect(c.Contains(0x2000)).To(BeFalse())
			Expect(c.Stats().Writebacks).To(Equal(uint64(1)))
		})
	})

	Describe("Eviction", func() {
		BeforeEach(func() {
			// One set of two ways, so every line competes.
			var err error
			c, err = cache.New(cache.Config{
				Size:          128,
				Associativity: 2,
				BlockSize:     64,
				HitLatency:    1,
				MissLatency:   10,
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should evict the least recently used line", func() {
			c.Access(0x000, true)
			c.Access(0x040, false)
			c.Access(0x000, false)

			result := c.Access(0x080, false)

			Expect(result.Evicted).To(BeTrue())
			Expect(result.EvictedAddr).To(Equal(uint64(0x040)))
			Expect(result.Writeback).To(BeFalse())
			Expect(c.Contains(0x000)).To(BeTrue())
			Expect(c.Contains(0x040)).To(BeFalse())
		})

		It("should write back a dirty victim", func() {
			c.Access(0x000, true)
			c.Access(0x040, false)

			result := c.Access(0x080, false)

			Expect(result.EvictedAddr).To(Equal(uint64(0x000)))
			Expect(result.Writeback).To(BeTrue())
			Expect(c.Stats().Evictions).To(Equal(uint64(1)))
			Expect(c.Stats().Writebacks).To(Equal(uint64(1)))
		})
	})

	Describe("Invalidate and Reset", func() {
		It("should drop a line without writeback", func() {
			c.Access(0x3000, true)
			c.Invalidate(0x3000)

			Expect(c.Contains(0x3000)).To(BeFalse())
			Expect(c.Flush()).To(BeZero())
		})

		It("should clear lines and statistics", func() {
			c.Access(0x3000, false)
			c.Reset()

			Expect(c.Contains(0x3000)).To(BeFalse())
			Expect(c.Stats()).To(Equal(cache.Statistics{}))
		})
	})

	Describe("Config", func() {
		It("should accept the default vector L1", func() {
			Expect(cache.DefaultL1VConfig().Validate()).To(Succeed())
		})

		DescribeTable("invalid geometry",
			func(cfg cache.Config) {
				_, err := cache.New(cfg)
				Expect(err).To(HaveOccurred())
			},
			Entry("block smaller than a vector", cache.Config{Size: 1024, Associativity: 2, BlockSize: 16, HitLatency: 1, MissLatency: 2}),
			Entry("zero ways", cache.Config{Size: 1024, Associativity: 0, BlockSize: 64, HitLatency: 1, MissLatency: 2}),
			Entry("ragged size", cache.Config{Size: 1000, Associativity: 2, BlockSize: 64, HitLatency: 1, MissLatency: 2}),
			Entry("miss faster than hit", cache.Config{Size: 1024, Associativity: 2, BlockSize: 64, HitLatency: 5, MissLatency: 2}),
		)
	})
})
