package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Gate", func() {
	var (
		gate   *Gate
		line   string
		result bool
	)

	BeforeEach(func() {
		gate = NewGate()
	})

	JustBeforeEach(func() {
		result = gate.IsNoise(line)
	})

	When("the line is a total row", func() {
		BeforeEach(func() {
			line = "TOTAL: 45.00"
		})

		It("is noise", func() {
			Expect(result).To(BeTrue())
		})
	})

	When("the line is a plausible item", func() {
		BeforeEach(func() {
			line = "Fresh Milk 2L   12.50"
		})

		It("is not noise", func() {
			Expect(result).To(BeFalse())
		})
	})

	When("the line is too short", func() {
		BeforeEach(func() {
			line = " x "
		})

		It("is noise", func() {
			Expect(result).To(BeTrue())
		})
	})

	When("the line has fewer than two letters", func() {
		BeforeEach(func() {
			line = "=== 123 ==="
		})

		It("is noise", func() {
			Expect(result).To(BeTrue())
		})
	})

	When("the line contains a blacklist keyword", func() {
		BeforeEach(func() {
			line = "Thank you for shopping"
		})

		It("is noise", func() {
			Expect(result).To(BeTrue())
		})
	})

	When("the line contains an isolated rm token", func() {
		BeforeEach(func() {
			line = "Nasi Lemak RM 7"
		})

		It("is noise", func() {
			Expect(result).To(BeTrue())
		})
	})

	When("the line contains an embedded date", func() {
		BeforeEach(func() {
			line = "Visited on 05 Mar 2018 branch"
		})

		It("is noise", func() {
			Expect(result).To(BeTrue())
		})
	})

	When("the line contains a long numeric code", func() {
		BeforeEach(func() {
			line = "Ref no 1234567890123"
		})

		It("is noise", func() {
			Expect(result).To(BeTrue())
		})
	})

	When("the line contains a dashed reference code", func() {
		BeforeEach(func() {
			line = "Doc 12-AB34 counter"
		})

		It("is noise", func() {
			Expect(result).To(BeTrue())
		})
	})

	When("a custom blacklist is configured", func() {
		BeforeEach(func() {
			gate = NewGate("promo")
			line = "PROMO of the day"
		})

		It("matches the custom keyword", func() {
			Expect(result).To(BeTrue())
		})
	})

	When("a custom blacklist omits a default keyword", func() {
		BeforeEach(func() {
			gate = NewGate("promo")
			line = "Cash nuts mix"
		})

		It("no longer rejects it", func() {
			Expect(result).To(BeFalse())
		})
	})
})
