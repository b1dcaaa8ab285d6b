package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TotalResolver", func() {
	var (
		resolver *TotalResolver
		lines    []string
		result   string
	)

	BeforeEach(func() {
		resolver = NewTotalResolver()
	})

	JustBeforeEach(func() {
		result = resolver.Resolve(lines)
	})

	When("a keyword line carries the amount", func() {
		BeforeEach(func() {
			lines = []string{"Subtotal 40.00", "Total   45.00", "Cash  50.00"}
		})

		It("anchors on the first keyword line, never the later cash line", func() {
			Expect(result).To(Equal("40.00"))
		})
	})

	When("the anchor line has several amounts", func() {
		BeforeEach(func() {
			lines = []string{"Total 6% 2.70 47.70"}
		})

		It("returns the last amount on the line", func() {
			Expect(result).To(Equal("47.70"))
		})
	})

	When("the amount is on the line after the keyword", func() {
		BeforeEach(func() {
			lines = []string{"GRAND TOTAL", "45.00 12.00"}
		})

		It("returns the first amount on the following line", func() {
			Expect(result).To(Equal("45.00"))
		})
	})

	When("no keyword appears anywhere", func() {
		BeforeEach(func() {
			lines = []string{"Item A 5.00", "Item B 7.50"}
		})

		It("falls back to the last amount in the document", func() {
			Expect(result).To(Equal("7.50"))
		})
	})

	When("a barren anchor precedes a productive one", func() {
		BeforeEach(func() {
			lines = []string{"Total", "no digits here", "Amount Due 19.90"}
		})

		It("keeps scanning past the barren anchor", func() {
			Expect(result).To(Equal("19.90"))
		})
	})

	When("no monetary token exists at all", func() {
		BeforeEach(func() {
			lines = []string{"THANK YOU", "PLEASE COME AGAIN"}
		})

		It("returns the sentinel", func() {
			Expect(result).To(Equal(TotalNotFound))
		})
	})

	When("the input is empty", func() {
		BeforeEach(func() {
			lines = nil
		})

		It("returns the sentinel", func() {
			Expect(result).To(Equal(TotalNotFound))
		})
	})

	When("custom keywords are configured", func() {
		BeforeEach(func() {
			resolver = NewTotalResolver("jumlah")
			lines = []string{"Jumlah 33.30", "Baki 66.70"}
		})

		It("anchors on the custom keyword", func() {
			Expect(result).To(Equal("33.30"))
		})
	})
})
