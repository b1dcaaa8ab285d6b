package analyzer

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LocalStorage", func() {
	var (
		tmpDir  string
		storage Storage
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		var err error
		storage, err = NewLocalStorage(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Save and Get", func() {
		It("round-trips file content", func() {
			savedPath, err := storage.Save("receipt.jpg", []byte("image-bytes"))
			Expect(err).NotTo(HaveOccurred())
			Expect(savedPath).To(Equal("receipt.jpg"))
			Expect(filepath.Join(tmpDir, "receipt.jpg")).To(BeAnExistingFile())

			data, err := storage.Get(savedPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(Equal([]byte("image-bytes")))
		})
	})

	Describe("Get", func() {
		When("the file does not exist", func() {
			It("returns an error", func() {
				_, err := storage.Get("missing.jpg")
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Delete", func() {
		It("removes the file", func() {
			_, err := storage.Save("receipt.jpg", []byte("image-bytes"))
			Expect(err).NotTo(HaveOccurred())
			Expect(storage.Delete("receipt.jpg")).To(Succeed())
			Expect(filepath.Join(tmpDir, "receipt.jpg")).NotTo(BeAnExistingFile())
		})
	})
})

var _ = Describe("sanitizeFilename", func() {
	It("strips unsafe characters and keeps the extension", func() {
		Expect(sanitizeFilename("IMG_2024-06-01 (1)!!.jpg")).To(Equal("IMG_2024-06-01 1.jpg"))
	})

	It("truncates very long base names", func() {
		long := ""
		for i := 0; i < 20; i++ {
			long += "abcde"
		}
		sanitized := sanitizeFilename(long + ".png")
		Expect(len(sanitized)).To(Equal(50 + len(".png")))
	})

	It("falls back to a default name", func() {
		Expect(sanitizeFilename("###.jpg")).To(Equal("receipt.jpg"))
	})
})
