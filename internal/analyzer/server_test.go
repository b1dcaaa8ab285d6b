package analyzer

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/QSYNB/AITecConsumptionAnalyzer/internal/extraction"
)

var _ = Describe("Server", func() {
	var (
		db        *mockDB
		storage   *mockStorage
		engine    *mockEngine
		generator *mockGenerator
		server    *Server

		recorder *httptest.ResponseRecorder
		request  *http.Request
	)

	BeforeEach(func() {
		db = newMockDB()
		storage = newMockStorage()
		engine = &mockEngine{}
		generator = &mockGenerator{}
		service := NewServiceWithDeps(
			db, storage, engine,
			extraction.NewExtractor(nil, nil, 0),
			extraction.NewTotalResolver(),
			nil, generator,
			&fixedIDGenerator{id: "analysis-1"},
			&fixedTimeSource{},
		)
		server = NewServer(service, BasicAuth{})
		recorder = httptest.NewRecorder()
	})

	JustBeforeEach(func() {
		server.Handler().ServeHTTP(recorder, request)
	})

	Describe("POST /api/analyses", func() {
		BeforeEach(func() {
			engine.fullText = "Fresh Milk 2L 12.50\nTOTAL 12.50"
			engine.lines = []string{"Fresh Milk 2L 12.50", "TOTAL 12.50"}
			generator.response = `{"eco_score": 70}`

			var body bytes.Buffer
			writer := multipart.NewWriter(&body)
			part, err := writer.CreateFormFile("file", "receipt.jpg")
			Expect(err).NotTo(HaveOccurred())
			_, err = part.Write([]byte("image-bytes"))
			Expect(err).NotTo(HaveOccurred())
			Expect(writer.Close()).To(Succeed())

			request = httptest.NewRequest("POST", "/api/analyses", &body)
			request.Header.Set("Content-Type", writer.FormDataContentType())
		})

		It("returns 201", func() {
			Expect(recorder.Code).To(Equal(http.StatusCreated))
		})

		It("returns the analysis", func() {
			var analysis Analysis
			Expect(json.Unmarshal(recorder.Body.Bytes(), &analysis)).To(Succeed())
			Expect(analysis.ID).To(Equal("analysis-1"))
			Expect(analysis.Total).To(Equal("12.50"))
			Expect(analysis.Items).To(Equal([]string{"fresh milk l"}))
		})

		When("no file is attached", func() {
			BeforeEach(func() {
				var body bytes.Buffer
				writer := multipart.NewWriter(&body)
				Expect(writer.Close()).To(Succeed())

				request = httptest.NewRequest("POST", "/api/analyses", &body)
				request.Header.Set("Content-Type", writer.FormDataContentType())
			})

			It("returns 400", func() {
				Expect(recorder.Code).To(Equal(http.StatusBadRequest))
			})
		})
	})

	Describe("GET /api/analyses", func() {
		BeforeEach(func() {
			db.analyses["a1"] = &Analysis{ID: "a1", Total: "9.90"}
			request = httptest.NewRequest("GET", "/api/analyses", nil)
		})

		It("returns the stored analyses", func() {
			Expect(recorder.Code).To(Equal(http.StatusOK))

			var analyses []Analysis
			Expect(json.Unmarshal(recorder.Body.Bytes(), &analyses)).To(Succeed())
			Expect(analyses).To(HaveLen(1))
			Expect(analyses[0].ID).To(Equal("a1"))
		})
	})

	Describe("GET /api/analyses/{id}", func() {
		When("the analysis exists", func() {
			BeforeEach(func() {
				db.analyses["a1"] = &Analysis{ID: "a1", Total: "9.90"}
				request = httptest.NewRequest("GET", "/api/analyses/a1", nil)
			})

			It("returns it", func() {
				Expect(recorder.Code).To(Equal(http.StatusOK))
			})
		})

		When("the analysis does not exist", func() {
			BeforeEach(func() {
				request = httptest.NewRequest("GET", "/api/analyses/missing", nil)
			})

			It("returns 404", func() {
				Expect(recorder.Code).To(Equal(http.StatusNotFound))
			})
		})
	})

	Describe("GET /api/analyses/{id}/image", func() {
		BeforeEach(func() {
			db.analyses["a1"] = &Analysis{ID: "a1", Filename: "a1_receipt.jpg", ContentType: "image/jpeg"}
			storage.files["a1_receipt.jpg"] = []byte("jpeg-bytes")
			request = httptest.NewRequest("GET", "/api/analyses/a1/image", nil)
		})

		It("serves the image with its content type", func() {
			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Header().Get("Content-Type")).To(Equal("image/jpeg"))
			Expect(recorder.Body.Bytes()).To(Equal([]byte("jpeg-bytes")))
		})
	})

	Describe("DELETE /api/analyses/{id}", func() {
		BeforeEach(func() {
			db.analyses["a1"] = &Analysis{ID: "a1", Filename: "a1_receipt.jpg"}
			request = httptest.NewRequest("DELETE", "/api/analyses/a1", nil)
		})

		It("returns 204 and removes the analysis", func() {
			Expect(recorder.Code).To(Equal(http.StatusNoContent))
			Expect(db.analyses).NotTo(HaveKey("a1"))
		})
	})

	Describe("basic auth", func() {
		BeforeEach(func() {
			service := NewServiceWithDeps(
				db, storage, engine,
				extraction.NewExtractor(nil, nil, 0),
				extraction.NewTotalResolver(),
				nil, nil,
				&fixedIDGenerator{id: "analysis-1"},
				&fixedTimeSource{},
			)
			server = NewServer(service, BasicAuth{Username: "user", Password: "pass"})
			request = httptest.NewRequest("GET", "/api/analyses", nil)
		})

		When("credentials are missing", func() {
			It("returns 401", func() {
				Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
			})
		})

		When("credentials are valid", func() {
			BeforeEach(func() {
				request.SetBasicAuth("user", "pass")
			})

			It("allows the request", func() {
				Expect(recorder.Code).To(Equal(http.StatusOK))
			})
		})
	})
})
