package pixmatrix_test

import (
	"bytes"
	"errors"
	"image"
	"math/rand"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/kevin-cantwell/pixmatrix"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

var _ = Describe("Encode", func() {
	It("writes one line per row with single-space separators", func() {
		var buf bytes.Buffer
		err := pixmatrix.Encode(&buf, grayFrom([][]uint8{{0, 255}, {128, 64}}))
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(Equal("0 255\n128 64\n"))
	})

	It("writes a 1x1 image as a single token", func() {
		var buf bytes.Buffer
		Expect(pixmatrix.Encode(&buf, grayFrom([][]uint8{{7}}))).To(Succeed())
		Expect(buf.String()).To(Equal("7\n"))
	})

	It("follows scan order for images not anchored at the origin", func() {
		img := grayFrom([][]uint8{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}})
		sub := img.SubImage(image.Rect(1, 1, 3, 3))

		var buf bytes.Buffer
		Expect(pixmatrix.Encode(&buf, sub)).To(Succeed())
		Expect(buf.String()).To(Equal("5 6\n8 9\n"))
	})

	It("refuses images without pixels", func() {
		var buf bytes.Buffer
		err := pixmatrix.Encode(&buf, image.NewGray(image.Rect(0, 0, 0, 3)))
		Expect(err).To(MatchError(pixmatrix.ErrEmpty))
		Expect(buf.Len()).To(BeZero())
	})

	It("wraps writer failures as ErrWrite", func() {
		err := pixmatrix.Encode(failingWriter{}, grayFrom([][]uint8{{1}}))
		Expect(errors.Is(err, pixmatrix.ErrWrite)).To(BeTrue())
	})
})

var _ = Describe("Decode", func() {
	It("decodes the 2x2 example", func() {
		img, err := pixmatrix.Decode(strings.NewReader("0 255\n128 64\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Bounds()).To(Equal(image.Rect(0, 0, 2, 2)))
		Expect(img.GrayAt(0, 0).Y).To(BeEquivalentTo(0))
		Expect(img.GrayAt(1, 0).Y).To(BeEquivalentTo(255))
		Expect(img.GrayAt(0, 1).Y).To(BeEquivalentTo(128))
		Expect(img.GrayAt(1, 1).Y).To(BeEquivalentTo(64))
	})

	It("decodes a single token as a 1x1 image", func() {
		img, err := pixmatrix.Decode(strings.NewReader("42"))
		Expect(err).NotTo(HaveOccurred())
		Expect(img.Bounds().Size()).To(Equal(image.Pt(1, 1)))
		Expect(img.GrayAt(0, 0).Y).To(BeEquivalentTo(42))
	})

	It("skips blank and whitespace-only lines", func() {
		g, err := pixmatrix.NewDecoder(strings.NewReader("\n1 2\n   \n\t\n3 4\n\n")).Decode()
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Width).To(Equal(2))
		Expect(g.Height).To(Equal(2))
		Expect(g.Pix).To(Equal([]uint8{1, 2, 3, 4}))
	})

	It("accepts tabs, repeated spaces and CRLF line endings", func() {
		g, err := pixmatrix.NewDecoder(strings.NewReader("1\t2   3\r\n4 5 6\r\n")).Decode()
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Pix).To(Equal([]uint8{1, 2, 3, 4, 5, 6}))
	})

	It("treats a lone carriage return as a line break", func() {
		g, err := pixmatrix.NewDecoder(strings.NewReader("1 2\r3 4\r")).Decode()
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Width).To(Equal(2))
		Expect(g.Height).To(Equal(2))
		Expect(g.Pix).To(Equal([]uint8{1, 2, 3, 4}))
	})

	It("counts lines across mixed line endings", func() {
		_, err := pixmatrix.Decode(strings.NewReader("1 2\r\n3 4\r5\n"))
		var shapeErr *pixmatrix.ShapeError
		Expect(errors.As(err, &shapeErr)).To(BeTrue())
		Expect(shapeErr.Line).To(Equal(3))
	})

	DescribeTable("accepts signed values inside the range",
		func(input string, want uint8) {
			g, err := pixmatrix.NewDecoder(strings.NewReader(input)).Decode()
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Pix).To(Equal([]uint8{want}))
		},
		Entry("+5", "+5\n", uint8(5)),
		Entry("-0", "-0\n", uint8(0)),
		Entry("+255", "+255\n", uint8(255)),
	)

	Context("with ragged rows", func() {
		It("fails with a shape error naming the line", func() {
			_, err := pixmatrix.Decode(strings.NewReader("1 2 3\n\n4 5\n"))
			Expect(errors.Is(err, pixmatrix.ErrShape)).To(BeTrue())

			var shapeErr *pixmatrix.ShapeError
			Expect(errors.As(err, &shapeErr)).To(BeTrue())
			Expect(shapeErr.Line).To(Equal(3))
			Expect(shapeErr.Want).To(Equal(3))
			Expect(shapeErr.Got).To(Equal(2))
		})
	})

	Context("with invalid tokens", func() {
		DescribeTable("fails with a parse error",
			func(input string, cause error, column int) {
				_, err := pixmatrix.Decode(strings.NewReader(input))
				Expect(err).To(HaveOccurred())

				var parseErr *pixmatrix.ParseError
				Expect(errors.As(err, &parseErr)).To(BeTrue())
				Expect(parseErr.Line).To(Equal(1))
				Expect(parseErr.Column).To(Equal(column))
				Expect(errors.Is(err, cause)).To(BeTrue())
			},
			Entry("256", "0 256\n", pixmatrix.ErrRange, 2),
			Entry("-1", "-1 0\n", pixmatrix.ErrRange, 1),
			Entry("huge", "0 0 99999999999999999999\n", pixmatrix.ErrRange, 3),
			Entry("huge negative", "-99999999999999999999999\n", pixmatrix.ErrRange, 1),
			Entry("+256", "+256\n", pixmatrix.ErrRange, 1),
			Entry("bare sign", "-\n", pixmatrix.ErrSyntax, 1),
			Entry("abc", "abc\n", pixmatrix.ErrSyntax, 1),
			Entry("decimal point", "1.5\n", pixmatrix.ErrSyntax, 1),
			Entry("hex", "0x10\n", pixmatrix.ErrSyntax, 1),
		)
	})

	It("fails on input without any values", func() {
		_, err := pixmatrix.Decode(strings.NewReader("\n  \n"))
		Expect(err).To(MatchError(pixmatrix.ErrEmpty))
	})
})

var _ = Describe("Round trip", func() {
	It("reproduces random grids of many shapes", func() {
		rnd := rand.New(rand.NewSource(1))
		for _, size := range []image.Point{{1, 1}, {1, 9}, {9, 1}, {3, 5}, {64, 48}} {
			img := randomGray(rnd, size.X, size.Y)

			var buf bytes.Buffer
			Expect(pixmatrix.Encode(&buf, img)).To(Succeed())
			got, err := pixmatrix.Decode(&buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Bounds()).To(Equal(img.Bounds()))
			Expect(got.Pix).To(Equal(img.Pix))
		}
	})

	It("handles rows longer than the default scanner buffer", func() {
		img := image.NewGray(image.Rect(0, 0, 40000, 2))
		for i := range img.Pix {
			img.Pix[i] = 255
		}
		var buf bytes.Buffer
		Expect(pixmatrix.Encode(&buf, img)).To(Succeed())
		got, err := pixmatrix.Decode(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Pix).To(Equal(img.Pix))
	})

	It("handles rows of more than a million pixels", func() {
		img := image.NewGray(image.Rect(0, 0, 1100000, 1))
		for i := range img.Pix {
			img.Pix[i] = 200
		}
		var buf bytes.Buffer
		Expect(pixmatrix.Encode(&buf, img)).To(Succeed())
		Expect(buf.Len()).To(BeNumerically(">", 4<<20))
		got, err := pixmatrix.Decode(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Bounds()).To(Equal(img.Bounds()))
		Expect(got.Pix).To(Equal(img.Pix))
	})
})
