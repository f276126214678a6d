package archive

import (
	"bufio"
	"bytes"
	"fmt"
	"io/ioutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/tinyzimmer/usersu/pkg/types"
)

var _ = Describe("Sniffing compression formats", func() {
	var (
		data []byte
		rdr  *bufio.Reader
		kind types.CompressionKind
		err  error
	)

	JustBeforeEach(func() {
		rdr = bufio.NewReader(bytes.NewReader(data))
		kind, err = Sniff(rdr)
	})

	// the stream must read back in full after sniffing, whatever the result
	AfterEach(func() {
		rest, err := ioutil.ReadAll(rdr)
		Expect(err).ToNot(HaveOccurred())
		Expect(rest).To(Equal(data))
	})

	sniffs := func(expected types.CompressionKind, prefixes ...[]byte) {
		for _, prefix := range prefixes {
			prefix := prefix
			Context(fmt.Sprintf("With the prefix % x", prefix), func() {
				BeforeEach(func() { data = prefix })
				It(fmt.Sprintf("Should classify the stream as %s", expected), func() {
					Expect(err).ToNot(HaveOccurred())
					Expect(kind).To(Equal(expected))
				})
			})
		}
	}

	Context("When the stream starts with the gzip magic", func() {
		sniffs(types.CompressionGzip,
			[]byte{0x1F, 0x8B},
			[]byte{0x1F, 0x8B, 0x08},
			[]byte{0x1F, 0x8B, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00},
		)
	})

	Context("When the stream starts with the xz magic", func() {
		sniffs(types.CompressionXz,
			[]byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00},
			[]byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00, 0x00, 0x04, 0xE6},
		)
	})

	Context("When the stream starts with anything else", func() {
		sniffs(types.CompressionUnknown,
			[]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
			[]byte("hello!"),
			[]byte{0x1F, 0x8C, 0x08, 0x00, 0x00, 0x00},
			[]byte{0x8B, 0x1F, 0x00, 0x00, 0x00, 0x00},
			[]byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x01},
			[]byte{0xFD, 0x37, 0x7A},
			[]byte{0x1F},
			[]byte{},
		)
	})

	Context("When the stream is a real gzip tarball", func() {
		BeforeEach(func() {
			data, err = MockTarball(types.CompressionGzip, MockEntry{Name: "bin/usud", Body: "binary"})
			Expect(err).ToNot(HaveOccurred())
		})
		It("Should classify the stream as gzip", func() {
			Expect(err).ToNot(HaveOccurred())
			Expect(kind).To(Equal(types.CompressionGzip))
		})
	})
})
