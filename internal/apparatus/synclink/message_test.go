package synclink_test

import (
	"bytes"

	"leverbox/internal/apparatus/synclink"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/vmihailenco/msgpack/v5"
)

var _ = Describe("Message codec", func() {
	It("should round trip every field", func() {
		msg := synclink.Message{
			PullDetected:       true,
			LongTimeoutEnabled: true,
			RemoteLock:         true,
			Count:              200,
		}

		payload, err := synclink.Encode(msg)
		Expect(err).NotTo(HaveOccurred())
		Expect(len(payload)).To(BeNumerically("<=", synclink.MaxPayloadSize))

		decoded, err := synclink.Decode(payload)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded).To(Equal(msg))
	})

	It("should reject an array with the wrong number of fields", func() {
		payload, err := msgpack.Marshal([]interface{}{true, false, false, false, false})
		Expect(err).NotTo(HaveOccurred())

		_, err = synclink.Decode(payload)
		Expect(err).To(MatchError(synclink.ErrCorruptMessage))
	})

	It("should reject trailing bytes", func() {
		payload, err := synclink.Encode(synclink.Message{TriggerReward: true})
		Expect(err).NotTo(HaveOccurred())

		_, err = synclink.Decode(append(payload, 0xc0))
		Expect(err).To(MatchError(synclink.ErrCorruptMessage))
	})

	It("should reject oversize and empty payloads", func() {
		_, err := synclink.Decode(bytes.Repeat([]byte{0xc2}, synclink.MaxPayloadSize+1))
		Expect(err).To(MatchError(synclink.ErrCorruptMessage))

		_, err = synclink.Decode(nil)
		Expect(err).To(MatchError(synclink.ErrCorruptMessage))
	})

	It("should reject a payload that is not an array", func() {
		payload, err := msgpack.Marshal("pull")
		Expect(err).NotTo(HaveOccurred())

		_, err = synclink.Decode(payload)
		Expect(err).To(MatchError(synclink.ErrCorruptMessage))
	})
})
