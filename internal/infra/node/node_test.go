package node_test

import (
	"leverbox/internal/infra/node"

	"github.com/google/uuid"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Node", func() {
	ginkgo.Context("GetNodeInfo", func() {
		ginkgo.It("should return node information with all fields", func() {
			info := node.GetNodeInfo()

			gomega.Expect(info.ID).ToNot(gomega.BeEmpty())
			gomega.Expect(info.Hostname).ToNot(gomega.BeEmpty())
			gomega.Expect(info.Version).To(gomega.Equal("development"))
			gomega.Expect(info.CommitHash).To(gomega.Equal("unknown"))
		})

		ginkgo.It("should return a valid UUID for node ID", func() {
			_, err := uuid.Parse(node.GetNodeInfo().ID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("should return the same node ID on multiple calls", func() {
			gomega.Expect(node.GetNodeInfo().ID).To(gomega.Equal(node.GetNodeInfo().ID))
		})

		ginkgo.It("should reflect build information set at link time", func() {
			previous := node.Version
			node.Version = "1.2.3"
			defer func() { node.Version = previous }()

			gomega.Expect(node.GetNodeInfo().Version).To(gomega.Equal("1.2.3"))
		})

		ginkgo.It("should shorten the id for client names", func() {
			info := node.GetNodeInfo()
			gomega.Expect(info.ShortID()).To(gomega.Equal(info.ID[:8]))
		})
	})
})
