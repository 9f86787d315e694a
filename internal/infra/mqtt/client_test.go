package mqtt_test

import (
	"leverbox/internal/infra/mqtt"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("MQTT Client", func() {
	ginkgo.Context("SimpleClientOpts", func() {
		ginkgo.When("the broker cannot be reached", func() {
			ginkgo.It("should give up after the configured tries", func() {
				_, err := mqtt.NewSimpleClient(mqtt.SimpleClientOpts{
					Broker:         "tcp://127.0.0.1:1",
					ClientID:       "leverbox-test",
					ConnectRetries: 2,
					RetryDelay:     1,
				})

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("after 2 tries"))
			})
		})
	})

	ginkgo.Context("MessageTypeAlias", func() {
		ginkgo.When("checking message type alias", func() {
			ginkgo.It("should accept paho messages", func() {
				var _ mqtt.Message = (paho.Message)(nil)
			})
		})
	})
})
