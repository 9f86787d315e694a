package httpapi_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	apparatus "leverbox/internal/apparatus/domain"
	"leverbox/internal/infra/async"
	"leverbox/internal/session/httpapi"
	"leverbox/internal/session/httpapi/internal"
	"leverbox/internal/session/usecases"

	"github.com/gorilla/websocket"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("EventStreamController", func() {
	var (
		broker     *async.LocalBroker
		controller *httpapi.EventStreamController
		server     *httptest.Server
		conn       *websocket.Conn
	)

	ginkgo.BeforeEach(func() {
		broker = async.NewLocalBroker()

		var err error
		controller, err = httpapi.NewEventStreamController(broker)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		router := http.NewServeMux()
		controller.AddRoutes(router)
		server = httptest.NewServer(router)

		url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/events"
		conn, _, err = websocket.DefaultDialer.Dial(url, nil)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Eventually(controller.Clients).Should(gomega.Equal(1))
	})

	ginkgo.AfterEach(func() {
		conn.Close()
		controller.Shutdown()
		server.Close()
	})

	ginkgo.It("should push engine events to connected clients in order", func() {
		observer := usecases.NewBrokerObserver(broker)
		observer.Observe(apparatus.Event{Kind: apparatus.EventSynchPull, Role: apparatus.RoleMaster, SynchPullCount: 1})
		observer.Observe(apparatus.Event{Kind: apparatus.EventReward, Role: apparatus.RoleMaster, State: apparatus.StateReward})

		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var first, second internal.LiveEvent
		gomega.Expect(conn.ReadJSON(&first)).To(gomega.Succeed())
		gomega.Expect(conn.ReadJSON(&second)).To(gomega.Succeed())

		gomega.Expect(first.Kind).To(gomega.Equal("synch_pull"))
		gomega.Expect(first.Event.SynchPullCount).To(gomega.Equal(1))
		gomega.Expect(second.Kind).To(gomega.Equal("reward"))
		gomega.Expect(second.Event.State).To(gomega.Equal("reward"))
	})

	ginkgo.It("should forget clients that disconnect", func() {
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()

		gomega.Eventually(controller.Clients).Should(gomega.BeZero())
	})
})
