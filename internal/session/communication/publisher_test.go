package communication_test

import (
	"context"
	"errors"
	"time"

	"leverbox/internal/apparatus/audio"
	apparatus "leverbox/internal/apparatus/domain"
	"leverbox/internal/logger"
	"leverbox/internal/session/communication"
	"leverbox/internal/session/communication/internal"
	"leverbox/internal/session/domain"
	mockmqtt "leverbox/test/unit/doubles/infra/mqtt"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = ginkgo.Describe("Publishers", func() {
	var (
		ctrl   *gomock.Controller
		client *mockmqtt.MockClient
	)

	ginkgo.BeforeEach(func() {
		ctrl = gomock.NewController(ginkgo.GinkgoT())
		client = mockmqtt.NewMockClient(ctrl)
	})

	ginkgo.Context("EventPublisher", func() {
		ginkgo.It("should publish the event on the box events topic", func() {
			publisher := communication.NewEventPublisher(client, "76", "master")
			event := domain.TrialEvent{
				ID:          "e1",
				BoxID:       "box-1",
				Role:        apparatus.RoleMaster,
				Kind:        apparatus.EventReward,
				State:       apparatus.StateReward,
				Mode:        apparatus.ModeThree,
				Goal:        6,
				SessionTime: 2500 * time.Millisecond,
			}

			client.EXPECT().Publish("leverbox/76/master/events", gomock.Any()).DoAndReturn(func(_ string, msg any) error {
				payload, ok := msg.(internal.TrialEvent)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(payload.Kind).To(gomega.Equal("reward"))
				gomega.Expect(payload.Mode).To(gomega.Equal("three"))
				gomega.Expect(payload.State).To(gomega.Equal("reward"))
				gomega.Expect(payload.SessionTimeMs).To(gomega.Equal(int64(2500)))
				return nil
			})

			gomega.Expect(publisher.Publish(context.Background(), event)).To(gomega.Succeed())
		})

		ginkgo.It("should wrap broker errors", func() {
			publisher := communication.NewEventPublisher(client, "76", "slave")
			client.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("not connected"))

			err := publisher.Publish(context.Background(), domain.TrialEvent{})
			gomega.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("publishing trial event to mqtt")))
		})
	})

	ginkgo.Context("TonePublisher", func() {
		ginkgo.It("should ask the sound module to play the track", func() {
			publisher := communication.NewTonePublisher(client, "76", "training")
			client.EXPECT().Publish("leverbox/76/training/audio", internal.PlayTrack{Folder: 1, File: 5}).Return(nil)

			gomega.Expect(publisher.PlayTrack(audio.Track{Folder: 1, File: 5})).To(gomega.Succeed())
		})

		ginkgo.It("should keep playing tones through the player when publishing fails", func() {
			publisher := communication.NewTonePublisher(client, "76", "training")
			client.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("timeout")).Times(2)

			player := audio.NewPlayer(audio.DefaultCatalog(1), publisher, true, logger.NewNop())
			player.Play(apparatus.ToneReward)
			player.Play(apparatus.ToneStart)

			gomega.Expect(player.Played()).To(gomega.Equal([]apparatus.Tone{apparatus.ToneReward, apparatus.ToneStart}))
		})
	})
})
