package usecases

import "leverbox/internal/infra/async"

// BoxEventsTopic carries every engine event, in emission order.
const BoxEventsTopic async.BrokerTopicName = "box_events"
