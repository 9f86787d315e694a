package steps

import (
	"fmt"
	"time"
)

const (
	_journalWait  = 2 * time.Second
	_journalRetry = 20 * time.Millisecond
)

type trialEvent struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	Role string `json:"role"`
}

type summaryResponse struct {
	Rewards    int `json:"rewards"`
	SynchPulls int `json:"synch_pulls"`
}

// eventually retries check while the journal worker catches up.
func eventually(check func() error) error {
	deadline := time.Now().Add(_journalWait)
	for {
		err := check()
		if err == nil || time.Now().After(deadline) {
			return err
		}
		time.Sleep(_journalRetry)
	}
}

func (fc *FeatureContext) theJournalListsEvents(name string, count int, kind string) error {
	box, err := fc.box(name)
	if err != nil {
		return err
	}

	return eventually(func() error {
		response, err := box.API.ListTrials(kind)
		if err != nil {
			return err
		}

		var page PaginatedResponse[trialEvent]
		if err := fc.decodeJSON(response, &page); err != nil {
			return err
		}
		if page.Pagination.Total != count {
			return fmt.Errorf("expected %d %q events in the %s journal, got %d", count, kind, name, page.Pagination.Total)
		}
		for _, event := range page.Data {
			if event.Kind != kind {
				return fmt.Errorf("journal filter returned a %q event", event.Kind)
			}
		}
		return nil
	})
}

func (fc *FeatureContext) theSummaryReportsRewards(name string, rewards int) error {
	box, err := fc.box(name)
	if err != nil {
		return err
	}

	return eventually(func() error {
		response, err := box.API.GetSummary()
		if err != nil {
			return err
		}

		var summary summaryResponse
		if err := fc.decodeJSON(response, &summary); err != nil {
			return err
		}
		if summary.Rewards != rewards {
			return fmt.Errorf("expected %d rewards in the %s summary, got %d", rewards, name, summary.Rewards)
		}
		return nil
	})
}
