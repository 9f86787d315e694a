package steps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"leverbox/internal/apparatus/domain"
	"leverbox/test/functional/driver"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/require"
)

// PaginatedResponse mirrors the paginated list envelope of the box API.
type PaginatedResponse[T any] struct {
	Data       []T `json:"data"`
	Pagination struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	} `json:"pagination"`
}

type FeatureContext struct {
	session *driver.Session
	require *require.Assertions
	t       godog.TestingT
}

func NewFeatureContext() *FeatureContext {
	return &FeatureContext{}
}

func (fc *FeatureContext) RegisterSteps(ctx *godog.ScenarioContext) {
	// Session steps
	ctx.Given(`^a training box$`, fc.aTrainingBox)
	ctx.Given(`^a master and a slave box$`, fc.aMasterAndASlaveBox)
	ctx.Given(`^the link from the (\w+) drops the next (\d+) frames$`, fc.theLinkFromDropsTheNextFrames)
	ctx.Step(`^(\d+) seconds? pass(?:es)?$`, fc.secondsPass)

	// Box steps
	ctx.When(`^the (\w+) animal pulls the lever$`, fc.theAnimalPullsTheLever)
	ctx.When(`^the experimenter short presses the (\w+) remote$`, fc.theExperimenterShortPressesTheRemote)
	ctx.When(`^the experimenter long presses the (\w+) remote$`, fc.theExperimenterLongPressesTheRemote)
	ctx.Then(`^the (\w+) box dispensed (\d+) reward units?$`, fc.theBoxDispensedRewardUnits)
	ctx.Then(`^the (\w+) box played the "([^"]*)" tone$`, fc.theBoxPlayedTheTone)
	ctx.Then(`^the (\w+) box status reports state "([^"]*)"$`, fc.theBoxStatusReportsState)
	ctx.Then(`^the (\w+) box status reports mode "([^"]*)"$`, fc.theBoxStatusReportsMode)
	ctx.Then(`^the (\w+) box status reports lock status "([^"]*)"$`, fc.theBoxStatusReportsLockStatus)

	// Journal steps
	ctx.Then(`^the (\w+) journal lists (\d+) "([^"]*)" events?$`, fc.theJournalListsEvents)
	ctx.Then(`^the (\w+) summary reports (\d+) rewards?$`, fc.theSummaryReportsRewards)

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		fc.t = godog.T(ctx)
		fc.require = require.New(fc.t)

		fc.reset()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		fc.reset()
		return ctx, err
	})
}

func (fc *FeatureContext) reset() {
	if fc.session != nil {
		fc.session.Close()
	}
	fc.session = nil
}

func (fc *FeatureContext) box(name string) (*driver.Box, error) {
	if fc.session == nil {
		return nil, fmt.Errorf("no session started")
	}
	role, err := domain.ParseRole(name)
	if err != nil {
		return nil, err
	}
	box := fc.session.Box(role)
	if box == nil {
		return nil, fmt.Errorf("no %s box in this session", name)
	}
	return box, nil
}

func (fc *FeatureContext) decodeBody(body io.ReadCloser, target any) error {
	defer body.Close()
	return json.NewDecoder(body).Decode(target)
}

func (fc *FeatureContext) decodeJSON(response *http.Response, target any) error {
	if response.StatusCode != http.StatusOK {
		response.Body.Close()
		return fmt.Errorf("unexpected status code %d", response.StatusCode)
	}
	return fc.decodeBody(response.Body, target)
}
