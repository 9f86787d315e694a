package steps

import (
	"time"

	"leverbox/test/functional/driver"
)

const (
	_shortPress = 200 * time.Millisecond
	_longPress  = 800 * time.Millisecond
)

type statusResponse struct {
	BoxID  string `json:"box_id"`
	Engine struct {
		Role       string `json:"role"`
		State      string `json:"state"`
		Mode       string `json:"mode"`
		LockStatus string `json:"lock_status"`
		Goal       int    `json:"goal"`
	} `json:"engine"`
}

func (fc *FeatureContext) aTrainingBox() error {
	session, err := driver.NewSoloSession()
	if err != nil {
		return err
	}
	fc.session = session
	return nil
}

func (fc *FeatureContext) aMasterAndASlaveBox() error {
	session, err := driver.NewPairedSession()
	if err != nil {
		return err
	}
	fc.session = session
	return nil
}

func (fc *FeatureContext) theLinkFromDropsTheNextFrames(name string, frames int) error {
	box, err := fc.box(name)
	if err != nil {
		return err
	}
	fc.require.NotNil(box.Link, "the %s box has no link", name)
	box.Link.FailNext(frames)
	return nil
}

func (fc *FeatureContext) secondsPass(seconds int) error {
	fc.session.Advance(time.Duration(seconds) * time.Second)
	return nil
}

func (fc *FeatureContext) theAnimalPullsTheLever(name string) error {
	box, err := fc.box(name)
	if err != nil {
		return err
	}
	fc.session.Pull(box.Role)
	return nil
}

func (fc *FeatureContext) theExperimenterShortPressesTheRemote(name string) error {
	box, err := fc.box(name)
	if err != nil {
		return err
	}
	fc.session.Press(box.Role, _shortPress)
	return nil
}

func (fc *FeatureContext) theExperimenterLongPressesTheRemote(name string) error {
	box, err := fc.box(name)
	if err != nil {
		return err
	}
	fc.session.Press(box.Role, _longPress)
	return nil
}

func (fc *FeatureContext) theBoxDispensedRewardUnits(name string, units int) error {
	box, err := fc.box(name)
	if err != nil {
		return err
	}
	fc.require.Equal(units, box.Apparatus.DispensedUnits(), "dispensed units of the %s box", name)
	return nil
}

func (fc *FeatureContext) theBoxPlayedTheTone(name, tone string) error {
	box, err := fc.box(name)
	if err != nil {
		return err
	}

	played := make([]string, 0)
	for _, t := range box.Player.Played() {
		played = append(played, t.String())
	}
	fc.require.Contains(played, tone)
	return nil
}

func (fc *FeatureContext) status(name string) (statusResponse, error) {
	var status statusResponse
	box, err := fc.box(name)
	if err != nil {
		return status, err
	}

	response, err := box.API.GetStatus()
	if err != nil {
		return status, err
	}
	err = fc.decodeJSON(response, &status)
	return status, err
}

func (fc *FeatureContext) theBoxStatusReportsState(name, state string) error {
	status, err := fc.status(name)
	if err != nil {
		return err
	}
	fc.require.Equal(state, status.Engine.State)
	return nil
}

func (fc *FeatureContext) theBoxStatusReportsMode(name, mode string) error {
	status, err := fc.status(name)
	if err != nil {
		return err
	}
	fc.require.Equal(mode, status.Engine.Mode)
	return nil
}

func (fc *FeatureContext) theBoxStatusReportsLockStatus(name, lockStatus string) error {
	status, err := fc.status(name)
	if err != nil {
		return err
	}
	fc.require.Equal(lockStatus, status.Engine.LockStatus)
	return nil
}
