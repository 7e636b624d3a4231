package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/forgeburn/tagengine/dice"
	"github.com/forgeburn/tagengine/dice/mock_dice"
)

// generatedRoller adapts *mock_dice.MockRoller to dice.Roller so callers
// that type-assert on the interface (rather than the concrete generated
// type) exercise the same code path as dice.MockRoller.
func generatedRoller(r *mock_dice.MockRoller) dice.Roller { return r }

func TestGeneratedMockRoller_ScriptedExpectations(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock_dice.NewMockRoller(ctrl)

	m.EXPECT().Float64().Return(0.05).Times(1)
	m.EXPECT().Float64().Return(0.95).Times(1)

	var r dice.Roller = generatedRoller(m)
	assert.Equal(t, 0.05, r.Float64())
	assert.Equal(t, 0.95, r.Float64())
}
