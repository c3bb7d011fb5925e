package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRoster = `
entity: guard-01
deadline: 10s
subsystems:
  - name: AnimationController
    delay: 1s
  - name: AIBrain
    delay: 2s
    fail: behaviour tree asset missing
  - name: BodySystem
    silent: true
  - name: MoveSystem
    delay: 500ms
    duplicate: true
`

func TestParseRoster(t *testing.T) {
	r, err := ParseRoster([]byte(sampleRoster))
	require.NoError(t, err)

	assert.Equal(t, "guard-01", r.Entity)
	assert.Equal(t, 10*time.Second, r.Deadline)
	require.Len(t, r.Subsystems, 4)
	assert.Equal(t, SubsystemSpec{Name: "AIBrain", Delay: 2 * time.Second, Fail: "behaviour tree asset missing"}, r.Subsystems[1])
	assert.True(t, r.Subsystems[2].Silent)
	assert.True(t, r.Subsystems[3].Duplicate)
}

func TestParseRosterDefaults(t *testing.T) {
	r, err := ParseRoster([]byte("subsystems: []\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultEntity, r.Entity)
	assert.Zero(t, r.Deadline)
	assert.Empty(t, r.Subsystems)
}

func TestParseRosterEmptyDocument(t *testing.T) {
	r, err := ParseRoster(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultEntity, r.Entity)
}

func TestParseRosterErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "entity: x\ncolour: red\n",
		"missing name":   "subsystems:\n  - delay: 1s\n",
		"duplicate name": "subsystems:\n  - name: A\n  - name: A\n",
		"negative delay": "subsystems:\n  - name: A\n    delay: -1s\n",
		"negative limit": "deadline: -2s\n",
		"bad duration":   "deadline: eventually\n",
		"malformed yaml": "subsystems: [\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRoster([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestRosterMarshalRoundTrip(t *testing.T) {
	r, err := ParseRoster([]byte(sampleRoster))
	require.NoError(t, err)

	out, err := r.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(out), "deadline: 10s")

	again, err := ParseRoster(out)
	require.NoError(t, err)
	assert.Equal(t, r, again)
}
