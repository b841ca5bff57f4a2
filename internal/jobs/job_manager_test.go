package jobs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingJob struct {
	name     string
	startErr error
	events   *[]string
}

func (j *recordingJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	*j.events = append(*j.events, "start "+j.name)
	return nil
}

func (j *recordingJob) Stop() {
	*j.events = append(*j.events, "stop "+j.name)
}

func TestJobManager(t *testing.T) {
	t.Run("starts in order and stops in reverse", func(t *testing.T) {
		var events []string
		jm := NewJobManager(
			&recordingJob{name: "a", events: &events},
			&recordingJob{name: "b", events: &events},
		)

		require.NoError(t, jm.StartAll())
		jm.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, events)
	})

	t.Run("failed start stops the jobs already started", func(t *testing.T) {
		var events []string
		startErr := errors.New("bad schedule")
		jm := NewJobManager(
			&recordingJob{name: "a", events: &events},
			&recordingJob{name: "b", startErr: startErr, events: &events},
			&recordingJob{name: "c", events: &events},
		)

		err := jm.StartAll()

		require.ErrorIs(t, err, startErr)
		assert.Equal(t, []string{"start a", "stop a"}, events)
	})

	t.Run("stop without start is a no-op", func(t *testing.T) {
		var events []string
		jm := NewJobManager(&recordingJob{name: "a", events: &events})

		jm.StopAll()

		assert.Empty(t, events)
	})
}
