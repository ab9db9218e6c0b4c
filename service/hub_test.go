package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	name     string
	deps     []string
	initErr  error
	startErr error
	log      *[]string
	args     []any
	stops    int
}

func (s *fakeService) Name() string           { return s.name }
func (s *fakeService) Dependencies() []string { return s.deps }

func (s *fakeService) Init(args ...any) error {
	s.args = args
	*s.log = append(*s.log, "init:"+s.name)
	return s.initErr
}

func (s *fakeService) Start() error {
	*s.log = append(*s.log, "start:"+s.name)
	return s.startErr
}

func (s *fakeService) Stop() error {
	s.stops++
	*s.log = append(*s.log, "stop:"+s.name)
	return nil
}

func TestHub_Lifecycle(t *testing.T) {
	var log []string
	h := NewHub(nil)
	require.NoError(t, h.Register(&fakeService{name: "sandbox", deps: []string{"terminal", "haptics"}, log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "terminal", log: &log}))
	haptics := &fakeService{name: "haptics", log: &log}
	require.NoError(t, h.Register(haptics))

	require.NoError(t, h.InitAll(true))

	require.NoError(t, h.StartAll())
	h.StopAll()

	assert.Equal(t, []string{
		"init:haptics", "init:terminal", "init:sandbox",
		"start:haptics", "start:terminal", "start:sandbox",
		"stop:sandbox", "stop:terminal", "stop:haptics",
	}, log)

	assert.Equal(t, []any{true}, haptics.args)
}

func TestHub_RegisterDuplicate(t *testing.T) {
	var log []string
	h := NewHub(nil)
	require.NoError(t, h.Register(&fakeService{name: "haptics", log: &log}))
	assert.Error(t, h.Register(&fakeService{name: "haptics", log: &log}))
}

func TestHub_MissingDependency(t *testing.T) {
	var log []string
	h := NewHub(nil)
	require.NoError(t, h.Register(&fakeService{name: "sandbox", deps: []string{"terminal"}, log: &log}))

	err := h.InitAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unregistered service: terminal")
	assert.Empty(t, log)
}

func TestHub_Cycle(t *testing.T) {
	var log []string
	h := NewHub(nil)
	require.NoError(t, h.Register(&fakeService{name: "a", deps: []string{"b"}, log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log}))

	assert.ErrorIs(t, h.InitAll(), ErrCycle)
}

func TestHub_InitRollback(t *testing.T) {
	var log []string
	boom := errors.New("boom")
	h := NewHub(nil)
	require.NoError(t, h.Register(&fakeService{name: "a", log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "b", deps: []string{"a"}, initErr: boom, log: &log}))

	err := h.InitAll()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"init:a", "init:b", "stop:a"}, log)
}

func TestHub_StartRollback(t *testing.T) {
	var log []string
	boom := errors.New("no device")
	h := NewHub(nil)
	require.NoError(t, h.Register(&fakeService{name: "a", log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "b", deps: []string{"a"}, startErr: boom, log: &log}))
	require.NoError(t, h.InitAll())

	err := h.StartAll()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"init:a", "init:b", "start:a", "start:b", "stop:a"}, log)

	h.StopAll()
	assert.Equal(t, "stop:a", log[len(log)-1], "nothing left to stop after rollback")
	assert.Len(t, log, 5)
}
