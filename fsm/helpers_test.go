package fsm

import (
	"github.com/hupe1980/behaviormesh/core"
)

// recordingState records enter/update/exit calls for assertions.
type recordingState struct {
	BaseState

	Log     []string
	Enters  int
	Updates int
	Exits   int
}

func newRecordingState(name string) *recordingState {
	return &recordingState{BaseState: NewBaseState(name)}
}

func (s *recordingState) OnEnter(ctx *core.ExecutionContext) {
	s.BaseState.OnEnter(ctx)
	s.Enters++
	s.Log = append(s.Log, "enter:"+s.Name())
}

func (s *recordingState) OnUpdate(ctx *core.ExecutionContext) {
	s.Updates++
	s.Log = append(s.Log, "update:"+s.Name())
}

func (s *recordingState) OnExit(ctx *core.ExecutionContext) {
	s.Exits++
	s.Log = append(s.Log, "exit:"+s.Name())
	s.BaseState.OnExit(ctx)
}
