package necs

import (
	"github.com/rotisserie/eris"
)

// Lifecycle state flags. Starting, Processing and Ending report true only
// while their phase runs; Started reports true from a completed Start until
// End. Dispatch is single-threaded so they are plain reads.

func (r *Registry) Started() bool    { return r.started }
func (r *Registry) Starting() bool   { return r.starting }
func (r *Registry) Processing() bool { return r.processing }
func (r *Registry) Ending() bool     { return r.ending }

// Start runs the start notificables, then each Start system once with a
// single-frame drain after each, and marks the registry started. Starting
// an already-started registry is a no-op.
func (r *Registry) Start() error {
	if r.started {
		return nil
	}
	r.starting = true
	err := r.runStartPhase()
	r.starting = false
	if err != nil {
		return err
	}
	r.started = true
	r.logger.Debug().Msg("registry started")
	if r.restartPending {
		r.restartPending = false
		if err := r.End(); err != nil {
			return err
		}
		return r.Start()
	}
	return nil
}

func (r *Registry) runStartPhase() error {
	for _, n := range append([]Notificable(nil), r.notificables...) {
		n.OnRegistryStart()
	}
	for _, entry := range r.systems {
		s, ok := entry.sys.(StartSystem)
		if !ok {
			continue
		}
		if err := r.runHook(entry, s.Start); err != nil {
			return err
		}
		if err := r.drainSingleFrame(); err != nil {
			return err
		}
	}
	return nil
}

// Process drains the pre-process queue, runs each Process system, then
// drains the post-process queue, with a single-frame drain after every
// dispatched system. Only valid while started.
func (r *Registry) Process() error {
	if !r.started {
		return eris.Wrap(ErrNotStarted, "cannot process")
	}
	r.processing = true
	err := r.runProcessPhase()
	r.processing = false
	if err != nil {
		return err
	}
	if r.restartPending {
		r.restartPending = false
		if err := r.End(); err != nil {
			return err
		}
		return r.Start()
	}
	return nil
}

func (r *Registry) runProcessPhase() error {
	if err := r.drainQueue(&r.preProcess, func(s System) func(*Cursor) error {
		return s.(PreProcessSystem).PreProcess
	}); err != nil {
		return err
	}
	for _, entry := range r.systems {
		s, ok := entry.sys.(ProcessSystem)
		if !ok {
			continue
		}
		if err := r.runHook(entry, s.Process); err != nil {
			return err
		}
		if err := r.drainSingleFrame(); err != nil {
			return err
		}
	}
	return r.drainQueue(&r.postProcess, func(s System) func(*Cursor) error {
		return s.(PostProcessSystem).PostProcess
	})
}

// End runs each End system once with single-frame drains, then the end
// notificables, and marks the registry stopped.
func (r *Registry) End() error {
	if !r.started {
		return eris.Wrap(ErrNotStarted, "cannot end")
	}
	r.ending = true
	err := r.runEndPhase()
	r.ending = false
	if err != nil {
		return err
	}
	r.started = false
	r.logger.Debug().Msg("registry ended")
	if r.restartPending {
		r.restartPending = false
		return r.Start()
	}
	return nil
}

func (r *Registry) runEndPhase() error {
	for _, entry := range r.systems {
		s, ok := entry.sys.(EndSystem)
		if !ok {
			continue
		}
		if err := r.runHook(entry, s.End); err != nil {
			return err
		}
		if err := r.drainSingleFrame(); err != nil {
			return err
		}
	}
	for _, n := range append([]Notificable(nil), r.notificables...) {
		n.OnRegistryEnd()
	}
	return nil
}

// Restart cycles End then Start. When called from inside a phase the
// restart is deferred: the active phase honors it at its natural exit
// (End followed by Start, or just Start when already ending). A registry
// that never started ignores the call.
func (r *Registry) Restart() error {
	if !r.started && !r.starting {
		return nil
	}
	if r.starting || r.processing || r.ending {
		r.restartPending = true
		return nil
	}
	if err := r.End(); err != nil {
		return err
	}
	return r.Start()
}

// runHook dispatches one hook of one system: build its view, stream every
// cursor through the hook. Systems without a descriptor run once with a
// nil cursor.
func (r *Registry) runHook(entry *systemEntry, hook func(*Cursor) error) error {
	entry.logger.Trace().Msg("dispatching system")
	desc := entry.sys.Descriptor()
	if desc == nil {
		return hook(nil)
	}
	view, err := desc.Build(r)
	if err != nil {
		return err
	}
	return view.eachCursorErr(hook)
}

// drainSingleFrame runs queued single-frame systems FIFO until the queue
// is empty, including systems enqueued during the drain itself.
func (r *Registry) drainSingleFrame() error {
	return r.drainQueue(&r.singleFrame, func(s System) func(*Cursor) error {
		return s.(SingleFrameSystem).SingleFrame
	})
}

func (r *Registry) drainQueue(queue *[]*systemEntry, hook func(System) func(*Cursor) error) error {
	for len(*queue) > 0 {
		entry := (*queue)[0]
		*queue = (*queue)[1:]
		if err := r.runHook(entry, hook(entry.sys)); err != nil {
			return err
		}
		if queue != &r.singleFrame {
			if err := r.drainSingleFrame(); err != nil {
				return err
			}
		}
	}
	return nil
}
