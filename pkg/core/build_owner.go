package core

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/go-loom/loom/pkg/errors"
	"github.com/go-loom/loom/pkg/layout"
)

// BuildFunc declares the application's widget tree for one frame.
type BuildFunc func(ui *Ui)

// BuildOwner drives the build phase: it owns the root element (whose render
// object is the render view), re-runs the application's build callback when
// state changes, and hands the resulting render tree to the pipeline owner.
type BuildOwner struct {
	pipeline *layout.PipelineOwner
	view     *layout.RenderView
	root     *Element
	build    BuildFunc

	needsBuild     bool
	frameRequested bool

	// OnNeedsFrame is invoked when a rebuild makes a new frame necessary.
	OnNeedsFrame func()

	mu         sync.Mutex
	dispatched []func()
}

// NewBuildOwner creates a build owner rooted at the given render view.
func NewBuildOwner(pipeline *layout.PipelineOwner, view *layout.RenderView) *BuildOwner {
	owner := &BuildOwner{pipeline: pipeline, view: view}
	owner.root = &Element{renderObject: view, owner: owner}
	return owner
}

// Pipeline returns the pipeline owner builds feed into.
func (o *BuildOwner) Pipeline() *layout.PipelineOwner { return o.pipeline }

// RootElement returns the synthetic element hosting the render view.
func (o *BuildOwner) RootElement() *Element { return o.root }

// SetRoot installs the application's build callback and schedules the
// first build.
func (o *BuildOwner) SetRoot(build BuildFunc) {
	o.build = build
	o.ScheduleBuild()
}

// ScheduleBuild marks the tree as needing a rebuild on the next frame.
func (o *BuildOwner) ScheduleBuild() {
	o.needsBuild = true
	o.requestFrame()
}

// NeedsBuild reports whether a rebuild is pending.
func (o *BuildOwner) NeedsBuild() bool { return o.needsBuild }

func (o *BuildOwner) requestFrame() {
	if o.frameRequested {
		return
	}
	o.frameRequested = true
	if o.OnNeedsFrame != nil {
		o.OnNeedsFrame()
	}
}

// Dispatch marshals work from any goroutine onto the frame thread: the
// callback runs at the start of the next build flush. This is the only
// supported way to touch the tree from outside the frame loop.
func (o *BuildOwner) Dispatch(callback func()) {
	o.mu.Lock()
	o.dispatched = append(o.dispatched, callback)
	o.mu.Unlock()
	o.ScheduleBuild()
}

func (o *BuildOwner) runDispatched() {
	o.mu.Lock()
	pending := o.dispatched
	o.dispatched = nil
	o.mu.Unlock()
	for _, callback := range pending {
		callback()
	}
}

// FlushBuild re-runs the build callback if anything scheduled a rebuild.
//
// A panic in the callback is reported through the errors package and leaves
// the previous tree standing for this frame; everything declared before the
// panic has already been reconciled.
func (o *BuildOwner) FlushBuild() {
	o.runDispatched()
	o.frameRequested = false
	if !o.needsBuild || o.build == nil {
		return
	}
	o.needsBuild = false

	ui := &Ui{owner: o, element: o.root, previous: o.root.children}
	o.root.children = nil
	if err := o.safeBuild(ui); err != nil {
		errors.Report(err)
		ui.abandon()
		return
	}
	ui.finish()
}

func (o *BuildOwner) safeBuild(ui *Ui) (buildErr *errors.Error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			buildErr = &errors.Error{
				Op:         "core.FlushBuild",
				Kind:       errors.KindBuild,
				Err:        fmt.Errorf("panic: %v", recovered),
				StackTrace: string(debug.Stack()),
			}
		}
	}()
	o.build(ui)
	return nil
}
