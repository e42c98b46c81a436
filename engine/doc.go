// Package engine animates a 2D particle graph: points drift and bounce
// inside the canvas, every frame the pairs closer than a threshold are
// joined by edges, and both are drawn with pulsing, activity-driven
// opacity.
//
// The engine is host-agnostic. A host supplies a [Canvas] to draw on, a
// [Scheduler] that calls back once per repaint and optionally an
// [EventSource] for resize and pointer events:
//
//	e, err := engine.New(canvas, engine.NeuralPreset(),
//	    engine.WithScheduler(sched),
//	    engine.WithEvents(bus))
//	if err != nil {
//	    return err
//	}
//	if err := e.Start(); err != nil {
//	    return err
//	}
//	defer e.Stop()
//
// The pure pieces, [Generate], [Advance] and [BuildEdges], can be used
// without an Engine.
package engine
