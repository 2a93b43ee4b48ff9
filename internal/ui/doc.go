// Package ui contains the Bubble Tea program that renders the log dashboard.
// Model owns message orchestration; helpers in this package own navigation,
// the jump prompt, line delivery, and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with every message, one at a time. Each
//     tea.Msg type is routed through a typed handler registry to a focused
//     function (key presses, mouse events, resizes, ticks, watcher lines).
//   - Watcher lines arrive through waitForLine, which receives a single event
//     and is re-armed by the line handler. Only one line is ever in flight, so
//     key presses queued behind a busy file are never starved.
//   - A tea.Tick command re-arms itself on every tick; ticks only expire
//     transient status messages, since View runs after every message anyway.
//
// State ownership:
//   - Per-file content lives in monitor.Registry; the dispatcher appends
//     incoming lines to the matching monitor's content.Buffer.
//   - focus.Navigator decides which monitor has focus and flips the monitor
//     flags (or the debug flag on dash.State) through focusTarget.
//   - dash.State holds the layout mode; dash.Split turns it into panel
//     rectangles for both rendering and mouse hit-testing.
//
// Shutdown:
//   - Quit keys return tea.Quit. A watcher error is fatal: the handler records
//     it (see Model.Err) and quits, and Bubble Tea restores the terminal
//     before Program.Run returns. The end of the line stream is not fatal; the
//     dashboard keeps serving input.
package ui
