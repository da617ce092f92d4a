// Package wizard implements the step registry and step navigator behind the
// schedule wizard.
//
// A Registry is the ordered list of steps. A Navigator tracks one session
// over it: the current step, the visited and completed steps, and whether a
// step may be entered. Forward jumps are gated by an unbroken prefix of
// completed steps; moving back is always allowed.
package wizard
