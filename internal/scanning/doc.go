// Package scanning turns a continuous stream of recognition frames into at
// most one trusted book identifier per scan session.
//
// A Session wraps the capture stream with a small state machine
// (Idle -> Active -> Locked) that throttles frame processing and guarantees
// a single emission no matter how many concurrent frame callbacks race to
// deliver a result. Candidate selection itself is pure: each frame's raw
// detections are classified into identifier tiers and the best candidate is
// picked by strict bucket priority, with detection order breaking ties.
package scanning
