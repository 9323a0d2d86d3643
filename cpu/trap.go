package cpu

// loopWindowSize is the number of recent PC values a LoopDetector keeps.
const loopWindowSize = 16

// LoopDetector watches a stream of PC values and reports when execution
// has settled into a tight repeating cycle — the program counter
// visiting the same short sequence of addresses over and over, as
// happens when a program spins on a halt loop after finishing its
// work. The debugger's continue command uses this to stop and report
// control back to the operator instead of free-running forever.
type LoopDetector struct {
	history [loopWindowSize]uint16
	index   int
}

// Observe records the current PC.
func (ld *LoopDetector) Observe(pc uint16) {
	ld.history[ld.index] = pc
	ld.index = (ld.index + 1) % loopWindowSize
}

// Looping reports whether the first and second halves of the recorded
// window are identical, meaning PC has repeated the same cycle twice.
func (ld *LoopDetector) Looping() bool {
	half := loopWindowSize / 2
	for i := 0; i < half; i++ {
		if ld.history[i] != ld.history[i+half] {
			return false
		}
	}
	return true
}
