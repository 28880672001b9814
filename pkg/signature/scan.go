package signature

// Depth tracks how deeply the scanner is nested inside parentheses and braces.
// Both counters are clamped at zero: an unmatched closer leaves the depth
// unchanged and is treated as an ordinary character.
type Depth struct {
	Paren int
	Brace int
}

// Step returns the depth after consuming r.
func (d Depth) Step(r rune) Depth {
	switch r {
	case '(':
		d.Paren++
	case ')':
		if d.Paren > 0 {
			d.Paren--
		}
	case '{':
		d.Brace++
	case '}':
		if d.Brace > 0 {
			d.Brace--
		}
	}
	return d
}

// TopLevel reports whether the scanner is outside any grouping.
func (d Depth) TopLevel() bool {
	return d.Paren == 0 && d.Brace == 0
}

// ScanState is the accumulator threaded through a split. Each step returns a
// new value; nothing is shared between steps except the already-closed Chunks.
type ScanState struct {
	Depth
	Chunk  string
	Chunks []string
}

// Push appends r to the current chunk.
func (s ScanState) Push(r rune) ScanState {
	s.Chunk += string(r)
	return s
}

// Close moves the current chunk into Chunks and starts an empty one.
func (s ScanState) Close() ScanState {
	chunks := make([]string, len(s.Chunks), len(s.Chunks)+1)
	copy(chunks, s.Chunks)
	s.Chunks = append(chunks, s.Chunk)
	s.Chunk = ""
	return s
}

// StepFunc consumes a single rune and returns the next state.
type StepFunc func(ScanState, rune) ScanState

// Fold runs step over every rune of s, left to right, starting from init.
func Fold(s string, init ScanState, step StepFunc) ScanState {
	state := init
	for _, r := range s {
		state = step(state, r)
	}
	return state
}

// DepthAt returns the depth reached after scanning all of s.
func DepthAt(s string) Depth {
	var d Depth
	for _, r := range s {
		d = d.Step(r)
	}
	return d
}
