package transcription

// Candidate is a locally selected audio file waiting to be processed.
// Candidates are ephemeral: created on selection, discarded on removal or
// once a run has started.
type Candidate struct {
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

// Batch is an ordered set of candidates, deduplicated by (name, size).
// It is not safe for concurrent use; callers drive it from a single
// goroutine and hand Run an immutable snapshot.
type Batch struct {
	candidates []Candidate
}

// NewBatch creates an empty batch
func NewBatch() *Batch {
	return &Batch{}
}

// Add validates the given files against the policy and appends the accepted
// ones, in input order, skipping any (name, size) pair already present.
// It returns the user-facing rejection messages; surfacing them is the
// caller's job.
func (b *Batch) Add(policy Policy, files ...Candidate) []string {
	var rejections []string

	for _, file := range files {
		if err := policy.Validate(file.Name, file.Size, file.ContentType); err != nil {
			rejections = append(rejections, err.Error())
			continue
		}

		if b.contains(file.Name, file.Size) {
			// Duplicate selections are silently dropped
			continue
		}

		b.candidates = append(b.candidates, file)
	}

	return rejections
}

// Remove deletes the candidate at the given position, preserving the order
// of the remaining entries. The batch is left untouched on a bad index.
func (b *Batch) Remove(index int) error {
	if index < 0 || index >= len(b.candidates) {
		return ErrIndexOutOfRange
	}

	b.candidates = append(b.candidates[:index], b.candidates[index+1:]...)
	return nil
}

// Len returns the number of candidates in the batch
func (b *Batch) Len() int {
	return len(b.candidates)
}

// Snapshot returns a copy of the current candidates. Run operates on a
// snapshot so that curation during an in-flight run cannot race with it.
func (b *Batch) Snapshot() []Candidate {
	out := make([]Candidate, len(b.candidates))
	copy(out, b.candidates)
	return out
}

// Clear drops all candidates
func (b *Batch) Clear() {
	b.candidates = nil
}

func (b *Batch) contains(name string, size int64) bool {
	for _, c := range b.candidates {
		if c.Name == name && c.Size == size {
			return true
		}
	}
	return false
}
