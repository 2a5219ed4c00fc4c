package service

// Recorder receives business events from JokeService.
// internal/metrics provides the Prometheus implementation.
type Recorder interface {
	JokesServed(n int)
	CategoryFallback()
	JokeSubmitted()
	SubmitRejected(reason string)
	StoreSize(n int)
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) JokesServed(int)       {}
func (NopRecorder) CategoryFallback()     {}
func (NopRecorder) JokeSubmitted()        {}
func (NopRecorder) SubmitRejected(string) {}
func (NopRecorder) StoreSize(int)         {}
