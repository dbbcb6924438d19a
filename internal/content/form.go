package content

// Status is the lifecycle position of a form submission.
type Status int

const (
	Idle Status = iota
	Submitting
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// FormState tracks one form through idle, submitting and a final outcome.
// Error holds the single message shown to the user after a failure.
type FormState struct {
	Status Status
	Error  string
}

// Begin moves the form to submitting and clears any previous error.
func (f *FormState) Begin() {
	f.Status = Submitting
	f.Error = ""
}

// Fail records msg as the one visible error.
func (f *FormState) Fail(msg string) {
	f.Status = Failed
	f.Error = msg
}

// Succeed marks the submission as committed.
func (f *FormState) Succeed() {
	f.Status = Succeeded
	f.Error = ""
}

// Busy reports whether a submission is in flight.
func (f FormState) Busy() bool {
	return f.Status == Submitting
}

// Submit drives f through one submission. write performs validation and the
// single remote write; on success onSuccess runs, on failure describe turns
// the error into the message stored on f. It reports whether the write succeeded.
func Submit(f *FormState, write func() error, onSuccess func(), describe func(error) string) bool {
	f.Begin()
	if err := write(); err != nil {
		f.Fail(describe(err))
		return false
	}
	f.Succeed()
	if onSuccess != nil {
		onSuccess()
	}
	return true
}
