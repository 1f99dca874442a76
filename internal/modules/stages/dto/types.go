package dto

type ConsentInput struct {
	Agreed bool
}

type DemographicsInput struct {
	Name        string
	Age         int
	Occupation  string
	Familiarity string
}

// TaskInput carries one task attempt. When DurationSet is false the
// duration is taken from the session timer instead.
type TaskInput struct {
	TaskName        string
	Success         string
	Notes           string
	DurationSeconds float64
	DurationSet     bool
}

type ExitInput struct {
	Satisfaction int
	Difficulty   int
	Feedback     string
}

// SubmissionOutput reports where an accepted stage submission landed.
type SubmissionOutput struct {
	Dataset     string
	Seq         int
	SubmittedAt string
}
