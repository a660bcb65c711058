package export

// Phase names one stage of an export job.
type Phase string

const (
	PhasePreparing Phase = "preparing"
	PhaseRendering Phase = "rendering"
	PhaseEncoding  Phase = "encoding"
	PhaseComplete  Phase = "complete"
	PhaseError     Phase = "error"
)

// Progress is one export status update. Percent is 0..100 across the
// whole job: rendering covers 0-90, finalization 90-100.
type Progress struct {
	JobID        string
	Phase        Phase
	Percent      float64
	CurrentScene int
	TotalScenes  int
	Message      string
}

// ProgressFunc receives status updates. It is called from the export
// goroutine; implementations should return quickly.
type ProgressFunc func(Progress)
