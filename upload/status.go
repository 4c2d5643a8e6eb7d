package upload

// Status is the stage an upload is in.
type Status int

const (
	Idle Status = iota
	Uploading
	Processing
	Completed
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Uploading:
		return "uploading"
	case Processing:
		return "processing"
	case Completed:
		return "completed"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// Progress is reported while an upload runs.
type Progress struct {
	Status Status
	Sent   int64
	Total  int64
	Err    error
}

// Percent is the share of bytes sent, between 0 and 1.
func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(float64(p.Sent)/float64(p.Total), 1)
}
