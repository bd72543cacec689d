package shared

// GenericResult captures the outcome of one plugin launch.
type GenericResult struct {
	Args    interface{} `json:"args"`
	Result  interface{} `json:"result"`
	Status  string      `json:"status"`
	Message string      `json:"message"`
}

// GenericLaunchesResult aggregates the outcomes of a whole command run.
type GenericLaunchesResult struct {
	Launches []GenericResult `json:"launches"`
}

// HasFailures reports whether any launch in the run failed.
func (r GenericLaunchesResult) HasFailures() bool {
	for _, launch := range r.Launches {
		if launch.Status == StatusFailed {
			return true
		}
	}
	return false
}

const (
	StatusOK     = "OK"
	StatusFailed = "FAILED"
)

// Versions holds build-time version information.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
}
