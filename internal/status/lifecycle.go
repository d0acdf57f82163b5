package status

// PRDStage is the lifecycle bucket of a PRD.
type PRDStage int

const (
	PRDBacklog PRDStage = iota
	PRDInProgress
	PRDImplemented
)

func (s PRDStage) String() string {
	switch s {
	case PRDInProgress:
		return "in-progress"
	case PRDImplemented:
		return "implemented"
	default:
		return "backlog"
	}
}

// ClassifyPRD maps a PRD status to its bucket. Unset and unrecognized values
// are backlog.
func ClassifyPRD(status string) PRDStage {
	switch normalize(status) {
	case "in-progress", "active":
		return PRDInProgress
	case "implemented", "completed", "done":
		return PRDImplemented
	default:
		return PRDBacklog
	}
}

// EpicStage is the lifecycle bucket of an epic.
type EpicStage int

const (
	EpicPlanning EpicStage = iota
	EpicInProgress
	EpicCompleted
)

func (s EpicStage) String() string {
	switch s {
	case EpicInProgress:
		return "in-progress"
	case EpicCompleted:
		return "completed"
	default:
		return "planning"
	}
}

// ClassifyEpic maps an epic status to its bucket. Unset and unrecognized
// values are planning.
func ClassifyEpic(status string) EpicStage {
	switch normalize(status) {
	case "in-progress", "in_progress", "active", "started":
		return EpicInProgress
	case "completed", "complete", "done", "closed", "finished":
		return EpicCompleted
	default:
		return EpicPlanning
	}
}

// IsActiveEpic reports whether an epic counts as active work.
func IsActiveEpic(status string) bool {
	switch normalize(status) {
	case "in-progress", "active":
		return true
	default:
		return false
	}
}
