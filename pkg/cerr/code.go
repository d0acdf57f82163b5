package cerr

type Code int

const (
	OK              = Code(0)
	Unknown         = Code(2)
	InvalidArgument = Code(3)
	NotFound        = Code(5)
	Internal        = Code(13)
	Unavailable     = Code(14)
)

func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case InvalidArgument:
		return "invalid_argument"
	case NotFound:
		return "not_found"
	case Internal:
		return "internal"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// ExitCode maps a code onto the process exit status used by the CLI.
// Usage mistakes and unknown names exit 1, an unreadable corpus root exits 2.
func (c Code) ExitCode() int {
	switch c {
	case OK:
		return 0
	case InvalidArgument, NotFound:
		return 1
	case Unavailable:
		return 2
	default:
		return 3
	}
}
