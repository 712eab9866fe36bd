package domain

// User is a repository account as handed out by the authentication
// service.
type User struct {
	ID       int
	Login    string
	FullName string
	Admin    bool

	// Quota is the maximum disk usage in bytes, zero for unlimited.
	Quota int64
}

// Group is a named set of users, referenced by attributes and approval
// assignments.
type Group struct {
	ID   int
	Name string
}

// AccessMode is the graded permission of a user on a node.
type AccessMode int

const (
	AccessNone AccessMode = iota
	AccessRead
	AccessReadWrite
	AccessAll
)

func (m AccessMode) String() string {
	switch m {
	case AccessRead:
		return "read"
	case AccessReadWrite:
		return "read-write"
	case AccessAll:
		return "full-control"
	default:
		return "none"
	}
}
