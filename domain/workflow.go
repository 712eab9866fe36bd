package domain

// WorkflowMode selects how mandatory reviewers and approvers are
// derived for new content versions.
type WorkflowMode string

const (
	// WorkflowTraditional derives explicit reviewer and approver sets.
	WorkflowTraditional WorkflowMode = "traditional"
	// WorkflowTraditionalApproval derives approvers only.
	WorkflowTraditionalApproval WorkflowMode = "traditional_only_approval"
	// WorkflowAdvanced attaches the caller's first mandatory workflow
	// template instead of explicit sets.
	WorkflowAdvanced WorkflowMode = "advanced"
)

// Workflow is a named workflow template.
type Workflow struct {
	ID   int
	Name string
}

// Assignees is a set of users and groups carrying a review or approval
// duty.
type Assignees struct {
	Users  []*User
	Groups []*Group
}

// Approval bundles everything a version-creating mutation needs to set
// up its review chain.
type Approval struct {
	Reviewers Assignees
	Approvers Assignees
	Workflow  *Workflow
}
