package uc

import "github.com/fbrnila/go-dms-dav/domain"

// deriveApproval computes the review chain for a version-creating
// mutation from the configured workflow mode. doc is nil when a new
// document is being created.
func (s Interactor) deriveApproval(folder *domain.Folder, doc *domain.Document, caller *domain.User) domain.Approval {
	var ap domain.Approval
	switch s.Config.WorkflowMode {
	case domain.WorkflowTraditional:
		ap.Reviewers = s.repo.MandatoryReviewers(folder, doc, caller)
		ap.Approvers = s.repo.MandatoryApprovers(folder, doc, caller)
	case domain.WorkflowTraditionalApproval:
		ap.Approvers = s.repo.MandatoryApprovers(folder, doc, caller)
	case domain.WorkflowAdvanced:
		if workflows := s.repo.MandatoryWorkflows(caller); len(workflows) > 0 {
			ap.Workflow = workflows[0]
		}
	}
	return ap
}

// newSequence places a new document at the configured end of a folder.
func (s Interactor) newSequence(folder *domain.Folder) float64 {
	min, max := s.repo.SequenceRange(folder)
	if s.Config.DefaultDocPosition == domain.DocPositionStart {
		return min - 1
	}
	return max + 1
}
