package auth

import (
	"github.com/spec-kit/mentor-match-service/internal/domain"
	apperrors "github.com/spec-kit/mentor-match-service/pkg/util"
)

// Action identifies an operation subject to authorization.
type Action string

const (
	ActionSearchMentors Action = "search_mentors"
	ActionViewIncoming  Action = "view_incoming_requests"
	ActionViewOutgoing  Action = "view_outgoing_requests"
	ActionCreateRequest Action = "create_match_request"
	ActionAcceptRequest Action = "accept_match_request"
	ActionRejectRequest Action = "reject_match_request"
	ActionCancelRequest Action = "cancel_match_request"
	ActionUpdateProfile Action = "update_own_profile"
)

// Target carries the resource an action operates on. Fields irrelevant to
// the consulted rule are ignored.
type Target struct {
	UserID  string
	Request *domain.MatchRequest
}

type ownership int

const (
	ownsNothing ownership = iota
	ownsTargetUser
	ownsRequestAsMentor
	ownsRequestAsMentee
)

type rule struct {
	role domain.Role // empty means any authenticated role
	owns ownership
}

// Gate decides allow/deny from a declarative per-action rule table.
// Unknown actions are denied.
type Gate struct {
	rules map[Action]rule
}

// NewGate builds the gate with the full action table.
func NewGate() *Gate {
	return &Gate{rules: map[Action]rule{
		ActionSearchMentors: {role: domain.RoleMentee},
		ActionViewIncoming:  {role: domain.RoleMentor, owns: ownsTargetUser},
		ActionViewOutgoing:  {role: domain.RoleMentee, owns: ownsTargetUser},
		ActionCreateRequest: {role: domain.RoleMentee},
		ActionAcceptRequest: {role: domain.RoleMentor, owns: ownsRequestAsMentor},
		ActionRejectRequest: {role: domain.RoleMentor, owns: ownsRequestAsMentor},
		ActionCancelRequest: {role: domain.RoleMentee, owns: ownsRequestAsMentee},
		ActionUpdateProfile: {owns: ownsTargetUser},
	}}
}

// Authorize checks the identity against the rule for the action. Ownership is
// always evaluated against the resolved identity, never a payload field.
func (g *Gate) Authorize(identity domain.Identity, action Action, target Target) error {
	r, ok := g.rules[action]
	if !ok {
		return apperrors.NewForbidden("action not permitted")
	}
	if r.role != "" && identity.Role != r.role {
		return apperrors.NewForbidden("role not permitted for this action")
	}
	switch r.owns {
	case ownsTargetUser:
		if target.UserID != identity.UserID {
			return apperrors.NewForbidden("not the owner of this resource")
		}
	case ownsRequestAsMentor:
		if target.Request == nil || target.Request.MentorID != identity.UserID {
			return apperrors.NewForbidden("not the mentor of this request")
		}
	case ownsRequestAsMentee:
		if target.Request == nil || target.Request.MenteeID != identity.UserID {
			return apperrors.NewForbidden("not the mentee of this request")
		}
	}
	return nil
}
