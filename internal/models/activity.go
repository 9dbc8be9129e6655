// Package models defines the core domain entities for the activity grapher.
// An Activity is one canonical normalized record derived from a raw export
// entry; a Friend tracks a person who was ever an accepted friend.
//
// Terminology:
//   - Action: fine-grained classification (post, comment, was_invited, ...).
//   - ActionType: coarse category used for aggregate grouping.
package models

import "errors"

// Coarse activity categories. Every Activity carries exactly one of these.
const (
	TypePost          = "post"
	TypeComment       = "comment"
	TypeEvent         = "event"
	TypeFriend        = "friend"
	TypeLike          = "like"
	TypeMessage       = "message"
	TypeGroupAdmined  = "group_admined"
	TypeUpdateProfile = "update_profile"
)

// Fine-grained actions. Reactions additionally use the export's own keyword
// (LIKE, LOVE, HAHA, ...) verbatim as the action.
const (
	ActionPost            = "post"
	ActionComment         = "comment"
	ActionLikePage        = "like_page"
	ActionAppPost         = "app_post"
	ActionAccepted        = "accepted"
	ActionAcceptedEst     = "accepted_est"
	ActionRemoved         = "removed"
	ActionMessage         = "message"
	ActionAlbum           = "album"
	ActionAlbumPhoto      = "album_photo"
	ActionLifeEvent       = "life_event"
	ActionWasInvited      = "was_invited"
	ActionDeclined        = "declined"
	ActionInterested      = "interested"
	ActionHosting         = "hosting"
	ActionReceivedRequest = "received_request"
	ActionRejected        = "rejected"
	ActionSentRequest     = "sent_request"
	ActionGroupAdmined    = "group_admined"
	ActionUpdateProfile   = "update_profile"
)

// ValidActionTypes is the closed set of coarse categories.
var ValidActionTypes = map[string]bool{
	TypePost:          true,
	TypeComment:       true,
	TypeEvent:         true,
	TypeFriend:        true,
	TypeLike:          true,
	TypeMessage:       true,
	TypeGroupAdmined:  true,
	TypeUpdateProfile: true,
}

// Activity is one canonical normalized event record. Optional text fields use
// the empty string for "absent" and are stored as NULL at the SQL boundary.
// Timestamp is epoch seconds (the normalizer converts millisecond sources)
// and is nil when unrecoverable.
type Activity struct {
	Action      string
	ActionType  string
	Timestamp   *int64
	Description string
	Person      string
	With        string
	Thread      string
	Title       string
	URL         string
	Group       string
	CameraMake  string
	CameraModel string
}

// Validate checks the Activity invariants: a non-empty action and a known
// action type. Null timestamps and unresolved persons are legal.
func (a *Activity) Validate() error {
	if a.Action == "" {
		return errors.New("action must not be empty")
	}
	if !ValidActionTypes[a.ActionType] {
		return errors.New("unknown action type: " + a.ActionType)
	}
	return nil
}
