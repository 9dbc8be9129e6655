// Package export walks a Facebook data export directory and normalizes its
// heterogeneous record shapes into canonical models.Activity records.
//
// The walker (walker.go) owns traversal and file loading; this file holds the
// per-category mapping functions, each a pure transformation from a decoded
// raw shape to one or more activities.
package export

import (
	"encoding/json"

	"github.com/hshore29/FacebookActivityGrapher/internal/models"
)

// appPostActivity maps one posts_from_apps_and_websites entry. App posts are
// always authored by the account owner.
func appPostActivity(self string, p rawPost) models.Activity {
	a := models.Activity{
		Action:     models.ActionAppPost,
		ActionType: models.TypePost,
		Person:     self,
		Timestamp:  p.Timestamp,
		Title:      p.Title,
	}
	applyPostBody(&a, p)
	return a
}

// postActivity maps one status update or wall post. The actor is left unset
// and is resolved from the title at write time.
func postActivity(p rawPost) models.Activity {
	a := models.Activity{
		Action:     models.ActionPost,
		ActionType: models.TypePost,
		Timestamp:  p.Timestamp,
		Title:      p.Title,
	}
	applyPostBody(&a, p)
	return a
}

// applyPostBody applies the shared data/attachments handling of post-shaped
// records. Only the first element of either list carries content.
func applyPostBody(a *models.Activity, p rawPost) {
	if len(p.Data) > 0 {
		applyData(a, p.Data[0])
	}
	if len(p.Attachments) > 0 && len(p.Attachments[0].Data) > 0 {
		applyAttachment(a, p.Attachments[0].Data[0])
	}
}

// applyData inspects a post's data element. A "post" key makes the record a
// post with that body; a "comment" key makes it a comment, where the value is
// either the comment text itself or a structured comment that also names an
// explicit author, overriding the default actor.
func applyData(a *models.Activity, d rawData) {
	if len(d.Post) > 0 {
		a.Action = models.ActionPost
		var body string
		if err := json.Unmarshal(d.Post, &body); err == nil {
			a.Description = body
		}
	}
	if len(d.Comment) > 0 {
		a.Action = models.ActionComment
		var body string
		if err := json.Unmarshal(d.Comment, &body); err == nil {
			a.Description = body
			return
		}
		var c rawComment
		if err := json.Unmarshal(d.Comment, &c); err == nil {
			a.Description = c.Comment
			a.Person = c.Author
		}
	}
}

// applyAttachment applies exactly one of the four attachment shapes:
// external link, shared page, life event, or media.
func applyAttachment(a *models.Activity, att rawAttachment) {
	if att.ExternalContext != nil {
		a.Description = att.ExternalContext.Name
		a.URL = att.ExternalContext.URL
		return
	}
	if att.Name != "" {
		a.Description = att.Name
		return
	}
	if att.LifeEvent != nil {
		a.Action = models.ActionLifeEvent
		a.Description = att.LifeEvent.Title
		return
	}
	if att.Media != nil {
		a.URL = att.Media.URI
		applyCameraMetadata(a, att.Media.MediaMetadata)
	}
}

func applyCameraMetadata(a *models.Activity, meta *rawMediaMetadata) {
	if meta == nil || meta.PhotoMetadata == nil {
		return
	}
	a.CameraMake = meta.PhotoMetadata.CameraMake
	a.CameraModel = meta.PhotoMetadata.CameraModel
}

// commentActivity maps a structured comment. Comments keep the original
// coarse classification of "post" so they group with the content they are
// attached to.
func commentActivity(c rawComment, title string) models.Activity {
	return models.Activity{
		Action:      models.ActionComment,
		ActionType:  models.TypePost,
		Timestamp:   c.Timestamp,
		Person:      c.Author,
		Description: c.Comment,
		Group:       c.Group,
		Title:       title,
	}
}

// eventActivity maps one event invitation or response. The timestamp is the
// event's start time, not the response time; the export does not record the
// latter.
func eventActivity(action string, e rawEvent) models.Activity {
	return models.Activity{
		Action:      action,
		ActionType:  models.TypeEvent,
		Timestamp:   e.StartTimestamp,
		Description: e.Name,
	}
}

// friendActivity maps one friendship state transition.
func friendActivity(action string, f rawNameStamp) models.Activity {
	return models.Activity{
		Action:     action,
		ActionType: models.TypeFriend,
		Timestamp:  f.Timestamp,
		Person:     f.Name,
	}
}

// groupAdminActivity maps one administered group.
func groupAdminActivity(g rawNameStamp) models.Activity {
	return models.Activity{
		Action:      models.ActionGroupAdmined,
		ActionType:  models.TypeGroupAdmined,
		Timestamp:   g.Timestamp,
		Description: g.Name,
	}
}

// pageLikeActivity maps one liked page. The page name lives in the first
// data element; ok is false when it is absent, which the walker treats as a
// malformed file.
func pageLikeActivity(self string, l rawPageLike) (models.Activity, bool) {
	if len(l.Data) == 0 {
		return models.Activity{}, false
	}
	return models.Activity{
		Action:      models.ActionLikePage,
		ActionType:  models.TypeLike,
		Timestamp:   l.Timestamp,
		Title:       l.Title,
		Person:      self,
		Description: l.Data[0].Name,
	}, true
}

// reactionActivity maps one post/comment reaction. The reaction keyword
// (LIKE, LOVE, ...) is carried verbatim as the action.
func reactionActivity(r rawReaction) (models.Activity, bool) {
	if len(r.Data) == 0 || r.Data[0].Reaction == nil {
		return models.Activity{}, false
	}
	react := r.Data[0].Reaction
	return models.Activity{
		Action:     react.Reaction,
		ActionType: models.TypeLike,
		Timestamp:  r.Timestamp,
		Title:      r.Title,
		Person:     react.Actor,
	}, true
}

// messageActivity maps one message of a conversation thread. Message times
// are the export's lone millisecond-unit category and are converted to the
// canonical epoch seconds here, at ingestion.
func messageActivity(thread string, m rawMessage) models.Activity {
	var ts *int64
	if m.TimestampMS != nil {
		secs := *m.TimestampMS / 1000
		ts = &secs
	}
	return models.Activity{
		Action:      models.ActionMessage,
		ActionType:  models.TypeMessage,
		Timestamp:   ts,
		Person:      m.SenderName,
		Thread:      thread,
		Description: m.Content,
	}
}

// albumActivities expands one album file: the album creation itself, its
// comments, one record per photo, and each photo's comments. Photo comments
// written by the account owner are dropped so the owner's own captions do
// not show up as conversation.
func albumActivities(self string, alb rawAlbum) []models.Activity {
	var out []models.Activity

	out = append(out, models.Activity{
		Action:      models.ActionAlbum,
		ActionType:  models.TypePost,
		Person:      self,
		Timestamp:   alb.LastModifiedTimestamp,
		Description: alb.Name,
	})

	for _, c := range alb.Comments {
		out = append(out, commentActivity(c, ""))
	}

	var photos []rawPhoto
	if alb.Photos != nil {
		photos = *alb.Photos
	}
	for _, photo := range photos {
		a := models.Activity{
			Action:      models.ActionAlbumPhoto,
			ActionType:  models.TypePost,
			Person:      self,
			Timestamp:   photoTimestamp(photo),
			URL:         photo.URI,
			Description: alb.Name,
		}
		applyCameraMetadata(&a, photo.MediaMetadata)
		out = append(out, a)

		for _, c := range photo.Comments {
			if c.Author == self {
				continue
			}
			out = append(out, commentActivity(c, ""))
		}
	}
	return out
}

// photoTimestamp picks a photo's own creation time when present, else the
// earliest of its comment timestamps, else nil.
func photoTimestamp(p rawPhoto) *int64 {
	if p.CreationTimestamp != nil {
		return p.CreationTimestamp
	}
	var min *int64
	for _, c := range p.Comments {
		if c.Timestamp == nil {
			continue
		}
		if min == nil || *c.Timestamp < *min {
			v := *c.Timestamp
			min = &v
		}
	}
	return min
}

// profileUpdateActivity maps one profile update. Attachment handling matches
// posts; most updates carry only a title.
func profileUpdateActivity(p rawPost) models.Activity {
	a := models.Activity{
		Action:     models.ActionUpdateProfile,
		ActionType: models.TypeUpdateProfile,
		Timestamp:  p.Timestamp,
		Title:      p.Title,
	}
	if len(p.Attachments) > 0 && len(p.Attachments[0].Data) > 0 {
		applyAttachment(&a, p.Attachments[0].Data[0])
	}
	return a
}
