package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hshore29/FacebookActivityGrapher/internal/logger"
	"github.com/hshore29/FacebookActivityGrapher/internal/models"
)

// EmitFunc receives one normalized activity. Returning an error stops the
// walk immediately. Alias so Walk satisfies the sink's bulk-insert source
// signature directly.
type EmitFunc = func(models.Activity) error

// Walker traverses an export directory tree by fixed category sub-paths and
// yields canonical activities one at a time. The sequence is produced in
// category order, file order, record order and is consumed exactly once.
type Walker struct {
	root string
	self string
}

// NewWalker creates a Walker over the export rooted at root, for the account
// owner named selfName.
func NewWalker(root, selfName string) *Walker {
	return &Walker{root: root, self: selfName}
}

// Walk visits every category and feeds each normalized activity to emit. An
// absent category directory contributes zero records; a missing expected
// file or required key inside a present category is a MissingInputError.
func (w *Walker) Walk(emit EmitFunc) error {
	categories := []struct {
		dir  string
		walk func(dir string, emit EmitFunc) error
	}{
		{"apps_and_websites", w.walkAppPosts},
		{"comments", w.walkComments},
		{"events", w.walkEvents},
		{"friends", w.walkFriends},
		{"groups", w.walkGroups},
		{"likes_and_reactions", w.walkLikesAndReactions},
		{"messages", w.walkMessages},
		{filepath.Join("photos_and_videos", "album"), w.walkAlbums},
		{"posts", w.walkPosts},
		{"profile_information", w.walkProfileUpdates},
	}

	for _, cat := range categories {
		dir := filepath.Join(w.root, cat.dir)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			logger.Debug("Category %s not present in export, skipping", cat.dir)
			continue
		}
		if err := cat.walk(dir, emit); err != nil {
			return err
		}
	}
	return nil
}

// loadJSON decodes one export file into v. A missing file is a
// MissingInputError; a decode failure is fatal as well.
func loadJSON(path string, v any) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return &MissingInputError{Path: path}
	}
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func (w *Walker) walkAppPosts(dir string, emit EmitFunc) error {
	path := filepath.Join(dir, "posts_from_apps_and_websites.json")
	var file struct {
		AppPosts *[]rawPost `json:"app_posts"`
	}
	if err := loadJSON(path, &file); err != nil {
		return err
	}
	if file.AppPosts == nil {
		return &MissingInputError{Path: path, Key: "app_posts"}
	}
	for _, p := range *file.AppPosts {
		if err := emit(appPostActivity(w.self, p)); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) walkComments(dir string, emit EmitFunc) error {
	path := filepath.Join(dir, "comments.json")
	var file struct {
		Comments *[]rawCommentEntry `json:"comments"`
	}
	if err := loadJSON(path, &file); err != nil {
		return err
	}
	if file.Comments == nil {
		return &MissingInputError{Path: path, Key: "comments"}
	}
	for _, row := range *file.Comments {
		if len(row.Data) == 0 || row.Data[0].Comment == nil {
			return &MissingInputError{Path: path, Key: "comments[].data[].comment"}
		}
		if err := emit(commentActivity(*row.Data[0].Comment, row.Title)); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) walkEvents(dir string, emit EmitFunc) error {
	invPath := filepath.Join(dir, "event_invitations.json")
	var invitations struct {
		EventsInvited *[]rawEvent `json:"events_invited"`
	}
	if err := loadJSON(invPath, &invitations); err != nil {
		return err
	}
	if invitations.EventsInvited == nil {
		return &MissingInputError{Path: invPath, Key: "events_invited"}
	}
	for _, e := range *invitations.EventsInvited {
		if err := emit(eventActivity(models.ActionWasInvited, e)); err != nil {
			return err
		}
	}

	respPath := filepath.Join(dir, "your_event_responses.json")
	var responses struct {
		EventResponses *struct {
			Joined     []rawEvent `json:"events_joined"`
			Declined   []rawEvent `json:"events_declined"`
			Interested []rawEvent `json:"events_interested"`
		} `json:"event_responses"`
	}
	if err := loadJSON(respPath, &responses); err != nil {
		return err
	}
	if responses.EventResponses == nil {
		return &MissingInputError{Path: respPath, Key: "event_responses"}
	}
	groups := []struct {
		action string
		events []rawEvent
	}{
		{models.ActionAccepted, responses.EventResponses.Joined},
		{models.ActionDeclined, responses.EventResponses.Declined},
		{models.ActionInterested, responses.EventResponses.Interested},
	}
	for _, g := range groups {
		for _, e := range g.events {
			if err := emit(eventActivity(g.action, e)); err != nil {
				return err
			}
		}
	}

	ownPath := filepath.Join(dir, "your_events.json")
	var own struct {
		YourEvents *[]rawEvent `json:"your_events"`
	}
	if err := loadJSON(ownPath, &own); err != nil {
		return err
	}
	if own.YourEvents == nil {
		return &MissingInputError{Path: ownPath, Key: "your_events"}
	}
	for _, e := range *own.YourEvents {
		if err := emit(eventActivity(models.ActionHosting, e)); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) walkFriends(dir string, emit EmitFunc) error {
	files := []struct {
		file   string
		key    string
		action string
	}{
		{"friends.json", "friends", models.ActionAccepted},
		{"received_friend_requests.json", "received_requests", models.ActionReceivedRequest},
		{"rejected_friend_requests.json", "rejected_requests", models.ActionRejected},
		{"removed_friends.json", "deleted_friends", models.ActionRemoved},
		{"sent_friend_requests.json", "sent_requests", models.ActionSentRequest},
	}
	for _, spec := range files {
		path := filepath.Join(dir, spec.file)
		var file map[string]json.RawMessage
		if err := loadJSON(path, &file); err != nil {
			return err
		}
		raw, ok := file[spec.key]
		if !ok {
			return &MissingInputError{Path: path, Key: spec.key}
		}
		var rows []rawNameStamp
		if err := json.Unmarshal(raw, &rows); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		for _, f := range rows {
			if err := emit(friendActivity(spec.action, f)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Walker) walkGroups(dir string, emit EmitFunc) error {
	path := filepath.Join(dir, "your_groups.json")
	var file struct {
		GroupsAdmined *[]rawNameStamp `json:"groups_admined"`
	}
	if err := loadJSON(path, &file); err != nil {
		return err
	}
	if file.GroupsAdmined == nil {
		return &MissingInputError{Path: path, Key: "groups_admined"}
	}
	for _, g := range *file.GroupsAdmined {
		if err := emit(groupAdminActivity(g)); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) walkLikesAndReactions(dir string, emit EmitFunc) error {
	pagesPath := filepath.Join(dir, "pages.json")
	var pages struct {
		PageLikes *[]rawPageLike `json:"page_likes"`
	}
	if err := loadJSON(pagesPath, &pages); err != nil {
		return err
	}
	if pages.PageLikes == nil {
		return &MissingInputError{Path: pagesPath, Key: "page_likes"}
	}
	for _, l := range *pages.PageLikes {
		a, ok := pageLikeActivity(w.self, l)
		if !ok {
			return &MissingInputError{Path: pagesPath, Key: "page_likes[].data[].name"}
		}
		if err := emit(a); err != nil {
			return err
		}
	}

	reactionsPath := filepath.Join(dir, "posts_and_comments.json")
	var reactions struct {
		Reactions *[]rawReaction `json:"reactions"`
	}
	if err := loadJSON(reactionsPath, &reactions); err != nil {
		return err
	}
	if reactions.Reactions == nil {
		return &MissingInputError{Path: reactionsPath, Key: "reactions"}
	}
	for _, row := range *reactions.Reactions {
		a, ok := reactionActivity(row)
		if !ok {
			return &MissingInputError{Path: reactionsPath, Key: "reactions[].data[].reaction"}
		}
		if err := emit(a); err != nil {
			return err
		}
	}
	return nil
}

// walkMessages visits one sub-directory per conversation thread. The
// stickers_used folder holds sticker metadata, not a conversation, and is
// skipped.
func (w *Walker) walkMessages(dir string, emit EmitFunc) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read messages directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == "stickers_used" {
			continue
		}
		path := filepath.Join(dir, entry.Name(), "message.json")
		var file struct {
			Messages *[]rawMessage `json:"messages"`
		}
		if err := loadJSON(path, &file); err != nil {
			return err
		}
		if file.Messages == nil {
			return &MissingInputError{Path: path, Key: "messages"}
		}
		for _, m := range *file.Messages {
			if err := emit(messageActivity(entry.Name(), m)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Walker) walkAlbums(dir string, emit EmitFunc) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read album directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		var alb rawAlbum
		if err := loadJSON(path, &alb); err != nil {
			return err
		}
		if alb.Photos == nil {
			return &MissingInputError{Path: path, Key: "photos"}
		}
		for _, a := range albumActivities(w.self, alb) {
			if err := emit(a); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Walker) walkPosts(dir string, emit EmitFunc) error {
	files := []struct {
		file string
		key  string
	}{
		{"your_posts.json", "status_updates"},
		{"other_people's_posts_to_your_timeline.json", "wall_posts_sent_to_you"},
	}
	for _, spec := range files {
		path := filepath.Join(dir, spec.file)
		var file map[string]json.RawMessage
		if err := loadJSON(path, &file); err != nil {
			return err
		}
		raw, ok := file[spec.key]
		if !ok {
			return &MissingInputError{Path: path, Key: spec.key}
		}
		var rows []rawPost
		if err := json.Unmarshal(raw, &rows); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		for _, p := range rows {
			if err := emit(postActivity(p)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Walker) walkProfileUpdates(dir string, emit EmitFunc) error {
	path := filepath.Join(dir, "profile_update_history.json")
	var file struct {
		ProfileUpdates *[]rawPost `json:"profile_updates"`
	}
	if err := loadJSON(path, &file); err != nil {
		return err
	}
	if file.ProfileUpdates == nil {
		return &MissingInputError{Path: path, Key: "profile_updates"}
	}
	for _, p := range *file.ProfileUpdates {
		if err := emit(profileUpdateActivity(p)); err != nil {
			return err
		}
	}
	return nil
}
