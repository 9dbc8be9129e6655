package export

import "encoding/json"

// Raw JSON shapes of the export files. Fields the original files may omit are
// pointers or RawMessage so presence can be distinguished from zero values.

// rawPost is one entry of app_posts, status_updates, wall_posts_sent_to_you
// or profile_updates.
type rawPost struct {
	Timestamp   *int64          `json:"timestamp"`
	Title       string          `json:"title"`
	Data        []rawData       `json:"data"`
	Attachments []rawAttachList `json:"attachments"`
}

// rawData is one element of a post's data list. Post and Comment stay raw:
// the mapping keys on their presence, and Comment is either a plain string
// or a structured comment object.
type rawData struct {
	Post    json.RawMessage `json:"post"`
	Comment json.RawMessage `json:"comment"`
}

type rawAttachList struct {
	Data []rawAttachment `json:"data"`
}

// rawAttachment holds the four mutually exclusive attachment shapes.
type rawAttachment struct {
	ExternalContext *rawExternalContext `json:"external_context"`
	Name            string              `json:"name"`
	LifeEvent       *rawLifeEvent       `json:"life_event"`
	Media           *rawMedia           `json:"media"`
}

type rawExternalContext struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type rawLifeEvent struct {
	Title string `json:"title"`
}

type rawMedia struct {
	URI           string            `json:"uri"`
	MediaMetadata *rawMediaMetadata `json:"media_metadata"`
}

type rawMediaMetadata struct {
	PhotoMetadata *rawPhotoMetadata `json:"photo_metadata"`
}

type rawPhotoMetadata struct {
	CameraMake  string `json:"camera_make"`
	CameraModel string `json:"camera_model"`
}

// rawComment is a structured comment: the dedicated comments file, album and
// photo comments, and the object form of a post's data.comment.
type rawComment struct {
	Timestamp *int64 `json:"timestamp"`
	Comment   string `json:"comment"`
	Author    string `json:"author"`
	Group     string `json:"group"`
}

// rawCommentEntry is one entry of the dedicated comments file.
type rawCommentEntry struct {
	Timestamp *int64 `json:"timestamp"`
	Title     string `json:"title"`
	Data      []struct {
		Comment *rawComment `json:"comment"`
	} `json:"data"`
}

// rawEvent is one event invitation or response.
type rawEvent struct {
	Name           string `json:"name"`
	StartTimestamp *int64 `json:"start_timestamp"`
}

// rawNameStamp is the {name, timestamp} pair used by friend transitions,
// administered groups and similar lists.
type rawNameStamp struct {
	Name      string `json:"name"`
	Timestamp *int64 `json:"timestamp"`
}

// rawPageLike is one entry of the page_likes list.
type rawPageLike struct {
	Timestamp *int64 `json:"timestamp"`
	Title     string `json:"title"`
	Data      []struct {
		Name string `json:"name"`
	} `json:"data"`
}

// rawReaction is one entry of the reactions list.
type rawReaction struct {
	Timestamp *int64 `json:"timestamp"`
	Title     string `json:"title"`
	Data      []struct {
		Reaction *struct {
			Reaction string `json:"reaction"`
			Actor    string `json:"actor"`
		} `json:"reaction"`
	} `json:"data"`
}

// rawMessage is one message of a conversation thread. The export stores
// message times in epoch milliseconds, unlike every other category.
type rawMessage struct {
	SenderName  string `json:"sender_name"`
	TimestampMS *int64 `json:"timestamp_ms"`
	Content     string `json:"content"`
}

// rawAlbum is one album file under photos_and_videos/album.
type rawAlbum struct {
	Name                  string       `json:"name"`
	LastModifiedTimestamp *int64       `json:"last_modified_timestamp"`
	Comments              []rawComment `json:"comments"`
	Photos                *[]rawPhoto  `json:"photos"`
}

type rawPhoto struct {
	URI               string            `json:"uri"`
	CreationTimestamp *int64            `json:"creation_timestamp"`
	MediaMetadata     *rawMediaMetadata `json:"media_metadata"`
	Comments          []rawComment      `json:"comments"`
}
