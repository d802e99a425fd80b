package post

type Doc struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

type ChildReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateReq struct {
	Type            string     `json:"type"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	CommunityIDs    []uint64   `json:"community_ids"`
	TopicNames      []string   `json:"topic_names"`
	ImageURL        string     `json:"image_url"`
	VideoURL        string     `json:"video_url"`
	ImageURLs       []string   `json:"image_urls"`
	FileURLs        []string   `json:"file_urls"`
	Docs            []Doc      `json:"docs"`
	MemberIDs       []uint64   `json:"member_ids"`
	EventInviteeIDs []uint64   `json:"event_invitee_ids"`
	Announcement    bool       `json:"announcement"`
	Location        string     `json:"location"`
	Children        []ChildReq `json:"requests"`
}
