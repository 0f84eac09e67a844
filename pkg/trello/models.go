package trello

import "time"

// Board represents a Trello board.
type Board struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Desc             string            `json:"desc"`
	Closed           bool              `json:"closed"`
	IDOrganization   string            `json:"idOrganization"`
	Pinned           bool              `json:"pinned"`
	URL              string            `json:"url"`
	ShortURL         string            `json:"shortUrl"`
	ShortLink        string            `json:"shortLink"`
	Starred          bool              `json:"starred"`
	DateLastActivity *time.Time        `json:"dateLastActivity,omitempty"`
	Prefs            BoardPrefs        `json:"prefs"`
	LabelNames       map[string]string `json:"labelNames,omitempty"`
}

// BoardPrefs is the subset of board preferences the client models.
type BoardPrefs struct {
	PermissionLevel string `json:"permissionLevel"`
	Voting          string `json:"voting"`
	Comments        string `json:"comments"`
	Invitations     string `json:"invitations"`
	SelfJoin        bool   `json:"selfJoin"`
	CardCovers      bool   `json:"cardCovers"`
	Background      string `json:"background"`
}

// List represents a list on a board.
type List struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Closed  bool    `json:"closed"`
	IDBoard string  `json:"idBoard"`
	Pos     float64 `json:"pos"`
}

// Card represents a card on a list.
type Card struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Desc             string     `json:"desc"`
	Closed           bool       `json:"closed"`
	IDBoard          string     `json:"idBoard"`
	IDList           string     `json:"idList"`
	IDMembers        []string   `json:"idMembers,omitempty"`
	IDLabels         []string   `json:"idLabels,omitempty"`
	IDChecklists     []string   `json:"idChecklists,omitempty"`
	Labels           []Label    `json:"labels,omitempty"`
	Pos              float64    `json:"pos"`
	Due              *time.Time `json:"due,omitempty"`
	DueComplete      bool       `json:"dueComplete"`
	DateLastActivity *time.Time `json:"dateLastActivity,omitempty"`
	ShortURL         string     `json:"shortUrl"`
	ShortLink        string     `json:"shortLink"`
	URL              string     `json:"url"`
	Badges           Badges     `json:"badges"`
}

// Badges summarizes card activity counters.
type Badges struct {
	Votes             int  `json:"votes"`
	Comments          int  `json:"comments"`
	Attachments       int  `json:"attachments"`
	CheckItems        int  `json:"checkItems"`
	CheckItemsChecked int  `json:"checkItemsChecked"`
	Description       bool `json:"description"`
	Subscribed        bool `json:"subscribed"`
}

// Member represents a Trello member.
type Member struct {
	ID         string   `json:"id"`
	Username   string   `json:"username"`
	FullName   string   `json:"fullName"`
	Initials   string   `json:"initials"`
	AvatarHash string   `json:"avatarHash"`
	Bio        string   `json:"bio"`
	URL        string   `json:"url"`
	IDBoards   []string `json:"idBoards,omitempty"`
	IDOrgs     []string `json:"idOrganizations,omitempty"`
	Confirmed  bool     `json:"confirmed"`
	MemberType string   `json:"memberType"`
}

// Organization represents a Trello organization (workspace).
type Organization struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Desc        string   `json:"desc"`
	URL         string   `json:"url"`
	Website     string   `json:"website"`
	IDBoards    []string `json:"idBoards,omitempty"`
}

// Action represents an entry in an activity feed.
type Action struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	Date            *time.Time `json:"date,omitempty"`
	IDMemberCreator string     `json:"idMemberCreator"`
	Data            ActionData `json:"data"`
	MemberCreator   *Member    `json:"memberCreator,omitempty"`
}

// ActionData carries the objects an action touched.
type ActionData struct {
	Text  string `json:"text,omitempty"`
	Board *Board `json:"board,omitempty"`
	List  *List  `json:"list,omitempty"`
	Card  *Card  `json:"card,omitempty"`
}

// Checklist represents a checklist on a card.
type Checklist struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	IDBoard    string      `json:"idBoard"`
	IDCard     string      `json:"idCard"`
	Pos        float64     `json:"pos"`
	CheckItems []CheckItem `json:"checkItems,omitempty"`
}

// CheckItem represents an item on a checklist.
type CheckItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	State       string  `json:"state"`
	IDChecklist string  `json:"idChecklist"`
	Pos         float64 `json:"pos"`
}

// CheckItem states.
const (
	CheckItemComplete   = "complete"
	CheckItemIncomplete = "incomplete"
)

// Label represents a board label.
type Label struct {
	ID      string `json:"id"`
	IDBoard string `json:"idBoard"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	Uses    int    `json:"uses,omitempty"`
}

// Notification represents a member notification.
type Notification struct {
	ID              string     `json:"id"`
	Type            string     `json:"type"`
	Date            *time.Time `json:"date,omitempty"`
	Unread          bool       `json:"unread"`
	IDMemberCreator string     `json:"idMemberCreator"`
	Data            ActionData `json:"data"`
}

// Webhook represents a registered webhook.
type Webhook struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	IDModel     string `json:"idModel"`
	CallbackURL string `json:"callbackURL"`
	Active      bool   `json:"active"`
}

// SearchResult holds the per-type results of a search query.
type SearchResult struct {
	Boards        []Board        `json:"boards,omitempty"`
	Cards         []Card         `json:"cards,omitempty"`
	Members       []Member       `json:"members,omitempty"`
	Organizations []Organization `json:"organizations,omitempty"`
}
