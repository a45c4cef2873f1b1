package workshop

// Tag is a workshop tag as embedded in items
type Tag struct {
	ID          string `json:"id"`
	AppID       uint64 `json:"app_id"`
	DisplayName string `json:"display_name"`
}

// Item is a listing entry from /api/list
type Item struct {
	ID          string   `json:"id"`
	AppID       uint64   `json:"appid"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Languages   []string `json:"languages"`
	LastUpdated uint64   `json:"last_updated"`
	PreviewURL  string   `json:"preview_url,omitempty"`
	Tags        []Tag    `json:"tags"`
	Score       float64  `json:"score"`
}

// Author is the display form of an item author
type Author struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// FullItem is the detail document from /api/item/<id>
type FullItem struct {
	ID           uint64     `json:"id"`
	AppID        int64      `json:"appid"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	PreviewURL   string     `json:"preview_url,omitempty"`
	Tags         []Tag      `json:"tags"`
	Score        float64    `json:"score"`
	Author       *Author    `json:"author"`
	LastUpdated  uint64     `json:"last_updated"`
	Languages    []string   `json:"languages"`
	Dependencies []FullItem `json:"dependencies"`
	Dependants   []FullItem `json:"dependants"`
}

// App is a workshop-enabled game from /api/apps and /api/app/<id>
type App struct {
	ID          uint32   `json:"id"`
	Name        string   `json:"name"`
	Developer   string   `json:"developer"`
	Description string   `json:"description"`
	Banner      string   `json:"banner"`
	Enabled     bool     `json:"enabled"`
	Available   bool     `json:"available"`
	DefaultTags []string `json:"default_tags"`
}
