package types

type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

type PageContext struct {
	Url          string `json:"url"`
	Title        string `json:"title"`
	ThumbnailUrl string `json:"thumbnailUrl,omitempty"`
}

type ShareButton struct {
	Network string `json:"network"`
	Url     string `json:"url"`
	Title   string `json:"title"`
}

type BuildButtonsRequest struct {
	Page PageContext `json:"page"`
}

type BuildButtonsResponse struct {
	Buttons []ShareButton `json:"buttons"`
}

type RenderPlacementRequest struct {
	Placement string      `json:"placement"`
	Page      PageContext `json:"page"`
}

type RenderPlacementResponse struct {
	Placement string `json:"placement"`
	Class     string `json:"class,omitempty"`
	Html      string `json:"html"`
}

type ShareItem struct {
	Permalink    string `json:"permalink"`
	Title        string `json:"title"`
	ThumbnailUrl string `json:"thumbnailUrl,omitempty"`
}

type InjectContentRequest struct {
	View      string     `json:"view"`
	MainQuery bool       `json:"mainQuery"`
	Body      string     `json:"body"`
	Item      *ShareItem `json:"item,omitempty"`
}

type FooterRequest struct {
	View string     `json:"view"`
	Item *ShareItem `json:"item,omitempty"`
}

type HtmlResponse struct {
	Html string `json:"html"`
}

type SettingsResponse struct {
	Settings map[string]any `json:"settings"`
}

type UpdateSettingsRequest struct {
	Replace  bool           `form:"replace"`
	Settings map[string]any `json:"settings"`
}

type SettingsOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type SettingsField struct {
	Key     string           `json:"key"`
	Name    string           `json:"name"`
	Desc    string           `json:"desc,omitempty"`
	Section string           `json:"section"`
	Type    string           `json:"type"`
	Options []SettingsOption `json:"options,omitempty"`
	Default any              `json:"default"`
	Size    string           `json:"size,omitempty"`
	Min     *float64         `json:"min,omitempty"`
	Max     *float64         `json:"max,omitempty"`
	Step    *float64         `json:"step,omitempty"`
}

type SchemaResponse struct {
	Fields []SettingsField `json:"fields"`
}

type LicenseResponse struct {
	HasKey bool   `json:"hasKey"`
	Status string `json:"status,omitempty"`
	Notice string `json:"notice,omitempty"`
}

type LicenseActionRequest struct {
	LicenseKey string `json:"licenseKey,omitempty"`
}

type LicenseActionResponse struct {
	Status string `json:"status"`
}
