package sharing

import "github.com/neboloop/socialshare/internal/settings"

// Setting keys read by the generator.
const (
	KeyNetworks  = "networks"
	KeyLocations = "locations"
	KeyStyle     = "style"
)

// SectionGeneral groups the share button settings on the admin page.
const SectionGeneral = "general"

// Fields returns the schema entries the generator depends on.
func Fields() []settings.Field {
	networks := make([]settings.Option, len(catalog))
	for i, n := range catalog {
		networks[i] = settings.Option{Key: n.Key, Label: n.Title}
	}

	return []settings.Field{
		{
			Key:     KeyNetworks,
			Name:    "Social Networks",
			Desc:    "Select which share buttons are displayed.",
			Section: SectionGeneral,
			Type:    settings.TypeMulticheck,
			Options: networks,
			Default: false,
		},
		{
			Key:     KeyLocations,
			Name:    "Locations",
			Desc:    "Choose where the share buttons appear. The sidebar is shown on single posts, archives and the blog index.",
			Section: SectionGeneral,
			Type:    settings.TypeMulticheck,
			Options: []settings.Option{
				{Key: string(AboveContent), Label: "Above Content"},
				{Key: string(BelowContent), Label: "Below Content"},
				{Key: string(Sidebar), Label: "Sidebar"},
			},
			Default: false,
		},
		{
			Key:     KeyStyle,
			Name:    "Style",
			Desc:    "Icons only, labels only, or **both**. The sidebar always shows icons.",
			Section: SectionGeneral,
			Type:    settings.TypeRadio,
			Options: []settings.Option{
				{Key: string(StyleIcons), Label: "Icons"},
				{Key: string(StyleLabels), Label: "Labels"},
				{Key: string(StyleBoth), Label: "Icons and Labels"},
			},
			Default: string(StyleBoth),
		},
	}
}
