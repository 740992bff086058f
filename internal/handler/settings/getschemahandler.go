package settings

import (
	"net/http"

	"github.com/neboloop/socialshare/internal/httputil"
	"github.com/neboloop/socialshare/internal/svc"
	"github.com/neboloop/socialshare/internal/types"
)

// GetSchemaHandler lists every registered field in display order.
func GetSchemaHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fields := svcCtx.Schema.Fields()
		resp := &types.SchemaResponse{Fields: make([]types.SettingsField, 0, len(fields))}
		for _, f := range fields {
			sf := types.SettingsField{
				Key:     f.Key,
				Name:    f.Name,
				Desc:    f.Desc,
				Section: f.Section,
				Type:    string(f.Type),
				Default: f.Default,
				Size:    f.Size,
				Min:     f.Min,
				Max:     f.Max,
				Step:    f.Step,
			}
			for _, o := range f.Options {
				sf.Options = append(sf.Options, types.SettingsOption{Key: o.Key, Label: o.Label})
			}
			resp.Fields = append(resp.Fields, sf)
		}
		httputil.OkJSON(w, resp)
	}
}
