package updater

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neboloop/socialshare/internal/logging"
)

func storeServer(t *testing.T, reply string, hits *int32) (*httptest.Server, Source) {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		_ = r.ParseForm()
		if r.PostForm.Get("edd_action") != "get_version" || r.PostForm.Get("license") != "KEY" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(ts.Close)
	return ts, Source{StoreURL: ts.URL, ItemName: "Social Sharing", ItemID: 7, SiteURL: "https://x.test/"}
}

func TestCheckNewerVersion(t *testing.T) {
	var hits int32
	ts, src := storeServer(t, `{"new_version":"1.2.0","package":"https://x.test/p.zip","homepage":"https://x.test","sections":{"changelog":"fixes"}}`, &hits)

	result, err := Check(context.Background(), ts.Client(), src, "KEY", "1.0")
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Equal(t, "1.2.0", result.LatestVersion)
	assert.Equal(t, "https://x.test/p.zip", result.PackageURL)
	assert.Equal(t, "fixes", result.Changelog)
}

func TestCheckSameVersionSerializedSections(t *testing.T) {
	var hits int32
	ts, src := storeServer(t, `{"new_version":"v1.0.0","sections":"a:1:{s:9:\"changelog\";}"}`, &hits)

	result, err := Check(context.Background(), ts.Client(), src, "KEY", "1.0")
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Empty(t, result.Changelog)
}

func TestCheckWithoutKey(t *testing.T) {
	var hits int32
	ts, src := storeServer(t, `{}`, &hits)

	_, err := Check(context.Background(), ts.Client(), src, " ", "1.0")
	assert.ErrorIs(t, err, ErrNoLicense)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestIsNewer(t *testing.T) {
	assert.True(t, isNewer("1.0.1", "1.0.0"))
	assert.True(t, isNewer("2.0", "1.9.9"))
	assert.False(t, isNewer("1.0", "1.0.0"))
	assert.False(t, isNewer("0.9.9", "1.0.0"))
}

func TestBackgroundCheckerNotifiesOnce(t *testing.T) {
	logging.Disable()
	defer logging.Enable()

	var hits int32
	ts, src := storeServer(t, `{"new_version":"2.0.0"}`, &hits)

	var notified []string
	b := NewBackgroundChecker(ts.Client(), src, "1.0.0", func() string { return "KEY" }, func(r *Result) {
		notified = append(notified, r.LatestVersion)
	})

	b.RunOnce(context.Background())
	b.RunOnce(context.Background())

	assert.Equal(t, []string{"2.0.0"}, notified)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestSchedule(t *testing.T) {
	b := NewBackgroundChecker(nil, Source{}, "1.0.0", func() string { return "" }, nil)
	c := cron.New()

	_, err := b.Schedule(context.Background(), c, "@daily")
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)

	_, err = b.Schedule(context.Background(), c, "not a spec")
	assert.Error(t, err)
}
